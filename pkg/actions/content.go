// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package actions

import (
	"encoding/json"

	"github.com/bettyblocks/mcp-gateway/pkg/core/schema"
)

// ParseOutput translates an action response into content blocks.
//
// Unsuccessful responses become a single text block carrying the error. For
// successful responses the payload is inspected in order: a bare string, a
// mapping with a "text" field, a mapping with a "content" array of typed
// elements, and finally anything else is pretty-printed. An absent payload
// yields a fixed completion message.
func ParseOutput(resp *Response) []schema.ContentBlock {
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return []schema.ContentBlock{schema.NewTextContent("Error: " + msg)}
	}

	if resp.Data == nil {
		return []schema.ContentBlock{schema.NewTextContent("Action completed successfully")}
	}

	if text, ok := resp.Data.(string); ok {
		return []schema.ContentBlock{schema.NewTextContent(text)}
	}

	if obj, ok := resp.Data.(map[string]any); ok {
		if text, ok := obj["text"].(string); ok {
			return []schema.ContentBlock{schema.NewTextContent(text)}
		}
		if content, ok := obj["content"].([]any); ok {
			return parseContentArray(content)
		}
	}

	return []schema.ContentBlock{schema.NewTextContent(prettyPrint(resp.Data))}
}

// parseContentArray translates the elements of a "content" array. Elements
// with an unrecognized type or missing fields are skipped.
func parseContentArray(content []any) []schema.ContentBlock {
	blocks := make([]schema.ContentBlock, 0, len(content))

	for _, item := range content {
		elem, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch elem["type"] {
		case "text":
			if text, ok := elem["text"].(string); ok {
				blocks = append(blocks, schema.NewTextContent(text))
			}
		case "image":
			data, dataOK := elem["data"].(string)
			mimeType, mimeOK := elem["mimeType"].(string)
			if dataOK && mimeOK {
				blocks = append(blocks, schema.NewImageContent(data, mimeType))
			}
		}
	}

	return blocks
}

func prettyPrint(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		b, err = json.Marshal(v)
		if err != nil {
			return ""
		}
	}
	return string(b)
}
