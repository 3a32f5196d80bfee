// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Tool is the public shape of a tool as returned by "tools/list".
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolWithAction is a tool definition as stored in server configuration. The
// action id binds the tool to an executable backend action and must never be
// returned to callers; Public strips it.
type ToolWithAction struct {
	Tool
	ActionID string `json:"action-id"`
}

// Public returns the caller-visible tool shape without the action mapping.
func (t ToolWithAction) Public() Tool {
	return t.Tool
}

// ServerConfig is the tool catalog for one logical server identity.
type ServerConfig struct {
	ID    string           `json:"id"`
	Tools []ToolWithAction `json:"tools"`
}

// FindTool resolves a tool by exact, case-sensitive name match.
func (c *ServerConfig) FindTool(name string) (*ToolWithAction, bool) {
	for i := range c.Tools {
		if c.Tools[i].Name == name {
			return &c.Tools[i], true
		}
	}
	return nil, false
}

// ServersConfig is the full set of configured servers as stored under the
// runtime configuration key.
type ServersConfig struct {
	Servers []ServerConfig `json:"mcp-servers"`
}

// ListToolsResult is the result of "tools/list".
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams is the params shape for "tools/call". A nil Arguments map
// means the caller supplied no argument bag at all, which is distinct from an
// empty one.
type CallToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// CallToolResult is the result of "tools/call".
type CallToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}

// ContentBlock is a normalized unit of tool output, either text or an image.
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// NewTextContent returns a text content block.
func NewTextContent(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// NewImageContent returns an image content block with a base64 payload.
func NewImageContent(data, mimeType string) ContentBlock {
	return ContentBlock{Type: "image", Data: data, MimeType: mimeType}
}
