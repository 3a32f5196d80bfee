// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package memory provides an in-memory configuration store used by tests and
// the development bootstrap.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bettyblocks/mcp-gateway/pkg/configstore"
)

// Store is a mutex-guarded in-memory configuration store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]string)}
}

// Set stores a configuration value under key.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// GetAll returns all configuration entries ordered by key.
func (s *Store) GetAll(ctx context.Context) ([]configstore.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]configstore.Entry, 0, len(s.entries))
	for k, v := range s.entries {
		out = append(out, configstore.Entry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// SeedSample loads a static sample catalog. This is a development
// convenience only; production deployments populate the store externally and
// the request pipeline never falls back to it.
func SeedSample(s *Store) {
	s.Set(configstore.ServersKey, sampleServers)
}

const sampleServers = `{
  "mcp-servers": [
    {
      "id": "weather-server-001",
      "tools": [
        {
          "action-id": "action-weather-get",
          "name": "get_weather",
          "description": "Haalt de huidige weersomstandigheden op voor een specifieke locatie.",
          "inputSchema": {
            "type": "object",
            "properties": {
              "location": {
                "type": "string",
                "description": "De stad en provincie, bijv. Amsterdam, NH"
              },
              "unit": {
                "type": "string",
                "enum": ["celsius", "fahrenheit"],
                "description": "De temperatuureenheid die gebruikt moet worden."
              }
            },
            "required": ["location"]
          }
        }
      ]
    },
    {
      "id": "calculator-server-001",
      "tools": [
        {
          "action-id": "action-calc-add",
          "name": "add_numbers",
          "description": "Adds two numbers together",
          "inputSchema": {
            "type": "object",
            "properties": {
              "a": {"type": "number", "description": "First number"},
              "b": {"type": "number", "description": "Second number"}
            },
            "required": ["a", "b"]
          }
        }
      ]
    }
  ]
}`
