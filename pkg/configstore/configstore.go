// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package configstore defines the runtime configuration store the gateway
// reads server catalogs from, plus helpers to locate one server's tool
// configuration inside it.
package configstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bettyblocks/mcp-gateway/pkg/core/schema"
)

// ServersKey is the runtime configuration key holding the JSON-encoded
// collection of MCP server configurations.
const ServersKey = "mcp_servers"

// Entry is one key/value pair of runtime configuration.
type Entry struct {
	Key   string
	Value string
}

// Store provides read access to runtime configuration.
type Store interface {
	GetAll(ctx context.Context) ([]Entry, error)
}

// LoadServersConfig reads and parses the full server catalog from the store.
// A missing key or unparsable value is an error; the gateway never falls back
// to default data here.
func LoadServersConfig(ctx context.Context, store Store) (*schema.ServersConfig, error) {
	entries, err := store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve runtime configuration: %w", err)
	}

	for _, entry := range entries {
		if entry.Key != ServersKey {
			continue
		}
		var cfg schema.ServersConfig
		if err := json.Unmarshal([]byte(entry.Value), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s config: %w", ServersKey, err)
		}
		return &cfg, nil
	}

	return nil, fmt.Errorf("%s key not found in runtime configuration", ServersKey)
}

// LoadServerConfig loads the configuration for a single server identity.
func LoadServerConfig(ctx context.Context, store Store, serverID string) (*schema.ServerConfig, error) {
	cfg, err := LoadServersConfig(ctx, store)
	if err != nil {
		return nil, err
	}

	for i := range cfg.Servers {
		if cfg.Servers[i].ID == serverID {
			return &cfg.Servers[i], nil
		}
	}

	return nil, fmt.Errorf("MCP server '%s' not found in configuration", serverID)
}
