package mcp

import (
	"encoding/json"

	"github.com/mark-chris/prodcat/internal/version"
)

// supportedProtocolVersion is the only MCP revision this server speaks.
const supportedProtocolVersion = "2025-11-25"

// initializeParams represents the initialize request parameters
type initializeParams struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ClientInfo      map[string]interface{} `json:"clientInfo,omitempty"`
}

// handleInitialize handles the initialize request
func handleInitialize(s *Server, params json.RawMessage) (interface{}, error) {
	if s.getState() != stateNotInitialized {
		return nil, invalidRequest("already initialized")
	}

	var p initializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, invalidParams("invalid initialize params: %v", err)
		}
	}

	// Clients asking for another revision get ours and may disconnect.
	protocolVersion := supportedProtocolVersion

	s.mu.Lock()
	s.protocolVersion = protocolVersion
	s.clientCapabilities = p.Capabilities
	s.mu.Unlock()

	s.setState(stateInitializing)

	result := map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]interface{}{
			"name":        "prodcat",
			"version":     version.Version,
			"description": "Product catalog - similarity search and keyword suggestions",
		},
	}

	return result, nil
}
