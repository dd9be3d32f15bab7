package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// methodHandler handles one JSON-RPC method
type methodHandler func(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error)

var methods = map[string]methodHandler{
	"initialize": func(_ context.Context, s *Server, params json.RawMessage) (interface{}, error) {
		return handleInitialize(s, params)
	},
	"ping": func(context.Context, *Server, json.RawMessage) (interface{}, error) {
		return map[string]interface{}{}, nil
	},
	"tools/list": func(_ context.Context, s *Server, params json.RawMessage) (interface{}, error) {
		return handleToolsList(s, params)
	},
	"tools/call": handleToolsCall,
}

// handleMessage processes one raw message and returns the encoded response,
// or nil for notifications.
func (s *Server) handleMessage(ctx context.Context, data []byte) ([]byte, error) {
	req, err := parseRequest(data)
	if err != nil {
		if errors.Is(err, errInvalidVersion) {
			return encode(createErrorResponse(ErrCodeInvalidRequest, ErrMsgInvalidRequest, err.Error(), req.ID))
		}
		return encode(createErrorResponse(ErrCodeParseError, ErrMsgParseError, err.Error(), nil))
	}

	if req.isNotification() {
		s.handleNotification(req)
		return nil, nil
	}

	handler, ok := methods[req.Method]
	if !ok {
		return encode(createErrorResponse(ErrCodeMethodNotFound, ErrMsgMethodNotFound, req.Method, req.ID))
	}

	result, err := handler(ctx, s, req.Params)
	if err != nil {
		var pe *protocolError
		if errors.As(err, &pe) {
			return encode(createErrorResponse(pe.code, pe.message, pe.detail, req.ID))
		}
		s.logger.Error("mcp handler failed", zap.String("method", req.Method), zap.Error(err))
		return encode(createErrorResponse(ErrCodeInternalError, ErrMsgInternalError, nil, req.ID))
	}

	return encode(createResponse(result, req.ID))
}

// handleNotification applies notifications; unknown ones are ignored.
func (s *Server) handleNotification(req *JSONRPCRequest) {
	switch req.Method {
	case "notifications/initialized":
		if s.getState() == stateInitializing {
			s.setState(stateInitialized)
		}
	default:
		s.logger.Debug("ignoring notification", zap.String("method", req.Method))
	}
}

func encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return data, nil
}
