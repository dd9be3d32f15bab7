package mcp

import "fmt"

// JSON-RPC error codes
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// Error message constants
const (
	ErrMsgParseError     = "Parse error"
	ErrMsgInvalidRequest = "Invalid Request"
	ErrMsgMethodNotFound = "Method not found"
	ErrMsgInvalidParams  = "Invalid params"
	ErrMsgInternalError  = "Internal error"
)

// protocolError is a handler failure reported as a JSON-RPC error object.
type protocolError struct {
	code    int
	message string
	detail  string
}

func (e *protocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func invalidRequest(format string, args ...interface{}) error {
	return &protocolError{code: ErrCodeInvalidRequest, message: ErrMsgInvalidRequest, detail: fmt.Sprintf(format, args...)}
}

func invalidParams(format string, args ...interface{}) error {
	return &protocolError{code: ErrCodeInvalidParams, message: ErrMsgInvalidParams, detail: fmt.Sprintf(format, args...)}
}
