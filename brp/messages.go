package brp

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the JSON-RPC protocol version spoken by BRP servers.
const ProtocolVersion = "2.0"

// Request represents an outgoing JSON-RPC request.
type Request struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Method         string          `json:"method"`
	Params         json.RawMessage `json:"params,omitempty"`
	ID             string          `json:"id"`
}

// Response represents a JSON-RPC response from the target.
type Response struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
	ID             json.RawMessage `json:"id,omitempty"`
}

// NewRequest builds a request object, marshaling params if present.
func NewRequest(id string, method string, params any) (*Request, error) {
	req := &Request{
		JSONRPCVersion: ProtocolVersion,
		Method:         method,
		ID:             id,
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params for %s: %w", method, err)
		}
		req.Params = raw
	}
	return req, nil
}

// Validate enforces JSON-RPC 2.0 response semantics: exactly one of result
// or error must be present.
func (r *Response) Validate() error {
	if r.JSONRPCVersion != ProtocolVersion {
		return fmt.Errorf("invalid JSON-RPC version: expected %q, got %q", ProtocolVersion, r.JSONRPCVersion)
	}
	hasResult := len(r.Result) > 0
	hasError := r.Error != nil
	if hasResult && hasError {
		return fmt.Errorf("response message cannot have both result and error fields")
	}
	if !hasResult && !hasError {
		return fmt.Errorf("response message must have either result or error field")
	}
	return nil
}
