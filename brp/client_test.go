package brp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCallSuccess(t *testing.T) {
	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      gotReq.ID,
			"result":  map[string]any{"entity": 42},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	raw, err := c.Call(context.Background(), MethodQuery, map[string]any{"data": map[string]any{}})
	if err != nil {
		t.Fatal(err)
	}

	if gotReq.JSONRPCVersion != ProtocolVersion {
		t.Fatalf("jsonrpc = %q", gotReq.JSONRPCVersion)
	}
	if gotReq.Method != MethodQuery {
		t.Fatalf("method = %q", gotReq.Method)
	}
	if gotReq.ID == "" {
		t.Fatal("request carries no id")
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result["entity"] != 42.0 {
		t.Fatalf("result = %v", result)
	}
}

func TestCallTargetRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      "1",
			"error":   map[string]any{"code": -23402, "message": "Unknown component type"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Call(context.Background(), MethodSpawn, nil)

	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if be.Code != CodeComponentError {
		t.Fatalf("code = %d", be.Code)
	}
	if IsUnavailable(err) {
		t.Fatal("a content rejection is not unavailability")
	}
}

func TestCallMethodNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      "1",
			"error":   map[string]any{"code": -32601, "message": "Method not found"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Call(context.Background(), MethodDiscoverFormat, nil)
	if !IsMethodNotFound(err) {
		t.Fatalf("err = %v, want method-not-found", err)
	}
	if !IsUnavailable(err) {
		t.Fatal("a missing method means the capability is unavailable")
	}
}

func TestCallTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewHTTPClient(srv.URL)
	_, err := c.Call(context.Background(), MethodGet, nil)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %T, want *TransportError", err)
	}
	if te.Method != MethodGet {
		t.Fatalf("method = %q", te.Method)
	}
	if !IsUnavailable(err) {
		t.Fatal("transport failures are unavailability")
	}
}

func TestCallRejectsMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Call(context.Background(), MethodGet, nil)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %T, want *TransportError", err)
	}
}

func TestCallRejectsAmbiguousReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      "1",
			"result":  map[string]any{},
			"error":   map[string]any{"code": -32603, "message": "boom"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	if _, err := c.Call(context.Background(), MethodGet, nil); err == nil {
		t.Fatal("expected error for result+error reply")
	}
}

func TestTimeoutAppliesRegardlessOfOptionOrder(t *testing.T) {
	custom := &http.Client{}
	c := NewHTTPClient("", WithTimeout(5*time.Second), WithHTTPClient(custom))
	if c.hc != custom {
		t.Fatal("custom http client not installed")
	}
	if c.hc.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s even when the client option comes later", c.hc.Timeout)
	}

	c = NewHTTPClient("", WithHTTPClient(&http.Client{}), WithTimeout(5*time.Second))
	if c.hc.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s", c.hc.Timeout)
	}

	c = NewHTTPClient("")
	if c.hc.Timeout != 10*time.Second {
		t.Fatalf("default timeout = %v, want 10s", c.hc.Timeout)
	}
}

func TestResponseValidate(t *testing.T) {
	cases := []struct {
		name    string
		res     Response
		wantErr bool
	}{
		{"result only", Response{JSONRPCVersion: "2.0", Result: json.RawMessage(`{}`)}, false},
		{"error only", Response{JSONRPCVersion: "2.0", Error: &Error{Code: CodeInternalError}}, false},
		{"neither", Response{JSONRPCVersion: "2.0"}, true},
		{"both", Response{JSONRPCVersion: "2.0", Result: json.RawMessage(`{}`), Error: &Error{}}, true},
		{"wrong version", Response{JSONRPCVersion: "1.0", Result: json.RawMessage(`{}`)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.res.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
