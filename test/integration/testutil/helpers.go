//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Response bundles a decoded HTTP exchange for assertions.
type Response struct {
	Status int
	Body   []byte
}

// Do issues a request against the test server. The body, if non-nil, is
// JSON-encoded; apiKey, if non-empty, is sent in the api-key header.
func (e *TestEnv) Do(t *testing.T, method, path, apiKey string, body interface{}) Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("api-key", apiKey)
	}

	resp, err := e.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	return Response{Status: resp.StatusCode, Body: raw}
}

// Decode unmarshals the response body into dst.
func (r Response) Decode(t *testing.T, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(r.Body, dst); err != nil {
		t.Fatalf("decode response %q: %v", r.Body, err)
	}
}
