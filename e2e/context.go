package e2e

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultSignature clears the gateway's mock signature check.
const DefaultSignature = "E2E-MOCK-DSC-SIGNATURE-0123456789"

// TestContext carries HTTP state across the steps of one scenario.
type TestContext struct {
	BaseURL    string
	HTTPClient *http.Client

	Signature  string
	SessionID  string
	References map[string]string

	LastStatus int
	LastBody   []byte
	LastJSON   map[string]interface{}
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Signature:  DefaultSignature,
		References: make(map[string]string),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.Signature = DefaultSignature
	tc.SessionID = ""
	tc.References = make(map[string]string)
	tc.LastStatus = 0
	tc.LastBody = nil
	tc.LastJSON = nil
}

// POST seals body in the transport envelope and sends it with the current
// session, if any.
func (tc *TestContext) POST(path string, body interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	envelope := map[string]string{
		"data":      base64.StdEncoding.EncodeToString(raw),
		"signature": tc.Signature,
	}
	buf, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(buf), nil)
}

// POSTRaw sends body verbatim.
func (tc *TestContext) POSTRaw(path, body string) error {
	return tc.do(http.MethodPost, path, strings.NewReader(body), nil)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) do(method, path string, body io.Reader, headers map[string]string) error {
	req, err := http.NewRequest(method, tc.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.SessionID != "" {
		req.Header.Set("Authorization", tc.SessionID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.LastStatus = resp.StatusCode
	tc.LastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.LastJSON = nil
	if len(tc.LastBody) > 0 {
		var parsed map[string]interface{}
		if json.Unmarshal(tc.LastBody, &parsed) == nil {
			tc.LastJSON = parsed
		}
	}
	return nil
}

// GetResponseField walks a dotted path through the last JSON body.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	if tc.LastJSON == nil {
		return nil, fmt.Errorf("no JSON response (status %d): %s", tc.LastStatus, tc.LastBody)
	}
	var cur interface{} = tc.LastJSON
	for _, part := range strings.Split(field, ".") {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		cur, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response: %s", field, tc.LastBody)
		}
	}
	return cur, nil
}

func (tc *TestContext) GetLastStatus() int        { return tc.LastStatus }
func (tc *TestContext) GetLastBody() []byte       { return tc.LastBody }
func (tc *TestContext) GetSessionID() string      { return tc.SessionID }
func (tc *TestContext) SetSessionID(id string)    { tc.SessionID = id }
func (tc *TestContext) SetSignature(sig string)   { tc.Signature = sig }
func (tc *TestContext) Remember(name, ref string) { tc.References[name] = ref }

func (tc *TestContext) Recall(name string) (string, error) {
	ref, ok := tc.References[name]
	if !ok {
		return "", fmt.Errorf("nothing remembered as %q", name)
	}
	return ref, nil
}
