package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockServer builds an httptest.Server that verifies the request before responding.
type mockServer struct {
	t          *testing.T
	handler    http.HandlerFunc
	expectPath string
	expectMeth string
	expectAuth string
	expectBody map[string]any
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t}
}

func (m *mockServer) ExpectPath(path string) *mockServer {
	m.expectPath = path
	return m
}

func (m *mockServer) ExpectMethod(method string) *mockServer {
	m.expectMeth = method
	return m
}

func (m *mockServer) ExpectGET() *mockServer    { return m.ExpectMethod(http.MethodGet) }
func (m *mockServer) ExpectPOST() *mockServer   { return m.ExpectMethod(http.MethodPost) }
func (m *mockServer) ExpectPUT() *mockServer    { return m.ExpectMethod(http.MethodPut) }
func (m *mockServer) ExpectPATCH() *mockServer  { return m.ExpectMethod(http.MethodPatch) }
func (m *mockServer) ExpectDELETE() *mockServer { return m.ExpectMethod(http.MethodDelete) }

// ExpectBearer verifies the Authorization header carries token.
func (m *mockServer) ExpectBearer(token string) *mockServer {
	m.expectAuth = "Bearer " + token
	return m
}

// ExpectBody verifies the JSON request body decodes to body.
func (m *mockServer) ExpectBody(body map[string]any) *mockServer {
	m.expectBody = body
	return m
}

func (m *mockServer) RespondJSON(v any) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, v)
	}
	return m
}

// RespondRaw writes body verbatim with a 200 status.
func (m *mockServer) RespondRaw(body string) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	return m
}

func (m *mockServer) RespondStatus(code int) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
	return m
}

func (m *mockServer) RespondError(code int, body string) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
	return m
}

// Build creates the server and registers its Close with t.Cleanup.
func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.expectPath != "" {
			assert.Equal(m.t, m.expectPath, r.URL.Path, "unexpected request path")
		}
		if m.expectMeth != "" {
			assert.Equal(m.t, m.expectMeth, r.Method, "unexpected request method")
		}
		if m.expectAuth != "" {
			assert.Equal(m.t, m.expectAuth, r.Header.Get("Authorization"), "unexpected authorization")
		}
		if m.expectBody != nil {
			data, err := io.ReadAll(r.Body)
			assert.NoError(m.t, err)
			var got map[string]any
			assert.NoError(m.t, json.Unmarshal(data, &got))
			assert.Equal(m.t, m.expectBody, got, "unexpected request body")
		}
		if m.handler != nil {
			m.handler(w, r)
		}
	})

	srv := httptest.NewServer(handler)
	m.t.Cleanup(srv.Close)
	return srv
}

func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }
