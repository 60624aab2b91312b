package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireAPIKey(t *testing.T) {
	reached := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name       string
		token      string
		key        string
		wantStatus int
	}{
		{"open api ignores missing key", "", "", http.StatusAccepted},
		{"open api ignores stray key", "", "whatever", http.StatusAccepted},
		{"matching key", "s3cret", "s3cret", http.StatusAccepted},
		{"wrong key", "s3cret", "guess", http.StatusUnauthorized},
		{"key prefix is not enough", "s3cret", "s3c", http.StatusUnauthorized},
		{"missing key", "s3cret", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/deploy", nil)
			if tt.key != "" {
				req.Header.Set(apiKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			requireAPIKey(tt.token)(reached).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), apiKeyHeader) {
				t.Errorf("rejection body %q should name the %s header", rec.Body.String(), apiKeyHeader)
			}
		})
	}
}

func TestRouter_APIKeyLeavesHealthzOpen(t *testing.T) {
	s := newTestServer(t, false)
	s.handler = NewRouter(s.deployH, s.statusH, "s3cret")

	if rec := s.do(http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/status/all", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("status/all without key = %d, want 401", rec.Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	s := newTestServer(t, false)
	s.handler = NewRouter(s.deployH, s.statusH, "s3cret")
	const origin = "https://console.example.com"

	t.Run("preflight skips auth and handlers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/deploy", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", apiKeyHeader)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		if rec.Code < 200 || rec.Code >= 300 {
			t.Fatalf("preflight status = %d, want 2xx", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" && got != origin {
			t.Errorf("Allow-Origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
			t.Errorf("Allow-Methods = %q, want POST", got)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("preflight body should be empty, got %q", rec.Body.String())
		}
	})

	t.Run("actual request passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/status/all", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set(apiKeyHeader, "s3cret")
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" && got != origin {
			t.Errorf("Allow-Origin = %q", got)
		}
	})
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	s := newTestServer(t, false)
	body := `{"AppName": "api1", "ImageAddress": "` + string(bytes.Repeat([]byte("a"), maxRequestBodySize)) + `"}`
	rec := s.do(http.MethodPost, "/deploy", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
