package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		opts   AuthOptions
		method string
		path   string
		header string
		want   int
	}{
		{"no keys", AuthOptions{}, http.MethodPost, "/api/v1/reload", "", http.StatusOK},
		{"blank keys", AuthOptions{APIKeys: []string{"", ""}}, http.MethodPost, "/api/v1/reload", "", http.StatusOK},
		{"missing header", AuthOptions{APIKeys: []string{"secret"}}, http.MethodGet, "/api/v1/posts", "", http.StatusUnauthorized},
		{"basic scheme", AuthOptions{APIKeys: []string{"secret"}}, http.MethodGet, "/api/v1/posts", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong token", AuthOptions{APIKeys: []string{"secret"}}, http.MethodGet, "/api/v1/posts", "Bearer wrong", http.StatusUnauthorized},
		{"valid token", AuthOptions{APIKeys: []string{"secret"}}, http.MethodGet, "/api/v1/posts", "Bearer secret", http.StatusOK},
		{"second key", AuthOptions{APIKeys: []string{"key1", "key2"}}, http.MethodGet, "/api/v1/posts", "Bearer key2", http.StatusOK},
		{"health exempt", AuthOptions{APIKeys: []string{"secret"}}, http.MethodGet, "/health", "", http.StatusOK},
		{"metrics exempt", AuthOptions{APIKeys: []string{"secret"}}, http.MethodGet, "/metrics", "", http.StatusOK},
		{"public read", AuthOptions{APIKeys: []string{"secret"}, PublicReads: true}, http.MethodGet, "/api/v1/search", "", http.StatusOK},
		{"public reads guard writes", AuthOptions{APIKeys: []string{"secret"}, PublicReads: true}, http.MethodPost, "/api/v1/reload", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := BearerAuthMiddleware(tt.opts)(okHandler())

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != CodeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, CodeUnauthorized)
			}
		})
	}
}
