package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kudetabet/portal/storage"
)

func TestRoutePatterns(t *testing.T) {
	s := testServer()
	s.uploads = storage.New("", "")
	mux := s.routes()

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/auth/check-referral", "GET /api/auth/check-referral"},
		{http.MethodGet, "/api/transactions/reference/DEP20260828093015-0042", "GET /api/transactions/reference/{reference}"},
		{http.MethodGet, "/api/transactions/f6a1", "GET /api/transactions/{id}"},
		{http.MethodPost, "/api/transactions/f6a1/approve", "POST /api/transactions/{id}/approve"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		_, pattern := mux.Handler(req)
		if pattern != tc.want {
			t.Errorf("%s %s resolved to %q, want %q", tc.method, tc.path, pattern, tc.want)
		}
	}
}
