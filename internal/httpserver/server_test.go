package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
)

func echoRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(RequestID(r.Context())))
	})
	return mux
}

func TestHandler_CORSPreflight(t *testing.T) {
	h := Handler(&Config{}, echoRoutes(), logger.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/products", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("unexpected allow origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("unexpected allow methods %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("unexpected max age %q", got)
	}
}

func TestHandler_RequestID(t *testing.T) {
	h := Handler(&Config{}, echoRoutes(), logger.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	id := rec.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected generated request id")
	}
	if rec.Body.String() != id {
		t.Errorf("handler saw %q, header has %q", rec.Body.String(), id)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected incoming id to be kept, got %q", got)
	}
}

func TestHandler_RateLimit(t *testing.T) {
	h := Handler(&Config{RateLimitRPS: 0.001, RateLimitBurst: 1}, echoRoutes(), logger.NewNop())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/products", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/products", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", second.Code)
	}
	if got := second.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS headers on 429, got %q", got)
	}
}

func TestNew_Port(t *testing.T) {
	tests := map[string]string{
		"5057":           ":5057",
		":5057":          ":5057",
		"127.0.0.1:5057": "127.0.0.1:5057",
	}
	for in, want := range tests {
		srv := New(&Config{Port: in}, echoRoutes(), logger.NewNop())
		if srv.Addr != want {
			t.Errorf("port %q: expected addr %q, got %q", in, want, srv.Addr)
		}
	}
}
