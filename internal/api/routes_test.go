package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	pkgauth "github.com/matiasleandrokruk/kairos/pkg/auth"
)

// stubMCP marks requests that made it past the middleware stack.
func stubMCP() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("mcp")) //nolint:errcheck
	})
}

func TestNewRouter_Healthz(t *testing.T) {
	router := NewRouter(Deps{MCP: stubMCP(), Log: zerolog.Nop()})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("body = %q; want %q", got, `{"status":"ok"}`)
	}
}

func TestNewRouter_Version(t *testing.T) {
	router := NewRouter(Deps{MCP: stubMCP(), Log: zerolog.Nop()})

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "kairos version") {
		t.Errorf("body = %q; want version string", rec.Body.String())
	}
}

func TestNewRouter_MCPOpenWhenAuthUnconfigured(t *testing.T) {
	// t.Setenv guards against a leaked JWT_SECRET making auth kick in.
	t.Setenv("JWT_SECRET", "")

	router := NewRouter(Deps{MCP: stubMCP(), Log: zerolog.Nop()})

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "mcp" {
		t.Errorf("got status=%d body=%q; want open access to /mcp", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_MCPRequiresCredentialWhenConfigured(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	hash, err := pkgauth.HashKey("sesame")
	if err != nil {
		t.Fatalf("HashKey failed: %v", err)
	}
	router := NewRouter(Deps{MCP: stubMCP(), Log: zerolog.Nop(), APIKeyHash: hash})

	t.Run("no credential", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("correct key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Authorization", "Bearer sesame")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || rec.Body.String() != "mcp" {
			t.Errorf("got status=%d body=%q; want authenticated access", rec.Code, rec.Body.String())
		}
	})

	t.Run("healthz stays public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
	})
}
