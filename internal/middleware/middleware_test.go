package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
)

type stubResolver map[string]*access.Identity

func (s stubResolver) Resolve(_ context.Context, token string) (*access.Identity, error) {
	if token == "broken" {
		return nil, httperr.Store("resolve session", errors.New("redis down"))
	}
	return s[token], nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.local"}))
	r.Use(Authenticate(stubResolver{"good": {UserID: 4, Role: access.RoleManager}}))
	r.GET("/who", func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(id.Role))
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	r := newEngine()

	cases := []struct {
		name   string
		header string
		cookie string
		status int
		body   string
	}{
		{"no token", "", "", http.StatusOK, "anonymous"},
		{"bearer", "Bearer good", "", http.StatusOK, "manager"},
		{"cookie", "", "good", http.StatusOK, "manager"},
		{"unknown token", "Bearer stale", "", http.StatusOK, "anonymous"},
		{"wrong scheme", "Basic good", "", http.StatusOK, "anonymous"},
		{"store failure", "Bearer broken", "", http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}
			if tc.body != "" && w.Body.String() != tc.body {
				t.Fatalf("body %q, want %q", w.Body.String(), tc.body)
			}
		})
	}
}

func TestCORSAllowList(t *testing.T) {
	r := newEngine()

	req := httptest.NewRequest(http.MethodOptions, "/who", nil)
	req.Header.Set("Origin", "http://app.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://app.local" {
		t.Fatalf("allowed origin: %d %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("foreign origin was reflected")
	}
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(stubResolver{"good": {UserID: 1, Role: access.RoleClient}}), RequireSession())
	r.GET("/private", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated: %d", w.Code)
	}
}
