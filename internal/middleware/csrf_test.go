package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/beanmap/beanmap/internal/ctxkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueCSRFToken runs a GET through the middleware and returns the cookie it
// set, for replay on later requests.
func issueCSRFToken(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest("GET", "/add_cafe", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	for _, c := range w.Result().Cookies() {
		if c.Name == "csrf_token" {
			return c
		}
	}
	t.Fatal("GET did not set a csrf_token cookie")
	return nil
}

func TestCSRFTokenIssuedOnGet(t *testing.T) {
	var seen string
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
	}))

	cookie := issueCSRFToken(t, handler)

	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, cookie.Value, seen, "context token must match the cookie")
	assert.True(t, cookie.HttpOnly)
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	ran := false
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	r := httptest.NewRequest("POST", "/add_cafe", strings.NewReader("name=Prufrock"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, ran, "handler must not run without a token")
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	ran := false
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	cookie := issueCSRFToken(t, handler)
	ran = false // the issuing GET above runs the wrapped handler

	form := url.Values{"csrf_token": {"not-the-issued-token"}}
	r := httptest.NewRequest("POST", "/add_cafe", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, ran)
}

func TestCSRFAcceptsMatchingFormToken(t *testing.T) {
	ran := false
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	cookie := issueCSRFToken(t, handler)

	form := url.Values{"csrf_token": {cookie.Value}, "name": {"Prufrock"}}
	r := httptest.NewRequest("POST", "/add_cafe", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ran, "handler must run with cookie and matching form token")
}

func TestCSRFAcceptsMatchingHeaderToken(t *testing.T) {
	ran := false
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	cookie := issueCSRFToken(t, handler)

	r := httptest.NewRequest("POST", "/add_cafe", nil)
	r.Header.Set("X-CSRF-Token", cookie.Value)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ran)
}
