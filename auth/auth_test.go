package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)
	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session" {
		t.Fatalf("expected one session cookie, got %#v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestTamperedSessionRejected(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)
	cookie := w.Result().Cookies()[0]
	// Swap the user id but keep the old signature.
	parts := strings.SplitN(cookie.Value, ".", 2)
	cookie.Value = "43." + parts[1]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if _, ok := ParseSession(req); ok {
		t.Fatal("tampered session must be rejected")
	}
}

func TestScopeKey(t *testing.T) {
	if got := ScopeKey(7); got != "7" {
		t.Fatalf("expected \"7\", got %q", got)
	}
}

func TestMiddlewareAttachesUser(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 9)
	cookie := w.Result().Cookies()[0]

	var seen uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
	if seen != 9 {
		t.Fatalf("expected uid 9 in context, got %d", seen)
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})
	w := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
