package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequestIDRoundTrip(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if seen != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected caller id to be kept, got %q / %q", seen, w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc-123" || w.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var ok bool
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !ok {
		t.Fatal("expected request deadline")
	}
}

func TestRecoverReturns500(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLoggerLearnsCallerFromSessionAuth(t *testing.T) {
	auth := &fakeAuthenticator{principals: map[string]*Principal{"tok": {Permissions: []string{"wallet.read"}}}}

	var who *caller
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who, _ = r.Context().Value(callerKey).(*caller)
		SessionAuth(auth)(http.HandlerFunc(okHandler)).ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(context.Background()))

	if who == nil || who.principal == nil {
		t.Fatal("expected principal recorded for the access log")
	}
}
