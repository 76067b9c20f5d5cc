package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

func replay(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return req
}

func TestCookieCodecTokenRoundTrip(t *testing.T) {
	cc := CookieCodec{}
	pair := domain.TokenPair{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	rec := httptest.NewRecorder()
	cc.WriteTokens(rec, pair)

	got := cc.ReadTokens(replay(t, rec))
	if got.AccessToken != "at-1" || got.RefreshToken != "rt-1" {
		t.Fatalf("round trip lost tokens: %+v", got)
	}

	for _, ck := range rec.Result().Cookies() {
		if !ck.HttpOnly {
			t.Fatalf("cookie %q must be http-only", ck.Name)
		}
		if ck.SameSite != http.SameSiteLaxMode {
			t.Fatalf("cookie %q must be same-site lax", ck.Name)
		}
	}
}

func TestCookieCodecReadMissing(t *testing.T) {
	cc := CookieCodec{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if pair := cc.ReadTokens(req); pair.AccessToken != "" || pair.RefreshToken != "" {
		t.Fatalf("missing cookies must read as empty: %+v", pair)
	}
	if id := cc.ReadSessionID(req); id != "" {
		t.Fatalf("missing session cookie must read as empty: %q", id)
	}
}

func TestCookieCodecSessionRoundTrip(t *testing.T) {
	cc := CookieCodec{Secure: true}

	rec := httptest.NewRecorder()
	cc.WriteSessionID(rec, "sess-1", time.Now().Add(time.Hour))

	if got := cc.ReadSessionID(replay(t, rec)); got != "sess-1" {
		t.Fatalf("round trip lost session id: %q", got)
	}
	if ck := rec.Result().Cookies()[0]; !ck.Secure {
		t.Fatalf("secure codec must emit secure cookies")
	}
}

func TestCookieCodecClear(t *testing.T) {
	cc := CookieCodec{}

	rec := httptest.NewRecorder()
	cc.ClearTokens(rec)
	cc.ClearSessionID(rec)

	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge >= 0 {
			t.Fatalf("cookie %q not expired", ck.Name)
		}
		names[ck.Name] = true
	}
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie, SessionCookie} {
		if !names[name] {
			t.Fatalf("cookie %q not cleared", name)
		}
	}
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	b, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if a == "" || a == b {
		t.Fatalf("session ids must be non-empty and unique: %q %q", a, b)
	}
}
