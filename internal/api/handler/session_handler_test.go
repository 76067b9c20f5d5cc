package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/core/service"
	"github.com/codefolio/portfolio-api/internal/infrastructure/auth"
)

type stubProvider struct {
	users    map[string]*domain.Identity
	signInID *domain.Identity
	signInTk *domain.TokenPair
	signInEr error

	userCalls    int
	signOutErr   error
	signOutCalls int
}

func (p *stubProvider) User(_ context.Context, accessToken string) (*domain.Identity, error) {
	p.userCalls++
	if id, ok := p.users[accessToken]; ok {
		return id, nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (p *stubProvider) RefreshSession(context.Context, string) (*domain.TokenPair, error) {
	return nil, domain.ErrIdentityNotFound
}

func (p *stubProvider) SignIn(_ context.Context, email, password string) (*domain.TokenPair, *domain.Identity, error) {
	if p.signInEr != nil {
		return nil, nil, p.signInEr
	}
	return p.signInTk, p.signInID, nil
}

func (p *stubProvider) SignOut(context.Context, string) error {
	p.signOutCalls++
	return p.signOutErr
}

type stubProfiles struct {
	roles map[string]domain.Role
}

func (s *stubProfiles) GetRole(_ context.Context, identityID string) (domain.Role, error) {
	role, ok := s.roles[identityID]
	if !ok {
		return "", domain.ErrProfileNotFound
	}
	return role, nil
}

func (s *stubProfiles) SetRole(_ context.Context, identityID string, role domain.Role) error {
	s.roles[identityID] = role
	return nil
}

type stubSessions struct {
	records map[string]domain.SessionRecord
	deleted []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{records: make(map[string]domain.SessionRecord)}
}

func (s *stubSessions) Put(_ context.Context, rec domain.SessionRecord) error {
	s.records[rec.ID] = rec
	return nil
}

func (s *stubSessions) Get(_ context.Context, id string) (*domain.SessionRecord, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *stubSessions) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.records, id)
	return nil
}

type sessionFixture struct {
	handler  *SessionHandler
	provider *stubProvider
	profiles *stubProfiles
	sessions *stubSessions
	hub      *service.AuthEventHub
	echo     *echo.Echo
}

func newSessionFixture() *sessionFixture {
	provider := &stubProvider{users: make(map[string]*domain.Identity)}
	profiles := &stubProfiles{roles: make(map[string]domain.Role)}
	sessions := newStubSessions()
	hub := service.NewAuthEventHub()

	e := echo.New()
	e.Validator = NewValidator()

	return &sessionFixture{
		handler:  NewSessionHandler(provider, profiles, sessions, auth.CookieCodec{}, hub, time.Hour, zerolog.Nop()),
		provider: provider,
		profiles: profiles,
		sessions: sessions,
		hub:      hub,
		echo:     e,
	}
}

func (f *sessionFixture) request(method, target, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return rec, f.echo.NewContext(req, rec)
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSessionHandler_SessionAnonymousReturnsNull(t *testing.T) {
	f := newSessionFixture()

	rec, c := f.request(http.MethodGet, "/api/auth/session", "")
	if err := f.handler.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp := decodeSession(t, rec); resp.Session != nil {
		t.Fatalf("expected null session, got %+v", resp.Session)
	}
}

func TestSessionHandler_SessionMissingProfileReturnsNull(t *testing.T) {
	f := newSessionFixture()
	f.provider.users["tok"] = &domain.Identity{ID: "user-1"}

	rec, c := f.request(http.MethodGet, "/api/auth/session", "",
		&http.Cookie{Name: auth.AccessTokenCookie, Value: "tok"})
	if err := f.handler.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp := decodeSession(t, rec); resp.Session != nil {
		t.Fatalf("identity without profile must resolve to null session")
	}
}

func TestSessionHandler_SessionRecordIsAuthoritative(t *testing.T) {
	f := newSessionFixture()
	f.sessions.records["sess-1"] = domain.SessionRecord{
		ID:         "sess-1",
		IdentityID: "user-1",
		Email:      "u@example.com",
		Role:       domain.RoleAdmin,
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	rec, c := f.request(http.MethodGet, "/api/auth/session", "",
		&http.Cookie{Name: auth.SessionCookie, Value: "sess-1"})
	if err := f.handler.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeSession(t, rec)
	if resp.Session == nil || resp.Session.Identity == nil {
		t.Fatalf("expected record-backed session, got %+v", resp.Session)
	}
	if resp.Session.Identity.ID != "user-1" || resp.Session.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", resp.Session)
	}
	if f.provider.userCalls != 0 {
		t.Fatalf("provider consulted despite session record: %d calls", f.provider.userCalls)
	}
}

func TestSessionHandler_SessionUnknownRecordFallsBackToToken(t *testing.T) {
	f := newSessionFixture()
	f.provider.users["tok"] = &domain.Identity{ID: "user-1"}
	f.profiles.roles["user-1"] = domain.RoleStudent

	rec, c := f.request(http.MethodGet, "/api/auth/session", "",
		&http.Cookie{Name: auth.SessionCookie, Value: "expired"},
		&http.Cookie{Name: auth.AccessTokenCookie, Value: "tok"})
	if err := f.handler.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}

	resp := decodeSession(t, rec)
	if resp.Session == nil || resp.Session.Identity == nil || resp.Session.Identity.ID != "user-1" {
		t.Fatalf("token fallback did not resolve: %+v", resp.Session)
	}
	if f.provider.userCalls != 1 {
		t.Fatalf("provider calls = %d, want 1", f.provider.userCalls)
	}
}

func TestSessionHandler_SessionResolved(t *testing.T) {
	f := newSessionFixture()
	f.provider.users["tok"] = &domain.Identity{ID: "user-1", Email: "u@example.com"}
	f.profiles.roles["user-1"] = domain.RoleAdmin

	rec, c := f.request(http.MethodGet, "/api/auth/session", "",
		&http.Cookie{Name: auth.AccessTokenCookie, Value: "tok"})
	if err := f.handler.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}

	resp := decodeSession(t, rec)
	if resp.Session == nil || resp.Session.Identity == nil {
		t.Fatalf("expected resolved session, got %+v", resp.Session)
	}
	if resp.Session.Identity.ID != "user-1" || resp.Session.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", resp.Session)
	}
}

func TestSessionHandler_SignIn(t *testing.T) {
	f := newSessionFixture()
	f.provider.signInID = &domain.Identity{ID: "user-1", Email: "u@example.com"}
	f.provider.signInTk = &domain.TokenPair{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	f.profiles.roles["user-1"] = domain.RoleInstructor

	events, cancel := f.hub.Subscribe()
	defer cancel()

	rec, c := f.request(http.MethodPost, "/api/auth/signin",
		`{"email":"u@example.com","password":"secret"}`)
	if err := f.handler.SignIn(c); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp signInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.ID != "user-1" || resp.Role != domain.RoleInstructor {
		t.Fatalf("unexpected response: %+v", resp)
	}

	cookies := map[string]string{}
	for _, ck := range rec.Result().Cookies() {
		cookies[ck.Name] = ck.Value
	}
	if cookies[auth.AccessTokenCookie] != "at" || cookies[auth.RefreshTokenCookie] != "rt" {
		t.Fatalf("credential cookies not written: %v", cookies)
	}
	sessionID := cookies[auth.SessionCookie]
	if sessionID == "" {
		t.Fatalf("session cookie not written")
	}

	stored, ok := f.sessions.records[sessionID]
	if !ok {
		t.Fatalf("session record not stored for %q", sessionID)
	}
	if stored.IdentityID != "user-1" || stored.Role != domain.RoleInstructor {
		t.Fatalf("unexpected record: %+v", stored)
	}

	select {
	case ev := <-events:
		if ev.Kind != domain.AuthSignedIn {
			t.Fatalf("unexpected event: %q", ev.Kind)
		}
	default:
		t.Fatalf("sign-in event not published")
	}
}

func TestSessionHandler_SignInRejectsMissingProfile(t *testing.T) {
	f := newSessionFixture()
	f.provider.signInID = &domain.Identity{ID: "user-1"}
	f.provider.signInTk = &domain.TokenPair{AccessToken: "at", RefreshToken: "rt"}

	rec, c := f.request(http.MethodPost, "/api/auth/signin",
		`{"email":"u@example.com","password":"secret"}`)
	err := f.handler.SignIn(c)
	if err != domain.ErrProfileNotFound {
		t.Fatalf("got %v, want ErrProfileNotFound", err)
	}
	if len(f.sessions.records) != 0 {
		t.Fatalf("session record stored despite missing profile")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookies written despite missing profile")
	}
}

func TestSessionHandler_SignInValidation(t *testing.T) {
	f := newSessionFixture()

	cases := []string{
		`{"password":"secret"}`,
		`{"email":"not-an-email","password":"secret"}`,
		`{"email":"u@example.com"}`,
	}
	for _, body := range cases {
		_, c := f.request(http.MethodPost, "/api/auth/signin", body)
		err := f.handler.SignIn(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: got %v, want 400", body, err)
		}
	}
}

func TestSessionHandler_SignOut(t *testing.T) {
	f := newSessionFixture()
	f.sessions.records["sess-1"] = domain.SessionRecord{ID: "sess-1", IdentityID: "user-1"}

	events, cancel := f.hub.Subscribe()
	defer cancel()

	rec, c := f.request(http.MethodPost, "/api/auth/signout", "",
		&http.Cookie{Name: auth.AccessTokenCookie, Value: "tok"},
		&http.Cookie{Name: auth.SessionCookie, Value: "sess-1"})
	if err := f.handler.SignOut(c); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if f.provider.signOutCalls != 1 {
		t.Fatalf("provider sign-out calls = %d, want 1", f.provider.signOutCalls)
	}
	if len(f.sessions.deleted) != 1 || f.sessions.deleted[0] != "sess-1" {
		t.Fatalf("session record not deleted: %v", f.sessions.deleted)
	}

	cleared := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	for _, name := range []string{auth.AccessTokenCookie, auth.RefreshTokenCookie, auth.SessionCookie} {
		if !cleared[name] {
			t.Fatalf("cookie %q not cleared", name)
		}
	}

	select {
	case ev := <-events:
		if ev.Kind != domain.AuthSignedOut {
			t.Fatalf("unexpected event: %q", ev.Kind)
		}
	default:
		t.Fatalf("sign-out event not published")
	}
}

func TestSessionHandler_SignOutProviderFailure(t *testing.T) {
	f := newSessionFixture()
	f.provider.signOutErr = context.DeadlineExceeded

	rec, c := f.request(http.MethodPost, "/api/auth/signout", "")
	if err := f.handler.SignOut(c); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp signOutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
