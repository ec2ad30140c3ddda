package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/session"
	"github.com/sqooli/partner-api/internal/domain/user"
	"github.com/sqooli/partner-api/internal/pkg/password"
)

type fakeUsers struct {
	byID          map[uuid.UUID]*user.User
	recordedLogin []uuid.UUID
}

func (f *fakeUsers) GetByLogin(_ context.Context, identifier string) (*user.User, error) {
	identifier = strings.ToLower(identifier)
	for _, u := range f.byID {
		if u.Email == identifier || u.Extension == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) RecordLogin(_ context.Context, id uuid.UUID) error {
	f.recordedLogin = append(f.recordedLogin, id)
	return nil
}

func (f *fakeUsers) ChangePassword(_ context.Context, id uuid.UUID, req *user.ChangePasswordRequest) (*user.User, error) {
	u := f.byID[id]
	if !password.Verify(req.CurrentPassword, u.PasswordHash) {
		return nil, user.ErrInvalidPassword
	}
	u.IsActivated = true
	return u, nil
}

type fakeSessions struct {
	users  *fakeUsers
	tokens map[string]uuid.UUID
}

func (f *fakeSessions) Create(_ context.Context, userID uuid.UUID) (*session.Issued, error) {
	token := "tok-" + userID.String()
	f.tokens[token] = userID
	return &session.Issued{Token: token, ExpiresAt: time.Now().Add(session.DefaultTTL)}, nil
}

func (f *fakeSessions) Validate(_ context.Context, token string) (*session.Validated, error) {
	id, ok := f.tokens[token]
	if !ok {
		return nil, nil
	}
	return &session.Validated{User: f.users.byID[id], Session: &session.Session{UserID: id}}, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) (*session.DeleteResult, error) {
	if _, ok := f.tokens[token]; !ok {
		return &session.DeleteResult{Error: "session not found"}, nil
	}
	delete(f.tokens, token)
	return &session.DeleteResult{Success: true}, nil
}

func (f *fakeSessions) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	for tok, id := range f.tokens {
		if id == userID {
			delete(f.tokens, tok)
		}
	}
	return nil
}

type fakePerms map[uuid.UUID]string

func (f fakePerms) KeysFor(_ context.Context, ids []uuid.UUID) ([]string, error) {
	var keys []string
	for _, id := range ids {
		if k, ok := f[id]; ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

type fakePartners map[uuid.UUID]*partner.Partner

func (f fakePartners) GetByID(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	return f[id], nil
}

func (f fakePartners) CompleteFirstLogin(_ context.Context, id uuid.UUID) error {
	f[id].IsFirstLogin = false
	return nil
}

type fixture struct {
	svc      *Service
	users    *fakeUsers
	sessions *fakeSessions
	partners fakePartners
	user     *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := password.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	walletRead := uuid.New()
	p := &partner.Partner{ID: uuid.New(), Name: "Bright", Status: partner.StatusActive, IsFirstLogin: true}
	u := &user.User{
		ID: uuid.New(), PartnerID: p.ID, Email: "admin@bright.io", Extension: "abcdef1234",
		PasswordHash: hash, Role: "partner_admin", PermissionIDs: []uuid.UUID{walletRead}, IsActive: true,
	}
	users := &fakeUsers{byID: map[uuid.UUID]*user.User{u.ID: u}}
	sessions := &fakeSessions{users: users, tokens: map[string]uuid.UUID{}}
	partners := fakePartners{p.ID: p}
	svc := NewService(users, sessions, fakePerms{walletRead: "wallet.read"}, partners)
	return &fixture{svc: svc, users: users, sessions: sessions, partners: partners, user: u}
}

func TestLoginByEmailOrExtension(t *testing.T) {
	f := newFixture(t)
	for _, identifier := range []string{"admin@bright.io", "ABCDEF1234"} {
		res, err := f.svc.Login(context.Background(), &LoginRequest{Identifier: identifier, Password: "s3cret-pass"})
		if err != nil {
			t.Fatalf("login %q: %v", identifier, err)
		}
		if res.Token == "" || len(res.Permissions) != 1 || res.Permissions[0] != "wallet.read" || !res.MustChangePassword {
			t.Fatalf("unexpected response %+v", res)
		}
	}
	if len(f.users.recordedLogin) != 2 {
		t.Fatalf("expected logins recorded, got %d", len(f.users.recordedLogin))
	}
}

func TestLoginRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Login(ctx, &LoginRequest{Identifier: "admin@bright.io", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(ctx, &LoginRequest{Identifier: "nobody@x.io", Password: "s3cret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	f.partners[f.user.PartnerID].Status = partner.StatusInactive
	if _, err := f.svc.Login(ctx, &LoginRequest{Identifier: "admin@bright.io", Password: "s3cret-pass"}); !errors.Is(err, ErrPartnerInactive) {
		t.Fatalf("expected ErrPartnerInactive, got %v", err)
	}

	f.user.IsActive = false
	if _, err := f.svc.Login(ctx, &LoginRequest{Identifier: "admin@bright.io", Password: "s3cret-pass"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
	if len(f.sessions.tokens) != 0 {
		t.Fatal("rejected logins must not open sessions")
	}
}

func TestAuthenticateDropsDeactivatedUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, _ := f.svc.Login(ctx, &LoginRequest{Identifier: "admin@bright.io", Password: "s3cret-pass"})

	p, err := f.svc.Authenticate(ctx, res.Token)
	if err != nil || p == nil || p.UserID != f.user.ID || p.PartnerID != f.user.PartnerID {
		t.Fatalf("unexpected principal %+v %v", p, err)
	}

	f.user.IsActive = false
	if p, _ := f.svc.Authenticate(ctx, res.Token); p != nil {
		t.Fatal("deactivated user must not authenticate")
	}
}

func TestLogoutAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, _ := f.svc.Login(ctx, &LoginRequest{Identifier: "admin@bright.io", Password: "s3cret-pass"})
	f.sessions.tokens["second"] = f.user.ID

	out, err := f.svc.Logout(ctx, res.Token, true)
	if err != nil || !out.Success || len(f.sessions.tokens) != 0 {
		t.Fatalf("expected all sessions removed, got %+v %v (%d left)", out, err, len(f.sessions.tokens))
	}

	out, err = f.svc.Logout(ctx, res.Token, false)
	if err != nil || out.Success {
		t.Fatalf("expected soft failure, got %+v %v", out, err)
	}
}

func TestChangePasswordCompletesFirstLogin(t *testing.T) {
	f := newFixture(t)
	err := f.svc.ChangePassword(context.Background(), f.user.ID, &user.ChangePasswordRequest{CurrentPassword: "s3cret-pass", NewPassword: "an0ther-pass"})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if f.partners[f.user.PartnerID].IsFirstLogin || !f.user.IsActivated {
		t.Fatal("expected first login completed")
	}
}

func TestLoginHandlerStatusCodes(t *testing.T) {
	f := newFixture(t)
	router := NewHandler(f.svc).Routes(func(next http.Handler) http.Handler { return next })

	cases := []struct {
		body string
		want int
	}{
		{`{"identifier":"admin@bright.io","password":"s3cret-pass"}`, http.StatusOK},
		{`{"identifier":"admin@bright.io","password":"nope"}`, http.StatusUnauthorized},
		{`{"identifier":""}`, http.StatusUnprocessableEntity},
		{`not json`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("body %s: expected %d, got %d (%s)", tc.body, tc.want, w.Code, w.Body.String())
		}
		if tc.want == http.StatusOK {
			var out struct {
				Data struct {
					Token string `json:"token"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Data.Token == "" {
				t.Fatalf("expected token in body: %s", w.Body.String())
			}
		}
	}
}
