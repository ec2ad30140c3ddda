package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/domain/role"
	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/database"
	"github.com/sqooli/partner-api/internal/pkg/password"
)

type fakeRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*User
	failOnIDs map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*User{}, failOnIDs: map[uuid.UUID]bool{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrUserAlreadyExists
		}
		if existing.Extension == u.Extension {
			return errExtensionTaken
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) find(match func(*User) bool) *User {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	return f.find(func(u *User) bool { return u.ID == id }), nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	return f.find(func(u *User) bool { return u.Email == email }), nil
}

func (f *fakeRepo) GetByExtension(_ context.Context, ext string) (*User, error) {
	return f.find(func(u *User) bool { return u.Extension == ext }), nil
}

func (f *fakeRepo) ListByPartner(_ context.Context, partnerID uuid.UUID) ([]*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*User
	for _, u := range f.users {
		if u.PartnerID == partnerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActiveIDsByPartner(ctx context.Context, partnerID uuid.UUID) ([]uuid.UUID, error) {
	users, _ := f.ListByPartner(ctx, partnerID)
	var ids []uuid.UUID
	for _, u := range users {
		if u.IsActive {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.users[u.ID]
	stored.Name, stored.Email, stored.Role = u.Name, u.Email, u.Role
	return nil
}

func (f *fakeRepo) UpdatePermissions(_ context.Context, id uuid.UUID, ids database.UUIDs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].PermissionIDs = ids
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOnIDs[id] {
		return fmt.Errorf("row %s locked", id)
	}
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string, activated bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].PasswordHash = hash
	f.users[id].IsActivated = activated
	return nil
}

func (f *fakeRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].LastLoginAt = &at
	return nil
}

func (f *fakeRepo) CountByRole(_ context.Context, name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.users {
		if u.Role == name {
			n++
		}
	}
	return n, nil
}

type fakeRoles struct {
	byName map[string]*role.WithPermissions
}

func (f *fakeRoles) GetByName(_ context.Context, name string) (*role.WithPermissions, error) {
	return f.byName[name], nil
}

type fakePerms struct {
	byKey map[string]*permission.Permission
}

func newFakePerms() *fakePerms {
	f := &fakePerms{byKey: map[string]*permission.Permission{}}
	for _, p := range permission.Catalog() {
		p.ID = uuid.New()
		f.byKey[p.Key] = p
	}
	return f
}

func (f *fakePerms) ids(keys ...string) []uuid.UUID {
	var out []uuid.UUID
	for _, k := range keys {
		out = append(out, f.byKey[k].ID)
	}
	return out
}

func (f *fakePerms) ResolveIDs(_ context.Context, ids []uuid.UUID) ([]*permission.Permission, error) {
	var out []*permission.Permission
	for _, id := range ids {
		var found *permission.Permission
		for _, p := range f.byKey {
			if p.ID == id {
				found = p
			}
		}
		if found == nil {
			return nil, permission.ErrInvalidPermissionReference
		}
		out = append(out, found)
	}
	return out, nil
}

func (f *fakePerms) Defaults(context.Context) ([]*permission.Permission, error) {
	var out []*permission.Permission
	for _, p := range f.byKey {
		if p.IsDefault {
			out = append(out, p)
		}
	}
	return out, nil
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, string, string, uuid.UUID, interface{}, interface{}) {}

func newTestService() (*Service, *fakeRepo, *fakeRoles, *fakePerms) {
	repo := newFakeRepo()
	perms := newFakePerms()
	roles := &fakeRoles{byName: map[string]*role.WithPermissions{
		"campaign_manager": {Role: &role.Role{
			Name: "campaign_manager", IsActive: true,
			PermissionIDs: perms.ids("campaigns.write", "dashboard.read"),
		}},
		"blank":   {Role: &role.Role{Name: "blank", IsActive: true}},
		"retired": {Role: &role.Role{Name: "retired", IsActive: false}},
	}}
	return NewService(repo, roles, perms, nopAudit{}), repo, roles, perms
}

func TestCreateCopiesRoleTemplateOnce(t *testing.T) {
	svc, repo, roles, perms := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Amina", Email: "Amina@Example.com ", Role: "campaign_manager"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.User.PermissionIDs) != 2 {
		t.Fatalf("expected template permissions copied, got %v", created.User.PermissionIDs)
	}

	// Editing the role afterwards must not reach the existing user.
	roles.byName["campaign_manager"].PermissionIDs = perms.ids("all_access.full")

	stored, _ := repo.GetByID(ctx, created.User.ID)
	if len(stored.PermissionIDs) != 2 || stored.PermissionIDs[0] != perms.byKey["campaigns.write"].ID {
		t.Fatalf("user permissions changed after role edit: %v", stored.PermissionIDs)
	}
	if stored.Email != "amina@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
}

func TestCreatePermissionPrecedence(t *testing.T) {
	svc, _, _, perms := newTestService()
	ctx := context.Background()

	explicit := perms.ids("wallet.admin")
	a, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Explicit", Email: "a@x.io", Role: "campaign_manager", PermissionIDs: &explicit})
	if err != nil {
		t.Fatalf("create explicit: %v", err)
	}
	if len(a.User.PermissionIDs) != 1 || a.User.PermissionIDs[0] != explicit[0] {
		t.Fatalf("explicit set must win, got %v", a.User.PermissionIDs)
	}

	b, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Defaults", Email: "b@x.io", Role: "blank"})
	if err != nil {
		t.Fatalf("create defaults: %v", err)
	}
	if len(b.User.PermissionIDs) != 4 {
		t.Fatalf("expected 4 default permissions, got %d", len(b.User.PermissionIDs))
	}
}

func TestCreateReturnsUsableCredentials(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Kevin", Email: "kevin@x.io", Role: "blank"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, _ := repo.GetByID(ctx, created.User.ID)
	if stored.PasswordHash == created.Credentials.Password {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify(created.Credentials.Password, stored.PasswordHash) {
		t.Fatal("returned password does not verify")
	}
	if len(created.Credentials.Extension) != 10 {
		t.Fatalf("unexpected extension %q", created.Credentials.Extension)
	}

	byExt, _ := svc.GetByLogin(ctx, created.Credentials.Extension)
	if byExt == nil || byExt.ID != created.User.ID {
		t.Fatal("expected login by extension to resolve")
	}
}

func TestCreateFailures(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "X", Email: "dup@x.io", Role: "blank"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Y", Email: "DUP@x.io", Role: "blank"}); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Z", Email: "z@x.io", Role: "ghost"}); !errors.Is(err, role.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Z", Email: "z@x.io", Role: "retired"}); !errors.Is(err, ErrRoleInactive) {
		t.Fatalf("expected ErrRoleInactive, got %v", err)
	}
	bogus := []uuid.UUID{uuid.New()}
	if _, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Z", Email: "z@x.io", Role: "blank", PermissionIDs: &bogus}); !errors.Is(err, permission.ErrInvalidPermissionReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
	if n, _ := repo.CountByRole(ctx, "blank"); n != 1 {
		t.Fatalf("failed creations must not write, got %d users", n)
	}
}

func TestPartnerAdminCannotGrantAllAccess(t *testing.T) {
	svc, _, _, perms := newTestService()
	ctx := middleware.WithPrincipal(context.Background(), &middleware.Principal{Permissions: []string{"users.admin"}})

	all := perms.ids("all_access.full")
	_, err := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Esc", Email: "esc@x.io", Role: "blank", PermissionIDs: &all})
	if !errors.Is(err, ErrCannotGrantAllAccess) {
		t.Fatalf("expected ErrCannotGrantAllAccess, got %v", err)
	}
}

func TestResetPasswordUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.ResetPassword(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChangePasswordActivatesAccount(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, uuid.New(), &CreateRequest{Name: "Wanjiru", Email: "w@x.io", Role: "blank"})

	_, err := svc.ChangePassword(ctx, created.User.ID, &ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "n3w-secret!"})
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	if _, err := svc.ChangePassword(ctx, created.User.ID, &ChangePasswordRequest{
		CurrentPassword: created.Credentials.Password, NewPassword: "n3w-secret!",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	stored, _ := repo.GetByID(ctx, created.User.ID)
	if !stored.IsActivated || !password.Verify("n3w-secret!", stored.PasswordHash) {
		t.Fatalf("expected activated account with new password")
	}
}

func TestDeactivateAllForPartnerReportsPerUser(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	partnerID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		c, err := svc.Create(ctx, partnerID, &CreateRequest{Name: "Staff", Email: fmt.Sprintf("s%d@x.io", i), Role: "blank"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, c.User.ID)
	}
	repo.failOnIDs[ids[1]] = true

	res, err := svc.DeactivateAllForPartner(ctx, partnerID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if res.Succeeded != 3 || res.Failed != 1 {
		t.Fatalf("expected 3/1, got %d/%d", res.Succeeded, res.Failed)
	}
	for _, id := range ids {
		u, _ := repo.GetByID(ctx, id)
		if id == ids[1] {
			if !u.IsActive {
				t.Fatal("failed user must remain active")
			}
			continue
		}
		if u.IsActive {
			t.Fatalf("user %s should be deactivated", id)
		}
	}
}
