package role

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/permission"
	"github.com/sqooli/partner-api/internal/pkg/apperror"
)

type fakeRepo struct {
	mu    sync.Mutex
	roles map[uuid.UUID]*Role
}

func newFakeRepo() *fakeRepo { return &fakeRepo{roles: map[uuid.UUID]*Role{}} }

func (f *fakeRepo) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.roles), nil
}

func (f *fakeRepo) Create(_ context.Context, r *Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.roles {
		if existing.Name == r.Name {
			return ErrRoleNameTaken
		}
	}
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.roles[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetByName(_ context.Context, name string) (*Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(context.Context, ListFilter) ([]*Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Role
	for _, r := range f.roles {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, r *Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.roles, id)
	return nil
}

type fakePerms struct {
	byID map[uuid.UUID]*permission.Permission
}

func newFakePerms() *fakePerms {
	f := &fakePerms{byID: map[uuid.UUID]*permission.Permission{}}
	for _, p := range permission.Catalog() {
		p.ID = uuid.New()
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePerms) id(key string) uuid.UUID {
	for id, p := range f.byID {
		if p.Key == key {
			return id
		}
	}
	return uuid.Nil
}

func (f *fakePerms) ResolveIDs(_ context.Context, ids []uuid.UUID) ([]*permission.Permission, error) {
	var out []*permission.Permission
	for _, id := range ids {
		p, ok := f.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", permission.ErrInvalidPermissionReference, id)
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePerms) GetMany(_ context.Context, ids []uuid.UUID) ([]*permission.Permission, error) {
	var out []*permission.Permission
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePerms) GetByKey(_ context.Context, key string) (*permission.Permission, error) {
	return f.byID[f.id(key)], nil
}

type fakeUsers struct {
	byRole map[string]int
}

func (f *fakeUsers) CountByRole(_ context.Context, name string) (int, error) {
	return f.byRole[name], nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, action, _ string, _ uuid.UUID, _, _ interface{}) {
	f.actions = append(f.actions, action)
}

func newTestService() (*Service, *fakeRepo, *fakePerms, *fakeUsers) {
	repo := newFakeRepo()
	perms := newFakePerms()
	users := &fakeUsers{byRole: map[string]int{}}
	return NewService(repo, perms, users, &fakeAudit{}), repo, perms, users
}

func TestSystemRolePermissionsAreImmutable(t *testing.T) {
	svc, repo, perms, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	admin, _ := repo.GetByName(ctx, PartnerAdmin)
	before := append([]uuid.UUID(nil), admin.PermissionIDs...)

	_, err := svc.AssignPermissions(ctx, admin.ID, []uuid.UUID{perms.id("wallet.read")})
	if !errors.Is(err, ErrSystemRoleProtected) {
		t.Fatalf("expected ErrSystemRoleProtected, got %v", err)
	}

	after, _ := repo.GetByID(ctx, admin.ID)
	if len(after.PermissionIDs) != len(before) {
		t.Fatalf("stored permissions changed: %v -> %v", before, after.PermissionIDs)
	}
	for i := range before {
		if after.PermissionIDs[i] != before[i] {
			t.Fatalf("stored permissions changed: %v -> %v", before, after.PermissionIDs)
		}
	}

	name := "Partner Administrator"
	updated, err := svc.Update(ctx, admin.ID, &UpdateRequest{DisplayName: &name})
	if err != nil || updated.DisplayName != name {
		t.Fatalf("display name on system role should be editable: %v", err)
	}
}

func TestDeleteRoleInUseReportsCount(t *testing.T) {
	svc, _, perms, users := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateRequest{
		Name:          "campaign_manager",
		DisplayName:   "Campaign Manager",
		PermissionIDs: []uuid.UUID{perms.id("campaigns.write")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	users.byRole["campaign_manager"] = 3

	err = svc.Delete(ctx, created.ID)
	if !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	var inUse *apperror.InUseError
	if !errors.As(err, &inUse) || inUse.Count != 3 {
		t.Fatalf("expected count 3, got %+v", inUse)
	}

	users.byRole["campaign_manager"] = 0
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete unused role: %v", err)
	}
	if r, _ := svc.GetByID(ctx, created.ID); r != nil {
		t.Fatal("expected role to be gone")
	}
}

func TestDeleteSystemRoleRejected(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sa, _ := repo.GetByName(ctx, SuperAdmin)
	if err := svc.Delete(ctx, sa.ID); !errors.Is(err, ErrSystemRoleDelete) {
		t.Fatalf("expected ErrSystemRoleDelete, got %v", err)
	}
}

func TestCreateValidatesBeforeWriting(t *testing.T) {
	svc, repo, perms, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateRequest{Name: "ops", DisplayName: "Ops", PermissionIDs: []uuid.UUID{uuid.New()}})
	if !errors.Is(err, permission.ErrInvalidPermissionReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("expected no role written, got %d", n)
	}

	req := &CreateRequest{Name: "ops", DisplayName: "Ops", PermissionIDs: []uuid.UUID{perms.id("users.read")}}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrRoleNameTaken) {
		t.Fatalf("expected ErrRoleNameTaken, got %v", err)
	}
}

func TestCustomRoleFullyMutable(t *testing.T) {
	svc, _, perms, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateRequest{Name: "viewer", DisplayName: "Viewer"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.AssignPermissions(ctx, created.ID, []uuid.UUID{perms.id("wallet.read"), perms.id("dashboard.read")})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(updated.Permissions) != 2 {
		t.Fatalf("expected 2 expanded permissions, got %d", len(updated.Permissions))
	}

	_, err = svc.AssignPermissions(ctx, created.ID, []uuid.UUID{uuid.New()})
	if !errors.Is(err, permission.ErrInvalidPermissionReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	if err != nil || !first.Seeded || first.Created != 3 {
		t.Fatalf("unexpected first seed: %+v %v", first, err)
	}
	second, err := svc.Seed(ctx)
	if err != nil || second.Seeded || second.Total != 3 {
		t.Fatalf("unexpected second seed: %+v %v", second, err)
	}
	if n, _ := repo.Count(ctx); n != 3 {
		t.Fatalf("expected 3 roles, got %d", n)
	}
}

func TestRoutesRegistered(t *testing.T) {
	h := NewHandler(nil)
	r := h.Routes(func(next http.Handler) http.Handler { return next })

	want := map[string]bool{
		"GET /":                 false,
		"GET /by-name/{name}":   false,
		"GET /{id}":             false,
		"POST /":                false,
		"PATCH /{id}":           false,
		"PUT /{id}/permissions": false,
		"DELETE /{id}":          false,
		"POST /seed":            false,
	}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + strings.TrimSuffix(route, "/")
		if route == "/" {
			key = method + " /"
		}
		if _, ok := want[key]; ok {
			want[key] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	for route, found := range want {
		if !found {
			t.Fatalf("route %s not registered", route)
		}
	}
}
