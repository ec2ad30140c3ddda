package program

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo map[uuid.UUID]*Program

func (f fakeRepo) Create(_ context.Context, p *Program) error {
	cp := *p
	f[p.ID] = &cp
	return nil
}

func (f fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Program, error) {
	if p, ok := f[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f fakeRepo) List(_ context.Context, activeOnly bool) ([]*Program, error) {
	var out []*Program
	for _, p := range f {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f fakeRepo) Update(_ context.Context, p *Program) error {
	cp := *p
	f[p.ID] = &cp
	return nil
}

func TestProgramLifecycle(t *testing.T) {
	repo := fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateRequest{Name: " Coding for Kids ", PricePerLesson: 1500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Coding for Kids" || !p.IsActive {
		t.Fatalf("unexpected program %+v", p)
	}

	inactive := false
	price := 1800.0
	if _, err := svc.Update(ctx, p.ID, &UpdateRequest{IsActive: &inactive, PricePerLesson: &price}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.GetByID(ctx, p.ID)
	if got.IsActive || got.PricePerLesson != 1800 || got.Name != "Coding for Kids" {
		t.Fatalf("patch applied wrongly: %+v", got)
	}

	active, _ := svc.List(ctx, true)
	all, _ := svc.List(ctx, false)
	if len(active) != 0 || len(all) != 1 {
		t.Fatalf("expected 0 active / 1 total, got %d / %d", len(active), len(all))
	}

	if _, err := svc.Update(ctx, uuid.New(), &UpdateRequest{}); !errors.Is(err, ErrProgramNotFound) {
		t.Fatalf("expected ErrProgramNotFound, got %v", err)
	}
}
