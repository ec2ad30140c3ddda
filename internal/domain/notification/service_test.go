package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*Notification
	failOnID uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]*Notification{}}
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *n
	f.rows[n.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.rows[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListByPartner(_ context.Context, partnerID uuid.UUID, limit, offset int) ([]*Notification, error) {
	var out []*Notification
	for _, n := range f.rows {
		if n.PartnerID == partnerID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) CountUnread(_ context.Context, partnerID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.rows {
		if n.PartnerID == partnerID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) UnreadIDs(_ context.Context, partnerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, n := range f.rows {
		if n.PartnerID == partnerID && !n.IsRead {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.failOnID {
		return errors.New("connection reset")
	}
	n, ok := f.rows[id]
	if !ok {
		return ErrNotificationNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		n.ReadAt = &at
	}
	return nil
}

func (f *fakeRepo) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, n := range f.rows {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func seed(t *testing.T, svc *Service, partnerID uuid.UUID, n int) []*Notification {
	t.Helper()
	var out []*Notification
	for i := 0; i < n; i++ {
		created, err := svc.Create(context.Background(), &CreateRequest{
			PartnerID: partnerID,
			Type:      TypeSystem,
			Title:     " Maintenance ",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		out = append(out, created)
	}
	return out
}

func TestCreateAndUnreadCount(t *testing.T) {
	svc := NewService(newFakeRepo())
	partnerID := uuid.New()
	created := seed(t, svc, partnerID, 3)
	seed(t, svc, uuid.New(), 1)

	if created[0].Title != "Maintenance" || created[0].IsRead {
		t.Fatalf("unexpected notification: %+v", created[0])
	}
	count, err := svc.UnreadCount(context.Background(), partnerID)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 unread, got %d %v", count, err)
	}
}

func TestMarkReadUnknownIsNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	if err := svc.MarkRead(context.Background(), uuid.New()); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkAllReadReportsPerItem(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	partnerID := uuid.New()
	created := seed(t, svc, partnerID, 4)
	repo.failOnID = created[2].ID

	res, err := svc.MarkAllRead(context.Background(), partnerID)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if res.Succeeded != 3 || res.Failed != 1 || len(res.Items) != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
	for _, it := range res.Items {
		if it.ID == created[2].ID && (it.Success || it.Error == "") {
			t.Fatalf("failed item not reported: %+v", it)
		}
	}

	count, _ := svc.UnreadCount(context.Background(), partnerID)
	if count != 1 {
		t.Fatalf("expected the failed item to stay unread, got %d unread", count)
	}
}

func TestNotifySettlementAppendsLinkedNotification(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	partnerID, txID := uuid.New(), uuid.New()

	svc.NotifySettlement(context.Background(), partnerID, txID, nil, 50, true)

	list, _ := svc.ListByPartner(context.Background(), partnerID, 10, 0)
	if len(list) != 1 || list[0].Type != TypeRevenueSettled {
		t.Fatalf("expected one settlement notification, got %+v", list)
	}
	if got := list[0].Data.V.TransactionID; got == nil || *got != txID {
		t.Fatalf("transaction not linked: %+v", list[0].Data.V)
	}
}

func TestCleanupKeepsUnread(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	partnerID := uuid.New()
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return old }
	created := seed(t, svc, partnerID, 2)
	if err := svc.MarkRead(context.Background(), created[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	job := NewCleanupJob(repo, 30)
	job.now = func() time.Time { return old.AddDate(0, 2, 0) }
	deleted, err := job.RunOnce(context.Background())
	if err != nil || deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d %v", deleted, err)
	}
	if n, _ := repo.GetByID(context.Background(), created[1].ID); n == nil {
		t.Fatal("unread notification must survive cleanup")
	}
}
