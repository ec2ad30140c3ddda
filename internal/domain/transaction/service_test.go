package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/domain/partner"
)

type fakeRepo map[uuid.UUID]*Transaction

func (f fakeRepo) Create(_ context.Context, t *Transaction) error {
	cp := *t
	f[t.ID] = &cp
	return nil
}

func (f fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Transaction, error) {
	if t, ok := f[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f fakeRepo) GetByMpesaCode(_ context.Context, code string) (*Transaction, error) {
	for _, t := range f {
		if t.MpesaCode == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f fakeRepo) ListByPartner(_ context.Context, partnerID uuid.UUID, flt Filter) ([]*Transaction, error) {
	var out []*Transaction
	for _, t := range f {
		if t.PartnerID != partnerID || (flt.Status != "" && t.Status != flt.Status) {
			continue
		}
		if flt.From != nil && t.CreatedAt.Before(*flt.From) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	t, ok := f[id]
	if !ok {
		return ErrTransactionNotFound
	}
	t.Status = status
	return nil
}

func (f fakeRepo) MarkVerified(_ context.Context, id uuid.UUID, at time.Time) error {
	if t := f[id]; t.VerifiedAt == nil {
		t.VerifiedAt = &at
	}
	return nil
}

func (f fakeRepo) MarkVerifiedTx(ctx context.Context, _ *sqlx.Tx, id uuid.UUID, at time.Time) error {
	return f.MarkVerified(ctx, id, at)
}

type fakePartners map[uuid.UUID]*partner.Partner

func (f fakePartners) GetByID(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	return f[id], nil
}

func TestRecordTransaction(t *testing.T) {
	partnerID := uuid.New()
	svc := NewService(fakeRepo{}, fakePartners{partnerID: {ID: partnerID}})
	ctx := context.Background()

	tx, err := svc.Record(ctx, &RecordRequest{
		PartnerID: partnerID, StudentName: "Achieng", MpesaCode: " qk12abc34 ", Amount: 250, CampaignCode: "Promo25", Status: "Success",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tx.MpesaCode != "QK12ABC34" || !tx.IsSuccess() {
		t.Fatalf("unexpected transaction %+v", tx)
	}

	_, err = svc.Record(ctx, &RecordRequest{PartnerID: partnerID, StudentName: "Dup", MpesaCode: "QK12ABC34", Amount: 10, Status: "Success"})
	if !errors.Is(err, ErrDuplicateMpesaCode) {
		t.Fatalf("expected ErrDuplicateMpesaCode, got %v", err)
	}
	_, err = svc.Record(ctx, &RecordRequest{PartnerID: uuid.New(), StudentName: "X", MpesaCode: "ZZ99", Amount: 10, Status: "Success"})
	if !errors.Is(err, partner.ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}

	got, _ := svc.GetByMpesaCode(ctx, "qk12abc34")
	if got == nil || got.ID != tx.ID {
		t.Fatal("expected lookup by mpesa code")
	}
}

func TestMarkVerifiedKeepsFirstStamp(t *testing.T) {
	partnerID := uuid.New()
	svc := NewService(fakeRepo{}, fakePartners{partnerID: {ID: partnerID}})
	ctx := context.Background()
	first := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	tx, _ := svc.Record(ctx, &RecordRequest{PartnerID: partnerID, StudentName: "Otieno", MpesaCode: "AB12CD", Amount: 100, Status: "Pending"})

	if _, err := svc.MarkVerified(ctx, tx.ID); err != nil {
		t.Fatalf("verify: %v", err)
	}
	svc.now = func() time.Time { return first.Add(time.Hour) }
	got, _ := svc.MarkVerified(ctx, tx.ID)
	if got.VerifiedAt == nil || !got.VerifiedAt.Equal(first) {
		t.Fatalf("expected first verification stamp, got %v", got.VerifiedAt)
	}

	if _, err := svc.MarkVerified(ctx, uuid.New()); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestListByPartnerFiltersStatus(t *testing.T) {
	partnerID := uuid.New()
	svc := NewService(fakeRepo{}, fakePartners{partnerID: {ID: partnerID}})
	ctx := context.Background()

	svc.Record(ctx, &RecordRequest{PartnerID: partnerID, StudentName: "A", MpesaCode: "AAA111", Amount: 100, Status: "Success"})
	pending, _ := svc.Record(ctx, &RecordRequest{PartnerID: partnerID, StudentName: "B", MpesaCode: "BBB222", Amount: 100, Status: "Pending"})

	success, _ := svc.ListByPartner(ctx, partnerID, Filter{Status: StatusSuccess})
	if len(success) != 1 {
		t.Fatalf("expected 1 successful transaction, got %d", len(success))
	}

	if _, err := svc.UpdateStatus(ctx, pending.ID, "Success"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	success, _ = svc.ListByPartner(ctx, partnerID, Filter{Status: StatusSuccess})
	if len(success) != 2 {
		t.Fatalf("expected 2 successful transactions, got %d", len(success))
	}
}
