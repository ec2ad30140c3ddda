package enrollment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/domain/campaign"
	"github.com/sqooli/partner-api/internal/domain/program"
	"github.com/sqooli/partner-api/internal/domain/transaction"
	"github.com/sqooli/partner-api/internal/pkg/apperror"
)

type fakeRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*Enrollment
	taken map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]*Enrollment{}, taken: map[string]bool{}}
}

func (f *fakeRepo) Create(_ context.Context, e *Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken[e.RedeemCode] {
		return ErrRedeemCodeTaken
	}
	for _, row := range f.rows {
		if e.TransactionID != nil && row.TransactionID != nil && *row.TransactionID == *e.TransactionID {
			return ErrAlreadyEnrolled
		}
	}
	cp := *e
	f.rows[e.ID] = &cp
	f.taken[e.RedeemCode] = true
	return nil
}

func (f *fakeRepo) find(match func(*Enrollment) bool) *Enrollment {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if match(row) {
			cp := *row
			return &cp
		}
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Enrollment, error) {
	return f.find(func(e *Enrollment) bool { return e.ID == id }), nil
}

func (f *fakeRepo) GetByTransactionID(_ context.Context, id uuid.UUID) (*Enrollment, error) {
	return f.find(func(e *Enrollment) bool { return e.TransactionID != nil && *e.TransactionID == id }), nil
}

func (f *fakeRepo) GetByRedeemCode(_ context.Context, code string) (*Enrollment, error) {
	return f.find(func(e *Enrollment) bool { return e.RedeemCode == code }), nil
}

func (f *fakeRepo) ListByCampaign(_ context.Context, id uuid.UUID) ([]*Enrollment, error) {
	var out []*Enrollment
	for _, e := range f.rows {
		if e.CampaignID != nil && *e.CampaignID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok || e.Status != from {
		return ErrInvalidTransition
	}
	e.Status = to
	return nil
}

func (f *fakeRepo) RedeemTx(context.Context, *sqlx.Tx, *Enrollment) (*Enrollment, error) {
	return nil, errors.New("not used")
}

type lookups struct {
	programs     map[uuid.UUID]*program.Program
	campaigns    map[uuid.UUID]*campaign.Campaign
	transactions map[uuid.UUID]*transaction.Transaction
}

type programLookup lookups
type campaignLookup lookups
type transactionLookup lookups

func (l *programLookup) GetByID(_ context.Context, id uuid.UUID) (*program.Program, error) {
	return l.programs[id], nil
}

func (l *campaignLookup) GetByID(_ context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	return l.campaigns[id], nil
}

func (l *transactionLookup) GetByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return l.transactions[id], nil
}

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	refs      *lookups
	programID uuid.UUID
	campaign  *campaign.Campaign
	txn       *transaction.Transaction
}

func newFixture() *fixture {
	partnerID := uuid.New()
	prog := &program.Program{ID: uuid.New(), Name: "Kiswahili"}
	camp := &campaign.Campaign{ID: uuid.New(), PartnerID: partnerID, ProgramID: prog.ID, PromoCode: "SAVE10"}
	txn := &transaction.Transaction{ID: uuid.New(), PartnerID: partnerID, Status: transaction.StatusSuccess}

	l := &lookups{
		programs:     map[uuid.UUID]*program.Program{prog.ID: prog},
		campaigns:    map[uuid.UUID]*campaign.Campaign{camp.ID: camp},
		transactions: map[uuid.UUID]*transaction.Transaction{txn.ID: txn},
	}
	repo := newFakeRepo()
	return &fixture{
		svc:       NewService(repo, (*programLookup)(l), (*campaignLookup)(l), (*transactionLookup)(l)),
		repo:      repo,
		refs:      l,
		programID: prog.ID,
		campaign:  camp,
		txn:       txn,
	}
}

func TestCreateGeneratesRedeemCode(t *testing.T) {
	fx := newFixture()
	e, err := fx.svc.Create(context.Background(), &CreateRequest{
		ProgramID:     fx.programID,
		CampaignID:    &fx.campaign.ID,
		TransactionID: &fx.txn.ID,
		Meta:          &Meta{Phone: "0712345678", PaymentAmount: 250},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Status != StatusPending {
		t.Fatalf("expected pending default, got %s", e.Status)
	}
	if len(e.RedeemCode) != 8 {
		t.Fatalf("expected 8-char redeem code, got %q", e.RedeemCode)
	}
	if e.Meta.V.PaymentAmount != 250 {
		t.Fatalf("meta not kept: %+v", e.Meta.V)
	}
}

func TestCreateRejectsSecondEnrollmentForTransaction(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	req := &CreateRequest{ProgramID: fx.programID, TransactionID: &fx.txn.ID}

	if _, err := fx.svc.Create(ctx, req); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := fx.svc.Create(ctx, req)
	if !errors.Is(err, ErrAlreadyEnrolled) || apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	fx := newFixture()
	ghost := uuid.New()
	cases := []struct {
		name string
		req  *CreateRequest
		want error
	}{
		{"program", &CreateRequest{ProgramID: ghost}, program.ErrProgramNotFound},
		{"campaign", &CreateRequest{ProgramID: fx.programID, CampaignID: &ghost}, campaign.ErrCampaignNotFound},
		{"transaction", &CreateRequest{ProgramID: fx.programID, TransactionID: &ghost}, transaction.ErrTransactionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := fx.svc.Create(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateKeepsCallerRedeemCode(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	if _, err := fx.svc.Create(ctx, &CreateRequest{ProgramID: fx.programID, RedeemCode: "welcome1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := fx.svc.GetByRedeemCode(ctx, " Welcome1 ")
	if err != nil || got == nil {
		t.Fatalf("expected lookup by folded code, got %v %v", got, err)
	}

	_, err = fx.svc.Create(ctx, &CreateRequest{ProgramID: fx.programID, RedeemCode: "WELCOME1"})
	if !errors.Is(err, ErrRedeemCodeTaken) {
		t.Fatalf("expected redeem code conflict, got %v", err)
	}
}

func TestGetByTransactionIDAbsentIsNil(t *testing.T) {
	fx := newFixture()
	e, err := fx.svc.GetByTransactionID(context.Background(), fx.txn.ID)
	if err != nil || e != nil {
		t.Fatalf("expected nil, nil; got %v, %v", e, err)
	}
}

func TestUpdateStatusOnlyFromPending(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	e, err := fx.svc.Create(ctx, &CreateRequest{ProgramID: fx.programID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := fx.svc.UpdateStatus(ctx, e.ID, StatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending -> pending: expected policy violation, got %v", err)
	}
	redeemed, err := fx.svc.UpdateStatus(ctx, e.ID, StatusRedeemed)
	if err != nil || redeemed.Status != StatusRedeemed {
		t.Fatalf("pending -> redeemed: %v %v", redeemed, err)
	}
	_, err = fx.svc.UpdateStatus(ctx, e.ID, StatusExpired)
	if apperror.KindOf(err) != apperror.KindPolicyViolation {
		t.Fatalf("redeemed -> expired: expected policy violation, got %v", err)
	}
	if _, err := fx.svc.UpdateStatus(ctx, uuid.New(), StatusRedeemed); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// foreignTransaction registers a payment owned by another partner.
func (fx *fixture) foreignTransaction() *transaction.Transaction {
	txn := &transaction.Transaction{ID: uuid.New(), PartnerID: uuid.New(), Status: transaction.StatusSuccess}
	fx.refs.transactions[txn.ID] = txn
	return txn
}

func TestCreateRejectsPaymentOfAnotherPartner(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	foreign := fx.foreignTransaction()

	_, err := fx.svc.Create(ctx, &CreateRequest{
		ProgramID:     fx.programID,
		CampaignID:    &fx.campaign.ID,
		TransactionID: &foreign.ID,
	})
	if !errors.Is(err, ErrPartnerMismatch) {
		t.Fatalf("expected partner mismatch, got %v", err)
	}
	if apperror.KindOf(err) != apperror.KindInvalidReference {
		t.Fatalf("expected invalid reference kind, got %s", apperror.KindOf(err))
	}
	if e, _ := fx.svc.GetByTransactionID(ctx, foreign.ID); e != nil {
		t.Fatal("foreign payment must stay unclaimed")
	}

	if _, err := fx.svc.Create(ctx, &CreateRequest{
		ProgramID:     fx.programID,
		CampaignID:    &fx.campaign.ID,
		TransactionID: &fx.txn.ID,
	}); err != nil {
		t.Fatalf("same partner pairing: %v", err)
	}
}

func TestPartnerOfChecksEveryLink(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	id, ok, err := fx.svc.PartnerOf(ctx, &Enrollment{CampaignID: &fx.campaign.ID})
	if err != nil || !ok || id != fx.campaign.PartnerID {
		t.Fatalf("campaign link: %s %v %v", id, ok, err)
	}
	id, ok, err = fx.svc.PartnerOf(ctx, &Enrollment{TransactionID: &fx.txn.ID})
	if err != nil || !ok || id != fx.txn.PartnerID {
		t.Fatalf("payment link: %s %v %v", id, ok, err)
	}
	id, ok, err = fx.svc.PartnerOf(ctx, &Enrollment{CampaignID: &fx.campaign.ID, TransactionID: &fx.txn.ID})
	if err != nil || !ok || id != fx.campaign.PartnerID {
		t.Fatalf("both links: %s %v %v", id, ok, err)
	}
	if _, ok, _ := fx.svc.PartnerOf(ctx, &Enrollment{}); ok {
		t.Fatal("unlinked enrollment must have no owner")
	}

	foreign := fx.foreignTransaction()
	if _, ok, _ := fx.svc.PartnerOf(ctx, &Enrollment{CampaignID: &fx.campaign.ID, TransactionID: &foreign.ID}); ok {
		t.Fatal("links to different partners must have no owner")
	}
}
