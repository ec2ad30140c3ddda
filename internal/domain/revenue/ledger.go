package revenue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/domain/enrollment"
	"github.com/sqooli/partner-api/internal/domain/wallet"
	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Ledger applies a settlement plan atomically. It returns
// errAlreadySettled when the transaction already has a revenue log.
type Ledger interface {
	Apply(ctx context.Context, p *Plan) (*enrollment.Enrollment, error)
}

// EnrollmentRedeemer writes the redeemed enrollment of a settlement.
type EnrollmentRedeemer interface {
	RedeemTx(ctx context.Context, tx *sqlx.Tx, e *enrollment.Enrollment) (*enrollment.Enrollment, error)
}

// WalletCreditor credits the partner share.
type WalletCreditor interface {
	CreditTx(ctx context.Context, tx *sqlx.Tx, partnerID uuid.UUID, amount float64) (*wallet.Wallet, error)
}

// TransactionVerifier stamps the settled payment.
type TransactionVerifier interface {
	MarkVerifiedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time) error
}

// TxLedger runs a settlement in one Postgres transaction. The unique
// transaction_id of the revenue log makes duplicates a no-op.
type TxLedger struct {
	db           *sqlx.DB
	logs         Repository
	enrollments  EnrollmentRedeemer
	wallets      WalletCreditor
	transactions TransactionVerifier
}

// NewTxLedger creates the Postgres settlement ledger
func NewTxLedger(db *sqlx.DB, logs Repository, enrollments EnrollmentRedeemer, wallets WalletCreditor, transactions TransactionVerifier) *TxLedger {
	return &TxLedger{db: db, logs: logs, enrollments: enrollments, wallets: wallets, transactions: transactions}
}

func (l *TxLedger) Apply(ctx context.Context, p *Plan) (*enrollment.Enrollment, error) {
	var stored *enrollment.Enrollment
	err := database.WithTx(ctx, l.db, func(tx *sqlx.Tx) error {
		inserted, err := l.logs.InsertTx(ctx, tx, p.Log)
		if err != nil {
			return err
		}
		if !inserted {
			return errAlreadySettled
		}

		if stored, err = l.enrollments.RedeemTx(ctx, tx, p.Enrollment); err != nil {
			return err
		}
		if p.Log.Amount > 0 {
			if _, err := l.wallets.CreditTx(ctx, tx, p.Log.PartnerID, p.Log.Amount); err != nil {
				return err
			}
		}
		return l.transactions.MarkVerifiedTx(ctx, tx, p.Log.TransactionID, p.VerifiedAt)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}
