package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sqooli/partner-api/internal/pkg/database"
)

// Repository defines campaign and promo code data access interface
type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	GetByPromoCode(ctx context.Context, code string) (*Campaign, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, status Status) ([]*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error

	CreatePromoCode(ctx context.Context, p *PromoCode) error
	GetPromoCodeByID(ctx context.Context, id uuid.UUID) (*PromoCode, error)
	GetPromoCodeByCode(ctx context.Context, code string) (*PromoCode, error)
	ListPromoCodes(ctx context.Context, campaignID uuid.UUID) ([]*PromoCode, error)
	UpdatePromoCode(ctx context.Context, p *PromoCode) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new campaign repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectCampaign = `
	SELECT id, partner_id, program_id, name, promo_code, target_signups, daily_target, bundled_offers,
		discount_rule, revenue_projection, revenue_share, whatsapp_number, start_date, end_date, status,
		created_at, updated_at
	FROM campaigns`

func (r *repository) Create(ctx context.Context, c *Campaign) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO campaigns (id, partner_id, program_id, name, promo_code, target_signups, daily_target,
			bundled_offers, discount_rule, revenue_projection, revenue_share, whatsapp_number, start_date,
			end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, c.ID, c.PartnerID, c.ProgramID, c.Name, c.PromoCode, c.TargetSignups, c.DailyTarget,
		c.BundledOffers, c.DiscountRule, c.RevenueProjection, c.RevenueShare, c.WhatsappNumber, c.StartDate,
		c.EndDate, c.Status, c.CreatedAt, c.UpdatedAt)
	return mapCampaignWrite(err)
}

func (r *repository) getCampaign(ctx context.Context, where string, arg interface{}) (*Campaign, error) {
	var c Campaign
	err := r.db.GetContext(ctx, &c, selectCampaign+` WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	return r.getCampaign(ctx, `id = $1`, id)
}

func (r *repository) GetByPromoCode(ctx context.Context, code string) (*Campaign, error) {
	return r.getCampaign(ctx, `promo_code = $1`, code)
}

func (r *repository) ListByPartner(ctx context.Context, partnerID uuid.UUID, status Status) ([]*Campaign, error) {
	var campaigns []*Campaign
	err := r.db.SelectContext(ctx, &campaigns, selectCampaign+`
		WHERE partner_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`, partnerID, string(status))
	return campaigns, err
}

func (r *repository) Update(ctx context.Context, c *Campaign) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET name = $2, promo_code = $3, target_signups = $4, daily_target = $5,
			bundled_offers = $6, discount_rule = $7, revenue_projection = $8, revenue_share = $9,
			whatsapp_number = $10, start_date = $11, end_date = $12, updated_at = now()
		WHERE id = $1
	`, c.ID, c.Name, c.PromoCode, c.TargetSignups, c.DailyTarget, c.BundledOffers, c.DiscountRule,
		c.RevenueProjection, c.RevenueShare, c.WhatsappNumber, c.StartDate, c.EndDate)
	return mapCampaignWrite(err)
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE campaigns SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *repository) CreatePromoCode(ctx context.Context, p *PromoCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO promo_codes (id, campaign_id, code, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.CampaignID, p.Code, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt)
	return mapPromoWrite(err)
}

func (r *repository) getPromo(ctx context.Context, where string, arg interface{}) (*PromoCode, error) {
	var p PromoCode
	err := r.db.GetContext(ctx, &p, `SELECT * FROM promo_codes WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetPromoCodeByID(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	return r.getPromo(ctx, `id = $1`, id)
}

func (r *repository) GetPromoCodeByCode(ctx context.Context, code string) (*PromoCode, error) {
	return r.getPromo(ctx, `code = $1`, code)
}

func (r *repository) ListPromoCodes(ctx context.Context, campaignID uuid.UUID) ([]*PromoCode, error) {
	var codes []*PromoCode
	err := r.db.SelectContext(ctx, &codes, `SELECT * FROM promo_codes WHERE campaign_id = $1 ORDER BY created_at`, campaignID)
	return codes, err
}

func (r *repository) UpdatePromoCode(ctx context.Context, p *PromoCode) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE promo_codes SET code = $2, description = $3, is_active = $4, updated_at = now() WHERE id = $1
	`, p.ID, p.Code, p.Description, p.IsActive)
	return mapPromoWrite(err)
}

func mapCampaignWrite(err error) error {
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrCampaignCodeTaken, err)
	}
	return err
}

func mapPromoWrite(err error) error {
	if _, ok := database.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrPromoCodeExists, err)
	}
	return err
}
