package campaign

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/domain/partner"
	"github.com/sqooli/partner-api/internal/domain/program"
	"github.com/sqooli/partner-api/internal/pkg/database"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

// PartnerLookup checks campaign owners.
type PartnerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error)
}

// ProgramLookup checks promoted programs.
type ProgramLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*program.Program, error)
}

// Auditor records mutations.
type Auditor interface {
	Record(ctx context.Context, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{})
}

// Service handles campaigns and their promo codes
type Service struct {
	repo     Repository
	partners PartnerLookup
	programs ProgramLookup
	audit    Auditor
	now      func() time.Time
}

// NewService creates campaign service
func NewService(repo Repository, partners PartnerLookup, programs ProgramLookup, audit Auditor) *Service {
	return &Service{repo: repo, partners: partners, programs: programs, audit: audit, now: time.Now}
}

// Create stores a campaign. Revenue share and discount rule are kept as
// given; a share that does not sum to 100 is accepted with a warning.
func (s *Service) Create(ctx context.Context, partnerID uuid.UUID, req *CreateRequest) (*Campaign, error) {
	if err := checkWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	p, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, partner.ErrPartnerNotFound
	}
	prog, err := s.programs.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		return nil, program.ErrProgramNotFound
	}

	code := strings.TrimSpace(req.PromoCode)
	existing, err := s.repo.GetByPromoCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCampaignCodeTaken
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	now := s.now().UTC()
	c := &Campaign{
		ID:                uuid.New(),
		PartnerID:         partnerID,
		ProgramID:         req.ProgramID,
		Name:              strings.TrimSpace(req.Name),
		PromoCode:         code,
		TargetSignups:     req.TargetSignups,
		DailyTarget:       req.DailyTarget,
		BundledOffers:     database.JSON[BundledOffers]{V: req.BundledOffers},
		DiscountRule:      database.JSON[DiscountRule]{V: req.DiscountRule},
		RevenueProjection: req.RevenueProjection,
		RevenueShare:      database.JSON[RevenueShare]{V: req.RevenueShare},
		WhatsappNumber:    strings.TrimSpace(req.WhatsappNumber),
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	warnShare(ctx, c)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "campaign.create", "campaign", c.ID, nil, c)
	return c, nil
}

// GetByID returns nil when the campaign does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByPromoCode matches the campaign code exactly, without case folding.
func (s *Service) GetByPromoCode(ctx context.Context, code string) (*Campaign, error) {
	return s.repo.GetByPromoCode(ctx, code)
}

// ListByPartner returns a partner's campaigns, optionally by status.
func (s *Service) ListByPartner(ctx context.Context, partnerID uuid.UUID, status Status) ([]*Campaign, error) {
	return s.repo.ListByPartner(ctx, partnerID, status)
}

// Update applies an explicit patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Campaign, error) {
	c, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *c

	if req.PromoCode != nil {
		code := strings.TrimSpace(*req.PromoCode)
		if code != c.PromoCode {
			other, err := s.repo.GetByPromoCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrCampaignCodeTaken
			}
			c.PromoCode = code
		}
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.TargetSignups != nil {
		c.TargetSignups = *req.TargetSignups
	}
	if req.DailyTarget != nil {
		c.DailyTarget = *req.DailyTarget
	}
	if req.BundledOffers != nil {
		c.BundledOffers.V = *req.BundledOffers
	}
	if req.DiscountRule != nil {
		c.DiscountRule.V = *req.DiscountRule
	}
	if req.RevenueProjection != nil {
		c.RevenueProjection = *req.RevenueProjection
	}
	if req.RevenueShare != nil {
		c.RevenueShare.V = *req.RevenueShare
		warnShare(ctx, c)
	}
	if req.WhatsappNumber != nil {
		c.WhatsappNumber = strings.TrimSpace(*req.WhatsappNumber)
	}
	if req.StartDate != nil {
		c.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = req.EndDate
	}
	if err := checkWindow(c.StartDate, c.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now().UTC()
	s.audit.Record(ctx, "campaign.update", "campaign", id, old, c)
	return c, nil
}

// SetStatus moves a campaign between draft, active and expired.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Campaign, error) {
	c, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "campaign.set_status", "campaign", id, map[string]Status{"status": c.Status}, map[string]Status{"status": status})
	c.Status = status
	return c, nil
}

// CreatePromoCode binds an upper-cased code to a campaign. Codes are
// unique across all campaigns regardless of case.
func (s *Service) CreatePromoCode(ctx context.Context, campaignID uuid.UUID, req *CreatePromoCodeRequest) (*PromoCode, error) {
	if _, err := s.mustGet(ctx, campaignID); err != nil {
		return nil, err
	}

	code := canonicalCode(req.Code)
	existing, err := s.repo.GetPromoCodeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromoCodeExists
	}

	now := s.now().UTC()
	p := &PromoCode{
		ID:          uuid.New(),
		CampaignID:  campaignID,
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreatePromoCode(ctx, p); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "promo_code.create", "promo_code", p.ID, nil, p)
	return p, nil
}

// GetPromoCode looks a code up case-insensitively. Nil when absent.
func (s *Service) GetPromoCode(ctx context.Context, code string) (*PromoCode, error) {
	return s.repo.GetPromoCodeByCode(ctx, canonicalCode(code))
}

// GetPromoCodeByID returns nil when absent.
func (s *Service) GetPromoCodeByID(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	return s.repo.GetPromoCodeByID(ctx, id)
}

func (s *Service) ListPromoCodes(ctx context.Context, campaignID uuid.UUID) ([]*PromoCode, error) {
	return s.repo.ListPromoCodes(ctx, campaignID)
}

// TogglePromoCode flips the active flag.
func (s *Service) TogglePromoCode(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	p, err := s.mustGetPromo(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsActive = !p.IsActive
	if err := s.repo.UpdatePromoCode(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC()
	s.audit.Record(ctx, "promo_code.toggle", "promo_code", id, nil, map[string]bool{"is_active": p.IsActive})
	return p, nil
}

// UpdatePromoCode applies an explicit patch; a new code is canonicalized.
func (s *Service) UpdatePromoCode(ctx context.Context, id uuid.UUID, req *UpdatePromoCodeRequest) (*PromoCode, error) {
	p, err := s.mustGetPromo(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *p

	if req.Code != nil {
		code := canonicalCode(*req.Code)
		if code != p.Code {
			other, err := s.repo.GetPromoCodeByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrPromoCodeExists
			}
			p.Code = code
		}
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdatePromoCode(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC()
	s.audit.Record(ctx, "promo_code.update", "promo_code", id, old, p)
	return p, nil
}

func (s *Service) mustGet(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func (s *Service) mustGetPromo(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	p, err := s.repo.GetPromoCodeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPromoCodeNotFound
	}
	return p, nil
}

func canonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return ErrInvalidDateWindow
	}
	return nil
}

func warnShare(ctx context.Context, c *Campaign) {
	share := c.RevenueShare.V
	if share.SumsToHundred() {
		return
	}
	logger.FromContext(ctx).Warn().
		Str("campaign_id", c.ID.String()).
		Str("promo_code", c.PromoCode).
		Float64("partner_percentage", share.PartnerPercentage).
		Float64("sqooli_percentage", share.SqooliPercentage).
		Msg("revenue share does not sum to 100")
}
