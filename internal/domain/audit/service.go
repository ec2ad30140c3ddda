package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/middleware"
	"github.com/sqooli/partner-api/internal/pkg/logger"
)

// Service appends and lists audit entries
type Service struct {
	repo Repository
}

// NewService creates audit service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an entry attributed to the caller in ctx. Failures are
// logged and never fail the audited operation.
func (s *Service) Record(ctx context.Context, action, entityType string, entityID uuid.UUID, oldValue, newValue interface{}) {
	entry := &Entry{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   uuid.NullUUID{UUID: entityID, Valid: entityID != uuid.Nil},
		OldValue:   marshal(oldValue),
		NewValue:   marshal(newValue),
		CreatedAt:  time.Now().UTC(),
	}
	if p := middleware.GetPrincipal(ctx); p != nil {
		entry.ActorID = uuid.NullUUID{UUID: p.UserID, Valid: p.UserID != uuid.Nil}
		entry.PartnerID = uuid.NullUUID{UUID: p.PartnerID, Valid: p.PartnerID != uuid.Nil}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

// List returns entries newest first with the total count.
func (s *Service) List(ctx context.Context, f Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, f)
}

func marshal(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
