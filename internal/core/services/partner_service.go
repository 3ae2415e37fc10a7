package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
}

// NewPartnerService creates a new partner service.
func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

func (s *partnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("partner name is required")
	}
	partnerType := domain.PartnerType(req.Type)
	if !partnerType.IsValid() {
		return nil, apperrors.NewValidationError("invalid partner type %q", req.Type)
	}
	if req.DebtLimit.IsNegative() {
		return nil, apperrors.NewValidationError("debt limit must not be negative")
	}
	if !domain.FitsMoneyScale(req.DebtLimit) {
		return nil, apperrors.NewValidationError("debt limit allows at most %d decimal places", domain.MoneyScale)
	}

	pref := domain.NotificationPreference(req.NotificationPreference)
	if pref == "" {
		pref = domain.NotifyNone
	}

	now := time.Now()
	partner := domain.Partner{
		PartnerID:              uuid.NewString(),
		Name:                   name,
		Type:                   partnerType,
		Phone:                  req.Phone,
		Address:                req.Address,
		IsActive:               true,
		DebtLimit:              req.DebtLimit,
		CurrentDebt:            decimal.Zero,
		TelegramChatID:         req.TelegramChatID,
		NotificationPreference: pref,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		s.LogError(ctx, err, "Failed to save partner", slog.String("name", name))
		return nil, fmt.Errorf("failed to save partner: %w", err)
	}

	s.LogInfo(ctx, "Partner created",
		slog.String("partner_id", partner.PartnerID),
		slog.String("type", string(partner.Type)))
	return &partner, nil
}

func (s *partnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context, partnerType *domain.PartnerType) ([]domain.Partner, error) {
	var (
		partners []domain.Partner
		err      error
	)
	if partnerType != nil {
		partners, err = s.partnerRepo.ListPartnersByType(ctx, *partnerType)
	} else {
		partners, err = s.partnerRepo.ListPartners(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list partners")
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	if partners == nil {
		partners = []domain.Partner{}
	}
	return partners, nil
}

func (s *partnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("partner name cannot be empty")
		}
		if name != partner.Name {
			partner.Name = name
			updated = true
		}
	}
	if req.Type != nil && domain.PartnerType(*req.Type) != partner.Type {
		pt := domain.PartnerType(*req.Type)
		if !pt.IsValid() {
			return nil, apperrors.NewValidationError("invalid partner type %q", *req.Type)
		}
		partner.Type = pt
		updated = true
	}
	if req.Phone != nil && *req.Phone != partner.Phone {
		partner.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil && *req.Address != partner.Address {
		partner.Address = *req.Address
		updated = true
	}
	if req.IsActive != nil && *req.IsActive != partner.IsActive {
		partner.IsActive = *req.IsActive
		updated = true
	}
	if req.TelegramChatID != nil {
		chatID := strings.TrimSpace(*req.TelegramChatID)
		partner.TelegramChatID = &chatID
		if chatID == "" {
			partner.TelegramChatID = nil
		}
		updated = true
	}
	if req.NotificationPreference != nil && domain.NotificationPreference(*req.NotificationPreference) != partner.NotificationPreference {
		partner.NotificationPreference = domain.NotificationPreference(*req.NotificationPreference)
		updated = true
	}

	if !updated {
		return partner, nil
	}

	partner.LastUpdatedAt = time.Now()
	partner.LastUpdatedBy = userID
	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		s.LogError(ctx, err, "Failed to update partner", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}
	return partner, nil
}

func (s *partnerService) UpdateDebtLimit(ctx context.Context, partnerID string, debtLimit decimal.Decimal, userID string) (*domain.Partner, error) {
	if debtLimit.IsNegative() {
		return nil, apperrors.NewValidationError("debt limit must not be negative")
	}
	if !domain.FitsMoneyScale(debtLimit) {
		return nil, apperrors.NewValidationError("debt limit allows at most %d decimal places", domain.MoneyScale)
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}

	now := time.Now()
	if err := s.partnerRepo.UpdateDebtLimit(ctx, partnerID, debtLimit, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update debt limit", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to update debt limit: %w", err)
	}

	s.LogInfo(ctx, "Debt limit updated",
		slog.String("partner_id", partnerID),
		slog.String("old_limit", partner.DebtLimit.String()),
		slog.String("new_limit", debtLimit.String()))
	partner.DebtLimit = debtLimit
	partner.LastUpdatedAt = now
	partner.LastUpdatedBy = userID
	return partner, nil
}
