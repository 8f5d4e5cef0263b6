package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creat233/idfinder-sub001/internal/config"
	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/repositories/interfaces"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayoutService is the admin-side ledger. Confirming a payment flips the
// item to recovered and produces the three-line settlement the operator
// executes by phone. There is no reversal path.
type PayoutService interface {
	ConfirmPayment(ctx context.Context, itemID primitive.ObjectID, adminID primitive.ObjectID) (*models.PayoutConfirmation, error)
	PendingRequests(ctx context.Context, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error)
}

type payoutService struct {
	itemRepo  interfaces.ReportedItemRepository
	usageRepo interfaces.PromoUsageRepository
	promoRepo interfaces.PromoCodeRepository
	auditRepo interfaces.AuditLogRepository
	notifier  NotificationService
	pricing   *config.PricingConfig
	logger    *logger.Logger
}

func NewPayoutService(
	itemRepo interfaces.ReportedItemRepository,
	usageRepo interfaces.PromoUsageRepository,
	promoRepo interfaces.PromoCodeRepository,
	auditRepo interfaces.AuditLogRepository,
	notifier NotificationService,
	pricing *config.PricingConfig,
	log *logger.Logger,
) PayoutService {
	return &payoutService{
		itemRepo:  itemRepo,
		usageRepo: usageRepo,
		promoRepo: promoRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
		pricing:   pricing,
		logger:    log,
	}
}

func (s *payoutService) ConfirmPayment(ctx context.Context, itemID primitive.ObjectID, adminID primitive.ObjectID) (*models.PayoutConfirmation, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	usage, promoOwnerID, err := s.promoContext(ctx, item)
	if err != nil {
		return nil, err
	}

	// The status gate lives in the write itself: confirming an item that
	// is not awaiting payment fails, including under concurrent admins.
	if err := s.itemRepo.MarkRecovered(ctx, itemID); err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to mark item recovered: %w", err)
	}

	item.Status = models.ItemStatusRecovered
	summary := BuildPayoutSummary(item, usage, promoOwnerID, s.pricing)

	s.logger.LogPayoutEvent(itemID, "payment_confirmed", item.FinalPrice, item.Currency)
	s.recordAudit(ctx, item, adminID)

	go func(alert *models.RecoveryAlert) {
		if _, err := s.notifier.SendPaymentConfirmedAlert(context.WithoutCancel(ctx), alert); err != nil {
			s.logger.WithError(err).WithItemID(itemID).Warn("Payment confirmation alert failed")
		}
	}(&models.RecoveryAlert{Item: item, Usage: usage, Payout: summary})

	return &models.PayoutConfirmation{
		Success: true,
		Message: "payment confirmed, item marked recovered",
		Summary: summary,
	}, nil
}

func (s *payoutService) PendingRequests(ctx context.Context, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	return s.itemRepo.GetByStatus(ctx, models.ItemStatusRecoveryRequested, params)
}

// BuildPayoutSummary computes the three-party settlement for one item: the
// owner pays the final price, the reporter earns the fixed reporter reward,
// and the promo-code owner earns the referral reward when a usage exists.
func BuildPayoutSummary(item *models.ReportedItem, usage *models.PromoUsage, promoOwnerID *primitive.ObjectID, pricing *config.PricingConfig) *models.PayoutSummary {
	summary := &models.PayoutSummary{
		ItemID:      item.ID,
		GeneratedAt: time.Now(),
	}

	ownerLine := models.PayoutLine{
		Party:    models.PayoutPartyOwner,
		Amount:   item.FinalPrice,
		Currency: item.Currency,
		IsCharge: true,
	}
	if item.Recovery != nil {
		ownerLine.Phone = item.Recovery.OwnerPhone
	}
	summary.Lines = append(summary.Lines, ownerLine)

	reporterID := item.ReporterID
	summary.Lines = append(summary.Lines, models.PayoutLine{
		Party:    models.PayoutPartyReporter,
		UserID:   &reporterID,
		Phone:    item.ReporterPhone,
		Amount:   pricing.ReporterReward,
		Currency: item.Currency,
	})

	if usage != nil {
		summary.Lines = append(summary.Lines, models.PayoutLine{
			Party:    models.PayoutPartyPromoOwner,
			UserID:   promoOwnerID,
			Amount:   pricing.PromoOwnerReward,
			Currency: item.Currency,
		})
	}

	return summary
}

func (s *payoutService) promoContext(ctx context.Context, item *models.ReportedItem) (*models.PromoUsage, *primitive.ObjectID, error) {
	// Only the recovery snapshot decides whether a promo owner is owed.
	// A usage row from a losing concurrent submission can exist without
	// its status write ever landing, so the row alone proves nothing.
	if item.Recovery == nil || item.Recovery.PromoCodeID == nil {
		return nil, nil, nil
	}

	usage, err := s.usageRepo.GetByItem(ctx, item.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load promo usage: %w", err)
	}

	if usage.PromoCodeID != *item.Recovery.PromoCodeID {
		s.logger.WithItemID(item.ID).Warn("Promo usage does not match the confirmed request, ignoring it")
		return nil, nil, nil
	}
	if item.Recovery.PromoUsageID != nil && usage.ID != *item.Recovery.PromoUsageID {
		s.logger.WithItemID(item.ID).Warn("Promo usage does not match the confirmed request, ignoring it")
		return nil, nil, nil
	}

	code, err := s.promoRepo.GetByID(ctx, usage.PromoCodeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			// Usage without its code is a data inconsistency; keep the
			// usage line but leave the payee unresolved.
			s.logger.WithItemID(item.ID).Warn("Promo usage references missing code")
			return usage, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load promo code: %w", err)
	}

	ownerID := code.OwnerID
	return usage, &ownerID, nil
}

func (s *payoutService) recordAudit(ctx context.Context, item *models.ReportedItem, adminID primitive.ObjectID) {
	log := &models.AuditLog{
		UserID:     &adminID,
		Action:     models.AuditActionConfirmPayment,
		Resource:   "reported_items",
		ResourceID: item.ID.Hex(),
		OldValues:  map[string]interface{}{"status": models.ItemStatusRecoveryRequested},
		NewValues:  map[string]interface{}{"status": models.ItemStatusRecovered},
		Metadata: map[string]interface{}{
			"final_price": item.FinalPrice,
			"currency":    item.Currency,
		},
	}

	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.WithError(err).WithItemID(item.ID).Warn("Failed to write payment confirmation audit log")
	}
}
