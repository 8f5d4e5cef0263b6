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
	"github.com/creat233/idfinder-sub001/internal/validators"
	"github.com/creat233/idfinder-sub001/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecoveryService owns the reported-item lifecycle: finders report documents,
// owners submit recovery requests against them, pricing and promo discounts
// are resolved at submission time and frozen onto the item.
type RecoveryService interface {
	SubmitReport(ctx context.Context, reporterID primitive.ObjectID, sub *models.ReportSubmission) (*models.ReportedItem, error)
	GetItem(ctx context.Context, itemID primitive.ObjectID) (*models.ReportedItem, error)
	ListReporterItems(ctx context.Context, reporterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error)
	SubmitRecovery(ctx context.Context, itemID primitive.ObjectID, sub *models.RecoverySubmission) (*models.RecoveryResult, error)
}

type recoveryService struct {
	itemRepo   interfaces.ReportedItemRepository
	auditRepo  interfaces.AuditLogRepository
	promo      PromoService
	pricing    PricingService
	pricingCfg *config.PricingConfig
	notifier   NotificationService
	logger     *logger.Logger
}

func NewRecoveryService(
	itemRepo interfaces.ReportedItemRepository,
	auditRepo interfaces.AuditLogRepository,
	promo PromoService,
	pricing PricingService,
	pricingCfg *config.PricingConfig,
	notifier NotificationService,
	log *logger.Logger,
) RecoveryService {
	return &recoveryService{
		itemRepo:   itemRepo,
		auditRepo:  auditRepo,
		promo:      promo,
		pricing:    pricing,
		pricingCfg: pricingCfg,
		notifier:   notifier,
		logger:     log,
	}
}

// Report operations

func (s *recoveryService) SubmitReport(ctx context.Context, reporterID primitive.ObjectID, sub *models.ReportSubmission) (*models.ReportedItem, error) {
	if details := validators.ValidateReportSubmission(sub); details != nil {
		return nil, NewValidationError(details)
	}

	foundDate := time.Now()
	if sub.FoundDate != "" {
		parsed, err := time.Parse("2006-01-02", sub.FoundDate)
		if err != nil {
			return nil, NewValidationError(map[string]string{"found_date": "must be YYYY-MM-DD"})
		}
		foundDate = parsed
	}

	item := &models.ReportedItem{
		CardNumber:    utils.SanitizeString(sub.CardNumber),
		DocumentType:  sub.DocumentType,
		FoundLocation: utils.SanitizeString(sub.FoundLocation),
		FoundDate:     foundDate,
		Description:   utils.SanitizeString(sub.Description),
		ReporterID:    reporterID,
		ReporterPhone: utils.NormalizePhone(sub.ReporterPhone),
		Status:        models.ItemStatusReported,
		PhotoURL:      sub.PhotoURL,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create reported item: %w", err)
	}

	s.logger.WithItemID(item.ID).WithUserID(reporterID).Info("Document reported")
	s.recordAudit(ctx, item.ID, &reporterID, models.AuditActionCreate, nil,
		map[string]interface{}{"status": models.ItemStatusReported})

	return item, nil
}

func (s *recoveryService) GetItem(ctx context.Context, itemID primitive.ObjectID) (*models.ReportedItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get reported item: %w", err)
	}
	return item, nil
}

func (s *recoveryService) ListReporterItems(ctx context.Context, reporterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	return s.itemRepo.GetByReporter(ctx, reporterID, params)
}

// Recovery operations

func (s *recoveryService) SubmitRecovery(ctx context.Context, itemID primitive.ObjectID, sub *models.RecoverySubmission) (*models.RecoveryResult, error) {
	if details := validators.ValidateRecoverySubmission(sub); details != nil {
		return nil, NewValidationError(details)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get reported item: %w", err)
	}

	if item.Status != models.ItemStatusReported {
		return nil, ErrInvalidTransition
	}

	ownerPhone := utils.NormalizePhone(sub.OwnerPhone)
	country := sub.CountryCode
	if country == "" {
		country = utils.CountryFromPhone(ownerPhone)
	}
	price := s.pricing.GetPrice(country)

	var application *PromoApplication
	if sub.PromoCode != "" {
		application, err = s.promo.ValidateAndApply(ctx, sub.PromoCode, item.ID, ownerPhone)
		if err != nil {
			return nil, err
		}
	}

	discount := 0.0
	recovery := &models.RecoveryInfo{
		OwnerName:   utils.SanitizeString(sub.OwnerName),
		OwnerPhone:  ownerPhone,
		CountryCode: country,
		RequestedAt: time.Now(),
	}
	if application != nil {
		discount = application.DiscountAmount
		recovery.Discount = discount
		codeID := application.PromoCodeID
		recovery.PromoCodeID = &codeID
		if application.Usage != nil {
			usageID := application.Usage.ID
			recovery.PromoUsageID = &usageID
		}
	}

	finalPrice := price.BaseFee - discount
	if finalPrice < 0 {
		finalPrice = 0
	}

	description := appendRecoveryNote(item.Description, recovery, price, finalPrice)

	// Single conditional write: the reported -> recovery_requested
	// transition and the price freeze land together, or not at all.
	if err := s.itemRepo.MarkRecoveryRequested(ctx, itemID, recovery, price, finalPrice, description); err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to mark recovery requested: %w", err)
	}

	item.Status = models.ItemStatusRecoveryRequested
	item.Recovery = recovery
	item.BaseFee = price.BaseFee
	item.FinalPrice = finalPrice
	item.Currency = price.Currency
	item.CurrencySymbol = price.CurrencySymbol
	item.Description = description

	s.logger.LogRecoveryEvent(itemID, "recovery_requested", map[string]interface{}{
		"base_fee":    price.BaseFee,
		"discount":    discount,
		"final_price": finalPrice,
		"currency":    price.Currency,
	})
	s.recordAudit(ctx, itemID, nil, models.AuditActionUpdate,
		map[string]interface{}{"status": models.ItemStatusReported},
		map[string]interface{}{"status": models.ItemStatusRecoveryRequested, "final_price": finalPrice})

	result := &models.RecoveryResult{
		ItemID:         itemID,
		Status:         models.ItemStatusRecoveryRequested,
		BaseFee:        price.BaseFee,
		Discount:       discount,
		FinalPrice:     finalPrice,
		Currency:       price.Currency,
		CurrencySymbol: price.CurrencySymbol,
		PromoApplied:   application != nil,
	}

	// The alert is advisory: the transition above is already committed and
	// a mailer outage must not undo it.
	alert := &models.RecoveryAlert{
		Item:   item,
		Payout: BuildPayoutSummary(item, usageOf(application), promoOwnerOf(application), s.pricingCfg),
	}
	if application != nil {
		alert.Usage = application.Usage
		alert.PromoCode = application.Code
	}
	if _, err := s.notifier.SendRecoveryAlert(ctx, alert); err != nil {
		s.logger.WithError(err).WithItemID(itemID).Warn("Recovery alert failed, request already committed")
	} else {
		result.Notified = true
	}

	return result, nil
}

// Helper methods

func (s *recoveryService) recordAudit(ctx context.Context, itemID primitive.ObjectID, userID *primitive.ObjectID, action models.AuditAction, oldValues, newValues map[string]interface{}) {
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   "reported_items",
		ResourceID: itemID.Hex(),
		OldValues:  oldValues,
		NewValues:  newValues,
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.WithError(err).WithItemID(itemID).Warn("Failed to write audit log")
	}
}

func appendRecoveryNote(description string, recovery *models.RecoveryInfo, price *models.Price, finalPrice float64) string {
	note := fmt.Sprintf("Recovery requested by %s (%s) on %s. Base fee %s",
		recovery.OwnerName,
		recovery.OwnerPhone,
		recovery.RequestedAt.Format("2006-01-02 15:04"),
		utils.FormatCurrency(price.BaseFee, price.Currency),
	)
	if recovery.Discount > 0 {
		note += fmt.Sprintf(", promo discount %s", utils.FormatCurrency(recovery.Discount, price.Currency))
	}
	note += fmt.Sprintf(", to pay %s.", utils.FormatCurrency(finalPrice, price.Currency))

	if description == "" {
		return note
	}
	return description + "\n" + note
}

func usageOf(application *PromoApplication) *models.PromoUsage {
	if application == nil {
		return nil
	}
	return application.Usage
}

func promoOwnerOf(application *PromoApplication) *primitive.ObjectID {
	if application == nil {
		return nil
	}
	ownerID := application.PromoOwnerID
	return &ownerID
}
