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

// PromoApplication is what a successful redemption contributes to a
// recovery request: the discount plus the bookkeeping references for the
// later promo-owner payout.
type PromoApplication struct {
	PromoCodeID    primitive.ObjectID
	PromoOwnerID   primitive.ObjectID
	DiscountAmount float64
	Code           *models.PromoCode
	Usage          *models.PromoUsage
}

type PromoService interface {
	// ValidateAndApply redeems a code against one item: validates it,
	// computes the fixed discount, records the usage and alerts the owner.
	ValidateAndApply(ctx context.Context, code string, itemID primitive.ObjectID, consumerPhone string) (*PromoApplication, error)

	// Validate is the dry-run used by the form's inline check.
	Validate(ctx context.Context, code string) (*models.PromoCode, error)

	GetCode(ctx context.Context, promoCodeID primitive.ObjectID) (*models.PromoCode, error)
	GetOwnerCodes(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoCode, int64, error)
	GetCodeUsages(ctx context.Context, promoCodeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoUsage, int64, error)
	DeactivateExpired(ctx context.Context) (int64, error)
}

type promoService struct {
	promoRepo interfaces.PromoCodeRepository
	usageRepo interfaces.PromoUsageRepository
	notifier  NotificationService
	pricing   *config.PricingConfig
	logger    *logger.Logger
}

func NewPromoService(
	promoRepo interfaces.PromoCodeRepository,
	usageRepo interfaces.PromoUsageRepository,
	notifier NotificationService,
	pricing *config.PricingConfig,
	log *logger.Logger,
) PromoService {
	return &promoService{
		promoRepo: promoRepo,
		usageRepo: usageRepo,
		notifier:  notifier,
		pricing:   pricing,
		logger:    log,
	}
}

func (s *promoService) ValidateAndApply(ctx context.Context, code string, itemID primitive.ObjectID, consumerPhone string) (*PromoApplication, error) {
	canonical := utils.CanonicalPromoCode(code)
	if canonical == "" {
		return nil, ErrPromoNotFound
	}

	promoCode, err := s.promoRepo.FindValid(ctx, canonical, time.Now())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, s.classifyMiss(ctx, canonical)
		}
		return nil, fmt.Errorf("failed to validate promo code: %w", err)
	}

	application := &PromoApplication{
		PromoCodeID:    promoCode.ID,
		PromoOwnerID:   promoCode.OwnerID,
		DiscountAmount: s.pricing.PromoDiscount,
		Code:           promoCode,
	}

	// The usage record is best-effort: a store hiccup here must not cost
	// the consumer their discount.
	usage := &models.PromoUsage{
		PromoCodeID:    promoCode.ID,
		ItemID:         itemID,
		DiscountAmount: s.pricing.PromoDiscount,
		ConsumerPhone:  consumerPhone,
		UsedAt:         time.Now(),
	}
	if err := s.usageRepo.Create(ctx, usage); err != nil {
		s.logger.WithError(err).WithPromoCode(canonical).Warn("Failed to record promo usage, discount still honored")
	} else {
		application.Usage = usage
	}

	// Fire-and-forget: the owner alert never blocks or fails the request.
	go s.notifier.NotifyPromoOwner(context.WithoutCancel(ctx), promoCode, application.Usage)

	return application, nil
}

func (s *promoService) Validate(ctx context.Context, code string) (*models.PromoCode, error) {
	canonical := utils.CanonicalPromoCode(code)
	if canonical == "" {
		return nil, ErrPromoNotFound
	}

	promoCode, err := s.promoRepo.GetByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}

	if !promoCode.Usable(time.Now()) {
		return nil, ErrPromoInactive
	}

	return promoCode, nil
}

func (s *promoService) GetCode(ctx context.Context, promoCodeID primitive.ObjectID) (*models.PromoCode, error) {
	code, err := s.promoRepo.GetByID(ctx, promoCodeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return code, nil
}

func (s *promoService) GetOwnerCodes(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	return s.promoRepo.GetByOwner(ctx, ownerID, params)
}

func (s *promoService) GetCodeUsages(ctx context.Context, promoCodeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoUsage, int64, error) {
	return s.usageRepo.GetByPromoCode(ctx, promoCodeID, params)
}

func (s *promoService) DeactivateExpired(ctx context.Context) (int64, error) {
	count, err := s.promoRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired codes: %w", err)
	}

	if count > 0 {
		s.logger.WithField("count", count).Info("Deactivated expired promo codes")
	}

	return count, nil
}

// classifyMiss distinguishes an unknown code from a known-but-unusable one.
// Both surface the same way to the consumer; the split only feeds logging
// and the dry-run endpoint.
func (s *promoService) classifyMiss(ctx context.Context, canonical string) error {
	_, err := s.promoRepo.GetByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrPromoNotFound
		}
		return fmt.Errorf("failed to look up promo code: %w", err)
	}

	return ErrPromoInactive
}
