package interfaces

import (
	"context"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromoUsageRepository interface {
	Create(ctx context.Context, usage *models.PromoUsage) error
	GetByItem(ctx context.Context, itemID primitive.ObjectID) (*models.PromoUsage, error)
	GetByPromoCode(ctx context.Context, promoCodeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoUsage, int64, error)
	CountByPromoCode(ctx context.Context, promoCodeID primitive.ObjectID) (int64, error)
}
