package interfaces

import (
	"context"
	"time"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromoCodeRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, code *models.PromoCode) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Code operations
	GetByCode(ctx context.Context, code string) (*models.PromoCode, error)
	// FindValid looks up a code with the validity gate (active, paid, not
	// expired) folded into the query filter itself, closing the
	// check-then-act window between validation and use. Returns ErrNotFound
	// when no currently-valid code matches.
	FindValid(ctx context.Context, code string, now time.Time) (*models.PromoCode, error)

	// Owner operations
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoCode, int64, error)

	// Maintenance
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
