package interfaces

import (
	"context"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportedItemRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, item *models.ReportedItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReportedItem, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Listing
	GetByReporter(ctx context.Context, reporterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error)
	GetByStatus(ctx context.Context, status models.ItemStatus, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error)
	FindByCardNumber(ctx context.Context, cardNumber string) ([]*models.ReportedItem, error)

	// State transitions. Both writes are conditional on the current status
	// and return ErrPreconditionFailed when the gate does not hold, so the
	// reported -> recovery_requested -> recovered machine cannot be driven
	// backwards or skipped even under concurrent callers.
	MarkRecoveryRequested(ctx context.Context, id primitive.ObjectID, recovery *models.RecoveryInfo, price *models.Price, finalPrice float64, description string) error
	MarkRecovered(ctx context.Context, id primitive.ObjectID) error

	// Counters for the admin dashboard
	CountByStatus(ctx context.Context, status models.ItemStatus) (int64, error)
}
