package interfaces

import (
	"context"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.NotificationStatus) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
