package interfaces

import (
	"context"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	GetByResource(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
}
