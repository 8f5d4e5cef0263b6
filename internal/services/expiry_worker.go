package services

import (
	"context"
	"time"

	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"
)

// ExpiryWorker periodically deactivates promo codes whose expiry date has
// passed, so stale codes stop matching lookups even between requests.
type ExpiryWorker struct {
	promo    PromoService
	interval time.Duration
	logger   *logger.Logger
}

func NewExpiryWorker(promo PromoService, log *logger.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		promo:    promo,
		interval: utils.PromoExpirySweep,
		logger:   log,
	}
}

// Start runs the sweep loop until ctx is cancelled. Call in a goroutine.
func (w *ExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Promo expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	if _, err := w.promo.DeactivateExpired(ctx); err != nil {
		w.logger.WithError(err).Error("Promo expiry sweep failed")
	}
}
