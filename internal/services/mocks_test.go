package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/creat233/idfinder-sub001/internal/config"
	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/repositories/interfaces"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "json"})
	log.SetOutput(io.Discard)
	return log
}

func testPricingConfig() *config.PricingConfig {
	return &config.PricingConfig{
		Fees: map[string]config.CountryFee{
			"SN": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"GN": {BaseFee: 95000, Currency: "GNF", Symbol: "FG"},
			"MA": {BaseFee: 150, Currency: "MAD", Symbol: "DH"},
			"FR": {BaseFee: 15, Currency: "EUR", Symbol: "€"},
		},
		DefaultCountry:   "SN",
		PromoDiscount:    1000,
		ReporterReward:   2000,
		PromoOwnerReward: 1000,
	}
}

// fakeItemRepo is an in-memory ReportedItemRepository that enforces the
// same status gates as the real conditional writes.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.ReportedItem

	createErr error
	markErr   error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[primitive.ObjectID]*models.ReportedItem)}
}

func (r *fakeItemRepo) put(item *models.ReportedItem) *models.ReportedItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	r.items[item.ID] = item
	return item
}

func (r *fakeItemRepo) Create(ctx context.Context, item *models.ReportedItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	item.CreatedAt = time.Now()
	r.put(item)
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReportedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeItemRepo) GetByReporter(ctx context.Context, reporterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ReportedItem
	for _, item := range r.items {
		if item.ReporterID == reporterID {
			out = append(out, item)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) GetByStatus(ctx context.Context, status models.ItemStatus, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ReportedItem
	for _, item := range r.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) FindByCardNumber(ctx context.Context, cardNumber string) ([]*models.ReportedItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) MarkRecoveryRequested(ctx context.Context, id primitive.ObjectID, recovery *models.RecoveryInfo, price *models.Price, finalPrice float64, description string) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Status != models.ItemStatusReported {
		return interfaces.ErrPreconditionFailed
	}
	item.Status = models.ItemStatusRecoveryRequested
	item.Recovery = recovery
	item.BaseFee = price.BaseFee
	item.FinalPrice = finalPrice
	item.Currency = price.Currency
	item.CurrencySymbol = price.CurrencySymbol
	item.Description = description
	return nil
}

func (r *fakeItemRepo) MarkRecovered(ctx context.Context, id primitive.ObjectID) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Status != models.ItemStatusRecoveryRequested {
		return interfaces.ErrPreconditionFailed
	}
	item.Status = models.ItemStatusRecovered
	now := time.Now()
	item.RecoveredAt = &now
	return nil
}

func (r *fakeItemRepo) CountByStatus(ctx context.Context, status models.ItemStatus) (int64, error) {
	_, total, _ := r.GetByStatus(ctx, status, nil)
	return total, nil
}

// fakePromoRepo is an in-memory PromoCodeRepository.
type fakePromoRepo struct {
	mu    sync.Mutex
	codes map[primitive.ObjectID]*models.PromoCode

	findValidErr error
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{codes: make(map[primitive.ObjectID]*models.PromoCode)}
}

func (r *fakePromoRepo) put(code *models.PromoCode) *models.PromoCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID.IsZero() {
		code.ID = primitive.NewObjectID()
	}
	r.codes[code.ID] = code
	return code
}

func (r *fakePromoRepo) Create(ctx context.Context, code *models.PromoCode) error {
	r.put(code)
	return nil
}

func (r *fakePromoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return code, nil
}

func (r *fakePromoRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakePromoRepo) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pc := range r.codes {
		if pc.Code == code {
			return pc, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakePromoRepo) FindValid(ctx context.Context, code string, now time.Time) (*models.PromoCode, error) {
	if r.findValidErr != nil {
		return nil, r.findValidErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pc := range r.codes {
		if pc.Code == code && pc.IsActive && pc.IsPaid && pc.ExpiresAt.After(now) {
			return pc, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakePromoRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PromoCode
	for _, pc := range r.codes {
		if pc.OwnerID == ownerID {
			out = append(out, pc)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePromoRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, pc := range r.codes {
		if pc.IsActive && !pc.ExpiresAt.After(now) {
			pc.IsActive = false
			count++
		}
	}
	return count, nil
}

// fakeUsageRepo is an in-memory PromoUsageRepository.
type fakeUsageRepo struct {
	mu     sync.Mutex
	usages []*models.PromoUsage

	createErr error
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{}
}

func (r *fakeUsageRepo) Create(ctx context.Context, usage *models.PromoUsage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if usage.ID.IsZero() {
		usage.ID = primitive.NewObjectID()
	}
	r.usages = append(r.usages, usage)
	return nil
}

func (r *fakeUsageRepo) GetByItem(ctx context.Context, itemID primitive.ObjectID) (*models.PromoUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, usage := range r.usages {
		if usage.ItemID == itemID {
			return usage, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUsageRepo) GetByPromoCode(ctx context.Context, promoCodeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoUsage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PromoUsage
	for _, usage := range r.usages {
		if usage.PromoCodeID == promoCodeID {
			out = append(out, usage)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUsageRepo) CountByPromoCode(ctx context.Context, promoCodeID primitive.ObjectID) (int64, error) {
	_, total, _ := r.GetByPromoCode(ctx, promoCodeID, nil)
	return total, nil
}

// fakeAuditRepo records audit writes.
type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []*models.AuditLog

	createErr error
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeAuditRepo) GetByResource(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs, int64(len(r.logs)), nil
}

// fakeNotifier counts alerts instead of sending them.
type fakeNotifier struct {
	mu              sync.Mutex
	recoveryAlerts  []*models.RecoveryAlert
	paymentAlerts   []*models.RecoveryAlert
	promoOwnerCalls int

	sendErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (n *fakeNotifier) SendRecoveryAlert(ctx context.Context, alert *models.RecoveryAlert) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return "", n.sendErr
	}
	n.recoveryAlerts = append(n.recoveryAlerts, alert)
	return "msg-1", nil
}

func (n *fakeNotifier) SendPaymentConfirmedAlert(ctx context.Context, alert *models.RecoveryAlert) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return "", n.sendErr
	}
	n.paymentAlerts = append(n.paymentAlerts, alert)
	return "msg-2", nil
}

func (n *fakeNotifier) NotifyPromoOwner(ctx context.Context, code *models.PromoCode, usage *models.PromoUsage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.promoOwnerCalls++
}

func (n *fakeNotifier) ListUserNotifications(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}

func (n *fakeNotifier) MarkNotificationRead(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (n *fakeNotifier) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}
