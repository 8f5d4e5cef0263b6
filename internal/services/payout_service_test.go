package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creat233/idfinder-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type payoutFixture struct {
	itemRepo  *fakeItemRepo
	promoRepo *fakePromoRepo
	usageRepo *fakeUsageRepo
	auditRepo *fakeAuditRepo
	notifier  *fakeNotifier
	svc       PayoutService
}

func newPayoutFixture() *payoutFixture {
	f := &payoutFixture{
		itemRepo:  newFakeItemRepo(),
		promoRepo: newFakePromoRepo(),
		usageRepo: newFakeUsageRepo(),
		auditRepo: newFakeAuditRepo(),
		notifier:  newFakeNotifier(),
	}
	f.svc = NewPayoutService(f.itemRepo, f.usageRepo, f.promoRepo, f.auditRepo, f.notifier, testPricingConfig(), testLogger())
	return f
}

func (f *payoutFixture) pendingItem(finalPrice float64) *models.ReportedItem {
	return f.itemRepo.put(&models.ReportedItem{
		CardNumber:    "1234567890",
		DocumentType:  models.DocumentTypeNationalID,
		ReporterID:    primitive.NewObjectID(),
		ReporterPhone: "+221778889900",
		Status:        models.ItemStatusRecoveryRequested,
		BaseFee:       7000,
		FinalPrice:    finalPrice,
		Currency:      "XOF",
		Recovery: &models.RecoveryInfo{
			OwnerName:   "Awa Diop",
			OwnerPhone:  "+221771234567",
			CountryCode: "SN",
			RequestedAt: time.Now(),
		},
	})
}

func lineFor(summary *models.PayoutSummary, party models.PayoutParty) *models.PayoutLine {
	for i := range summary.Lines {
		if summary.Lines[i].Party == party {
			return &summary.Lines[i]
		}
	}
	return nil
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("without promo usage", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(7000)

		confirmation, err := f.svc.ConfirmPayment(ctx, item.ID, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("ConfirmPayment() error = %v", err)
		}
		if !confirmation.Success {
			t.Error("Success = false")
		}
		if got := len(confirmation.Summary.Lines); got != 2 {
			t.Fatalf("summary has %d lines, want 2", got)
		}

		owner := lineFor(confirmation.Summary, models.PayoutPartyOwner)
		if owner == nil || !owner.IsCharge || owner.Amount != 7000 {
			t.Errorf("owner line = %+v, want charge of 7000", owner)
		}
		reporter := lineFor(confirmation.Summary, models.PayoutPartyReporter)
		if reporter == nil || reporter.IsCharge || reporter.Amount != 2000 {
			t.Errorf("reporter line = %+v, want credit of 2000", reporter)
		}

		stored, _ := f.itemRepo.GetByID(ctx, item.ID)
		if stored.Status != models.ItemStatusRecovered {
			t.Errorf("stored status = %q, want recovered", stored.Status)
		}
		if stored.RecoveredAt == nil {
			t.Error("RecoveredAt not set")
		}
	})

	t.Run("with promo usage adds the owner reward line", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(6000)
		code := f.promoRepo.put(validPromoCode("AWADIOP1"))
		usage := &models.PromoUsage{
			PromoCodeID:    code.ID,
			ItemID:         item.ID,
			DiscountAmount: 1000,
		}
		f.usageRepo.Create(ctx, usage)
		item.Recovery.PromoCodeID = &code.ID
		item.Recovery.PromoUsageID = &usage.ID

		confirmation, err := f.svc.ConfirmPayment(ctx, item.ID, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("ConfirmPayment() error = %v", err)
		}
		if got := len(confirmation.Summary.Lines); got != 3 {
			t.Fatalf("summary has %d lines, want 3", got)
		}

		owner := lineFor(confirmation.Summary, models.PayoutPartyOwner)
		if owner == nil || owner.Amount != 6000 {
			t.Errorf("owner line = %+v, want charge of 6000", owner)
		}
		promoOwner := lineFor(confirmation.Summary, models.PayoutPartyPromoOwner)
		if promoOwner == nil || promoOwner.IsCharge || promoOwner.Amount != 1000 {
			t.Errorf("promo owner line = %+v, want credit of 1000", promoOwner)
		}
		if promoOwner.UserID == nil || *promoOwner.UserID != code.OwnerID {
			t.Errorf("promo owner payee = %v, want %v", promoOwner.UserID, code.OwnerID)
		}
	})

	t.Run("usage the request never asked for is ignored", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(7000)
		code := f.promoRepo.put(validPromoCode("STRAYUSE"))
		f.usageRepo.Create(ctx, &models.PromoUsage{
			PromoCodeID:    code.ID,
			ItemID:         item.ID,
			DiscountAmount: 1000,
		})

		confirmation, err := f.svc.ConfirmPayment(ctx, item.ID, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("ConfirmPayment() error = %v", err)
		}
		if got := len(confirmation.Summary.Lines); got != 2 {
			t.Fatalf("summary has %d lines, want 2", got)
		}
		if lineFor(confirmation.Summary, models.PayoutPartyPromoOwner) != nil {
			t.Error("promo owner line present for a code the request never applied")
		}
	})

	t.Run("usage for a different code than the request is ignored", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(6000)
		applied := f.promoRepo.put(validPromoCode("APPLIED1"))
		other := f.promoRepo.put(validPromoCode("OTHERON1"))
		item.Recovery.PromoCodeID = &applied.ID
		f.usageRepo.Create(ctx, &models.PromoUsage{
			PromoCodeID:    other.ID,
			ItemID:         item.ID,
			DiscountAmount: 1000,
		})

		confirmation, err := f.svc.ConfirmPayment(ctx, item.ID, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("ConfirmPayment() error = %v", err)
		}
		if got := len(confirmation.Summary.Lines); got != 2 {
			t.Fatalf("summary has %d lines, want 2", got)
		}
		if lineFor(confirmation.Summary, models.PayoutPartyPromoOwner) != nil {
			t.Errorf("promo owner line present, payee would be %v", other.OwnerID)
		}
	})

	t.Run("applied code without a stored usage pays no promo owner", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(6000)
		code := f.promoRepo.put(validPromoCode("NOUSAGE1"))
		item.Recovery.PromoCodeID = &code.ID

		confirmation, err := f.svc.ConfirmPayment(ctx, item.ID, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("ConfirmPayment() error = %v", err)
		}
		if got := len(confirmation.Summary.Lines); got != 2 {
			t.Fatalf("summary has %d lines, want 2", got)
		}
	})

	t.Run("item without pending request is rejected", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.itemRepo.put(&models.ReportedItem{
			Status:     models.ItemStatusReported,
			ReporterID: primitive.NewObjectID(),
		})

		_, err := f.svc.ConfirmPayment(ctx, item.ID, primitive.NewObjectID())
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("double confirmation is rejected", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(7000)
		adminID := primitive.NewObjectID()

		if _, err := f.svc.ConfirmPayment(ctx, item.ID, adminID); err != nil {
			t.Fatalf("first ConfirmPayment() error = %v", err)
		}
		_, err := f.svc.ConfirmPayment(ctx, item.ID, adminID)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newPayoutFixture()

		_, err := f.svc.ConfirmPayment(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("error = %v, want ErrItemNotFound", err)
		}
	})

	t.Run("writes an audit entry", func(t *testing.T) {
		f := newPayoutFixture()
		item := f.pendingItem(7000)
		adminID := primitive.NewObjectID()

		if _, err := f.svc.ConfirmPayment(ctx, item.ID, adminID); err != nil {
			t.Fatalf("ConfirmPayment() error = %v", err)
		}
		if len(f.auditRepo.logs) != 1 {
			t.Fatalf("recorded %d audit entries, want 1", len(f.auditRepo.logs))
		}
		entry := f.auditRepo.logs[0]
		if entry.Action != models.AuditActionConfirmPayment {
			t.Errorf("Action = %q, want confirm_payment", entry.Action)
		}
		if entry.UserID == nil || *entry.UserID != adminID {
			t.Errorf("UserID = %v, want %v", entry.UserID, adminID)
		}
	})
}

func TestBuildPayoutSummary(t *testing.T) {
	cfg := testPricingConfig()
	reporterID := primitive.NewObjectID()
	item := &models.ReportedItem{
		ID:            primitive.NewObjectID(),
		ReporterID:    reporterID,
		ReporterPhone: "+221778889900",
		FinalPrice:    6000,
		Currency:      "XOF",
		Recovery:      &models.RecoveryInfo{OwnerPhone: "+221771234567"},
	}

	t.Run("owner and reporter lines always present", func(t *testing.T) {
		summary := BuildPayoutSummary(item, nil, nil, cfg)
		if len(summary.Lines) != 2 {
			t.Fatalf("got %d lines, want 2", len(summary.Lines))
		}

		owner := lineFor(summary, models.PayoutPartyOwner)
		if owner.Phone != "+221771234567" || owner.Amount != 6000 || !owner.IsCharge {
			t.Errorf("owner line = %+v", owner)
		}
		reporter := lineFor(summary, models.PayoutPartyReporter)
		if reporter.UserID == nil || *reporter.UserID != reporterID {
			t.Errorf("reporter payee = %v, want %v", reporter.UserID, reporterID)
		}
		if reporter.Amount != cfg.ReporterReward {
			t.Errorf("reporter amount = %v, want %v", reporter.Amount, cfg.ReporterReward)
		}
	})

	t.Run("promo line follows the usage record", func(t *testing.T) {
		ownerID := primitive.NewObjectID()
		usage := &models.PromoUsage{DiscountAmount: 1000}

		summary := BuildPayoutSummary(item, usage, &ownerID, cfg)
		if len(summary.Lines) != 3 {
			t.Fatalf("got %d lines, want 3", len(summary.Lines))
		}
		promoOwner := lineFor(summary, models.PayoutPartyPromoOwner)
		if promoOwner.Amount != cfg.PromoOwnerReward {
			t.Errorf("promo owner amount = %v, want %v", promoOwner.Amount, cfg.PromoOwnerReward)
		}
	})
}
