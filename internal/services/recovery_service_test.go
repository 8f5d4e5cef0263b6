package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recoveryFixture struct {
	itemRepo  *fakeItemRepo
	promoRepo *fakePromoRepo
	usageRepo *fakeUsageRepo
	auditRepo *fakeAuditRepo
	notifier  *fakeNotifier
	svc       RecoveryService
}

func newRecoveryFixture() *recoveryFixture {
	f := &recoveryFixture{
		itemRepo:  newFakeItemRepo(),
		promoRepo: newFakePromoRepo(),
		usageRepo: newFakeUsageRepo(),
		auditRepo: newFakeAuditRepo(),
		notifier:  newFakeNotifier(),
	}
	cfg := testPricingConfig()
	log := testLogger()
	promoSvc := NewPromoService(f.promoRepo, f.usageRepo, f.notifier, cfg, log)
	pricingSvc := NewPricingService(cfg, log)
	f.svc = NewRecoveryService(f.itemRepo, f.auditRepo, promoSvc, pricingSvc, cfg, f.notifier, log)
	return f
}

func (f *recoveryFixture) reportedItem() *models.ReportedItem {
	return f.itemRepo.put(&models.ReportedItem{
		CardNumber:    "1234567890",
		DocumentType:  models.DocumentTypeNationalID,
		FoundLocation: "Marché Sandaga, Dakar",
		FoundDate:     time.Now().Add(-24 * time.Hour),
		ReporterID:    primitive.NewObjectID(),
		ReporterPhone: "+221778889900",
		Status:        models.ItemStatusReported,
	})
}

func validSubmission() *models.RecoverySubmission {
	return &models.RecoverySubmission{
		OwnerName:  "Awa Diop",
		OwnerPhone: "+221771234567",
	}
}

func TestSubmitRecovery(t *testing.T) {
	ctx := context.Background()

	t.Run("without promo code", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()

		result, err := f.svc.SubmitRecovery(ctx, item.ID, validSubmission())
		if err != nil {
			t.Fatalf("SubmitRecovery() error = %v", err)
		}
		if result.Status != models.ItemStatusRecoveryRequested {
			t.Errorf("Status = %q, want recovery_requested", result.Status)
		}
		if result.BaseFee != 7000 || result.Discount != 0 || result.FinalPrice != 7000 {
			t.Errorf("pricing = %v/%v/%v, want 7000/0/7000", result.BaseFee, result.Discount, result.FinalPrice)
		}
		if result.PromoApplied {
			t.Error("PromoApplied = true without a code")
		}
		if !result.Notified {
			t.Error("Notified = false, want alert sent")
		}

		stored, _ := f.itemRepo.GetByID(ctx, item.ID)
		if stored.Status != models.ItemStatusRecoveryRequested {
			t.Errorf("stored status = %q, want recovery_requested", stored.Status)
		}
		if stored.Recovery == nil || stored.Recovery.OwnerName != "Awa Diop" {
			t.Errorf("stored recovery info = %+v", stored.Recovery)
		}
	})

	t.Run("with valid promo code", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()
		f.promoRepo.put(validPromoCode("AWADIOP1"))

		sub := validSubmission()
		sub.PromoCode = "awadiop1"
		result, err := f.svc.SubmitRecovery(ctx, item.ID, sub)
		if err != nil {
			t.Fatalf("SubmitRecovery() error = %v", err)
		}
		if result.Discount != 1000 || result.FinalPrice != 6000 {
			t.Errorf("discount/final = %v/%v, want 1000/6000", result.Discount, result.FinalPrice)
		}
		if !result.PromoApplied {
			t.Error("PromoApplied = false, want true")
		}

		stored, _ := f.itemRepo.GetByID(ctx, item.ID)
		if stored.Recovery.PromoCodeID == nil {
			t.Error("stored recovery has no promo code reference")
		}
		if len(f.usageRepo.usages) != 1 {
			t.Fatalf("recorded %d usages, want 1", len(f.usageRepo.usages))
		}
	})

	t.Run("with invalid promo code nothing changes", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()

		sub := validSubmission()
		sub.PromoCode = "NOSUCH01"
		_, err := f.svc.SubmitRecovery(ctx, item.ID, sub)
		if !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("error = %v, want ErrPromoNotFound", err)
		}

		stored, _ := f.itemRepo.GetByID(ctx, item.ID)
		if stored.Status != models.ItemStatusReported {
			t.Errorf("stored status = %q, want reported (unchanged)", stored.Status)
		}
		if len(f.notifier.recoveryAlerts) != 0 {
			t.Error("alert sent despite rejected submission")
		}
	})

	t.Run("discount never drives the price negative", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()
		f.promoRepo.put(validPromoCode("BIGCUT01"))

		sub := validSubmission()
		sub.CountryCode = "FR" // base fee 15, below the 1000 discount
		sub.PromoCode = "BIGCUT01"
		result, err := f.svc.SubmitRecovery(ctx, item.ID, sub)
		if err != nil {
			t.Fatalf("SubmitRecovery() error = %v", err)
		}
		if result.FinalPrice != 0 {
			t.Errorf("FinalPrice = %v, want 0", result.FinalPrice)
		}
	})

	t.Run("country derived from owner phone", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()

		sub := validSubmission()
		sub.OwnerPhone = "+224621234567" // Guinea
		result, err := f.svc.SubmitRecovery(ctx, item.ID, sub)
		if err != nil {
			t.Fatalf("SubmitRecovery() error = %v", err)
		}
		if result.Currency != "GNF" || result.BaseFee != 95000 {
			t.Errorf("currency/fee = %q/%v, want GNF/95000", result.Currency, result.BaseFee)
		}
	})

	t.Run("second submission is rejected", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()

		if _, err := f.svc.SubmitRecovery(ctx, item.ID, validSubmission()); err != nil {
			t.Fatalf("first SubmitRecovery() error = %v", err)
		}
		_, err := f.svc.SubmitRecovery(ctx, item.ID, validSubmission())
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newRecoveryFixture()

		_, err := f.svc.SubmitRecovery(ctx, primitive.NewObjectID(), validSubmission())
		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("error = %v, want ErrItemNotFound", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()

		sub := validSubmission()
		sub.OwnerPhone = "not-a-phone"
		_, err := f.svc.SubmitRecovery(ctx, item.ID, sub)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if _, ok := validationErr.Details["owner_phone"]; !ok {
			t.Errorf("Details = %v, want owner_phone entry", validationErr.Details)
		}
	})

	t.Run("notification failure does not roll back", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()
		f.notifier.sendErr = errors.New("smtp connect refused")

		result, err := f.svc.SubmitRecovery(ctx, item.ID, validSubmission())
		if err != nil {
			t.Fatalf("SubmitRecovery() error = %v", err)
		}
		if result.Notified {
			t.Error("Notified = true despite mailer failure")
		}

		stored, _ := f.itemRepo.GetByID(ctx, item.ID)
		if stored.Status != models.ItemStatusRecoveryRequested {
			t.Errorf("stored status = %q, want recovery_requested", stored.Status)
		}
	})

	t.Run("lost write race surfaces as invalid transition", func(t *testing.T) {
		f := newRecoveryFixture()
		item := f.reportedItem()
		f.itemRepo.markErr = interfaces.ErrPreconditionFailed

		_, err := f.svc.SubmitRecovery(ctx, item.ID, validSubmission())
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestSubmitReport(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a reported item", func(t *testing.T) {
		f := newRecoveryFixture()
		reporterID := primitive.NewObjectID()

		item, err := f.svc.SubmitReport(ctx, reporterID, &models.ReportSubmission{
			CardNumber:    "SN-991-2024",
			DocumentType:  models.DocumentTypePassport,
			FoundLocation: "Gare routière, Thiès",
			FoundDate:     "2026-08-20",
			ReporterPhone: "+221770001122",
		})
		if err != nil {
			t.Fatalf("SubmitReport() error = %v", err)
		}
		if item.Status != models.ItemStatusReported {
			t.Errorf("Status = %q, want reported", item.Status)
		}
		if item.ReporterID != reporterID {
			t.Errorf("ReporterID = %v, want %v", item.ReporterID, reporterID)
		}
		if item.FoundDate.Format("2006-01-02") != "2026-08-20" {
			t.Errorf("FoundDate = %v, want 2026-08-20", item.FoundDate)
		}
	})

	t.Run("rejects unsupported document type", func(t *testing.T) {
		f := newRecoveryFixture()

		_, err := f.svc.SubmitReport(ctx, primitive.NewObjectID(), &models.ReportSubmission{
			CardNumber:    "X123456",
			DocumentType:  "library_card",
			FoundLocation: "Plateau, Dakar",
		})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("rejects malformed found date", func(t *testing.T) {
		f := newRecoveryFixture()

		_, err := f.svc.SubmitReport(ctx, primitive.NewObjectID(), &models.ReportSubmission{
			CardNumber:    "X123456",
			DocumentType:  models.DocumentTypeNationalID,
			FoundLocation: "Plateau, Dakar",
			FoundDate:     "20/08/2026",
		})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})
}
