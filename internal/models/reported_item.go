package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DocumentType string
type ItemStatus string

const (
	DocumentTypeNationalID       DocumentType = "national_id"
	DocumentTypePassport         DocumentType = "passport"
	DocumentTypeDriverLicense    DocumentType = "driver_license"
	DocumentTypeStudentCard      DocumentType = "student_card"
	DocumentTypeHealthCard       DocumentType = "health_card"
	DocumentTypeVehicleReg       DocumentType = "vehicle_registration"
	DocumentTypeMotorcycleReg    DocumentType = "motorcycle_registration"
	DocumentTypeResidencePermit  DocumentType = "residence_permit"

	ItemStatusReported          ItemStatus = "reported"
	ItemStatusRecoveryRequested ItemStatus = "recovery_requested"
	ItemStatusRecovered         ItemStatus = "recovered"
)

// ReportedItem is a found document record created by a finder. Pricing
// fields are zero until the owner submits a recovery request.
type ReportedItem struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CardNumber     string             `json:"card_number" bson:"card_number" validate:"required"`
	DocumentType   DocumentType       `json:"document_type" bson:"document_type" validate:"required"`
	FoundLocation  string             `json:"found_location" bson:"found_location" validate:"required"`
	FoundDate      time.Time          `json:"found_date" bson:"found_date"`
	Description    string             `json:"description" bson:"description"`
	ReporterID     primitive.ObjectID `json:"reporter_id" bson:"reporter_id" validate:"required"`
	ReporterPhone  string             `json:"reporter_phone" bson:"reporter_phone"`
	Status         ItemStatus         `json:"status" bson:"status" default:"reported"`
	PhotoURL       string             `json:"photo_url" bson:"photo_url"`
	BaseFee        float64            `json:"base_fee" bson:"base_fee"`
	FinalPrice     float64            `json:"final_price" bson:"final_price"`
	Currency       string             `json:"currency" bson:"currency"`
	CurrencySymbol string             `json:"currency_symbol" bson:"currency_symbol"`
	Recovery       *RecoveryInfo      `json:"recovery" bson:"recovery"`
	RecoveredAt    *time.Time         `json:"recovered_at" bson:"recovered_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// RecoveryInfo is the owner-information and pricing snapshot attached to an
// item when a recovery request is submitted. Immutable once written.
type RecoveryInfo struct {
	OwnerName    string              `json:"owner_name" bson:"owner_name" validate:"required"`
	OwnerPhone   string              `json:"owner_phone" bson:"owner_phone" validate:"required"`
	CountryCode  string              `json:"country_code" bson:"country_code"`
	Discount     float64             `json:"discount" bson:"discount"`
	PromoCodeID  *primitive.ObjectID `json:"promo_code_id" bson:"promo_code_id"`
	PromoUsageID *primitive.ObjectID `json:"promo_usage_id" bson:"promo_usage_id"`
	RequestedAt  time.Time           `json:"requested_at" bson:"requested_at"`
}

func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeNationalID, DocumentTypePassport, DocumentTypeDriverLicense,
		DocumentTypeStudentCard, DocumentTypeHealthCard, DocumentTypeVehicleReg,
		DocumentTypeMotorcycleReg, DocumentTypeResidencePermit:
		return true
	}
	return false
}
