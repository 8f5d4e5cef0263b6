package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecoverySubmission is the owner's "confirm recovery" form payload.
type RecoverySubmission struct {
	OwnerName   string `json:"owner_name" validate:"required,min=2"`
	OwnerPhone  string `json:"owner_phone" validate:"required"`
	CountryCode string `json:"country_code"`
	PromoCode   string `json:"promo_code"`
}

// RecoveryResult is returned to the caller after a successful submission.
type RecoveryResult struct {
	ItemID         primitive.ObjectID `json:"item_id"`
	Status         ItemStatus         `json:"status"`
	BaseFee        float64            `json:"base_fee"`
	Discount       float64            `json:"discount"`
	FinalPrice     float64            `json:"final_price"`
	Currency       string             `json:"currency"`
	CurrencySymbol string             `json:"currency_symbol"`
	PromoApplied   bool               `json:"promo_applied"`
	Notified       bool               `json:"notified"`
}

// Price is the PricingPolicy output for one country.
type Price struct {
	BaseFee        float64 `json:"base_fee"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
}

// ReportSubmission is the finder's "report a found document" form payload.
type ReportSubmission struct {
	CardNumber    string       `json:"card_number" validate:"required,min=3"`
	DocumentType  DocumentType `json:"document_type" validate:"required"`
	FoundLocation string       `json:"found_location" validate:"required,min=2"`
	FoundDate     string       `json:"found_date"`
	Description   string       `json:"description"`
	ReporterPhone string       `json:"reporter_phone"`
	PhotoURL      string       `json:"photo_url"`
}
