package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutParty string

const (
	PayoutPartyOwner      PayoutParty = "owner"
	PayoutPartyReporter   PayoutParty = "reporter"
	PayoutPartyPromoOwner PayoutParty = "promo_owner"
)

// PayoutLine is one leg of the three-party settlement. The owner line is a
// charge (the final price); the reporter and promo-owner lines are credits.
type PayoutLine struct {
	Party    PayoutParty         `json:"party" bson:"party"`
	UserID   *primitive.ObjectID `json:"user_id" bson:"user_id"`
	Phone    string              `json:"phone" bson:"phone"`
	Amount   float64             `json:"amount" bson:"amount"`
	Currency string              `json:"currency" bson:"currency"`
	IsCharge bool                `json:"is_charge" bson:"is_charge"`
}

// PayoutSummary is the bookkeeping produced when an admin confirms payment.
// It does not move money; settlement happens out of band by phone.
type PayoutSummary struct {
	ItemID      primitive.ObjectID `json:"item_id" bson:"item_id"`
	Lines       []PayoutLine       `json:"lines" bson:"lines"`
	GeneratedAt time.Time          `json:"generated_at" bson:"generated_at"`
}

// PayoutConfirmation is the admin-facing result of confirmPayment.
type PayoutConfirmation struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Summary *PayoutSummary `json:"summary,omitempty"`
}
