package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromoCode is a referral code owned by one user. A code is usable only if
// it is active AND paid AND not expired.
type PromoCode struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code" validate:"required"`
	OwnerID   primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	// OwnerPhone is denormalized onto the code so usage alerts can go out
	// without a user lookup.
	OwnerPhone string    `json:"owner_phone" bson:"owner_phone"`
	IsActive   bool      `json:"is_active" bson:"is_active" default:"false"`
	IsPaid     bool      `json:"is_paid" bson:"is_paid" default:"false"`
	ExpiresAt  time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Usable reports whether the code can currently produce a discount.
func (p *PromoCode) Usable(now time.Time) bool {
	return p.IsActive && p.IsPaid && p.ExpiresAt.After(now)
}
