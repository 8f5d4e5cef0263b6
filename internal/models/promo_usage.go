package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromoUsage records one redemption of a promo code against one reported
// item. Rows are immutable once created.
type PromoUsage struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PromoCodeID    primitive.ObjectID `json:"promo_code_id" bson:"promo_code_id" validate:"required"`
	ItemID         primitive.ObjectID `json:"item_id" bson:"item_id" validate:"required"`
	DiscountAmount float64            `json:"discount_amount" bson:"discount_amount" validate:"required"`
	ConsumerPhone  string             `json:"consumer_phone" bson:"consumer_phone"`
	UsedAt         time.Time          `json:"used_at" bson:"used_at"`
}
