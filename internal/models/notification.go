package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string
type NotificationStatus string

const (
	NotificationTypeRecoveryRequested NotificationType = "recovery_requested"
	NotificationTypePaymentConfirmed  NotificationType = "payment_confirmed"
	NotificationTypePromoCodeUsed     NotificationType = "promo_code_used"
	NotificationTypeGeneral           NotificationType = "general"

	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

type Notification struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id" bson:"user_id" validate:"required"`
	Type      NotificationType       `json:"type" bson:"type" validate:"required"`
	Status    NotificationStatus     `json:"status" bson:"status" default:"unread"`
	Title     string                 `json:"title" bson:"title" validate:"required"`
	Message   string                 `json:"message" bson:"message" validate:"required"`
	Data      map[string]interface{} `json:"data" bson:"data"`
	ReadAt    *time.Time             `json:"read_at" bson:"read_at"`
	SentAt    *time.Time             `json:"sent_at" bson:"sent_at"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" bson:"updated_at"`
}

// RecoveryAlert carries everything the operations mailbox needs to act on a
// freshly submitted recovery request.
type RecoveryAlert struct {
	Item      *ReportedItem
	Usage     *PromoUsage
	PromoCode *PromoCode
	Payout    *PayoutSummary
}
