package utils

import "time"

// Application Constants
const (
	AppName    = "FinderID"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "fr"
	DefaultCurrency    = "XOF"
	DefaultCountry     = "SN"
	DefaultTimeZone    = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Recovery pricing policy. These are the single source of truth for the
	// fixed amounts that used to be duplicated across UI copy and templates.
	DefaultBaseFee          = 7000.0
	DefaultPromoDiscount    = 1000.0
	DefaultReporterReward   = 2000.0
	DefaultPromoOwnerReward = 1000.0

	// Promo codes
	PromoCodeLength    = 8
	PromoCodeExpiry    = 365 * 24 * time.Hour
	PromoCodeCacheTTL  = 30 * time.Minute
	PromoExpirySweep   = 30 * time.Minute

	// Notification
	NotificationTimeout = 30 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrValidationFailed   = "validation failed"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized access"
	ErrForbidden          = "access forbidden"
	ErrItemNotFound       = "reported item not found"
	ErrPromoCodeInvalid   = "promo code is invalid or inactive"
	ErrAlreadyRequested   = "a recovery request already exists for this item"
	ErrPaymentNotPending  = "item has no pending recovery request"
)
