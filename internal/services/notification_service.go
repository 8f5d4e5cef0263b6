package services

import (
	"context"
	"fmt"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/repositories/interfaces"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"
	"github.com/creat233/idfinder-sub001/pkg/mailer"
	"github.com/creat233/idfinder-sub001/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService is the outbound gateway: one fixed template, one fixed
// operations mailbox. Send failures are reported to the caller but never
// undo state that was already committed.
type NotificationService interface {
	SendRecoveryAlert(ctx context.Context, alert *models.RecoveryAlert) (string, error)
	SendPaymentConfirmedAlert(ctx context.Context, alert *models.RecoveryAlert) (string, error)
	NotifyPromoOwner(ctx context.Context, code *models.PromoCode, usage *models.PromoUsage)

	// In-app inbox
	ListUserNotifications(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	MarkNotificationRead(ctx context.Context, id primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type notificationService struct {
	mailer           mailer.Mailer
	smsProvider      sms.SMSProvider
	notificationRepo interfaces.NotificationRepository
	opsMailbox       string
	logger           *logger.Logger
}

func NewNotificationService(
	mail mailer.Mailer,
	smsProvider sms.SMSProvider,
	notificationRepo interfaces.NotificationRepository,
	opsMailbox string,
	log *logger.Logger,
) NotificationService {
	return &notificationService{
		mailer:           mail,
		smsProvider:      smsProvider,
		notificationRepo: notificationRepo,
		opsMailbox:       opsMailbox,
		logger:           log,
	}
}

func (s *notificationService) SendRecoveryAlert(ctx context.Context, alert *models.RecoveryAlert) (string, error) {
	subject := fmt.Sprintf("Recovery request: %s %s", alert.Item.DocumentType, alert.Item.CardNumber)
	messageID, err := s.sendAlert(ctx, alert, subject, "New recovery request")

	s.recordItemNotification(ctx, alert, models.NotificationTypeRecoveryRequested, subject, err == nil)

	return messageID, err
}

func (s *notificationService) SendPaymentConfirmedAlert(ctx context.Context, alert *models.RecoveryAlert) (string, error) {
	subject := fmt.Sprintf("Payment confirmed: %s %s", alert.Item.DocumentType, alert.Item.CardNumber)
	messageID, err := s.sendAlert(ctx, alert, subject, "Payment confirmed, payouts due")

	s.recordItemNotification(ctx, alert, models.NotificationTypePaymentConfirmed, subject, err == nil)

	return messageID, err
}

func (s *notificationService) NotifyPromoOwner(ctx context.Context, code *models.PromoCode, usage *models.PromoUsage) {
	notification := &models.Notification{
		UserID:  code.OwnerID,
		Type:    models.NotificationTypePromoCodeUsed,
		Title:   "Your promo code was used",
		Message: fmt.Sprintf("Code %s was applied to a recovery request. Your reward is due once payment is confirmed.", code.Code),
		Data: map[string]interface{}{
			"promo_code_id": code.ID.Hex(),
		},
	}
	if usage != nil {
		notification.Data["item_id"] = usage.ItemID.Hex()
		notification.Data["discount_amount"] = usage.DiscountAmount
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).WithPromoCode(code.Code).Warn("Failed to record promo owner notification")
	}

	if s.smsProvider != nil && code.OwnerPhone != "" {
		_, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
			To:      utils.NormalizePhone(code.OwnerPhone),
			Message: fmt.Sprintf("FinderID: your code %s was just used. You earn a reward when the recovery is paid.", code.Code),
		})
		if err != nil {
			s.logger.WithError(err).WithPromoCode(code.Code).Warn("Failed to send promo owner SMS")
		}
	}
}

func (s *notificationService) sendAlert(ctx context.Context, alert *models.RecoveryAlert, subject, title string) (string, error) {
	html, err := RenderRecoveryAlert(alert, title)
	if err != nil {
		return "", err
	}

	resp, err := s.mailer.Send(ctx, &mailer.EmailRequest{
		To:      s.opsMailbox,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		s.logger.WithError(err).WithItemID(alert.Item.ID).Error("Failed to send recovery alert email")
		return "", err
	}

	s.logger.LogNotificationEvent(s.opsMailbox, subject, resp.Status)

	return resp.MessageID, nil
}

func (s *notificationService) recordItemNotification(ctx context.Context, alert *models.RecoveryAlert, notifType models.NotificationType, subject string, sent bool) {
	status := models.NotificationStatusFailed
	if sent {
		status = models.NotificationStatusSent
	}

	notification := &models.Notification{
		UserID:  alert.Item.ReporterID,
		Type:    notifType,
		Status:  status,
		Title:   subject,
		Message: fmt.Sprintf("Item %s is now %s", alert.Item.CardNumber, alert.Item.Status),
		Data: map[string]interface{}{
			"item_id": alert.Item.ID.Hex(),
		},
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).WithItemID(alert.Item.ID).Warn("Failed to record item notification")
	}
}

// In-app inbox

func (s *notificationService) ListUserNotifications(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.notificationRepo.GetByUser(ctx, userID, params)
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, id primitive.ObjectID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *notificationService) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
