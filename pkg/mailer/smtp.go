package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPMailer(host string, port int, username, password, fromEmail, fromName string) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, request *EmailRequest) (*EmailResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messageID := uuid.NewString()

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", request.To)
	msg.SetHeader("Subject", request.Subject)
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@finderid>", messageID))
	msg.SetBody("text/html", request.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return &EmailResponse{
			Status: "failed",
			Error:  err.Error(),
		}, fmt.Errorf("failed to send email: %w", err)
	}

	return &EmailResponse{
		MessageID: messageID,
		Status:    "sent",
	}, nil
}
