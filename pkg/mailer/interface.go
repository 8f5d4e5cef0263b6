package mailer

import "context"

type Mailer interface {
	Send(ctx context.Context, request *EmailRequest) (*EmailResponse, error)
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type EmailResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
