package sms

import "context"

// Provider abstracts the outbound SMS gateway. The platform sends two kinds
// of messages: OTP codes and informational personnel alerts.
type Provider interface {
	SendSMS(ctx context.Context, request *Request) (*Response, error)
	SendBulkSMS(ctx context.Context, requests []*Request) ([]*Response, error)
}

type Request struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
	Type    string `json:"type"` // transactional, otp
}

type Response struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
