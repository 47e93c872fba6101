package models

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Notification is one append-only audit record of a WhatsApp send attempt.
type Notification struct {
	ID                string `json:"_id,omitempty"`
	StartupID         string `json:"startupId"`
	Type              string `json:"type"`
	Message           string `json:"message"`
	Status            string `json:"status"`
	WhatsAppMessageID string `json:"whatsappMessageId,omitempty"`
	Error             string `json:"error,omitempty"`
	SentAt            string `json:"sentAt"`
}
