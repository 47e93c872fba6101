package models

// GatewaySettings is the admin-editable override for the WhatsApp gateway.
// When BaseURL or ClientToken is empty the environment value applies.
type GatewaySettings struct {
	ID          string `json:"_id,omitempty"`
	Key         string `json:"key"`
	BaseURL     string `json:"baseUrl,omitempty"`
	ClientToken string `json:"clientToken,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	UpdatedAt   string `json:"updatedAt"`
}
