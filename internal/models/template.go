package models

// Message template types, one per notification flavor.
const (
	TemplateReminder   = "reminder"
	TemplateCompletion = "completion"
	TemplateWelcome    = "welcome"
	TemplateFollowUp   = "follow_up"
	TemplateDeadline   = "deadline"
)

// MessageTemplate content uses {variable} placeholders. Variables is
// documentation for the admin UI and is not validated against Content.
type MessageTemplate struct {
	ID        string   `json:"_id,omitempty"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func ValidTemplateType(t string) bool {
	switch t {
	case TemplateReminder, TemplateCompletion, TemplateWelcome, TemplateFollowUp, TemplateDeadline:
		return true
	}
	return false
}
