package models

// Startup lifecycle statuses tracked by the admin back office.
const (
	StartupStatusPending     = "pending"
	StartupStatusInProgress  = "in_progress"
	StartupStatusCompleted   = "completed"
	StartupStatusUnderReview = "under_review"
)

const (
	RoleStartup = "startup"
	RoleAdmin   = "admin"
)

type User struct {
	ID               string `json:"_id,omitempty"`
	Email            string `json:"email"`
	PasswordHash     string `json:"passwordHash,omitempty"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	Phone            string `json:"phone,omitempty"`
	CNPJ             string `json:"cnpj,omitempty"`
	PhotoURL         string `json:"photoUrl,omitempty"`
	WhatsAppGroupID  string `json:"whatsappGroupId,omitempty"`
	DocumentConfigID string `json:"documentConfigId,omitempty"`
	Status           string `json:"status,omitempty"`
	Deadline         string `json:"deadline,omitempty"`
	LastLogin        string `json:"lastLogin,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

type UserResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	Phone            string `json:"phone,omitempty"`
	CNPJ             string `json:"cnpj,omitempty"`
	PhotoURL         string `json:"photoUrl,omitempty"`
	WhatsAppGroupID  string `json:"whatsappGroupId,omitempty"`
	DocumentConfigID string `json:"documentConfigId,omitempty"`
	Status           string `json:"status,omitempty"`
	Deadline         string `json:"deadline,omitempty"`
	LastLogin        string `json:"lastLogin,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		Phone:            u.Phone,
		CNPJ:             u.CNPJ,
		PhotoURL:         u.PhotoURL,
		WhatsAppGroupID:  u.WhatsAppGroupID,
		DocumentConfigID: u.DocumentConfigID,
		Status:           u.Status,
		Deadline:         u.Deadline,
		LastLogin:        u.LastLogin,
		CreatedAt:        u.CreatedAt,
	}
}
