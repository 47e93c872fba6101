package models

// Upload record statuses driven by admin review.
const (
	DocStatusPending  = "pending"
	DocStatusUploaded = "uploaded"
	DocStatusVerified = "verified"
	DocStatusRejected = "rejected"
)

// Document is one uploaded file. Category holds the category id and Name
// holds the document item id; the display name lives on the config item.
type Document struct {
	ID               string `json:"_id,omitempty"`
	StartupID        string `json:"startupId"`
	Category         string `json:"category"`
	Name             string `json:"name"`
	FileURL          string `json:"fileUrl"`
	FilePath         string `json:"filePath"`
	FileSize         int64  `json:"fileSize"`
	FileType         string `json:"fileType"`
	OriginalFilename string `json:"originalFilename"`
	Status           string `json:"status"`
	Required         bool   `json:"required"`
	IsExtra          bool   `json:"isExtra"`
	Orphaned         bool   `json:"orphaned,omitempty"`
	UploadedAt       string `json:"uploadedAt"`
}

func ValidDocStatus(s string) bool {
	switch s {
	case DocStatusPending, DocStatusUploaded, DocStatusVerified, DocStatusRejected:
		return true
	}
	return false
}
