package service

import (
	"context"
	"io"

	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/whatsapp"
)

// Store interfaces mirror the repository types so services can be tested
// against in-memory fakes.

type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindStartups() ([]models.User, error)
	Create(user *models.User) (string, error)
	Update(id string, fields map[string]any) error
}

type ConfigStore interface {
	Create(cfg *models.DocumentConfig) (string, error)
	FindAll() ([]models.DocumentConfig, error)
	FindByID(id string) (*models.DocumentConfig, error)
	FindByName(name string) (*models.DocumentConfig, error)
	UpdateIfRevision(id string, cfg *models.DocumentConfig, expected int) (bool, error)
	Delete(id string) error
}

type DocumentStore interface {
	Create(doc *models.Document) (string, error)
	FindByID(id string) (*models.Document, error)
	FindByStartup(startupID string) ([]models.Document, error)
	FindAll() ([]models.Document, error)
	FindNonExtra(startupID, category, name string) (*models.Document, error)
	UpdateStatus(id, status string) error
	SetOrphaned(id string, orphaned bool) error
	Delete(id string) error
}

type TemplateStore interface {
	Create(tpl *models.MessageTemplate) (string, error)
	FindAll() ([]models.MessageTemplate, error)
	FindByID(id string) (*models.MessageTemplate, error)
	FindByType(tplType string) (*models.MessageTemplate, error)
	Count() (int, error)
	Update(id string, tpl *models.MessageTemplate) error
	Delete(id string) error
}

type NotificationStore interface {
	Append(n *models.Notification) (string, error)
	FindAll(limit int) ([]models.Notification, error)
	FindByStartup(startupID string) ([]models.Notification, error)
}

// BlobStore is the uploaded-file storage backend.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// Gateway is the WhatsApp send/receive integration.
type Gateway interface {
	SendText(ctx context.Context, target, message string) (*whatsapp.SendResult, error)
	FetchGroups(ctx context.Context, page, pageSize int) ([]whatsapp.Group, error)
	InstanceStatus(ctx context.Context) (map[string]any, error)
}
