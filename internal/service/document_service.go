package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/fundbase/docportal/internal/events"
	"github.com/fundbase/docportal/internal/models"
	"github.com/google/uuid"
)

const maxFileSize = 10 << 20 // 10MB

var ErrDocumentNotFound = errors.New("document not found")

var allowedFileTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type DocumentService struct {
	docs    DocumentStore
	configs *ConfigService
	blobs   BlobStore
	bus     *events.Dispatcher
}

func NewDocumentService(docs DocumentStore, configs *ConfigService, blobs BlobStore, bus *events.Dispatcher) *DocumentService {
	return &DocumentService{docs: docs, configs: configs, blobs: blobs, bus: bus}
}

type UploadRequest struct {
	StartupID        string
	ConfigID         string // the startup's assigned config id, may be empty
	Category         string
	Item             string // document item id; stored in the record's name field
	IsExtra          bool
	Data             []byte
	ContentType      string
	OriginalFilename string
}

// Upload stores the file and its record. A non-extra upload for a pair
// that already has one replaces the previous record and its blob (last
// write wins); extras always accumulate.
func (s *DocumentService) Upload(ctx context.Context, req UploadRequest) (*models.Document, error) {
	if len(req.Data) == 0 {
		return nil, errors.New("file data is empty")
	}
	if int64(len(req.Data)) > maxFileSize {
		return nil, errors.New("file exceeds the 10MB limit")
	}
	if !allowedFileTypes[req.ContentType] {
		return nil, fmt.Errorf("file type %q is not allowed", req.ContentType)
	}
	if req.Category == "" || req.Item == "" {
		return nil, errors.New("category and document are required")
	}

	required := false
	if !req.IsExtra {
		cfg, err := s.configs.Resolve(req.ConfigID)
		if err != nil {
			return nil, err
		}
		var item *models.DocumentItem
		if cfg != nil {
			item = cfg.Item(req.Category, req.Item)
		}
		if item == nil {
			return nil, errors.New("unknown category or document for this config")
		}
		required = item.Required
	}

	path := fmt.Sprintf("documents/%s/%s/%s_%s_%s",
		req.StartupID, req.Category, req.Item, uuid.New().String(), sanitizeFilename(req.OriginalFilename))
	url, err := s.blobs.Put(ctx, path, req.Data, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}

	doc := &models.Document{
		StartupID:        req.StartupID,
		Category:         req.Category,
		Name:             req.Item,
		FileURL:          url,
		FilePath:         path,
		FileSize:         int64(len(req.Data)),
		FileType:         req.ContentType,
		OriginalFilename: req.OriginalFilename,
		Status:           models.DocStatusUploaded,
		Required:         required,
		IsExtra:          req.IsExtra,
		UploadedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	// Replace-not-append for non-extra uploads: remove the previous record
	// and blob for this pair before inserting the new one.
	if !req.IsExtra {
		previous, err := s.docs.FindNonExtra(req.StartupID, req.Category, req.Item)
		if err != nil {
			return nil, err
		}
		if previous != nil {
			if err := s.blobs.Delete(ctx, previous.FilePath); err != nil {
				log.Printf("Warning: delete replaced blob %s: %v", previous.FilePath, err)
			}
			if err := s.docs.Delete(previous.ID); err != nil {
				return nil, err
			}
		}
	}

	id, err := s.docs.Create(doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	s.bus.Publish(events.DocumentUploaded, req.StartupID, req.Item)
	return doc, nil
}

func (s *DocumentService) ListByStartup(startupID string) ([]models.Document, error) {
	return s.docs.FindByStartup(startupID)
}

func (s *DocumentService) ListAll() ([]models.Document, error) {
	return s.docs.FindAll()
}

func (s *DocumentService) Get(id string) (*models.Document, error) {
	doc, err := s.docs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// Download streams the backing file.
func (s *DocumentService) Download(ctx context.Context, id string) (io.ReadCloser, *models.Document, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.blobs.Get(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("download blob: %w", err)
	}
	return reader, doc, nil
}

// UpdateStatus is the admin review action.
func (s *DocumentService) UpdateStatus(id, status string) error {
	if !models.ValidDocStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.docs.UpdateStatus(doc.ID, status)
}

// Delete removes one record and its backing file.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, doc.FilePath); err != nil {
		log.Printf("Warning: delete blob %s: %v", doc.FilePath, err)
	}
	if err := s.docs.Delete(doc.ID); err != nil {
		return err
	}
	s.bus.Publish(events.DocumentDeleted, doc.StartupID, doc.Name)
	return nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "file"
	}
	return name
}
