package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fundbase/docportal/internal/models"
)

var ErrTemplateNotFound = errors.New("template not found")

type TemplateService struct {
	templates TemplateStore
	seedOnce  sync.Once
}

func NewTemplateService(templates TemplateStore) *TemplateService {
	return &TemplateService{templates: templates}
}

// List returns all templates, seeding the five defaults when the store is
// empty. The seed runs at most once per process and re-checks the count
// under the Once, so a concurrent first read cannot duplicate it.
func (s *TemplateService) List() ([]models.MessageTemplate, error) {
	templates, err := s.templates.FindAll()
	if err != nil {
		return nil, err
	}
	if len(templates) > 0 {
		return templates, nil
	}

	var seedErr error
	s.seedOnce.Do(func() {
		count, err := s.templates.Count()
		if err != nil {
			seedErr = err
			return
		}
		if count > 0 {
			return
		}
		log.Printf("Seeding %d default message templates", len(DefaultTemplates()))
		now := time.Now().UTC().Format(time.RFC3339)
		for _, tpl := range DefaultTemplates() {
			tpl.CreatedAt = now
			tpl.UpdatedAt = now
			if _, err := s.templates.Create(&tpl); err != nil {
				seedErr = err
				return
			}
		}
	})
	if seedErr != nil {
		return nil, seedErr
	}
	return s.templates.FindAll()
}

func (s *TemplateService) Create(name, tplType, content string, variables []string) (*models.MessageTemplate, error) {
	if name == "" || content == "" {
		return nil, errors.New("template name and content are required")
	}
	if !models.ValidTemplateType(tplType) {
		return nil, fmt.Errorf("invalid template type %q", tplType)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	tpl := &models.MessageTemplate{
		Name:      name,
		Type:      tplType,
		Content:   content,
		Variables: variables,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.templates.Create(tpl)
	if err != nil {
		return nil, err
	}
	tpl.ID = id
	return tpl, nil
}

func (s *TemplateService) Update(id, name, content string, variables []string) (*models.MessageTemplate, error) {
	tpl, err := s.templates.FindByID(id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	if name != "" {
		tpl.Name = name
	}
	if content != "" {
		tpl.Content = content
	}
	if variables != nil {
		tpl.Variables = variables
	}
	tpl.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.templates.Update(id, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *TemplateService) Delete(id string) error {
	tpl, err := s.templates.FindByID(id)
	if err != nil {
		return err
	}
	if tpl == nil {
		return ErrTemplateNotFound
	}
	return s.templates.Delete(id)
}

// ByType returns the stored template for a type, falling back to the
// built-in default so messaging never fails on an unseeded store.
func (s *TemplateService) ByType(tplType string) (*models.MessageTemplate, error) {
	if !models.ValidTemplateType(tplType) {
		return nil, fmt.Errorf("invalid template type %q", tplType)
	}
	tpl, err := s.templates.FindByType(tplType)
	if err != nil {
		return nil, err
	}
	if tpl != nil {
		return tpl, nil
	}
	for _, d := range DefaultTemplates() {
		if d.Type == tplType {
			d := d
			return &d, nil
		}
	}
	return nil, ErrTemplateNotFound
}
