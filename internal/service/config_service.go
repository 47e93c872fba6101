package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fundbase/docportal/internal/events"
	"github.com/fundbase/docportal/internal/models"
)

// DefaultConfigName identifies the well-known fallback config assigned to
// startups without an explicit one.
const DefaultConfigName = "Configuração Padrão"

// ErrRevisionConflict is returned when a config update carries a stale
// revision, meaning another admin saved first.
var ErrRevisionConflict = errors.New("config was modified by another user")

var ErrConfigNotFound = errors.New("config not found")

type ConfigService struct {
	configs ConfigStore
	docs    DocumentStore
	users   UserStore
	bus     *events.Dispatcher
}

func NewConfigService(configs ConfigStore, docs DocumentStore, users UserStore, bus *events.Dispatcher) *ConfigService {
	return &ConfigService{configs: configs, docs: docs, users: users, bus: bus}
}

func (s *ConfigService) Create(name, description, createdBy string, categories []models.DocumentCategory) (*models.DocumentConfig, error) {
	if name == "" {
		return nil, errors.New("config name is required")
	}
	if err := validateCategories(categories); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	cfg := &models.DocumentConfig{
		Name:        name,
		Description: description,
		Categories:  categories,
		Revision:    1,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.configs.Create(cfg)
	if err != nil {
		return nil, err
	}
	cfg.ID = id
	return cfg, nil
}

func (s *ConfigService) List() ([]models.DocumentConfig, error) {
	return s.configs.FindAll()
}

func (s *ConfigService) Get(id string) (*models.DocumentConfig, error) {
	cfg, err := s.configs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}
	return cfg, nil
}

// Resolve finds the config for a startup: its assigned id first, then the
// default config, then nil. Missing configs are not an error here; the
// caller treats nil as "nothing to collect".
func (s *ConfigService) Resolve(configID string) (*models.DocumentConfig, error) {
	if configID != "" {
		cfg, err := s.configs.FindByID(configID)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}
	}
	return s.configs.FindByName(DefaultConfigName)
}

// Update replaces the whole category array. The caller sends back the
// revision it read; a mismatch means a concurrent edit won and the update
// is rejected. On success, orphaned upload records are reconciled.
func (s *ConfigService) Update(id, name, description string, categories []models.DocumentCategory, revision int) (*models.DocumentConfig, error) {
	cfg, err := s.configs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}
	if cfg.Revision != revision {
		return nil, ErrRevisionConflict
	}
	if err := validateCategories(categories); err != nil {
		return nil, err
	}

	if name != "" {
		cfg.Name = name
	}
	cfg.Description = description
	cfg.Categories = categories
	cfg.Revision = revision + 1
	cfg.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	ok, err := s.configs.UpdateIfRevision(id, cfg, revision)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRevisionConflict
	}

	if n, err := s.reconcileOrphans(cfg); err != nil {
		log.Printf("Warning: orphan reconciliation for config %s failed: %v", id, err)
	} else if n > 0 {
		log.Printf("Config %s: flagged %d orphaned upload(s)", id, n)
	}
	s.bus.Publish(events.ConfigUpdated, "", cfg.ID)

	return cfg, nil
}

// Delete removes a config. There is no in-use guard: startups still
// referencing it fall back to the default config on their next read.
func (s *ConfigService) Delete(id string) error {
	cfg, err := s.configs.FindByID(id)
	if err != nil {
		return err
	}
	if cfg == nil {
		return ErrConfigNotFound
	}
	return s.configs.Delete(id)
}

// reconcileOrphans flags upload records of startups assigned to cfg whose
// (category, item) pair no longer exists, and clears the flag on records
// that match again.
func (s *ConfigService) reconcileOrphans(cfg *models.DocumentConfig) (int, error) {
	startups, err := s.users.FindStartups()
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, startup := range startups {
		assigned, err := s.Resolve(startup.DocumentConfigID)
		if err != nil || assigned == nil || assigned.ID != cfg.ID {
			continue
		}
		docs, err := s.docs.FindByStartup(startup.ID)
		if err != nil {
			return flagged, err
		}
		for i := range docs {
			doc := &docs[i]
			if doc.IsExtra {
				continue
			}
			orphaned := cfg.Item(doc.Category, doc.Name) == nil
			if orphaned == doc.Orphaned {
				continue
			}
			if err := s.docs.SetOrphaned(doc.ID, orphaned); err != nil {
				return flagged, err
			}
			if orphaned {
				flagged++
			}
		}
	}
	return flagged, nil
}

func validateCategories(categories []models.DocumentCategory) error {
	seenCat := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if cat.ID == "" {
			return errors.New("category id is required")
		}
		if seenCat[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seenCat[cat.ID] = true

		seenItem := make(map[string]bool, len(cat.Documents))
		for _, item := range cat.Documents {
			if item.ID == "" {
				return fmt.Errorf("document item id is required in category %q", cat.ID)
			}
			if seenItem[item.ID] {
				return fmt.Errorf("duplicate document id %q in category %q", item.ID, cat.ID)
			}
			seenItem[item.ID] = true
		}
	}
	return nil
}

// SeedDefault creates the built-in default config on first boot.
func (s *ConfigService) SeedDefault(createdBy string) error {
	existing, err := s.configs.FindByName(DefaultConfigName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.Create(DefaultConfigName, "Lista padrão de documentos para due diligence", createdBy, DefaultCategories())
	return err
}
