package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/models"
)

const SettingsCollection = "_portal_settings"

const GatewaySettingsKey = "whatsapp_gateway"

// SettingsRepo holds the admin-saved gateway override.
type SettingsRepo struct {
	pool *db.Pool
}

func NewSettingsRepo(pool *db.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (r *SettingsRepo) GetGateway() (*models.GatewaySettings, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(SettingsCollection, map[string]any{"key": GatewaySettingsKey})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal settings doc: %w", err)
	}
	var s models.GatewaySettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) SaveGateway(s *models.GatewaySettings) error {
	c := r.pool.Get()
	s.Key = GatewaySettingsKey

	data, _ := json.Marshal(s)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")

	existing, err := c.FindOne(SettingsCollection, map[string]any{"key": GatewaySettingsKey})
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = c.Insert(SettingsCollection, doc)
		return err
	}
	_, err = c.Update(SettingsCollection, map[string]any{"key": GatewaySettingsKey}, map[string]any{"$set": doc})
	return err
}
