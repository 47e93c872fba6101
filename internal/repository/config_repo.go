package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/models"
	"github.com/parisxmas/OxiDB/go/oxidb"
)

const ConfigsCollection = "_portal_document_configs"

type ConfigRepo struct {
	pool *db.Pool
}

func NewConfigRepo(pool *db.Pool) *ConfigRepo {
	return &ConfigRepo{pool: pool}
}

func (r *ConfigRepo) EnsureIndexes() error {
	c := r.pool.Get()
	return c.CreateIndex(ConfigsCollection, "name")
}

func (r *ConfigRepo) Create(cfg *models.DocumentConfig) (string, error) {
	c := r.pool.Get()
	doc := configToDoc(cfg)
	result, err := c.Insert(ConfigsCollection, doc)
	if err != nil {
		return "", err
	}
	return extractID(result), nil
}

func (r *ConfigRepo) FindAll() ([]models.DocumentConfig, error) {
	c := r.pool.Get()
	docs, err := c.Find(ConfigsCollection, map[string]any{}, &oxidb.FindOptions{
		Sort: map[string]any{"createdAt": -1},
	})
	if err != nil {
		return nil, err
	}
	configs := make([]models.DocumentConfig, 0, len(docs))
	for _, d := range docs {
		cfg, err := docToConfig(d)
		if err != nil {
			continue
		}
		configs = append(configs, *cfg)
	}
	return configs, nil
}

func (r *ConfigRepo) FindByID(id string) (*models.DocumentConfig, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(ConfigsCollection, map[string]any{"_id": toNumericID(id)})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToConfig(doc)
}

func (r *ConfigRepo) FindByName(name string) (*models.DocumentConfig, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(ConfigsCollection, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToConfig(doc)
}

// UpdateIfRevision writes cfg only when the stored revision still matches
// expected. Returns false when another writer got there first.
func (r *ConfigRepo) UpdateIfRevision(id string, cfg *models.DocumentConfig, expected int) (bool, error) {
	c := r.pool.Get()
	result, err := c.Update(ConfigsCollection,
		map[string]any{"_id": toNumericID(id), "revision": expected},
		map[string]any{"$set": configToDoc(cfg)})
	if err != nil {
		return false, err
	}
	return updatedCount(result) > 0, nil
}

func (r *ConfigRepo) Delete(id string) error {
	c := r.pool.Get()
	_, err := c.Delete(ConfigsCollection, map[string]any{"_id": toNumericID(id)})
	return err
}

func updatedCount(result map[string]any) int {
	for _, key := range []string{"modified", "modifiedCount", "updated", "count"} {
		if n, ok := result[key].(float64); ok {
			return int(n)
		}
	}
	return 0
}

func configToDoc(cfg *models.DocumentConfig) map[string]any {
	data, _ := json.Marshal(cfg)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToConfig(doc map[string]any) (*models.DocumentConfig, error) {
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal config doc: %w", err)
	}
	var cfg models.DocumentConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
