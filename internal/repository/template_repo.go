package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/models"
	"github.com/parisxmas/OxiDB/go/oxidb"
)

const TemplatesCollection = "_portal_message_templates"

type TemplateRepo struct {
	pool *db.Pool
}

func NewTemplateRepo(pool *db.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

func (r *TemplateRepo) EnsureIndexes() error {
	c := r.pool.Get()
	return c.CreateIndex(TemplatesCollection, "type")
}

func (r *TemplateRepo) Create(tpl *models.MessageTemplate) (string, error) {
	c := r.pool.Get()
	doc := templateToDoc(tpl)
	result, err := c.Insert(TemplatesCollection, doc)
	if err != nil {
		return "", err
	}
	return extractID(result), nil
}

func (r *TemplateRepo) FindAll() ([]models.MessageTemplate, error) {
	c := r.pool.Get()
	docs, err := c.Find(TemplatesCollection, map[string]any{}, &oxidb.FindOptions{
		Sort: map[string]any{"createdAt": 1},
	})
	if err != nil {
		return nil, err
	}
	templates := make([]models.MessageTemplate, 0, len(docs))
	for _, d := range docs {
		tpl, err := docToTemplate(d)
		if err != nil {
			continue
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}

func (r *TemplateRepo) FindByID(id string) (*models.MessageTemplate, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(TemplatesCollection, map[string]any{"_id": toNumericID(id)})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToTemplate(doc)
}

// FindByType returns the first template of the given type, or nil.
func (r *TemplateRepo) FindByType(tplType string) (*models.MessageTemplate, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(TemplatesCollection, map[string]any{"type": tplType})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToTemplate(doc)
}

func (r *TemplateRepo) Count() (int, error) {
	c := r.pool.Get()
	return c.Count(TemplatesCollection, map[string]any{})
}

func (r *TemplateRepo) Update(id string, tpl *models.MessageTemplate) error {
	c := r.pool.Get()
	_, err := c.Update(TemplatesCollection, map[string]any{"_id": toNumericID(id)},
		map[string]any{"$set": templateToDoc(tpl)})
	return err
}

func (r *TemplateRepo) Delete(id string) error {
	c := r.pool.Get()
	_, err := c.Delete(TemplatesCollection, map[string]any{"_id": toNumericID(id)})
	return err
}

func templateToDoc(t *models.MessageTemplate) map[string]any {
	data, _ := json.Marshal(t)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToTemplate(doc map[string]any) (*models.MessageTemplate, error) {
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal template doc: %w", err)
	}
	var t models.MessageTemplate
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal template: %w", err)
	}
	return &t, nil
}
