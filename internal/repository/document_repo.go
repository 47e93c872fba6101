package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/models"
	"github.com/parisxmas/OxiDB/go/oxidb"
)

const DocumentsCollection = "_portal_documents"

type DocumentRepo struct {
	pool *db.Pool
}

func NewDocumentRepo(pool *db.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

func (r *DocumentRepo) EnsureIndexes() error {
	c := r.pool.Get()
	if err := c.CreateIndex(DocumentsCollection, "startupId"); err != nil {
		return err
	}
	return c.CreateCompositeIndex(DocumentsCollection, []string{"startupId", "category", "name"})
}

func (r *DocumentRepo) Create(doc *models.Document) (string, error) {
	c := r.pool.Get()
	d := documentToDoc(doc)
	result, err := c.Insert(DocumentsCollection, d)
	if err != nil {
		return "", err
	}
	return extractID(result), nil
}

func (r *DocumentRepo) FindByID(id string) (*models.Document, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(DocumentsCollection, map[string]any{"_id": toNumericID(id)})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToDocument(doc)
}

// FindByStartup returns one startup's records, newest first.
func (r *DocumentRepo) FindByStartup(startupID string) ([]models.Document, error) {
	c := r.pool.Get()
	docs, err := c.Find(DocumentsCollection, map[string]any{"startupId": startupID}, &oxidb.FindOptions{
		Sort: map[string]any{"uploadedAt": -1},
	})
	if err != nil {
		return nil, err
	}
	return collectDocuments(docs), nil
}

func (r *DocumentRepo) FindAll() ([]models.Document, error) {
	c := r.pool.Get()
	docs, err := c.Find(DocumentsCollection, map[string]any{}, &oxidb.FindOptions{
		Sort: map[string]any{"uploadedAt": -1},
	})
	if err != nil {
		return nil, err
	}
	return collectDocuments(docs), nil
}

// FindNonExtra returns the current non-extra record for a (startup,
// category, item) pair, or nil.
func (r *DocumentRepo) FindNonExtra(startupID, category, name string) (*models.Document, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(DocumentsCollection, map[string]any{
		"startupId": startupID,
		"category":  category,
		"name":      name,
		"isExtra":   false,
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToDocument(doc)
}

func (r *DocumentRepo) UpdateStatus(id, status string) error {
	c := r.pool.Get()
	_, err := c.Update(DocumentsCollection, map[string]any{"_id": toNumericID(id)},
		map[string]any{"$set": map[string]any{"status": status}})
	return err
}

func (r *DocumentRepo) SetOrphaned(id string, orphaned bool) error {
	c := r.pool.Get()
	_, err := c.Update(DocumentsCollection, map[string]any{"_id": toNumericID(id)},
		map[string]any{"$set": map[string]any{"orphaned": orphaned}})
	return err
}

func (r *DocumentRepo) Delete(id string) error {
	c := r.pool.Get()
	_, err := c.Delete(DocumentsCollection, map[string]any{"_id": toNumericID(id)})
	return err
}

func collectDocuments(docs []map[string]any) []models.Document {
	result := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		doc, err := docToDocument(d)
		if err != nil {
			continue
		}
		result = append(result, *doc)
	}
	return result
}

func documentToDoc(d *models.Document) map[string]any {
	data, _ := json.Marshal(d)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	// isExtra and orphaned must always be present for equality queries.
	doc["isExtra"] = d.IsExtra
	doc["orphaned"] = d.Orphaned
	return doc
}

func docToDocument(doc map[string]any) (*models.Document, error) {
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document doc: %w", err)
	}
	var d models.Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &d, nil
}
