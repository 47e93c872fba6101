package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/whatsapp"
)

// In-memory stores backing the handler tests. Handlers run single-goroutine
// here, so no locking.

type memUserStore struct {
	seq   int
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) FindByID(id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (s *memUserStore) FindStartups() ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if u.Role == models.RoleStartup {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memUserStore) Create(user *models.User) (string, error) {
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *user
	c.ID = id
	s.users[id] = &c
	return id, nil
}

func (s *memUserStore) Update(id string, fields map[string]any) error {
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	for k, v := range fields {
		sv, _ := v.(string)
		switch k {
		case "status":
			u.Status = sv
		case "lastLogin":
			u.LastLogin = sv
		case "documentConfigId":
			u.DocumentConfigID = sv
		case "whatsappGroupId":
			u.WhatsAppGroupID = sv
		}
	}
	return nil
}

type memConfigStore struct {
	seq     int
	configs map[string]*models.DocumentConfig
}

func newMemConfigStore() *memConfigStore {
	return &memConfigStore{configs: map[string]*models.DocumentConfig{}}
}

func (s *memConfigStore) Create(cfg *models.DocumentConfig) (string, error) {
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *cfg
	c.ID = id
	s.configs[id] = &c
	return id, nil
}

func (s *memConfigStore) FindAll() ([]models.DocumentConfig, error) {
	var out []models.DocumentConfig
	for _, c := range s.configs {
		out = append(out, *c)
	}
	return out, nil
}

func (s *memConfigStore) FindByID(id string) (*models.DocumentConfig, error) {
	if c, ok := s.configs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *memConfigStore) FindByName(name string) (*models.DocumentConfig, error) {
	for _, c := range s.configs {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memConfigStore) UpdateIfRevision(id string, cfg *models.DocumentConfig, expected int) (bool, error) {
	current, ok := s.configs[id]
	if !ok || current.Revision != expected {
		return false, nil
	}
	c := *cfg
	c.ID = id
	s.configs[id] = &c
	return true, nil
}

func (s *memConfigStore) Delete(id string) error {
	delete(s.configs, id)
	return nil
}

type memDocStore struct {
	seq  int
	docs map[string]*models.Document
}

func newMemDocStore() *memDocStore {
	return &memDocStore{docs: map[string]*models.Document{}}
}

func (s *memDocStore) Create(doc *models.Document) (string, error) {
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *doc
	c.ID = id
	s.docs[id] = &c
	return id, nil
}

func (s *memDocStore) FindByID(id string) (*models.Document, error) {
	if d, ok := s.docs[id]; ok {
		c := *d
		return &c, nil
	}
	return nil, nil
}

func (s *memDocStore) FindByStartup(startupID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range s.docs {
		if d.StartupID == startupID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memDocStore) FindAll() ([]models.Document, error) {
	var out []models.Document
	for _, d := range s.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (s *memDocStore) FindNonExtra(startupID, category, name string) (*models.Document, error) {
	for _, d := range s.docs {
		if !d.IsExtra && d.StartupID == startupID && d.Category == category && d.Name == name {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memDocStore) UpdateStatus(id, status string) error {
	d, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	d.Status = status
	return nil
}

func (s *memDocStore) SetOrphaned(id string, orphaned bool) error {
	d, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	d.Orphaned = orphaned
	return nil
}

func (s *memDocStore) Delete(id string) error {
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("document %s not found", id)
	}
	delete(s.docs, id)
	return nil
}

type memBlobStore struct {
	objects map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (s *memBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.objects[path] = append([]byte(nil), data...)
	return "http://blobs.local/" + path, nil
}

func (s *memBlobStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("object %s not found", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memBlobStore) Delete(ctx context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

type memTemplateStore struct {
	seq       int
	templates map[string]*models.MessageTemplate
}

func newMemTemplateStore() *memTemplateStore {
	return &memTemplateStore{templates: map[string]*models.MessageTemplate{}}
}

func (s *memTemplateStore) Create(tpl *models.MessageTemplate) (string, error) {
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *tpl
	c.ID = id
	s.templates[id] = &c
	return id, nil
}

func (s *memTemplateStore) FindAll() ([]models.MessageTemplate, error) {
	var out []models.MessageTemplate
	for _, t := range s.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (s *memTemplateStore) FindByID(id string) (*models.MessageTemplate, error) {
	if t, ok := s.templates[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (s *memTemplateStore) FindByType(tplType string) (*models.MessageTemplate, error) {
	for _, t := range s.templates {
		if t.Type == tplType {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memTemplateStore) Count() (int, error) {
	return len(s.templates), nil
}

func (s *memTemplateStore) Update(id string, tpl *models.MessageTemplate) error {
	if _, ok := s.templates[id]; !ok {
		return fmt.Errorf("template %s not found", id)
	}
	c := *tpl
	c.ID = id
	s.templates[id] = &c
	return nil
}

func (s *memTemplateStore) Delete(id string) error {
	delete(s.templates, id)
	return nil
}

type memNotificationStore struct {
	seq     int
	records []models.Notification
}

func newMemNotificationStore() *memNotificationStore {
	return &memNotificationStore{}
}

func (s *memNotificationStore) Append(n *models.Notification) (string, error) {
	s.seq++
	c := *n
	c.ID = fmt.Sprintf("%d", s.seq)
	s.records = append(s.records, c)
	return c.ID, nil
}

func (s *memNotificationStore) FindAll(limit int) ([]models.Notification, error) {
	out := append([]models.Notification(nil), s.records...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *memNotificationStore) FindByStartup(startupID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range s.records {
		if n.StartupID == startupID {
			out = append(out, n)
		}
	}
	return out, nil
}

// okGateway accepts every send.
type okGateway struct {
	sends []string
}

func (g *okGateway) SendText(ctx context.Context, target, message string) (*whatsapp.SendResult, error) {
	g.sends = append(g.sends, target)
	return &whatsapp.SendResult{Success: true, MessageID: fmt.Sprintf("msg-%d", len(g.sends))}, nil
}

func (g *okGateway) FetchGroups(ctx context.Context, page, pageSize int) ([]whatsapp.Group, error) {
	return nil, nil
}

func (g *okGateway) InstanceStatus(ctx context.Context) (map[string]any, error) {
	return map[string]any{"connected": true}, nil
}

// authedRequest builds a request already carrying session claims, the way
// auth.Middleware would hand it to a handler.
func authedRequest(method, target string, claims *auth.Claims, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(context.WithValue(r.Context(), auth.UserContextKey, claims))
}
