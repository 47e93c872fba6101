package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/whatsapp"
)

// In-memory fakes for the store interfaces, shared by the service tests.

type fakeUserStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (s *fakeUserStore) FindStartups() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.Role == models.RoleStartup {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) Create(user *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *user
	c.ID = id
	s.users[id] = &c
	return id, nil
}

func (s *fakeUserStore) Update(id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	for k, v := range fields {
		sv, _ := v.(string)
		switch k {
		case "name":
			u.Name = sv
		case "phone":
			u.Phone = sv
		case "cnpj":
			u.CNPJ = sv
		case "whatsappGroupId":
			u.WhatsAppGroupID = sv
		case "documentConfigId":
			u.DocumentConfigID = sv
		case "status":
			u.Status = sv
		case "deadline":
			u.Deadline = sv
		case "lastLogin":
			u.LastLogin = sv
		}
	}
	return nil
}

type fakeConfigStore struct {
	mu      sync.Mutex
	seq     int
	configs map[string]*models.DocumentConfig
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{configs: map[string]*models.DocumentConfig{}}
}

func (s *fakeConfigStore) Create(cfg *models.DocumentConfig) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *cfg
	c.ID = id
	s.configs[id] = &c
	return id, nil
}

func (s *fakeConfigStore) FindAll() ([]models.DocumentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DocumentConfig
	for _, c := range s.configs {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeConfigStore) FindByID(id string) (*models.DocumentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.configs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeConfigStore) FindByName(name string) (*models.DocumentConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.configs {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeConfigStore) UpdateIfRevision(id string, cfg *models.DocumentConfig, expected int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.configs[id]
	if !ok || current.Revision != expected {
		return false, nil
	}
	c := *cfg
	c.ID = id
	s.configs[id] = &c
	return true, nil
}

func (s *fakeConfigStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.configs, id)
	return nil
}

type fakeDocumentStore struct {
	mu   sync.Mutex
	seq  int
	docs map[string]*models.Document
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: map[string]*models.Document{}}
}

func (s *fakeDocumentStore) Create(doc *models.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *doc
	c.ID = id
	s.docs[id] = &c
	return id, nil
}

func (s *fakeDocumentStore) FindByID(id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.docs[id]; ok {
		c := *d
		return &c, nil
	}
	return nil, nil
}

func (s *fakeDocumentStore) FindByStartup(startupID string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for _, d := range s.docs {
		if d.StartupID == startupID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeDocumentStore) FindAll() ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for _, d := range s.docs {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeDocumentStore) FindNonExtra(startupID, category, name string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if !d.IsExtra && d.StartupID == startupID && d.Category == category && d.Name == name {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeDocumentStore) UpdateStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	d.Status = status
	return nil
}

func (s *fakeDocumentStore) SetOrphaned(id string, orphaned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	d.Orphaned = orphaned
	return nil
}

func (s *fakeDocumentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("document %s not found", id)
	}
	delete(s.docs, id)
	return nil
}

type fakeTemplateStore struct {
	mu        sync.Mutex
	seq       int
	templates map[string]*models.MessageTemplate
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{templates: map[string]*models.MessageTemplate{}}
}

func (s *fakeTemplateStore) Create(tpl *models.MessageTemplate) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("%d", s.seq)
	c := *tpl
	c.ID = id
	s.templates[id] = &c
	return id, nil
}

func (s *fakeTemplateStore) FindAll() ([]models.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MessageTemplate
	for _, t := range s.templates {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeTemplateStore) FindByID(id string) (*models.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.templates[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (s *fakeTemplateStore) FindByType(tplType string) (*models.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.templates {
		if t.Type == tplType {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeTemplateStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.templates), nil
}

func (s *fakeTemplateStore) Update(id string, tpl *models.MessageTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return fmt.Errorf("template %s not found", id)
	}
	c := *tpl
	c.ID = id
	s.templates[id] = &c
	return nil
}

func (s *fakeTemplateStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, id)
	return nil
}

type fakeNotificationStore struct {
	mu      sync.Mutex
	seq     int
	records []models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (s *fakeNotificationStore) Append(n *models.Notification) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	c := *n
	c.ID = fmt.Sprintf("%d", s.seq)
	s.records = append(s.records, c)
	return c.ID, nil
}

func (s *fakeNotificationStore) FindAll(limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Notification(nil), s.records...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *fakeNotificationStore) FindByStartup(startupID string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.records {
		if n.StartupID == startupID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = append([]byte(nil), data...)
	return "http://blobs.local/" + path, nil
}

func (s *fakeBlobStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("object %s not found", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	s.deletes = append(s.deletes, path)
	return nil
}

// fakeGateway records sends and can fail selected targets.
type fakeGateway struct {
	mu          sync.Mutex
	sends       []string
	failTargets map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failTargets: map[string]bool{}}
}

func (g *fakeGateway) SendText(ctx context.Context, target, message string) (*whatsapp.SendResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sends = append(g.sends, target)
	if g.failTargets[target] {
		return &whatsapp.SendResult{Success: false, Error: "recipient unavailable"}, nil
	}
	return &whatsapp.SendResult{Success: true, MessageID: fmt.Sprintf("msg-%d", len(g.sends))}, nil
}

func (g *fakeGateway) FetchGroups(ctx context.Context, page, pageSize int) ([]whatsapp.Group, error) {
	return nil, nil
}

func (g *fakeGateway) InstanceStatus(ctx context.Context) (map[string]any, error) {
	return map[string]any{"connected": true}, nil
}
