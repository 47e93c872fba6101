package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/models"
	"github.com/parisxmas/OxiDB/go/oxidb"
)

const NotificationsCollection = "_portal_notifications"

// NotificationRepo is the append-only send audit log.
type NotificationRepo struct {
	pool *db.Pool
}

func NewNotificationRepo(pool *db.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) EnsureIndexes() error {
	c := r.pool.Get()
	return c.CreateIndex(NotificationsCollection, "startupId")
}

func (r *NotificationRepo) Append(n *models.Notification) (string, error) {
	c := r.pool.Get()
	doc := notificationToDoc(n)
	result, err := c.Insert(NotificationsCollection, doc)
	if err != nil {
		return "", err
	}
	return extractID(result), nil
}

func (r *NotificationRepo) FindAll(limit int) ([]models.Notification, error) {
	c := r.pool.Get()
	opts := &oxidb.FindOptions{Sort: map[string]any{"sentAt": -1}}
	if limit > 0 {
		opts.Limit = &limit
	}
	docs, err := c.Find(NotificationsCollection, map[string]any{}, opts)
	if err != nil {
		return nil, err
	}
	return collectNotifications(docs), nil
}

func (r *NotificationRepo) FindByStartup(startupID string) ([]models.Notification, error) {
	c := r.pool.Get()
	docs, err := c.Find(NotificationsCollection, map[string]any{"startupId": startupID}, &oxidb.FindOptions{
		Sort: map[string]any{"sentAt": -1},
	})
	if err != nil {
		return nil, err
	}
	return collectNotifications(docs), nil
}

func collectNotifications(docs []map[string]any) []models.Notification {
	result := make([]models.Notification, 0, len(docs))
	for _, d := range docs {
		n, err := docToNotification(d)
		if err != nil {
			continue
		}
		result = append(result, *n)
	}
	return result
}

func notificationToDoc(n *models.Notification) map[string]any {
	data, _ := json.Marshal(n)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToNotification(doc map[string]any) (*models.Notification, error) {
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal notification doc: %w", err)
	}
	var n models.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &n, nil
}
