package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fundbase/docportal/internal/events"
	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/progress"
	"github.com/fundbase/docportal/internal/whatsapp"
)

var (
	ErrNoTarget        = errors.New("startup has no phone or WhatsApp group configured")
	ErrStartupNotFound = errors.New("startup not found")
)

// bulkPace is the fixed delay between sends in a bulk run; the gateway has
// no server-side rate limiting we can rely on.
const bulkPace = time.Second

type MessagingService struct {
	users         UserStore
	docs          DocumentStore
	notifications NotificationStore
	configs       *ConfigService
	templates     *TemplateService
	gateway       Gateway
	bus           *events.Dispatcher
	pace          time.Duration
}

func NewMessagingService(users UserStore, docs DocumentStore, notifications NotificationStore,
	configs *ConfigService, templates *TemplateService, gateway Gateway, bus *events.Dispatcher) *MessagingService {
	return &MessagingService{
		users:         users,
		docs:          docs,
		notifications: notifications,
		configs:       configs,
		templates:     templates,
		gateway:       gateway,
		bus:           bus,
		pace:          bulkPace,
	}
}

// Variables builds the substitution map for one startup: profile fields,
// document status lists, the pre-rendered bullet sections, and progress.
func (s *MessagingService) Variables(startup *models.User) (map[string]string, error) {
	cfg, err := s.configs.Resolve(startup.DocumentConfigID)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.FindByStartup(startup.ID)
	if err != nil {
		return nil, err
	}

	uploaded, missing := progress.Status(cfg, docs)
	summary := progress.Overall(cfg, docs)

	name := startup.Name
	if name == "" {
		name = "Startup"
	}
	deadline := "Não definido"
	if startup.Deadline != "" {
		deadline = startup.Deadline
	}

	return map[string]string{
		"name":                name,
		"email":               startup.Email,
		"phone":               startup.Phone,
		"cnpj":                startup.CNPJ,
		"uploadedDocs":        strings.Join(uploaded, ", "),
		"missingDocs":         strings.Join(missing, ", "),
		"uploadedDocsSection": renderSection("✅ *Documentos já recebidos:*", uploaded),
		"missingDocsSection":  renderSection("📋 *Documentos pendentes:*", missing),
		"deadline":            deadline,
		"progress":            fmt.Sprintf("%d%%", summary.Percent),
	}, nil
}

// renderSection pre-renders a bullet list block with a banner line and a
// trailing blank line; empty lists render to nothing.
func renderSection(banner string, entries []string) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(banner)
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString("• ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// Preview renders a template for a startup without sending anything.
func (s *MessagingService) Preview(startupID, tplType string) (string, error) {
	startup, err := s.findStartup(startupID)
	if err != nil {
		return "", err
	}
	tpl, err := s.templates.ByType(tplType)
	if err != nil {
		return "", err
	}
	vars, err := s.Variables(startup)
	if err != nil {
		return "", err
	}
	return whatsapp.FormatMessage(tpl.Content, vars), nil
}

// SendTemplate renders and sends a template-typed message to one startup,
// appending an audit record either way. Both successful and failed sends
// are logged; failures keep the gateway error.
func (s *MessagingService) SendTemplate(ctx context.Context, startupID, tplType string) (*models.Notification, error) {
	startup, err := s.findStartup(startupID)
	if err != nil {
		return nil, err
	}
	tpl, err := s.templates.ByType(tplType)
	if err != nil {
		return nil, err
	}
	vars, err := s.Variables(startup)
	if err != nil {
		return nil, err
	}
	message := whatsapp.FormatMessage(tpl.Content, vars)
	return s.send(ctx, startup, tplType, message)
}

// SendCustom sends an arbitrary message body to one startup.
func (s *MessagingService) SendCustom(ctx context.Context, startupID, message string) (*models.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message cannot be empty")
	}
	startup, err := s.findStartup(startupID)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, startup, "custom", message)
}

// SendReminder is the single-startup admin action.
func (s *MessagingService) SendReminder(ctx context.Context, startupID string) (*models.Notification, error) {
	return s.SendTemplate(ctx, startupID, models.TemplateReminder)
}

type BulkResult struct {
	Eligible int `json:"eligible"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
}

// SendBulkReminders messages every startup whose status is pending or
// in_progress, sequentially, pacing sends one second apart. Individual
// failures are recorded and skipped, never halting the loop.
func (s *MessagingService) SendBulkReminders(ctx context.Context) (*BulkResult, error) {
	startups, err := s.users.FindStartups()
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	for _, startup := range startups {
		if startup.Status != models.StartupStatusPending && startup.Status != models.StartupStatusInProgress {
			continue
		}
		result.Eligible++

		n, err := s.SendReminder(ctx, startup.ID)
		if err != nil || n.Status != models.NotificationSent {
			result.Failed++
			log.Printf("Bulk reminder: send to startup %s failed: %v", startup.ID, err)
		} else {
			result.Sent++
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(s.pace):
		}
	}
	return result, nil
}

func (s *MessagingService) Log(limit int) ([]models.Notification, error) {
	return s.notifications.FindAll(limit)
}

func (s *MessagingService) LogByStartup(startupID string) ([]models.Notification, error) {
	return s.notifications.FindByStartup(startupID)
}

func (s *MessagingService) findStartup(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrStartupNotFound
	}
	return user, nil
}

// send picks the target (linked group wins over phone), calls the gateway,
// and appends the audit record.
func (s *MessagingService) send(ctx context.Context, startup *models.User, msgType, message string) (*models.Notification, error) {
	target := startup.WhatsAppGroupID
	if target == "" {
		if startup.Phone == "" {
			return nil, ErrNoTarget
		}
		target = whatsapp.NormalizePhone(startup.Phone)
	}

	notification := &models.Notification{
		StartupID: startup.ID,
		Type:      msgType,
		Message:   message,
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	}

	result, err := s.gateway.SendText(ctx, target, message)
	switch {
	case err != nil:
		notification.Status = models.NotificationFailed
		notification.Error = err.Error()
		s.bus.Publish(events.ReminderFailed, startup.ID, err.Error())
	case !result.Success:
		notification.Status = models.NotificationFailed
		notification.Error = result.Error
		s.bus.Publish(events.ReminderFailed, startup.ID, result.Error)
	default:
		notification.Status = models.NotificationSent
		notification.WhatsAppMessageID = result.MessageID
		s.bus.Publish(events.ReminderSent, startup.ID, msgType)
	}

	id, appendErr := s.notifications.Append(notification)
	if appendErr != nil {
		log.Printf("Warning: append notification for startup %s: %v", startup.ID, appendErr)
	}
	notification.ID = id
	return notification, nil
}
