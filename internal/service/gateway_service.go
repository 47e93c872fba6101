package service

import (
	"context"
	"time"

	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/whatsapp"
)

type SettingsStore interface {
	GetGateway() (*models.GatewaySettings, error)
	SaveGateway(s *models.GatewaySettings) error
}

// GatewayService resolves the effective gateway credentials and proxies
// the gateway operations through a client built from them. The admin-saved
// override wins over the environment.
type GatewayService struct {
	settings   SettingsStore
	envBaseURL string
	envToken   string
}

func NewGatewayService(settings SettingsStore, envBaseURL, envToken string) *GatewayService {
	return &GatewayService{settings: settings, envBaseURL: envBaseURL, envToken: envToken}
}

func (g *GatewayService) client() *whatsapp.Client {
	baseURL, token := g.envBaseURL, g.envToken
	if saved, err := g.settings.GetGateway(); err == nil && saved != nil {
		if saved.BaseURL != "" {
			baseURL = saved.BaseURL
		}
		if saved.ClientToken != "" {
			token = saved.ClientToken
		}
	}
	return whatsapp.NewClient(baseURL, token)
}

func (g *GatewayService) SendText(ctx context.Context, target, message string) (*whatsapp.SendResult, error) {
	return g.client().SendText(ctx, target, message)
}

func (g *GatewayService) FetchGroups(ctx context.Context, page, pageSize int) ([]whatsapp.Group, error) {
	return g.client().FetchGroups(ctx, page, pageSize)
}

func (g *GatewayService) InstanceStatus(ctx context.Context) (map[string]any, error) {
	return g.client().InstanceStatus(ctx)
}

// Settings returns the stored override; the token is masked for display.
func (g *GatewayService) Settings() (*models.GatewaySettings, error) {
	saved, err := g.settings.GetGateway()
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = &models.GatewaySettings{}
	}
	if saved.ClientToken != "" {
		saved.ClientToken = maskToken(saved.ClientToken)
	}
	return saved, nil
}

func (g *GatewayService) SaveSettings(baseURL, clientToken, updatedBy string) error {
	return g.settings.SaveGateway(&models.GatewaySettings{
		BaseURL:     baseURL,
		ClientToken: clientToken,
		UpdatedBy:   updatedBy,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
