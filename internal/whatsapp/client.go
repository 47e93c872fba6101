// Package whatsapp is a client for a Z-API style WhatsApp gateway.
// The gateway authenticates with a static client-token header; targets are
// direct phone numbers or group identifiers, both sent through /send-text.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Group struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsGroup      bool   `json:"isGroup"`
	Participants int    `json:"participants"`
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ErrNotConfigured is returned when neither the environment nor the saved
// settings provide a base URL and client token.
var ErrNotConfigured = errors.New("whatsapp gateway not configured")

type Client struct {
	baseURL     string
	clientToken string
	httpClient  *http.Client
}

func NewClient(baseURL, clientToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		clientToken: clientToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) configured() bool {
	return c.baseURL != "" && c.clientToken != ""
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("client-token", c.clientToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, resp.Status)
	}
	return data, nil
}

// FetchGroups lists WhatsApp groups. The gateway wraps the list in one of
// several envelopes depending on version, so all known shapes are accepted.
func (c *Client) FetchGroups(ctx context.Context, page, pageSize int) ([]Group, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/groups?page=%d&pageSize=%d", page, pageSize), nil)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("parse groups response: %w", err)
		}
		found := false
		for _, key := range []string{"groups", "data", "result"} {
			if inner, ok := envelope[key]; ok {
				if err := json.Unmarshal(inner, &raw); err == nil {
					found = true
					break
				}
			}
		}
		if !found {
			return nil, errors.New("unexpected groups response format")
		}
	}

	groups := make([]Group, 0, len(raw))
	for _, g := range raw {
		groups = append(groups, Group{
			ID:           firstString(g, "id", "groupId", "chatId"),
			Name:         firstStringDefault(g, "Grupo sem nome", "name", "subject", "title"),
			IsGroup:      true,
			Participants: participantCount(g),
		})
	}
	return groups, nil
}

// SendText sends a plain text message to a phone number or group id.
func (c *Client) SendText(ctx context.Context, target, message string) (*SendResult, error) {
	payload := map[string]string{"phone": target, "message": message}
	data, err := c.do(ctx, http.MethodPost, "/send-text", payload)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Success   *bool  `json:"success"`
		MessageID string `json:"messageId"`
		ID        string `json:"id"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse send response: %w", err)
	}

	result := &SendResult{Success: true, MessageID: raw.MessageID, Error: raw.Error}
	if raw.Success != nil {
		result.Success = *raw.Success
	}
	if result.MessageID == "" {
		result.MessageID = raw.ID
	}
	if result.Error != "" {
		result.Success = false
	}
	return result, nil
}

// InstanceStatus returns the gateway's free-form health object.
func (c *Client) InstanceStatus(ctx context.Context) (map[string]any, error) {
	data, err := c.do(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return nil, err
	}
	var status map[string]any
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("parse status response: %w", err)
	}
	return status, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstStringDefault(m map[string]any, fallback string, keys ...string) string {
	if s := firstString(m, keys...); s != "" {
		return s
	}
	return fallback
}

func participantCount(m map[string]any) int {
	if list, ok := m["participants"].([]any); ok {
		return len(list)
	}
	if n, ok := m["participantsCount"].(float64); ok {
		return int(n)
	}
	return 0
}
