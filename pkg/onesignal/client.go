// Package onesignal is a minimal client for the OneSignal REST API,
// covering scheduled (delayed-delivery) push notifications and their
// cancellation.
package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.onesignal.com/notifications"

// Notification is one delayed push: localized headings/contents, the
// delivery instant and the target user (by external id, i.e. our own
// database user id).
type Notification struct {
	Headings       map[string]string
	Contents       map[string]string
	ExternalUserID string
	SendAfter      time.Time
}

type Client struct {
	appID      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(appID, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		appID:      appID,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createRequest struct {
	AppID          string            `json:"app_id"`
	Headings       map[string]string `json:"headings"`
	Contents       map[string]string `json:"contents"`
	SendAfter      string            `json:"send_after,omitempty"`
	IncludeAliases aliases           `json:"include_aliases"`
	TargetChannel  string            `json:"target_channel"`
}

type aliases struct {
	ExternalID []string `json:"external_id"`
}

type createResponse struct {
	ID     string `json:"id"`
	Errors []any  `json:"errors"`
}

type cancelResponse struct {
	Success bool `json:"success"`
}

// Schedule creates a delayed push notification and returns its id, usable
// later for cancellation.
func (c *Client) Schedule(ctx context.Context, n *Notification) (string, error) {
	if c.appID == "" || c.apiKey == "" {
		return "", fmt.Errorf("onesignal credentials are not configured")
	}
	if n.ExternalUserID == "" {
		return "", fmt.Errorf("notification has no target user")
	}

	payload := createRequest{
		AppID:          c.appID,
		Headings:       n.Headings,
		Contents:       n.Contents,
		IncludeAliases: aliases{ExternalID: []string{n.ExternalUserID}},
		TargetChannel:  "push",
	}
	if !n.SendAfter.IsZero() {
		payload.SendAfter = n.SendAfter.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("onesignal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("onesignal API error: %s: %s", resp.Status, msg)
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode onesignal response: %w", err)
	}

	// OneSignal can return 200 with errors; without an id the create failed.
	if out.ID == "" {
		return "", fmt.Errorf("onesignal returned no notification id: %v", out.Errors)
	}

	return out.ID, nil
}

// Cancel deletes a scheduled, not-yet-delivered notification.
func (c *Client) Cancel(ctx context.Context, notificationID string) (bool, error) {
	if c.appID == "" || c.apiKey == "" {
		return false, fmt.Errorf("onesignal credentials are not configured")
	}

	url := fmt.Sprintf("%s/%s?app_id=%s", c.baseURL, notificationID, c.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("onesignal cancel request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("onesignal API error: %s: %s", resp.Status, msg)
	}

	var out cancelResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("failed to decode onesignal response: %w", err)
	}

	return out.Success, nil
}
