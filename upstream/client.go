// Package upstream is the typed client for the booking-platform REST API
// that owns slot persistence. Autoslot never stores schedules itself; it
// reads and writes day-records through this client only.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autoslot/models"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// SlotAPI is the subset of the booking platform consumed by the slot editor.
type SlotAPI interface {
	// GetSlots returns every day-record the platform has for the provider.
	// The result is not bounded to one week; callers filter by date.
	GetSlots(ctx context.Context, providerID string) ([]models.DaySchedule, error)
	// UpdateSlots persists the changed day-records in one batch and echoes
	// the committed records back.
	UpdateSlots(ctx context.Context, providerID string, changed []models.DaySchedule) ([]models.DaySchedule, error)
}

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream responded %d: %s", e.StatusCode, e.Body)
}

// Client is the HTTP implementation of SlotAPI. It is constructed explicitly
// and injected; there is no package-level instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient builds a platform client. A zero timeout falls back to the
// package default.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (c *Client) GetSlots(ctx context.Context, providerID string) ([]models.DaySchedule, error) {
	path := fmt.Sprintf("/api/providers/%s/slots", url.PathEscape(providerID))

	var wrapped struct {
		Slots []models.DaySchedule `json:"slots"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}
	return normalizeDays(wrapped.Slots), nil
}

func (c *Client) UpdateSlots(ctx context.Context, providerID string, changed []models.DaySchedule) ([]models.DaySchedule, error) {
	path := fmt.Sprintf("/api/providers/%s/slots", url.PathEscape(providerID))

	body := struct {
		Slots []models.DaySchedule `json:"slots"`
	}{Slots: changed}

	var wrapped struct {
		Slots []models.DaySchedule `json:"slots"`
	}
	if err := c.doJSON(ctx, http.MethodPatch, path, body, &wrapped); err != nil {
		return nil, fmt.Errorf("update slots: %w", err)
	}
	return normalizeDays(wrapped.Slots), nil
}

// Ping probes the platform's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("Upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizeDays canonicalizes dates (the platform emits datetimes in some
// deployments) and backfills sparse hour maps.
func normalizeDays(days []models.DaySchedule) []models.DaySchedule {
	for i := range days {
		days[i].Date = models.NormalizeDate(days[i].Date)
		days[i].DayName = models.DayNameFor(days[i].Date)
		days[i].NormalizeHours()
		if days[i].Employees < 1 {
			days[i].Employees = 1
		}
	}
	return days
}
