// Package rest implements the analytics SessionStore and EventSink over
// HTTP against the collector API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/analytics"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/dto"
)

var (
	_ analytics.SessionStore = (*Client)(nil)
	_ analytics.EventSink    = (*Client)(nil)
)

// Client talks to the collector service. It implements both
// analytics.SessionStore and analytics.EventSink.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

// New builds a collector client. httpClient and log may be nil.
func New(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      httpClient,
		log:     log,
	}
}

// Insert creates a session record and returns the server-generated id.
func (c *Client) Insert(ctx context.Context, desc analytics.SessionDescriptor) (string, error) {
	req := dto.CreateSessionRequest{
		UserID:    desc.UserID,
		UserAgent: desc.UserAgent,
		Device: dto.DeviceInfo{
			Platform: desc.Device.Platform,
			Language: desc.Device.Language,
			Screen: dto.Screen{
				Width:  desc.Device.ScreenWidth,
				Height: desc.Device.ScreenHeight,
			},
		},
	}

	var resp dto.CreateSessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("collector returned an empty session id")
	}
	return resp.ID, nil
}

// Update reassigns the user attached to a session.
func (c *Client) Update(ctx context.Context, id string, userID string) error {
	req := dto.UpdateSessionRequest{UserID: userID}
	return c.do(ctx, http.MethodPatch, "/v1/sessions/"+id, req, nil)
}

// GetByID fetches a session record; a 404 maps to (nil, nil).
func (c *Client) GetByID(ctx context.Context, id string) (*analytics.SessionRecord, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/sessions/"+id, nil)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer drainAndClose(httpResp.Body)

	switch {
	case httpResp.StatusCode == http.StatusNotFound:
		return nil, nil
	case httpResp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("get session: unexpected status %d", httpResp.StatusCode)
	}

	var resp dto.SessionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	return &analytics.SessionRecord{ID: resp.ID, UserID: resp.UserID}, nil
}

// BulkInsert ships a batch of events in one request, preserving order.
func (c *Client) BulkInsert(ctx context.Context, events []analytics.Event) error {
	if len(events) == 0 {
		return nil
	}

	req := dto.PublishEventsBulkRequest{
		Events: make([]dto.TrackEventRequest, 0, len(events)),
	}
	for _, ev := range events {
		req.Events = append(req.Events, dto.TrackEventRequest{
			EventName:  ev.Name,
			Category:   ev.Category,
			SessionID:  ev.SessionID,
			UserID:     ev.UserID,
			Timestamp:  ev.Timestamp.Unix(),
			PagePath:   ev.PagePath,
			Properties: ev.Properties,
		})
	}

	return c.do(ctx, http.MethodPost, "/v1/events/bulk", req, nil)
}

// do sends a JSON request and optionally decodes a JSON response. Any
// non-2xx status is an error carrying the collector's error body when
// one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.hc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer drainAndClose(httpResp.Body)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var errResp dto.ErrorResponse
		if decodeErr := json.NewDecoder(httpResp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, errResp.Error, errResp.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, httpResp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
