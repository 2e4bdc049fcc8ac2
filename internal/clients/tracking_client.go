package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"tracking-service/internal/filtering"
	"tracking-service/internal/models"
	"tracking-service/internal/validation"
)

const defaultTrackingServiceURL = "http://tracking-service.marketplace.svc.cluster.local:8090"

// Generation identifies one view request. See TrackingClient.Begin.
type Generation uint64

// TrackingClient talks to tracking-service on behalf of one tenant.
//
// Reads are cached: List and Analytics serve the last successful answer
// until a mutation made through this client marks it stale. Concurrent
// reads of the same stale entry share one request. The returned shipment
// slice is shared between callers and must not be modified.
type TrackingClient struct {
	baseURL    string
	tenantID   string
	httpClient *http.Client
	logger     *logrus.Entry

	flight singleflight.Group

	mu             sync.RWMutex
	version        uint64 // bumped by every invalidation
	shipments      []*models.Shipment
	shipmentsStale bool
	summary        *models.ShipmentAnalytics
	summaryStale   bool

	generation atomic.Uint64
}

// NewTrackingClient creates a client for TRACKING_SERVICE_URL
func NewTrackingClient(tenantID string, logger *logrus.Logger) *TrackingClient {
	baseURL := os.Getenv("TRACKING_SERVICE_URL")
	if baseURL == "" {
		baseURL = defaultTrackingServiceURL
	}
	return NewTrackingClientWithURL(baseURL, tenantID, logger)
}

// NewTrackingClientWithURL creates a client for baseURL
func NewTrackingClientWithURL(baseURL, tenantID string, logger *logrus.Logger) *TrackingClient {
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/api")
	return &TrackingClient{
		baseURL:  baseURL,
		tenantID: tenantID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:         logger.WithFields(logrus.Fields{"component": "clients.tracking", "tenant_id": tenantID}),
		shipmentsStale: true,
		summaryStale:   true,
	}
}

// Begin starts a new view request and returns its generation. A response
// whose generation is no longer current belongs to a view that has moved on
// and should be dropped.
func (c *TrackingClient) Begin() Generation {
	return Generation(c.generation.Add(1))
}

// IsCurrent reports whether g is the latest generation handed out by Begin
func (c *TrackingClient) IsCurrent(g Generation) bool {
	return Generation(c.generation.Load()) == g
}

// Invalidate marks the cached list and analytics stale
func (c *TrackingClient) Invalidate() {
	c.mu.Lock()
	c.version++
	c.shipmentsStale = true
	c.summaryStale = true
	c.mu.Unlock()
}

// Stale reports whether the next List call will go to the network
func (c *TrackingClient) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shipmentsStale
}

// Snapshot returns the last successfully listed shipments, even when stale,
// so a view can keep rendering while a refresh fails
func (c *TrackingClient) Snapshot() ([]*models.Shipment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shipments, c.shipmentsStale
}

// List returns the tenant's visible shipments
func (c *TrackingClient) List(ctx context.Context) ([]*models.Shipment, error) {
	c.mu.RLock()
	if !c.shipmentsStale {
		shipments := c.shipments
		c.mu.RUnlock()
		return shipments, nil
	}
	version := c.version
	c.mu.RUnlock()

	key := fmt.Sprintf("shipments:%d", version)
	result, err := c.shared(ctx, key, ErrFetch, "list shipments", func(ctx context.Context) (interface{}, error) {
		var resp models.ListShipmentsResponse
		if err := c.do(ctx, http.MethodGet, "/api/shipments", nil, &resp, ErrFetch, "list shipments"); err != nil {
			return nil, err
		}
		if resp.Data == nil {
			resp.Data = []*models.Shipment{}
		}

		c.mu.Lock()
		// a write made while the request was in flight wins
		if c.version == version {
			c.shipments = resp.Data
			c.shipmentsStale = false
		}
		c.mu.Unlock()
		return resp.Data, nil
	})
	if err != nil {
		c.logger.WithError(err).Warn("Failed to list shipments")
		return nil, err
	}
	return result.([]*models.Shipment), nil
}

// Filter lists shipments and narrows them locally
func (c *TrackingClient) Filter(ctx context.Context, criteria filtering.Criteria) ([]*models.Shipment, error) {
	shipments, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	return filtering.Filter(shipments, criteria), nil
}

// Get fetches one shipment, bypassing the cache
func (c *TrackingClient) Get(ctx context.Context, id uuid.UUID) (*models.Shipment, error) {
	var resp shipmentEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/shipments/"+id.String(), nil, &resp, ErrFetch, "get shipment"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Create validates req locally, then creates the shipment. Validation
// failures are returned as validation.ValidationErrors and never sent.
func (c *TrackingClient) Create(ctx context.Context, req *models.CreateShipmentRequest) (*models.Shipment, error) {
	if errs := validation.ValidateCreateShipment(req); errs.HasErrors() {
		return nil, errs
	}

	var resp shipmentEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/shipments", req, &resp, ErrCreate, "create shipment"); err != nil {
		return nil, err
	}
	c.Invalidate()
	return resp.Data, nil
}

// Update applies a partial patch
func (c *TrackingClient) Update(ctx context.Context, id uuid.UUID, req *models.UpdateShipmentRequest) (*models.Shipment, error) {
	if errs := validation.ValidateUpdateShipment(req); errs.HasErrors() {
		return nil, errs
	}

	var resp shipmentEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/shipments/"+id.String(), req, &resp, ErrUpdate, "update shipment"); err != nil {
		return nil, err
	}
	c.Invalidate()
	return resp.Data, nil
}

// Delete removes a shipment. Deleting an id twice fails with ErrDelete and
// IsNotFound reports true.
func (c *TrackingClient) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/shipments/"+id.String(), nil, nil, ErrDelete, "delete shipment"); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// SetStatus moves a shipment to status. Aliases are resolved locally.
func (c *TrackingClient) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Shipment, error) {
	canonical, errs := validation.ValidateStatus(status)
	if errs.HasErrors() {
		return nil, errs
	}

	body := models.UpdateStatusRequest{Status: string(canonical)}
	var resp shipmentEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/shipments/"+id.String()+"/status", body, &resp, ErrUpdate, "set shipment status"); err != nil {
		return nil, err
	}
	c.Invalidate()
	return resp.Data, nil
}

// Advance applies the quick-advance rule on the server
func (c *TrackingClient) Advance(ctx context.Context, id uuid.UUID) (*models.Shipment, error) {
	var resp shipmentEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/shipments/"+id.String()+"/advance", nil, &resp, ErrUpdate, "advance shipment"); err != nil {
		return nil, err
	}
	c.Invalidate()
	return resp.Data, nil
}

// Analytics returns the tenant's delivery analytics. On failure it returns
// a zeroed aggregate together with an ErrAnalyticsUnavailable error, so
// callers can render the empty aggregate and report the error.
func (c *TrackingClient) Analytics(ctx context.Context) (*models.ShipmentAnalytics, error) {
	c.mu.RLock()
	if !c.summaryStale && c.summary != nil {
		summary := c.summary
		c.mu.RUnlock()
		return summary, nil
	}
	version := c.version
	c.mu.RUnlock()

	key := fmt.Sprintf("analytics:%d", version)
	result, err := c.shared(ctx, key, ErrAnalyticsUnavailable, "load analytics", func(ctx context.Context) (interface{}, error) {
		var resp struct {
			Data *models.ShipmentAnalytics `json:"data"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/shipments/analytics", nil, &resp, ErrAnalyticsUnavailable, "load analytics"); err != nil {
			return nil, err
		}
		if resp.Data == nil {
			return nil, &RequestError{
				Kind:       ErrAnalyticsUnavailable,
				Op:         "load analytics",
				StatusCode: http.StatusOK,
				Message:    "empty analytics payload",
			}
		}
		summary := normalizeAnalytics(resp.Data)

		c.mu.Lock()
		if c.version == version {
			c.summary = summary
			c.summaryStale = false
		}
		c.mu.Unlock()
		return summary, nil
	})
	if err != nil {
		c.logger.WithError(err).Warn("Analytics unavailable")
		return models.EmptyAnalytics(), err
	}
	return result.(*models.ShipmentAnalytics), nil
}

// ListCarriers returns the tenant's carriers
func (c *TrackingClient) ListCarriers(ctx context.Context, activeOnly bool) ([]*models.Carrier, error) {
	path := "/api/carriers"
	if activeOnly {
		path += "/active"
	}

	var resp struct {
		Data []*models.Carrier `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, ErrFetch, "list carriers"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type shipmentEnvelope struct {
	Data *models.Shipment `json:"data"`
}

// shared runs fetch once for all concurrent callers of key. The request is
// detached from the caller that started it, so one caller giving up does not
// fail the others; each caller still stops waiting when its own ctx ends.
func (c *TrackingClient) shared(ctx context.Context, key string, kind error, op string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (interface{}, error) {
		return fetch(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, transportError(kind, op, ctx.Err())
	}
}

func (c *TrackingClient) do(ctx context.Context, method, path string, body, out interface{}, kind error, op string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return transportError(kind, op, fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return transportError(kind, op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", c.tenantID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(kind, op, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{
			Kind:       kind,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body, kind),
		}
		c.logger.WithFields(logrus.Fields{"op": op, "status": resp.StatusCode}).Debug(reqErr.Message)
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportError(kind, op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// serverMessage prefers the response message, then its error title, then
// the generic text of kind
func serverMessage(body io.Reader, kind error) string {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err == nil {
		if msg := strings.TrimSpace(errResp.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(errResp.Error); msg != "" {
			return msg
		}
	}
	return kind.Error()
}

func normalizeAnalytics(summary *models.ShipmentAnalytics) *models.ShipmentAnalytics {
	if summary.StatusCounts == nil {
		summary.StatusCounts = []models.StatusCount{}
	}
	if summary.CarrierCounts == nil {
		summary.CarrierCounts = []models.CarrierCount{}
	}
	if summary.ZoneCounts == nil {
		summary.ZoneCounts = []models.ZoneCount{}
	}
	if summary.OnTimeRates == nil {
		summary.OnTimeRates = []models.CarrierOnTimeRate{}
	}
	return summary
}
