package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/integration"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/config"
)

// maxResponseSize caps response bodies read from the Shopify API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const (
	defaultPullPageSize = 50
	maxPullPageSize     = 250
)

// ShopifyAdapter implements integration.OrderPlatform against the Shopify
// Admin REST API. Credentials are per tenant; the config supplies the API
// version, request timeout, and an optional default access token.
type ShopifyAdapter struct {
	cfg        config.ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger

	tenantCreds map[uuid.UUID]*ShopifyCredentials
	mu          sync.RWMutex
}

// NewShopifyAdapter creates a Shopify adapter from the service configuration
func NewShopifyAdapter(cfg config.ShopifyConfig, logger *zap.Logger) *ShopifyAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopifyAdapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger:      logger.Named("shopify"),
		tenantCreds: make(map[uuid.UUID]*ShopifyCredentials),
	}
}

// SetTenantCredentials stores the credentials for a tenant's shop. A
// missing access token falls back to the config-level default, which
// covers single-shop deployments.
func (a *ShopifyAdapter) SetTenantCredentials(tenantID uuid.UUID, creds *ShopifyCredentials) error {
	if creds != nil && creds.AccessToken == "" {
		creds.AccessToken = a.cfg.AccessToken
	}
	if err := creds.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tenantCreds[tenantID] = creds
	return nil
}

// RemoveTenantCredentials drops a tenant's stored credentials
func (a *ShopifyAdapter) RemoveTenantCredentials(tenantID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.tenantCreds, tenantID)
}

func (a *ShopifyAdapter) getTenantCredentials(tenantID uuid.UUID) (*ShopifyCredentials, error) {
	a.mu.RLock()
	creds, ok := a.tenantCreds[tenantID]
	a.mu.RUnlock()
	if !ok {
		return nil, integration.ErrPlatformNotConnected
	}
	return creds, nil
}

// Provider returns the provider key this adapter handles
func (a *ShopifyAdapter) Provider() string {
	return "shopify"
}

// IsConnected reports whether the tenant has stored credentials
func (a *ShopifyAdapter) IsConnected(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	_, err := a.getTenantCredentials(tenantID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// GetOrder retrieves a single order by its numeric Shopify order ID
func (a *ShopifyAdapter) GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*integration.PlatformOrder, error) {
	if _, err := strconv.ParseInt(platformOrderID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: order ID %q is not numeric", integration.ErrPlatformRequestFailed, platformOrderID)
	}

	creds, err := a.getTenantCredentials(tenantID)
	if err != nil {
		return nil, err
	}

	body, err := a.doRequest(ctx, creds, "orders/"+platformOrderID+".json", nil)
	if err != nil {
		return nil, err
	}

	var envelope shopifyOrderEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	if envelope.Order.ID == 0 {
		return nil, integration.ErrOrderNotFound
	}

	return envelope.Order.toPlatformOrder(), nil
}

// GetOrderByNumber retrieves a single order by its customer-facing number.
// Shopify order names carry a "#" prefix; a bare number is retried with
// the prefix added.
func (a *ShopifyAdapter) GetOrderByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*integration.PlatformOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, integration.ErrOrderNotFound
	}

	creds, err := a.getTenantCredentials(tenantID)
	if err != nil {
		return nil, err
	}

	order, err := a.findOrderByName(ctx, creds, orderNumber)
	if err == integration.ErrOrderNotFound && !strings.HasPrefix(orderNumber, "#") {
		return a.findOrderByName(ctx, creds, "#"+orderNumber)
	}
	return order, err
}

func (a *ShopifyAdapter) findOrderByName(ctx context.Context, creds *ShopifyCredentials, name string) (*integration.PlatformOrder, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("status", "any")
	query.Set("limit", "1")

	body, err := a.doRequest(ctx, creds, "orders.json", query)
	if err != nil {
		return nil, err
	}

	var envelope shopifyOrdersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	if len(envelope.Orders) == 0 {
		return nil, integration.ErrOrderNotFound
	}

	return envelope.Orders[0].toPlatformOrder(), nil
}

// PullOrders pulls orders updated within the requested time range. The
// Admin API paginates with cursors, so HasMore reflects the Link header
// rather than a total count.
func (a *ShopifyAdapter) PullOrders(ctx context.Context, req *integration.OrderPullRequest) (*integration.OrderPullResponse, error) {
	creds, err := a.getTenantCredentials(req.TenantID)
	if err != nil {
		return nil, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPullPageSize
	}
	if pageSize > maxPullPageSize {
		pageSize = maxPullPageSize
	}

	query := url.Values{}
	query.Set("status", "any")
	query.Set("limit", strconv.Itoa(pageSize))
	if !req.StartTime.IsZero() {
		query.Set("updated_at_min", req.StartTime.UTC().Format("2006-01-02T15:04:05Z"))
	}
	if !req.EndTime.IsZero() {
		query.Set("updated_at_max", req.EndTime.UTC().Format("2006-01-02T15:04:05Z"))
	}

	body, hasMore, err := a.doRequestWithPagination(ctx, creds, "orders.json", query)
	if err != nil {
		return nil, err
	}

	var envelope shopifyOrdersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}

	orders := make([]integration.PlatformOrder, 0, len(envelope.Orders))
	for i := range envelope.Orders {
		orders = append(orders, *envelope.Orders[i].toPlatformOrder())
	}

	a.logger.Debug("pulled orders from shopify",
		zap.String("tenant_id", req.TenantID.String()),
		zap.Int("count", len(orders)),
		zap.Bool("has_more", hasMore))

	return &integration.OrderPullResponse{
		Orders:     orders,
		TotalCount: len(orders),
		HasMore:    hasMore,
	}, nil
}

func (a *ShopifyAdapter) doRequest(ctx context.Context, creds *ShopifyCredentials, path string, query url.Values) ([]byte, error) {
	body, _, err := a.doRequestWithPagination(ctx, creds, path, query)
	return body, err
}

func (a *ShopifyAdapter) doRequestWithPagination(ctx context.Context, creds *ShopifyCredentials, path string, query url.Values) ([]byte, bool, error) {
	endpoint := creds.baseURL(a.cfg.APIVersion) + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, false, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, false, a.mapStatusError(resp.StatusCode, body)
	}

	hasMore := strings.Contains(resp.Header.Get("Link"), `rel="next"`)
	return body, hasMore, nil
}

func (a *ShopifyAdapter) mapStatusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformAuthFailed, status)
	case status == http.StatusNotFound:
		return integration.ErrOrderNotFound
	case status == http.StatusTooManyRequests:
		return integration.ErrPlatformRateLimited
	case status >= 500:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformUnavailable, status)
	}

	var envelope shopifyErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Errors != nil {
		return fmt.Errorf("%w: HTTP %d: %v", integration.ErrPlatformRequestFailed, status, envelope.Errors)
	}
	return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, status)
}
