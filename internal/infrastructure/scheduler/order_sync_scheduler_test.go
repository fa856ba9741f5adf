package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ordersdto "github.com/shasanksaas/RMS-sub004/internal/application/orders/dto"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

type stubTenantSource struct {
	tenants []identity.Tenant
	err     error
}

func (s *stubTenantSource) FindAll(_ context.Context, _ shared.Filter) ([]identity.Tenant, error) {
	return s.tenants, s.err
}

type syncCall struct {
	tenantID uuid.UUID
	since    time.Time
	until    time.Time
}

type recordingSyncer struct {
	mu      sync.Mutex
	calls   []syncCall
	failFor map[uuid.UUID]error
	result  ordersdto.SyncResultResponse
}

func (r *recordingSyncer) SyncRecentOrders(_ context.Context, tenantID uuid.UUID, since, until time.Time) (*ordersdto.SyncResultResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, syncCall{tenantID: tenantID, since: since, until: until})
	if err, ok := r.failFor[tenantID]; ok {
		return nil, err
	}
	result := r.result
	return &result, nil
}

func (r *recordingSyncer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingSyncer) tenantIDs() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(r.calls))
	for _, c := range r.calls {
		ids = append(ids, c.tenantID)
	}
	return ids
}

func connectedTenant(t *testing.T, slug string) identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant(slug, "Store "+slug)
	require.NoError(t, err)
	require.NoError(t, tenant.SetShopDomain(slug+".myshopify.com"))
	require.NoError(t, tenant.ConnectProvider(identity.ProviderShopify))
	return *tenant
}

func testSchedulerConfig() OrderSyncSchedulerConfig {
	return OrderSyncSchedulerConfig{
		Interval:   time.Hour,
		Lookback:   24 * time.Hour,
		Workers:    2,
		JobTimeout: time.Second,
	}
}

func TestOrderSyncSchedulerConfigValidate(t *testing.T) {
	valid := DefaultOrderSyncSchedulerConfig()
	assert.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*OrderSyncSchedulerConfig){
		"zero interval":    func(c *OrderSyncSchedulerConfig) { c.Interval = 0 },
		"zero lookback":    func(c *OrderSyncSchedulerConfig) { c.Lookback = 0 },
		"zero workers":     func(c *OrderSyncSchedulerConfig) { c.Workers = 0 },
		"zero job timeout": func(c *OrderSyncSchedulerConfig) { c.JobTimeout = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultOrderSyncSchedulerConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := NewOrderSyncScheduler(cfg, &stubTenantSource{}, &recordingSyncer{}, zap.NewNop())
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestOrderSyncSchedulerRunOnceSyncsConnectedTenants(t *testing.T) {
	connected := connectedTenant(t, "alpha-store")
	alsoConnected := connectedTenant(t, "beta-store")

	disconnected, err := identity.NewTenant("gamma-store", "Gamma Store")
	require.NoError(t, err)

	suspended := connectedTenant(t, "delta-store")
	require.NoError(t, suspended.Suspend())

	syncer := &recordingSyncer{result: ordersdto.SyncResultResponse{SyncedCount: 4, FailedCount: 1}}
	source := &stubTenantSource{tenants: []identity.Tenant{connected, alsoConnected, *disconnected, suspended}}

	s, err := NewOrderSyncScheduler(testSchedulerConfig(), source, syncer, zap.NewNop())
	require.NoError(t, err)

	summary := s.RunOnce(context.Background())

	assert.Equal(t, 2, summary.Tenants)
	assert.Equal(t, 8, summary.Synced)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Errors)

	ids := syncer.tenantIDs()
	assert.ElementsMatch(t, []uuid.UUID{connected.ID, alsoConnected.ID}, ids)
	assert.NotContains(t, ids, disconnected.ID)
	assert.NotContains(t, ids, suspended.ID)
}

func TestOrderSyncSchedulerFirstPassUsesLookbackWindow(t *testing.T) {
	tenant := connectedTenant(t, "alpha-store")
	syncer := &recordingSyncer{}
	source := &stubTenantSource{tenants: []identity.Tenant{tenant}}

	cfg := testSchedulerConfig()
	cfg.Lookback = 6 * time.Hour
	s, err := NewOrderSyncScheduler(cfg, source, syncer, zap.NewNop())
	require.NoError(t, err)

	s.RunOnce(context.Background())

	require.Len(t, syncer.calls, 1)
	window := syncer.calls[0].until.Sub(syncer.calls[0].since)
	assert.InDelta(t, (6 * time.Hour).Seconds(), window.Seconds(), 5)
}

func TestOrderSyncSchedulerPassesOverlapBetweenRuns(t *testing.T) {
	tenant := connectedTenant(t, "alpha-store")
	syncer := &recordingSyncer{}
	source := &stubTenantSource{tenants: []identity.Tenant{tenant}}

	s, err := NewOrderSyncScheduler(testSchedulerConfig(), source, syncer, zap.NewNop())
	require.NoError(t, err)

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	require.Len(t, syncer.calls, 2)
	first := syncer.calls[0]
	second := syncer.calls[1]

	// The second window starts before the first one ended
	assert.True(t, second.since.Before(first.until))
	assert.True(t, second.until.After(first.until) || second.until.Equal(first.until))
}

func TestOrderSyncSchedulerCountsPerTenantErrors(t *testing.T) {
	healthy := connectedTenant(t, "alpha-store")
	broken := connectedTenant(t, "beta-store")

	syncer := &recordingSyncer{
		result:  ordersdto.SyncResultResponse{SyncedCount: 3},
		failFor: map[uuid.UUID]error{broken.ID: errors.New("platform unreachable")},
	}
	source := &stubTenantSource{tenants: []identity.Tenant{healthy, broken}}

	s, err := NewOrderSyncScheduler(testSchedulerConfig(), source, syncer, zap.NewNop())
	require.NoError(t, err)

	summary := s.RunOnce(context.Background())

	assert.Equal(t, 2, summary.Tenants)
	assert.Equal(t, 3, summary.Synced)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 2, syncer.callCount())
}

func TestOrderSyncSchedulerTenantListFailure(t *testing.T) {
	syncer := &recordingSyncer{}
	source := &stubTenantSource{err: errors.New("db down")}

	s, err := NewOrderSyncScheduler(testSchedulerConfig(), source, syncer, zap.NewNop())
	require.NoError(t, err)

	summary := s.RunOnce(context.Background())

	assert.Zero(t, summary.Tenants)
	assert.Zero(t, syncer.callCount())
}

func TestOrderSyncSchedulerStartStop(t *testing.T) {
	tenant := connectedTenant(t, "alpha-store")
	syncer := &recordingSyncer{}
	source := &stubTenantSource{tenants: []identity.Tenant{tenant}}

	s, err := NewOrderSyncScheduler(testSchedulerConfig(), source, syncer, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyRunning)

	// The first pass runs on startup without waiting for a tick
	require.Eventually(t, func() bool {
		return syncer.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	assert.ErrorIs(t, s.Stop(stopCtx), ErrSchedulerStopped)
}
