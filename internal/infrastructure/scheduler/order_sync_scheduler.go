package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	ordersdto "github.com/shasanksaas/RMS-sub004/internal/application/orders/dto"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

var (
	ErrInvalidConfig    = errors.New("scheduler: invalid configuration")
	ErrAlreadyRunning   = errors.New("scheduler: already running")
	ErrSchedulerStopped = errors.New("scheduler: not running")
)

// OrderSyncer pulls recent platform orders for a tenant into local
// snapshots. *orders.OrderService satisfies this.
type OrderSyncer interface {
	SyncRecentOrders(ctx context.Context, tenantID uuid.UUID, since, until time.Time) (*ordersdto.SyncResultResponse, error)
}

// TenantSource lists tenants eligible for syncing. The tenant repository
// satisfies this.
type TenantSource interface {
	FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error)
}

// OrderSyncSchedulerConfig holds the sync loop settings
type OrderSyncSchedulerConfig struct {
	// Interval between sync passes
	Interval time.Duration
	// Lookback bounds the window of the first pass after startup
	Lookback time.Duration
	// Workers is the number of tenants synced concurrently
	Workers int
	// JobTimeout is the maximum time one tenant's sync may run
	JobTimeout time.Duration
}

// DefaultOrderSyncSchedulerConfig returns the default sync settings
func DefaultOrderSyncSchedulerConfig() OrderSyncSchedulerConfig {
	return OrderSyncSchedulerConfig{
		Interval:   15 * time.Minute,
		Lookback:   24 * time.Hour,
		Workers:    3,
		JobTimeout: 5 * time.Minute,
	}
}

// Validate checks that the configuration is usable
func (c *OrderSyncSchedulerConfig) Validate() error {
	if c.Interval <= 0 || c.Lookback <= 0 || c.Workers <= 0 || c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// windowOverlap is re-synced at the start of each pass so orders updated
// around a pass boundary are not missed. Snapshot upserts make the
// duplicate pull harmless.
const windowOverlap = time.Minute

// tenantPageSize bounds one page of the tenant scan per pass
const tenantPageSize = 200

// SyncSummary reports the outcome of one sync pass
type SyncSummary struct {
	Tenants int
	Synced  int
	Failed  int
	Errors  int
}

// OrderSyncScheduler periodically pulls recent orders for every active
// connected tenant. One pass scans the tenant list and fans tenants out
// to a bounded worker set.
type OrderSyncScheduler struct {
	cfg     OrderSyncSchedulerConfig
	tenants TenantSource
	syncer  OrderSyncer
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	lastRun time.Time
}

// NewOrderSyncScheduler creates a scheduler. The configuration is
// validated up front so a misconfigured loop never starts.
func NewOrderSyncScheduler(cfg OrderSyncSchedulerConfig, tenants TenantSource, syncer OrderSyncer, logger *zap.Logger) (*OrderSyncScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderSyncScheduler{
		cfg:     cfg,
		tenants: tenants,
		syncer:  syncer,
		logger:  logger,
	}, nil
}

// Start launches the sync loop. The first pass runs immediately.
func (s *OrderSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Order sync scheduler started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Int("workers", s.cfg.Workers),
	)
	return nil
}

// Stop cancels the loop and waits for in-flight syncs, bounded by ctx
func (s *OrderSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrSchedulerStopped
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Order sync scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Order sync scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *OrderSyncScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sync pass over all active connected tenants
func (s *OrderSyncScheduler) RunOnce(ctx context.Context) SyncSummary {
	until := time.Now().UTC()

	s.mu.Lock()
	since := s.lastRun.Add(-windowOverlap)
	if s.lastRun.IsZero() {
		since = until.Add(-s.cfg.Lookback)
	}
	s.lastRun = until
	s.mu.Unlock()

	filter := shared.DefaultFilter()
	filter.PageSize = tenantPageSize
	tenants, err := s.tenants.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Order sync pass failed to list tenants", zap.Error(err))
		return SyncSummary{}
	}

	var (
		summary   SyncSummary
		summaryMu sync.Mutex
		workers   = make(chan struct{}, s.cfg.Workers)
		passWG    sync.WaitGroup
	)

	for i := range tenants {
		t := tenants[i]
		if !t.IsActive() || !t.IsConnected() {
			continue
		}

		summaryMu.Lock()
		summary.Tenants++
		summaryMu.Unlock()

		passWG.Add(1)
		workers <- struct{}{}
		go func() {
			defer passWG.Done()
			defer func() { <-workers }()

			jobCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
			defer cancel()

			result, err := s.syncer.SyncRecentOrders(jobCtx, t.ID, since, until)
			summaryMu.Lock()
			defer summaryMu.Unlock()
			if err != nil {
				summary.Errors++
				s.logger.Warn("Tenant order sync failed",
					zap.String("tenant_id", t.ID.String()),
					zap.Error(err),
				)
				return
			}
			summary.Synced += result.SyncedCount
			summary.Failed += result.FailedCount
		}()
	}

	passWG.Wait()

	s.logger.Info("Order sync pass completed",
		zap.Int("tenants", summary.Tenants),
		zap.Int("synced", summary.Synced),
		zap.Int("failed", summary.Failed),
		zap.Int("errors", summary.Errors),
		zap.Time("since", since),
		zap.Time("until", until),
	)
	return summary
}
