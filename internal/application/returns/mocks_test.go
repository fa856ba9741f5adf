package returns

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// MockReturnDraftRepository is a mock implementation of returns.ReturnDraftRepository
type MockReturnDraftRepository struct {
	mock.Mock
}

func (m *MockReturnDraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.ReturnDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.ReturnDraft), args.Error(1)
}

func (m *MockReturnDraftRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*returns.ReturnDraft, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.ReturnDraft), args.Error(1)
}

func (m *MockReturnDraftRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[returns.ReturnDraft], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[returns.ReturnDraft]), args.Error(1)
}

func (m *MockReturnDraftRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status returns.DraftStatus, filter shared.Filter) (*shared.Paginated[returns.ReturnDraft], error) {
	args := m.Called(ctx, tenantID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[returns.ReturnDraft]), args.Error(1)
}

func (m *MockReturnDraftRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) ([]returns.ReturnDraft, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.ReturnDraft), args.Error(1)
}

func (m *MockReturnDraftRepository) Save(ctx context.Context, draft *returns.ReturnDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockReturnDraftRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockReturnDraftRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[returns.DraftStatus]int64, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[returns.DraftStatus]int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of orders.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*orders.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*orders.Order, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPlatformOrderID(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*orders.Order, error) {
	args := m.Called(ctx, tenantID, platformOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[orders.Order], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[orders.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockReturnRuleRepository is a mock implementation of rules.ReturnRuleRepository
type MockReturnRuleRepository struct {
	mock.Mock
}

func (m *MockReturnRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*rules.ReturnRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.ReturnRule), args.Error(1)
}

func (m *MockReturnRuleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*rules.ReturnRule, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.ReturnRule), args.Error(1)
}

func (m *MockReturnRuleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[rules.ReturnRule], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[rules.ReturnRule]), args.Error(1)
}

func (m *MockReturnRuleRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rules.ReturnRule), args.Error(1)
}

func (m *MockReturnRuleRepository) Save(ctx context.Context, rule *rules.ReturnRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockReturnRuleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockRuleDecisionRepository is a mock implementation of rules.RuleDecisionRepository
type MockRuleDecisionRepository struct {
	mock.Mock
}

func (m *MockRuleDecisionRepository) Append(ctx context.Context, decision *rules.RuleDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *MockRuleDecisionRepository) FindByDraft(ctx context.Context, tenantID, draftID uuid.UUID) ([]rules.RuleDecision, error) {
	args := m.Called(ctx, tenantID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rules.RuleDecision), args.Error(1)
}

func (m *MockRuleDecisionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[rules.RuleDecision], error) {
	args := m.Called(ctx, tenantID, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[rules.RuleDecision]), args.Error(1)
}

// MockAuditLogRepository is a mock implementation of audit.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *audit.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[audit.AuditLogEntry]), args.Error(1)
}

func (m *MockAuditLogRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[audit.AuditLogEntry]), args.Error(1)
}
