package rules

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

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

// MockRuleCache is a mock implementation of cache.RuleCache
type MockRuleCache struct {
	mock.Mock
}

func (m *MockRuleCache) GetActiveRules(ctx context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, bool, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]rules.ReturnRule), args.Bool(1), args.Error(2)
}

func (m *MockRuleCache) SetActiveRules(ctx context.Context, tenantID uuid.UUID, ruleSet []rules.ReturnRule) error {
	args := m.Called(ctx, tenantID, ruleSet)
	return args.Error(0)
}

func (m *MockRuleCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockRuleCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
