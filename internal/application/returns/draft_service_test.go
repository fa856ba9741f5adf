package returns

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	"github.com/shasanksaas/RMS-sub004/internal/application/returns/dto"
	rulesapp "github.com/shasanksaas/RMS-sub004/internal/application/rules"
	domainaudit "github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

type draftServiceFixture struct {
	svc          *DraftService
	draftRepo    *MockReturnDraftRepository
	orderRepo    *MockOrderRepository
	ruleRepo     *MockReturnRuleRepository
	decisionRepo *MockRuleDecisionRepository
	auditRepo    *MockAuditLogRepository
}

func newDraftServiceFixture() *draftServiceFixture {
	draftRepo := new(MockReturnDraftRepository)
	orderRepo := new(MockOrderRepository)
	ruleRepo := new(MockReturnRuleRepository)
	decisionRepo := new(MockRuleDecisionRepository)
	auditRepo := new(MockAuditLogRepository)

	evalSvc := rulesapp.NewEvaluationService(ruleRepo, decisionRepo, nil, zap.NewNop())
	auditSvc := auditapp.NewService(auditRepo, zap.NewNop())

	return &draftServiceFixture{
		svc:          NewDraftService(draftRepo, orderRepo, evalSvc, auditSvc, zap.NewNop()),
		draftRepo:    draftRepo,
		orderRepo:    orderRepo,
		ruleRepo:     ruleRepo,
		decisionRepo: decisionRepo,
		auditRepo:    auditRepo,
	}
}

func reasonRule(t *testing.T, tenantID uuid.UUID, name, reason string, actions rules.RuleActions) rules.ReturnRule {
	t.Helper()
	condition, err := rules.NewCondition("reason", rules.ConditionOperatorEquals, []string{reason})
	require.NoError(t, err)
	group, err := rules.NewConditionGroup(condition)
	require.NoError(t, err)
	rule, err := rules.NewReturnRule(tenantID, name, []rules.ConditionGroup{group}, actions, 1)
	require.NoError(t, err)
	return *rule
}

func submitRequest(reason string) dto.SubmitDraftRequest {
	return dto.SubmitDraftRequest{
		OrderNumber: "1042",
		Email:       "jane@example.com",
		Items: []dto.SubmitItemRequest{{
			Title:    "Trail Running Shoes",
			SKU:      "SHOE-42",
			Quantity: 1,
			Reason:   reason,
		}},
	}
}

func TestDraftService_SubmitDraft(t *testing.T) {
	tenantID := uuid.New()

	t.Run("matching auto-approve rule approves without a reviewer", func(t *testing.T) {
		f := newDraftServiceFixture()
		rule := reasonRule(t, tenantID, "Auto-approve defective items", "defective", rules.RuleActions{AutoApprove: true})

		f.draftRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("FindByOrderNumber", mock.Anything, tenantID, "1042").Return(nil, shared.ErrNotFound)
		f.ruleRepo.On("FindActiveForTenant", mock.Anything, tenantID).Return([]rules.ReturnRule{rule}, nil)
		f.decisionRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.SubmitDraft(context.Background(), tenantID, returns.ChannelCustomer, submitRequest("defective"))
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		assert.Nil(t, resp.ReviewedBy)
		assert.NotNil(t, resp.ReviewedAt)
		require.NotNil(t, resp.Decision)
		assert.Equal(t, "auto_approved", resp.Decision.Outcome)
		assert.Equal(t, rule.Name, resp.Decision.RuleName)
		f.draftRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("matching auto-reject rule records the rule name in the reason", func(t *testing.T) {
		f := newDraftServiceFixture()
		rule := reasonRule(t, tenantID, "Reject final sale", "final_sale", rules.RuleActions{AutoReject: true})

		var saved *returns.ReturnDraft
		f.draftRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*returns.ReturnDraft)
		}).Return(nil)
		f.orderRepo.On("FindByOrderNumber", mock.Anything, tenantID, "1042").Return(nil, shared.ErrNotFound)
		f.ruleRepo.On("FindActiveForTenant", mock.Anything, tenantID).Return([]rules.ReturnRule{rule}, nil)
		f.decisionRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.SubmitDraft(context.Background(), tenantID, returns.ChannelCustomer, submitRequest("final_sale"))
		require.NoError(t, err)

		assert.Equal(t, "rejected", resp.Status)
		assert.Equal(t, "Rejected by rule: Reject final sale", resp.RejectionReason)
		require.NotNil(t, saved)
		assert.Nil(t, saved.ReviewedBy)
	})

	t.Run("no matching rule leaves the draft pending", func(t *testing.T) {
		f := newDraftServiceFixture()
		rule := reasonRule(t, tenantID, "Auto-approve defective items", "defective", rules.RuleActions{AutoApprove: true})

		f.draftRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("FindByOrderNumber", mock.Anything, tenantID, "1042").Return(nil, shared.ErrNotFound)
		f.ruleRepo.On("FindActiveForTenant", mock.Anything, tenantID).Return([]rules.ReturnRule{rule}, nil)
		f.decisionRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.SubmitDraft(context.Background(), tenantID, returns.ChannelCustomer, submitRequest("changed_mind"))
		require.NoError(t, err)

		assert.Equal(t, "pending_validation", resp.Status)
		require.NotNil(t, resp.Decision)
		assert.Equal(t, "manual_review", resp.Decision.Outcome)
		f.draftRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("evaluation failure leaves the draft pending instead of failing", func(t *testing.T) {
		f := newDraftServiceFixture()

		f.draftRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("FindByOrderNumber", mock.Anything, tenantID, "1042").Return(nil, shared.ErrNotFound)
		f.ruleRepo.On("FindActiveForTenant", mock.Anything, tenantID).Return(nil, assert.AnError)

		resp, err := f.svc.SubmitDraft(context.Background(), tenantID, returns.ChannelCustomer, submitRequest("defective"))
		require.NoError(t, err)

		assert.Equal(t, "pending_validation", resp.Status)
		assert.Nil(t, resp.Decision)
	})

	t.Run("item prices, photos, and metadata survive submission", func(t *testing.T) {
		f := newDraftServiceFixture()
		price := decimal.NewFromFloat(19.99)

		var saved *returns.ReturnDraft
		f.draftRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*returns.ReturnDraft)
		}).Return(nil)
		f.orderRepo.On("FindByOrderNumber", mock.Anything, tenantID, "1042").Return(nil, shared.ErrNotFound)
		f.ruleRepo.On("FindActiveForTenant", mock.Anything, tenantID).Return([]rules.ReturnRule{}, nil)
		f.decisionRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		req := submitRequest("defective")
		req.Items[0].UnitPrice = &price
		req.Items[0].PhotoURLs = []string{"https://cdn.example.com/damage.jpg"}
		req.Metadata = map[string]any{"region": "eu"}

		_, err := f.svc.SubmitDraft(context.Background(), tenantID, returns.ChannelAdmin, req)
		require.NoError(t, err)

		require.NotNil(t, saved)
		require.Len(t, saved.Items, 1)
		require.NotNil(t, saved.Items[0].UnitPrice)
		assert.True(t, price.Equal(*saved.Items[0].UnitPrice))
		assert.Equal(t, []string{"https://cdn.example.com/damage.jpg"}, saved.Items[0].PhotoURLs)
		assert.Equal(t, "eu", saved.Metadata["region"])
		assert.Equal(t, returns.ChannelAdmin, saved.Channel)
	})

	t.Run("invalid submission rejected before any save", func(t *testing.T) {
		f := newDraftServiceFixture()

		req := submitRequest("defective")
		req.Email = ""

		_, err := f.svc.SubmitDraft(context.Background(), tenantID, returns.ChannelCustomer, req)
		assert.Error(t, err)
		f.draftRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDraftService_Review(t *testing.T) {
	tenantID := uuid.New()
	actor := auditapp.Actor{UserID: uuid.New(), Email: "reviewer@example.com"}

	newPendingDraft := func(t *testing.T) *returns.ReturnDraft {
		t.Helper()
		draft, err := returns.NewReturnDraft(tenantID, "1042", "jane@example.com", returns.ChannelCustomer)
		require.NoError(t, err)
		_, err = draft.AddItem("Trail Running Shoes", "SHOE-42", "", 1, "defective")
		require.NoError(t, err)
		return draft
	}

	t.Run("approve records the reviewer and audits", func(t *testing.T) {
		f := newDraftServiceFixture()
		draft := newPendingDraft(t)

		f.draftRepo.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		f.draftRepo.On("Save", mock.Anything, draft).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(entry *domainaudit.AuditLogEntry) bool {
			return entry.Action == domainaudit.ActionDraftApproved &&
				entry.GetDetails()["draft_id"] == draft.ID.String()
		})).Return(nil)

		resp, err := f.svc.ApproveDraft(context.Background(), tenantID, draft.ID, actor)
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, actor.UserID, *resp.ReviewedBy)
		f.auditRepo.AssertExpectations(t)
	})

	t.Run("reject requires and records the reason", func(t *testing.T) {
		f := newDraftServiceFixture()
		draft := newPendingDraft(t)

		f.draftRepo.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		f.draftRepo.On("Save", mock.Anything, draft).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(entry *domainaudit.AuditLogEntry) bool {
			return entry.Action == domainaudit.ActionDraftRejected &&
				entry.GetDetails()["reason"] == "Outside the return window"
		})).Return(nil)

		resp, err := f.svc.RejectDraft(context.Background(), tenantID, draft.ID,
			dto.RejectDraftRequest{Reason: "Outside the return window"}, actor)
		require.NoError(t, err)

		assert.Equal(t, "rejected", resp.Status)
		assert.Equal(t, "Outside the return window", resp.RejectionReason)
	})

	t.Run("link attaches the platform order", func(t *testing.T) {
		f := newDraftServiceFixture()
		draft := newPendingDraft(t)

		f.draftRepo.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		f.draftRepo.On("Save", mock.Anything, draft).Return(nil)
		f.auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(entry *domainaudit.AuditLogEntry) bool {
			return entry.Action == domainaudit.ActionDraftLinked
		})).Return(nil)

		resp, err := f.svc.LinkDraft(context.Background(), tenantID, draft.ID,
			dto.LinkDraftRequest{ShopifyOrderID: "5500001"}, actor)
		require.NoError(t, err)

		assert.Equal(t, "linked", resp.Status)
		assert.Equal(t, "5500001", resp.LinkedShopifyOrderID)
	})

	t.Run("reviewed draft cannot be reviewed again", func(t *testing.T) {
		f := newDraftServiceFixture()
		draft := newPendingDraft(t)
		require.NoError(t, draft.Approve(actor.UserID))

		f.draftRepo.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)

		_, err := f.svc.RejectDraft(context.Background(), tenantID, draft.ID,
			dto.RejectDraftRequest{Reason: "Changed my mind"}, actor)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.draftRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown draft", func(t *testing.T) {
		f := newDraftServiceFixture()
		draftID := uuid.New()

		f.draftRepo.On("FindByIDForTenant", mock.Anything, tenantID, draftID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.ApproveDraft(context.Background(), tenantID, draftID, actor)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DRAFT_NOT_FOUND", domainErr.Code)
	})
}

func TestDraftService_GetDraftStatus(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns the public view only", func(t *testing.T) {
		f := newDraftServiceFixture()
		draft, err := returns.NewReturnDraft(tenantID, "1042", "jane@example.com", returns.ChannelCustomer)
		require.NoError(t, err)

		f.draftRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)

		status, err := f.svc.GetDraftStatus(context.Background(), draft.ID)
		require.NoError(t, err)

		assert.Equal(t, draft.ID, status.ID)
		assert.Equal(t, "1042", status.OrderNumber)
		assert.Equal(t, "pending_validation", status.Status)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newDraftServiceFixture()
		token := uuid.New()

		f.draftRepo.On("FindByID", mock.Anything, token).Return(nil, shared.ErrNotFound)

		_, err := f.svc.GetDraftStatus(context.Background(), token)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DRAFT_NOT_FOUND", domainErr.Code)
	})
}

func TestDraftService_CountDraftsByStatus(t *testing.T) {
	f := newDraftServiceFixture()
	tenantID := uuid.New()

	f.draftRepo.On("CountByStatus", mock.Anything, tenantID).Return(map[returns.DraftStatus]int64{
		returns.DraftStatusPendingValidation: 3,
		returns.DraftStatusApproved:          1,
	}, nil)

	counts, err := f.svc.CountDraftsByStatus(context.Background(), tenantID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), counts["pending_validation"])
	assert.Equal(t, int64(1), counts["approved"])
	assert.Equal(t, int64(0), counts["rejected"])
	assert.Equal(t, int64(0), counts["linked"])
}
