package audit

import (
	"maps"
	"strings"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// Well-known audit actions. The set is open; admin surfaces record free-form
// actions too, these cover the built-in operations.
const (
	ActionTenantCreated      = "tenant.created"
	ActionTenantUpdated      = "tenant.updated"
	ActionTenantSuspended    = "tenant.suspended"
	ActionTenantActivated    = "tenant.activated"
	ActionTenantDeleted      = "tenant.deleted"
	ActionImpersonationStart = "impersonation.started"
	ActionDraftApproved      = "draft.approved"
	ActionDraftRejected      = "draft.rejected"
	ActionDraftLinked        = "draft.linked"
	ActionRuleCreated        = "rule.created"
	ActionRuleUpdated        = "rule.updated"
	ActionRuleDeleted        = "rule.deleted"
	ActionAccessDenied       = "access.denied"
)

// AuditLogEntry records one privileged action. Entries are append-only and
// never modified after creation.
type AuditLogEntry struct {
	shared.BaseEntity
	Action      string         `json:"action"`
	AdminUserID uuid.UUID      `json:"admin_user_id"`
	AdminEmail  string         `json:"admin_email"`
	TenantID    *uuid.UUID     `json:"tenant_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	IPAddress   string         `json:"ip_address,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
}

// TableName returns the table name for GORM
func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}

// NewAuditLogEntry creates a new audit log entry
func NewAuditLogEntry(action string, adminUserID uuid.UUID, adminEmail string, tenantID *uuid.UUID, details map[string]any) (*AuditLogEntry, error) {
	if strings.TrimSpace(action) == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action cannot be empty")
	}
	if adminUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Audit entry requires the acting admin")
	}

	return &AuditLogEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Action:      strings.TrimSpace(action),
		AdminUserID: adminUserID,
		AdminEmail:  strings.ToLower(strings.TrimSpace(adminEmail)),
		TenantID:    tenantID,
		Details:     details,
	}, nil
}

// WithRequestInfo attaches the request origin to the entry. Returns the entry
// for chaining at the call site.
func (e *AuditLogEntry) WithRequestInfo(ipAddress, userAgent string) *AuditLogEntry {
	e.IPAddress = ipAddress
	e.UserAgent = userAgent
	return e
}

// GetDetails returns a copy of the details map
func (e *AuditLogEntry) GetDetails() map[string]any {
	if e.Details == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(e.Details))
	maps.Copy(result, e.Details)
	return result
}
