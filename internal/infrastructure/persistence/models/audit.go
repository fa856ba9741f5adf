package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/audit"
)

// AuditLogEntryModel is the persistence model for audit log entries.
// The table is append-only.
type AuditLogEntryModel struct {
	BaseModel
	Action      string     `gorm:"type:varchar(100);not null;index"`
	AdminUserID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AdminEmail  string     `gorm:"type:varchar(200);not null"`
	TenantID    *uuid.UUID `gorm:"type:uuid;index"`
	DetailsJSON string     `gorm:"column:details;type:jsonb;default:'{}'"`
	IPAddress   string     `gorm:"type:varchar(64)"`
	UserAgent   string     `gorm:"type:varchar(512)"`
}

// TableName returns the table name for GORM
func (AuditLogEntryModel) TableName() string {
	return "audit_log_entries"
}

// ToDomain converts the persistence model to a domain AuditLogEntry
func (m *AuditLogEntryModel) ToDomain() *audit.AuditLogEntry {
	entry := &audit.AuditLogEntry{
		BaseEntity:  m.BaseModel.ToDomain(),
		Action:      m.Action,
		AdminUserID: m.AdminUserID,
		AdminEmail:  m.AdminEmail,
		TenantID:    m.TenantID,
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
	}

	if m.DetailsJSON != "" && m.DetailsJSON != "{}" {
		var details map[string]any
		if err := json.Unmarshal([]byte(m.DetailsJSON), &details); err != nil {
			modelLogger.Warn("failed to parse audit details JSON",
				zap.String("entry_id", m.ID.String()),
				zap.Error(err))
		} else {
			entry.Details = details
		}
	}

	return entry
}

// FromDomain populates the persistence model from a domain AuditLogEntry
func (m *AuditLogEntryModel) FromDomain(e *audit.AuditLogEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Action = e.Action
	m.AdminUserID = e.AdminUserID
	m.AdminEmail = e.AdminEmail
	m.TenantID = e.TenantID
	m.IPAddress = e.IPAddress
	m.UserAgent = e.UserAgent

	if len(e.Details) > 0 {
		if jsonBytes, err := json.Marshal(e.Details); err == nil {
			m.DetailsJSON = string(jsonBytes)
		} else {
			m.DetailsJSON = "{}"
		}
	} else {
		m.DetailsJSON = "{}"
	}
}

// AuditLogEntryModelFromDomain creates a new persistence model from a domain AuditLogEntry
func AuditLogEntryModelFromDomain(e *audit.AuditLogEntry) *AuditLogEntryModel {
	m := &AuditLogEntryModel{}
	m.FromDomain(e)
	return m
}
