package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// CreateTenantRequest is the payload for provisioning a tenant
type CreateTenantRequest struct {
	Slug       string `json:"slug" binding:"required,min=3,max=50"`
	Name       string `json:"name" binding:"required,max=200"`
	ShopDomain string `json:"shop_domain" binding:"omitempty,max=200"`
}

// UpdateTenantRequest is the payload for updating a tenant. Nil fields are
// left unchanged; an empty shop domain clears it.
type UpdateTenantRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=200"`
	ShopDomain *string `json:"shop_domain" binding:"omitempty,max=200"`
	Provider   *string `json:"connected_provider" binding:"omitempty,oneof=none shopify"`
}

// TenantResponse is the API representation of a tenant
type TenantResponse struct {
	ID                uuid.UUID `json:"id"`
	Slug              string    `json:"slug"`
	Name              string    `json:"name"`
	ShopDomain        string    `json:"shop_domain,omitempty"`
	ConnectedProvider string    `json:"connected_provider"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Version           int       `json:"version"`
}

// ToTenantResponse converts a domain tenant to its API representation
func ToTenantResponse(tenant *identity.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:                tenant.ID,
		Slug:              tenant.Slug,
		Name:              tenant.Name,
		ShopDomain:        tenant.ShopDomain,
		ConnectedProvider: tenant.ConnectedProvider.String(),
		Status:            string(tenant.Status),
		CreatedAt:         tenant.CreatedAt,
		UpdatedAt:         tenant.UpdatedAt,
		Version:           tenant.Version,
	}
}

// ToTenantList converts a slice of tenants with a total count into a
// paginated response
func ToTenantList(tenants []identity.Tenant, total int64, page, pageSize int) *shared.Paginated[TenantResponse] {
	items := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		items = append(items, *ToTenantResponse(&tenants[i]))
	}
	result := shared.NewPaginated(items, total, page, pageSize)
	return &result
}
