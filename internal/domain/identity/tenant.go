package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended by a platform admin
)

// ConnectedProvider represents the e-commerce platform a tenant is linked to
type ConnectedProvider string

const (
	ProviderNone    ConnectedProvider = "none"
	ProviderShopify ConnectedProvider = "shopify"
)

// IsValid checks if the provider is valid
func (p ConnectedProvider) IsValid() bool {
	switch p {
	case ProviderNone, ProviderShopify:
		return true
	default:
		return false
	}
}

// String returns the string representation of the provider
func (p ConnectedProvider) String() string {
	return string(p)
}

// slugRegex validates tenant slugs: lowercase alphanumeric segments joined by
// single hyphens, e.g. "tenant-rms34"
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// shopDomainRegex validates Shopify shop domains: either the bare shop name
// or "<name>.myshopify.com". Matched case-insensitively.
var shopDomainRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.myshopify\.com)?$`)

// Tenant represents an isolated merchant account in the multi-tenant system.
// It is the aggregate root for tenant provisioning; every other aggregate is
// partitioned by the tenant's ID.
type Tenant struct {
	shared.BaseAggregateRoot
	Slug              string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string            `gorm:"type:varchar(200);not null"`
	ShopDomain        string            `gorm:"type:varchar(200)"`
	ConnectedProvider ConnectedProvider `gorm:"type:varchar(20);not null;default:'none'"`
	Status            TenantStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant with required fields
func NewTenant(slug, name string) (*Tenant, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		Name:              name,
		ConnectedProvider: ProviderNone,
		Status:            TenantStatusActive,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Rename updates the tenant's display name
func (t *Tenant) Rename(name string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetShopDomain sets the tenant's shop domain. The domain is normalized to
// lowercase; an empty value clears it.
func (t *Tenant) SetShopDomain(domain string) error {
	normalized, err := NormalizeShopDomain(domain)
	if err != nil {
		return err
	}

	t.ShopDomain = normalized
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// ConnectProvider links the tenant to an e-commerce platform. A shop domain
// must be set before connecting Shopify.
func (t *Tenant) ConnectProvider(provider ConnectedProvider) error {
	if !provider.IsValid() {
		return shared.NewDomainError("INVALID_PROVIDER", "Invalid connected provider")
	}
	if provider == ProviderShopify && t.ShopDomain == "" {
		return shared.NewDomainError("SHOP_DOMAIN_REQUIRED", "Shop domain must be set before connecting Shopify")
	}

	t.ConnectedProvider = provider
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// DisconnectProvider unlinks the tenant from its e-commerce platform
func (t *Tenant) DisconnectProvider() {
	t.ConnectedProvider = ProviderNone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}

	oldStatus := t.Status
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusSuspended))

	return nil
}

// Activate reactivates a suspended tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	oldStatus := t.Status
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusActive))

	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsConnected returns true if the tenant is linked to a platform
func (t *Tenant) IsConnected() bool {
	return t.ConnectedProvider != ProviderNone
}

// Validation functions

// ValidateSlug checks the tenant slug format: lowercase alphanumeric plus
// hyphens, 3-50 characters.
func ValidateSlug(slug string) error {
	if len(slug) < 3 || len(slug) > 50 {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug must be between 3 and 50 characters")
	}
	if !slugRegex.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug may only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

// NormalizeShopDomain validates a shop domain and returns its lowercase form.
// An empty input is allowed and returns empty.
func NormalizeShopDomain(domain string) (string, error) {
	if domain == "" {
		return "", nil
	}
	normalized := strings.ToLower(strings.TrimSpace(domain))
	if len(normalized) > 200 {
		return "", shared.NewDomainError("INVALID_SHOP_DOMAIN", "Shop domain cannot exceed 200 characters")
	}
	if !shopDomainRegex.MatchString(normalized) {
		return "", shared.NewDomainError("INVALID_SHOP_DOMAIN", "Shop domain must be a shop name or <name>.myshopify.com")
	}
	return normalized, nil
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
