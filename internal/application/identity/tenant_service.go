package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	"github.com/shasanksaas/RMS-sub004/internal/application/identity/dto"
	domainaudit "github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// TenantService handles tenant provisioning and lifecycle operations.
// Every mutation is an admin action and lands in the audit log.
type TenantService struct {
	tenantRepo identity.TenantRepository
	auditSvc   *auditapp.Service
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo identity.TenantRepository, auditSvc *auditapp.Service, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo: tenantRepo,
		auditSvc:   auditSvc,
		logger:     logger,
	}
}

// CreateTenant provisions a new tenant
func (s *TenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, actor auditapp.Actor) (*dto.TenantResponse, error) {
	s.logger.Info("Creating tenant",
		zap.String("slug", req.Slug),
		zap.String("name", req.Name))

	exists, err := s.tenantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		s.logger.Error("Failed to check slug availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check slug availability")
	}
	if exists {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A tenant with this slug already exists")
	}

	tenant, err := identity.NewTenant(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ShopDomain != "" {
		if err := tenant.SetShopDomain(req.ShopDomain); err != nil {
			return nil, err
		}
		taken, err := s.tenantRepo.ExistsByShopDomain(ctx, tenant.ShopDomain)
		if err != nil {
			s.logger.Error("Failed to check shop domain availability", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check shop domain availability")
		}
		if taken {
			return nil, shared.NewDomainError("SHOP_DOMAIN_TAKEN", "A tenant with this shop domain already exists")
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant")
	}

	s.auditSvc.Record(ctx, actor, domainaudit.ActionTenantCreated, &tenant.ID, map[string]any{
		"slug": tenant.Slug,
		"name": tenant.Name,
	})

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug))

	return dto.ToTenantResponse(tenant), nil
}

// GetTenant returns a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, tenantLookupError(err)
	}
	return dto.ToTenantResponse(tenant), nil
}

// GetTenantBySlug returns a tenant by its unique slug
func (s *TenantService) GetTenantBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, tenantLookupError(err)
	}
	return dto.ToTenantResponse(tenant), nil
}

// ListTenants returns tenants matching the filter
func (s *TenantService) ListTenants(ctx context.Context, filter shared.Filter) (*shared.Paginated[dto.TenantResponse], error) {
	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list tenants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
	}
	total, err := s.tenantRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count tenants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return dto.ToTenantList(tenants, total, page, pageSize), nil
}

// UpdateTenant applies the requested changes to a tenant
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req dto.UpdateTenantRequest, actor auditapp.Actor) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, tenantLookupError(err)
	}

	changes := make(map[string]any)

	if req.Name != nil && *req.Name != tenant.Name {
		if err := tenant.Rename(*req.Name); err != nil {
			return nil, err
		}
		changes["name"] = *req.Name
	}

	if req.ShopDomain != nil && *req.ShopDomain != tenant.ShopDomain {
		if err := tenant.SetShopDomain(*req.ShopDomain); err != nil {
			return nil, err
		}
		changes["shop_domain"] = tenant.ShopDomain
	}

	if req.Provider != nil {
		provider := identity.ConnectedProvider(*req.Provider)
		if provider != tenant.ConnectedProvider {
			if provider == identity.ProviderNone {
				tenant.DisconnectProvider()
			} else if err := tenant.ConnectProvider(provider); err != nil {
				return nil, err
			}
			changes["connected_provider"] = provider.String()
		}
	}

	if len(changes) == 0 {
		return dto.ToTenantResponse(tenant), nil
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant")
	}

	s.auditSvc.Record(ctx, actor, domainaudit.ActionTenantUpdated, &tenant.ID, changes)

	return dto.ToTenantResponse(tenant), nil
}

// SuspendTenant suspends a tenant. Suspended tenants keep their data but
// their merchant users cannot log in.
func (s *TenantService) SuspendTenant(ctx context.Context, id uuid.UUID, actor auditapp.Actor) (*dto.TenantResponse, error) {
	return s.changeStatus(ctx, id, actor, domainaudit.ActionTenantSuspended, (*identity.Tenant).Suspend)
}

// ActivateTenant reactivates a suspended tenant
func (s *TenantService) ActivateTenant(ctx context.Context, id uuid.UUID, actor auditapp.Actor) (*dto.TenantResponse, error) {
	return s.changeStatus(ctx, id, actor, domainaudit.ActionTenantActivated, (*identity.Tenant).Activate)
}

func (s *TenantService) changeStatus(ctx context.Context, id uuid.UUID, actor auditapp.Actor, action string, transition func(*identity.Tenant) error) (*dto.TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, tenantLookupError(err)
	}

	if err := transition(tenant); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant status")
	}

	s.auditSvc.Record(ctx, actor, action, &tenant.ID, map[string]any{
		"slug":   tenant.Slug,
		"status": string(tenant.Status),
	})

	s.logger.Info("Tenant status changed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("status", string(tenant.Status)))

	return dto.ToTenantResponse(tenant), nil
}

// DeleteTenant removes a tenant and cascades to all tenant-owned data.
// Audit log entries are kept.
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID, actor auditapp.Actor) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return tenantLookupError(err)
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete tenant",
			zap.String("tenant_id", id.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete tenant")
	}

	s.auditSvc.Record(ctx, actor, domainaudit.ActionTenantDeleted, &id, map[string]any{
		"slug": tenant.Slug,
		"name": tenant.Name,
	})

	s.logger.Info("Tenant deleted",
		zap.String("tenant_id", id.String()),
		zap.String("slug", tenant.Slug))

	return nil
}

func tenantLookupError(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to load tenant")
}
