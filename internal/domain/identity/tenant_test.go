package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates tenant successfully", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")

		require.NoError(t, err)
		assert.NotNil(t, tenant)
		assert.Equal(t, "tenant-rms34", tenant.Slug)
		assert.Equal(t, "RMS Demo Store", tenant.Name)
		assert.Equal(t, TenantStatusActive, tenant.Status)
		assert.Equal(t, ProviderNone, tenant.ConnectedProvider)
		assert.Empty(t, tenant.ShopDomain)
		assert.Len(t, tenant.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "")

		assert.Error(t, err)
		assert.Nil(t, tenant)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"simple slug", "acme", false},
		{"hyphenated slug", "tenant-rms34", false},
		{"multiple segments", "big-box-retail-2", false},
		{"digits only", "12345", false},
		{"minimum length", "abc", false},
		{"maximum length", strings.Repeat("a", 50), false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 51), true},
		{"uppercase rejected", "Tenant-RMS34", true},
		{"leading hyphen", "-tenant", true},
		{"trailing hyphen", "tenant-", true},
		{"double hyphen", "tenant--rms34", true},
		{"underscore rejected", "tenant_rms34", true},
		{"spaces rejected", "tenant rms34", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeShopDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		want    string
		wantErr bool
	}{
		{"empty is allowed", "", "", false},
		{"bare shop name", "rms-demo", "rms-demo", false},
		{"full myshopify domain", "rms-demo.myshopify.com", "rms-demo.myshopify.com", false},
		{"uppercase normalized", "RMS-Demo.MyShopify.Com", "rms-demo.myshopify.com", false},
		{"surrounding whitespace trimmed", "  rms-demo  ", "rms-demo", false},
		{"leading hyphen rejected", "-rms-demo", "", true},
		{"other domain rejected", "rms-demo.example.com", "", true},
		{"spaces rejected", "rms demo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeShopDomain(tt.domain)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTenantProviderLifecycle(t *testing.T) {
	t.Run("connecting shopify requires shop domain", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")
		require.NoError(t, err)

		err = tenant.ConnectProvider(ProviderShopify)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Shop domain must be set")
	})

	t.Run("connect and disconnect", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")
		require.NoError(t, err)

		require.NoError(t, tenant.SetShopDomain("rms-demo.myshopify.com"))
		require.NoError(t, tenant.ConnectProvider(ProviderShopify))
		assert.True(t, tenant.IsConnected())
		assert.Equal(t, ProviderShopify, tenant.ConnectedProvider)

		tenant.DisconnectProvider()
		assert.False(t, tenant.IsConnected())
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")
		require.NoError(t, err)

		err = tenant.ConnectProvider(ConnectedProvider("woocommerce"))
		assert.Error(t, err)
	})
}

func TestTenantStatusTransitions(t *testing.T) {
	t.Run("suspend and reactivate", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")
		require.NoError(t, err)
		tenant.ClearDomainEvents()

		require.NoError(t, tenant.Suspend())
		assert.Equal(t, TenantStatusSuspended, tenant.Status)
		assert.False(t, tenant.IsActive())
		assert.Len(t, tenant.GetDomainEvents(), 1)

		require.NoError(t, tenant.Activate())
		assert.True(t, tenant.IsActive())
	})

	t.Run("suspending twice fails", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")
		require.NoError(t, err)

		require.NoError(t, tenant.Suspend())
		assert.Error(t, tenant.Suspend())
	})

	t.Run("activating an active tenant fails", func(t *testing.T) {
		tenant, err := NewTenant("tenant-rms34", "RMS Demo Store")
		require.NoError(t, err)

		assert.Error(t, tenant.Activate())
	})
}
