package ecommerce

import (
	"errors"
	"fmt"
	"strings"
)

// Shopify credential errors
var (
	ErrShopifyMissingShopDomain  = errors.New("shopify: shop domain is required")
	ErrShopifyMissingAccessToken = errors.New("shopify: access token is required")
)

// ShopifyCredentials holds the per-tenant connection to a Shopify shop.
// AccessToken is an Admin API token scoped to read_orders.
type ShopifyCredentials struct {
	ShopDomain  string
	AccessToken string

	// APIBaseURL overrides the URL derived from ShopDomain. Used for
	// tests and proxies; leave empty in production.
	APIBaseURL string
}

// Validate checks that the credentials are usable
func (c *ShopifyCredentials) Validate() error {
	if c == nil {
		return ErrShopifyMissingShopDomain
	}
	if strings.TrimSpace(c.ShopDomain) == "" && strings.TrimSpace(c.APIBaseURL) == "" {
		return ErrShopifyMissingShopDomain
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return ErrShopifyMissingAccessToken
	}
	return nil
}

// NormalizedShopDomain returns the shop domain in full
// <name>.myshopify.com form, lowercased.
func (c *ShopifyCredentials) NormalizedShopDomain() string {
	domain := strings.ToLower(strings.TrimSpace(c.ShopDomain))
	if domain == "" {
		return ""
	}
	if !strings.Contains(domain, ".") {
		domain += ".myshopify.com"
	}
	return domain
}

// baseURL returns the Admin API root for the given API version
func (c *ShopifyCredentials) baseURL(apiVersion string) string {
	if c.APIBaseURL != "" {
		return strings.TrimSuffix(c.APIBaseURL, "/") + "/admin/api/" + apiVersion
	}
	return fmt.Sprintf("https://%s/admin/api/%s", c.NormalizedShopDomain(), apiVersion)
}
