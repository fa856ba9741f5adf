// Package integration defines the ports for connected e-commerce platforms.
//
// Key concepts:
//   - OrderPlatform: port interface for reading orders from a provider (Shopify)
//   - PlatformOrder: value object for an order as the platform reports it
//   - PlatformRegistry: resolves the adapter for a tenant's connected provider
//
// Ports live here in the domain layer; adapters live in
// infrastructure/ecommerce.
package integration
