// Package di provides dependency injection configuration for the Roy
// Entertainment server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/config"
	"github.com/royentertainment/roy-server/internal/di/providers"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideDatabase)
	do.Provide(injector, providers.ProvideCatalogStore)
	do.Provide(injector, providers.ProvideBootstrap)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideBrowseService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.DatabaseHandle](injector)
	_ = do.MustInvoke[*catalog.Store](injector)
	_ = do.MustInvoke[*providers.Bootstrap](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*providers.BrowseServiceHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Reindex search if the catalog outran the index
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
