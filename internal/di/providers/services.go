package providers

import (
	"github.com/samber/do/v2"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/config"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/service"
)

// ProvideCatalogService provides the stateless catalog query service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	store := do.MustInvoke[*catalog.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(store, log), nil
}

// BrowseServiceHandle wraps the session registry with shutdown capability.
type BrowseServiceHandle struct {
	*service.BrowseService
}

// Shutdown implements do.Shutdownable.
func (h *BrowseServiceHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideBrowseService provides the browse session registry.
func ProvideBrowseService(i do.Injector) (*BrowseServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	store := do.MustInvoke[*catalog.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewBrowseService(store, service.BrowseOptions{
		PageSize: cfg.Catalog.PageSize,
		Debounce: cfg.Catalog.SearchDebounce,
		Expiry:   cfg.Catalog.SessionExpiry,
	}, log)

	return &BrowseServiceHandle{BrowseService: svc}, nil
}
