package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/royentertainment/roy-server/internal/catalog"
	"github.com/royentertainment/roy-server/internal/config"
	"github.com/royentertainment/roy-server/internal/logger"
	"github.com/royentertainment/roy-server/internal/source"
)

// DatabaseHandle wraps the SQLite catalog database with shutdown capability.
type DatabaseHandle struct {
	*source.DB
}

// Shutdown implements do.Shutdownable.
func (h *DatabaseHandle) Shutdown() error {
	return h.Close()
}

// ProvideDatabase provides the SQLite movie database.
func ProvideDatabase(i do.Injector) (*DatabaseHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := source.Open(cfg.DatabasePath(), log)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.DatabasePath())

	return &DatabaseHandle{DB: db}, nil
}

// ProvideCatalogStore provides the in-memory catalog backed by the database.
func ProvideCatalogStore(i do.Injector) (*catalog.Store, error) {
	dbHandle := do.MustInvoke[*DatabaseHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewStore(dbHandle.DB, log), nil
}

// Bootstrap contains the catalog bootstrap result.
type Bootstrap struct {
	MovieCount int
}

// ProvideBootstrap loads the catalog from the database at startup. A failed
// or empty source still boots the server with an empty catalog.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	store := do.MustInvoke[*catalog.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	count := store.Load(context.Background())
	if count == 0 {
		log.Warn("Catalog is empty - seed the database with cmd/seed")
	}

	return &Bootstrap{MovieCount: count}, nil
}
