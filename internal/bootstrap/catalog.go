package bootstrap

import (
	"fmt"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/service"
	"github.com/bac-interop/interop-backend/internal/bac/textmatch"
	"github.com/bac-interop/interop-backend/internal/bac/upstream"
)

// BuildCatalog creates both upstream clients and the catalog service on top
// of them. recorder may be nil.
func BuildCatalog(cfg *config.Config, recorder upstream.Recorder) (*service.CatalogService, error) {
	types, err := textmatch.LoadTypeTable(cfg.Catalog.TypeTablePath)
	if err != nil {
		return nil, fmt.Errorf("load type table: %w", err)
	}

	opts := upstream.Options{
		Timeout:   cfg.Upstream.Timeout,
		RateLimit: cfg.Upstream.RateLimit,
		Burst:     cfg.Upstream.Burst,
		Recorder:  recorder,
	}

	users := upstream.NewUsersClient(&cfg.Users, opts)
	pubs := upstream.NewPublicationsClient(&cfg.Publications, opts)

	return service.NewCatalogService(users, pubs, types), nil
}
