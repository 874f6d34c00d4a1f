package upstream

import (
	"context"
	"strings"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/bac/normalize"
	"github.com/bac-interop/interop-backend/internal/bac/query"
)

const searchPath = "/search"

// PublicationsClient talks to the publications catalog, which answers in JSON.
type PublicationsClient struct {
	c      *client
	search query.Search
}

// NewPublicationsClient creates a publications client from its configuration
func NewPublicationsClient(cfg *config.PublicationsConfig, opts Options) *PublicationsClient {
	return &PublicationsClient{
		c: newClient(domain.SystemPublications, cfg.BaseURL, opts),
		search: query.Search{
			APIKey:           cfg.APIKey,
			View:             cfg.View,
			Scope:            cfg.Scope,
			Sort:             cfg.Sort,
			DefaultScopeTerm: cfg.DefaultScopeTerm,
		},
	}
}

// StripPrefix removes the system prefix a publication id may carry.
func StripPrefix(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), IDPrefix)
}

// Search fetches one page of documents matching the filter.
func (p *PublicationsClient) Search(ctx context.Context, f domain.PublicationFilter, page domain.Page) (RawPage, error) {
	docs, total, err := p.fetch(ctx, "list_publications", p.search.PublicationsList(f, page))
	if err != nil {
		return RawPage{}, err
	}
	return RawPage{Entries: docs, Total: total}, nil
}

// Lookup fetches the document for id. It returns the stripped id that was
// searched for, and domain.ErrNotFound when the upstream has no match.
func (p *PublicationsClient) Lookup(ctx context.Context, id string) (map[string]any, string, error) {
	stripped := StripPrefix(id)
	docs, _, err := p.fetch(ctx, "get_publication", p.search.PublicationDetail(stripped))
	if err != nil {
		return nil, stripped, err
	}
	if len(docs) == 0 {
		return nil, stripped, domain.ErrNotFound
	}
	return docs[0], stripped, nil
}

func (p *PublicationsClient) fetch(ctx context.Context, operation, rawQuery string) ([]map[string]any, int, error) {
	body, _, err := p.c.get(ctx, operation, searchPath, rawQuery, "application/json")
	if err != nil {
		return nil, 0, err
	}

	tree, err := decodeJSON(body)
	if err != nil {
		return nil, 0, p.c.malformed("decode search response: %v", err)
	}
	rawDocs, ok := tree["docs"]
	if !ok {
		return nil, 0, p.c.malformed("missing docs")
	}

	docs := normalize.AsList(rawDocs)
	total := len(docs)
	if n, ok := normalize.Child(tree, "info", "total").(float64); ok {
		total = int(n)
	}
	return docs, total, nil
}
