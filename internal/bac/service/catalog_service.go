// Package service wires the upstream clients to the normalization and
// assembly stages.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/bac/normalize"
	"github.com/bac-interop/interop-backend/internal/bac/textmatch"
	"github.com/bac-interop/interop-backend/internal/bac/upstream"
)

// UsersSource is the users upstream.
type UsersSource interface {
	ListUsers(ctx context.Context, page domain.Page) (upstream.RawPage, error)
	GetUser(ctx context.Context, id string) (map[string]any, error)
}

// PublicationsSource is the publications upstream.
type PublicationsSource interface {
	Search(ctx context.Context, f domain.PublicationFilter, page domain.Page) (upstream.RawPage, error)
	Lookup(ctx context.Context, id string) (map[string]any, string, error)
}

// CatalogService answers the four catalog operations. It holds no mutable
// state and is safe for concurrent use.
type CatalogService struct {
	users UsersSource
	pubs  PublicationsSource
	types *textmatch.TypeTable
}

// NewCatalogService creates a catalog service. A nil table uses the built-in one.
func NewCatalogService(users UsersSource, pubs PublicationsSource, types *textmatch.TypeTable) *CatalogService {
	if types == nil {
		types = textmatch.DefaultTypeTable()
	}
	return &CatalogService{users: users, pubs: pubs, types: types}
}

// ListUsers returns one page of users.
func (s *CatalogService) ListUsers(ctx context.Context, page domain.Page) (domain.PageResult[domain.UserRecord], error) {
	if err := page.Validate(); err != nil {
		return domain.PageResult[domain.UserRecord]{}, err
	}
	raw, err := s.users.ListUsers(ctx, page)
	if err != nil {
		return domain.PageResult[domain.UserRecord]{}, fmt.Errorf("list users: %w", err)
	}
	return AssembleUsers(raw.Entries, raw.Total), nil
}

// GetUser returns the detail of one user. An upstream 404 is reported as
// domain.ErrNotFound.
func (s *CatalogService) GetUser(ctx context.Context, id string) (*domain.UserDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	raw, err := s.users.GetUser(ctx, id)
	if err != nil {
		var uerr *domain.UpstreamError
		if errors.As(err, &uerr) && uerr.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	detail := normalize.UserDetail(raw)
	return &detail, nil
}

// ListPublications returns one page of publications matching f.
func (s *CatalogService) ListPublications(ctx context.Context, f domain.PublicationFilter, page domain.Page) (domain.PageResult[domain.PublicationRecord], error) {
	if err := page.Validate(); err != nil {
		return domain.PageResult[domain.PublicationRecord]{}, err
	}
	f = f.Trimmed()
	raw, err := s.pubs.Search(ctx, f, page)
	if err != nil {
		return domain.PageResult[domain.PublicationRecord]{}, fmt.Errorf("list publications: %w", err)
	}
	return AssemblePublications(raw.Entries, raw.Total, f, s.types), nil
}

// GetPublication returns the detail of one publication. The id may carry
// the system prefix.
func (s *CatalogService) GetPublication(ctx context.Context, id string) (*domain.PublicationDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	doc, stripped, err := s.pubs.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get publication %s: %w", stripped, err)
	}
	detail := normalize.PublicationDetail(doc, stripped)
	return &detail, nil
}
