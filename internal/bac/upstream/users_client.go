package upstream

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/bac/normalize"
	"github.com/bac-interop/interop-backend/internal/bac/query"
)

// RawPage is an upstream page of undecoded records plus the total the
// upstream reported.
type RawPage struct {
	Entries []map[string]any
	Total   int
}

// UsersClient talks to the users catalog, which answers in XML.
type UsersClient struct {
	c      *client
	apiKey string
}

// NewUsersClient creates a users client from its configuration
func NewUsersClient(cfg *config.UsersConfig, opts Options) *UsersClient {
	return &UsersClient{
		c:      newClient(domain.SystemUsers, cfg.BaseURL, opts),
		apiKey: cfg.APIKey,
	}
}

// ListUsers fetches one page of users.
func (u *UsersClient) ListUsers(ctx context.Context, page domain.Page) (RawPage, error) {
	body, ctype, err := u.c.get(ctx, "list_users", "/users", query.UsersList(u.apiKey, page).Encode(), "application/xml")
	if err != nil {
		return RawPage{}, err
	}

	tree, err := decodeTree(body, ctype)
	if err != nil {
		return RawPage{}, u.c.malformed("decode users list: %v", err)
	}
	root, ok := tree["users"]
	if !ok {
		return RawPage{}, u.c.malformed("missing users element")
	}

	users := normalize.Map(root)
	total := 0
	if s, ok := normalize.Scalar(normalize.Attr(users, "total_record_count")); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			total = n
		}
	}

	return RawPage{Entries: normalize.AsList(users["user"]), Total: total}, nil
}

// GetUser fetches a single user document.
func (u *UsersClient) GetUser(ctx context.Context, id string) (map[string]any, error) {
	path := "/users/" + url.PathEscape(id)
	body, ctype, err := u.c.get(ctx, "get_user", path, query.UserDetail(u.apiKey).Encode(), "application/xml")
	if err != nil {
		return nil, err
	}

	tree, err := decodeTree(body, ctype)
	if err != nil {
		return nil, u.c.malformed("decode user: %v", err)
	}
	root, ok := tree["user"]
	if !ok {
		return nil, u.c.malformed("missing user element")
	}
	return normalize.Map(root), nil
}
