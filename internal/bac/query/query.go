// Package query builds the query strings sent to the users and publications
// upstream systems.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
)

// UsersOrder is the fixed sort key for the users list.
const UsersOrder = "last_name,first_name,primary_id"

// Upstream field codes of the publications mini-language.
const (
	FieldRegion = "lds05"
	FieldSystem = "lds08"
	FieldCrop   = "lds07"
	FieldType   = "rtype"
	FieldAny    = "any"
)

const (
	clauseSep   = ";"
	operatorSep = ","
	opContains  = "contains"
)

// UsersList returns the parameters for a users page. The upstream paginates
// and orders by itself, so the window is passed through as is.
func UsersList(apiKey string, page domain.Page) url.Values {
	v := url.Values{}
	v.Set("offset", strconv.Itoa(page.Offset))
	v.Set("limit", strconv.Itoa(page.Limit))
	v.Set("order_by", UsersOrder)
	v.Set("apikey", apiKey)
	return v
}

// UserDetail returns the parameters for a single user lookup.
func UserDetail(apiKey string) url.Values {
	v := url.Values{}
	v.Set("apikey", apiKey)
	return v
}

// Search holds the fixed publications search parameters.
type Search struct {
	APIKey           string
	View             string
	Scope            string
	Sort             string
	DefaultScopeTerm string
}

func (s Search) base(limit, offset int) url.Values {
	v := url.Values{}
	v.Set("vid", s.View)
	v.Set("scope", s.Scope)
	v.Set("apikey", s.APIKey)
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	if s.Sort != "" {
		v.Set("sort", s.Sort)
	}
	return v
}

// PublicationsList returns the raw query string for a filtered page.
func (s Search) PublicationsList(f domain.PublicationFilter, page domain.Page) string {
	return WithExpression(s.base(page.Limit, page.Offset), Expression(f, s.DefaultScopeTerm))
}

// PublicationDetail returns the raw query string for an id lookup.
func (s Search) PublicationDetail(id string) string {
	v := s.base(1, 0)
	v.Del("sort")
	return WithExpression(v, Clause(FieldAny, id))
}

// Expression joins one contains-clause per supplied filter with ";". With no
// filters it falls back to a broad any-field clause, since the upstream
// rejects an empty query term.
func Expression(f domain.PublicationFilter, defaultTerm string) string {
	if f.IsEmpty() {
		return Clause(FieldAny, defaultTerm)
	}
	f = f.Trimmed()
	var clauses []string
	for _, c := range []struct{ code, value string }{
		{FieldRegion, f.Region},
		{FieldSystem, f.System},
		{FieldCrop, f.Crop},
		{FieldType, f.Type},
	} {
		if c.value == "" {
			continue
		}
		clauses = append(clauses, Clause(c.code, c.value))
	}
	return strings.Join(clauses, clauseSep)
}

// Clause renders "<field>,contains,<value>". Separator characters inside the
// value would split the clause, so they are blanked out.
func Clause(field, value string) string {
	value = strings.NewReplacer(clauseSep, " ", operatorSep, " ").Replace(strings.TrimSpace(value))
	return field + operatorSep + opContains + operatorSep + value
}

// WithExpression appends the expression as the q parameter, escaped once as
// a whole after the rest of the query has been encoded.
func WithExpression(base url.Values, expr string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(expr), "+", "%20")
	encoded := base.Encode()
	if encoded == "" {
		return "q=" + escaped
	}
	return encoded + "&q=" + escaped
}
