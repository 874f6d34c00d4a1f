package service

import (
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/bac/normalize"
	"github.com/bac-interop/interop-backend/internal/bac/textmatch"
)

// AssembleUsers normalizes every upstream user entry. Users with an id
// already seen earlier in the page are dropped.
func AssembleUsers(entries []map[string]any, total int) domain.PageResult[domain.UserRecord] {
	items := make([]domain.UserRecord, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		u := normalize.UserRecord(e)
		if u.ID != "" {
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
		}
		items = append(items, u)
	}
	return domain.PageResult[domain.UserRecord]{Items: items, Total: total}
}

// AssemblePublications runs the fixed pipeline: normalize, system label
// exact match, type equivalence, dedupe by id. Blank filter values are
// ignored. Total is passed through untouched.
func AssemblePublications(entries []map[string]any, total int, f domain.PublicationFilter, types *textmatch.TypeTable) domain.PageResult[domain.PublicationRecord] {
	f = f.Trimmed()
	records := make([]domain.PublicationRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, normalize.PublicationRecord(e))
	}

	if f.System != "" {
		records = keep(records, func(p domain.PublicationRecord) bool {
			return p.SystemLabel != nil && textmatch.ExactMatch(*p.SystemLabel, f.System)
		})
	}
	if f.Type != "" {
		records = keep(records, func(p domain.PublicationRecord) bool {
			return p.Type != nil && types.Match(f.Type, *p.Type)
		})
	}

	return domain.PageResult[domain.PublicationRecord]{Items: DedupePublications(records), Total: total}
}

// DedupePublications keeps the first occurrence of every id in order.
// Records without an id are never considered duplicates.
func DedupePublications(records []domain.PublicationRecord) []domain.PublicationRecord {
	out := make([]domain.PublicationRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID != nil {
			if _, dup := seen[*r.ID]; dup {
				continue
			}
			seen[*r.ID] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

func keep(records []domain.PublicationRecord, pred func(domain.PublicationRecord) bool) []domain.PublicationRecord {
	out := records[:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
