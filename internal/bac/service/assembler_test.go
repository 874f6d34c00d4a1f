package service

import (
	"testing"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/bac/textmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id, system, typ string) map[string]any {
	display := map[string]any{}
	if id != "" {
		display["mms"] = []any{id}
	}
	if system != "" {
		display["lds08"] = []any{system}
	}
	if typ != "" {
		display["type"] = []any{typ}
	}
	return map[string]any{"pnx": map[string]any{"display": display}}
}

func ids(items []domain.PublicationRecord) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		if p.ID == nil {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, *p.ID)
	}
	return out
}

func TestAssemblePublications_Dedupe(t *testing.T) {
	entries := []map[string]any{doc("1", "", ""), doc("2", "", ""), doc("1", "", "")}

	res := AssemblePublications(entries, 3, domain.PublicationFilter{}, textmatch.DefaultTypeTable())
	assert.Equal(t, []string{"1", "2"}, ids(res.Items))
	assert.Equal(t, 3, res.Total)
}

func TestAssemblePublications_MissingIDsKept(t *testing.T) {
	entries := []map[string]any{doc("", "", ""), doc("", "", "")}

	res := AssemblePublications(entries, 2, domain.PublicationFilter{}, textmatch.DefaultTypeTable())
	assert.Len(t, res.Items, 2)
}

func TestAssemblePublications_SystemExactMatch(t *testing.T) {
	entries := []map[string]any{
		doc("1", "Técnico", ""),
		doc("2", "Técnico Avanzado", ""),
		doc("3", "tecnico", ""),
		doc("4", "", ""),
	}

	res := AssemblePublications(entries, 40, domain.PublicationFilter{System: "TECNICO"}, textmatch.DefaultTypeTable())
	assert.Equal(t, []string{"1", "3"}, ids(res.Items))
	assert.Equal(t, 40, res.Total, "total is the upstream count, not the filtered one")
}

func TestAssemblePublications_TypeEquivalence(t *testing.T) {
	entries := []map[string]any{
		doc("1", "", "boletin_tecnico"),
		doc("2", "", "books"),
		doc("3", "", "Boletín"),
	}

	res := AssemblePublications(entries, 3, domain.PublicationFilter{Type: "boletin"}, textmatch.DefaultTypeTable())
	assert.Equal(t, []string{"1", "3"}, ids(res.Items))
}

func TestAssemblePublications_FiltersThenDedupe(t *testing.T) {
	entries := []map[string]any{
		doc("1", "Otro", "books"),
		doc("1", "Técnico", "books"),
		doc("2", "Técnico", "reports"),
	}

	res := AssemblePublications(entries, 3, domain.PublicationFilter{System: "técnico", Type: "libro"}, textmatch.DefaultTypeTable())
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Técnico", *res.Items[0].SystemLabel)
}

func TestAssembleUsers(t *testing.T) {
	entries := []map[string]any{
		{"primary_id": "1", "first_name": "Ana", "last_name": "Gómez"},
		{"primary_id": "2", "first_name": "Luis"},
		{"primary_id": "1", "first_name": "Ana", "last_name": "Gómez"},
	}

	res := AssembleUsers(entries, 10)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Ana Gómez", res.Items[0].Name)
	assert.Equal(t, "Luis", res.Items[1].Name)
	assert.Equal(t, 10, res.Total)
}

func TestAssemblePublications_BlankFiltersIgnored(t *testing.T) {
	entries := []map[string]any{
		doc("1", "Extensionista", "Libro"),
		doc("2", "Productor", "Manual"),
	}

	for _, f := range []domain.PublicationFilter{{System: "  "}, {Type: " \t"}, {System: " ", Type: " "}} {
		res := AssemblePublications(entries, 2, f, textmatch.DefaultTypeTable())
		assert.Equal(t, []string{"1", "2"}, ids(res.Items))
		assert.Equal(t, 2, res.Total)
	}
}

func TestAssemblePublications_FilterValuesTrimmed(t *testing.T) {
	entries := []map[string]any{
		doc("1", "Extensionista", ""),
		doc("2", "Productor", ""),
	}

	res := AssemblePublications(entries, 2, domain.PublicationFilter{System: " productor "}, textmatch.DefaultTypeTable())
	assert.Equal(t, []string{"2"}, ids(res.Items))
}
