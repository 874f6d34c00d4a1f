package textmatch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeTable maps a canonical document type to the set of raw upstream type
// codes it accepts. Keys and codes are stored normalized.
type TypeTable struct {
	sets map[string]map[string]struct{}
}

var defaultTypes = map[string][]string{
	"boletin":     {"boletin", "boletin_tecnico", "boletines", "newsletter_articles", "newsletters"},
	"manual":      {"manual", "manuales", "manual_tecnico", "guia", "guides"},
	"libro":       {"libro", "libros", "books", "book", "book_chapters"},
	"revista":     {"revista", "revistas", "journals", "articles", "journal_articles"},
	"informe":     {"informe", "informes", "informe_tecnico", "reports"},
	"audiovisual": {"audiovisual", "videos", "video", "audio_video", "audios"},
	"tesis":       {"tesis", "theses", "dissertations"},
	"otros":       {"otros", "other", "text_resources"},
}

// NewTypeTable builds a table from canonical name to raw codes. Each
// canonical name always accepts itself.
func NewTypeTable(raw map[string][]string) *TypeTable {
	t := &TypeTable{sets: make(map[string]map[string]struct{}, len(raw))}
	for canonical, codes := range raw {
		key := NormalizeStr(canonical)
		set, ok := t.sets[key]
		if !ok {
			set = map[string]struct{}{key: {}}
			t.sets[key] = set
		}
		for _, c := range codes {
			set[NormalizeStr(c)] = struct{}{}
		}
	}
	return t
}

// DefaultTypeTable returns the built-in document type taxonomy.
func DefaultTypeTable() *TypeTable {
	return NewTypeTable(defaultTypes)
}

// LoadTypeTable reads a YAML document of the form
//
//	libro: [books, book_chapters]
//	tesis: [theses]
//
// An empty path yields the default table.
func LoadTypeTable(path string) (*TypeTable, error) {
	if path == "" {
		return DefaultTypeTable(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type table: %w", err)
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse type table %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("type table %s is empty", path)
	}
	return NewTypeTable(raw), nil
}

// Equivalents returns the accepted raw codes for a canonical name. Unknown
// names fall back to the literal name.
func (t *TypeTable) Equivalents(canonical string) map[string]struct{} {
	key := NormalizeStr(canonical)
	if set, ok := t.sets[key]; ok {
		return set
	}
	return map[string]struct{}{key: {}}
}

// Match reports whether raw belongs to the equivalence set of canonical.
func (t *TypeTable) Match(canonical, raw string) bool {
	_, ok := t.Equivalents(canonical)[NormalizeStr(raw)]
	return ok
}

// TypeMatch checks raw against canonical using the default table.
func TypeMatch(canonical, raw string) bool {
	return defaultTable.Match(canonical, raw)
}

var defaultTable = DefaultTypeTable()
