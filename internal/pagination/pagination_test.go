package pagination

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	assert.Equal(t, Meta{Page: 3, TotalPages: 10, HasNext: true}, Compute(95, 10, 20))
	assert.Equal(t, Meta{Page: 1, TotalPages: 1, HasNext: false}, Compute(5, 10, 0))
	assert.Equal(t, Meta{Page: 1, TotalPages: 0, HasNext: false}, Compute(0, 10, 0))
	assert.Equal(t, Meta{Page: 10, TotalPages: 10, HasNext: false}, Compute(95, 10, 90))
}

func TestCompute_ZeroLimit(t *testing.T) {
	assert.NotPanics(t, func() { Compute(95, 0, 20) })
	m := Compute(95, 0, 20)
	assert.Equal(t, 1, m.Page)
	assert.False(t, m.HasNext)
}

func TestContentRange(t *testing.T) {
	assert.Equal(t, "items 0-2/3", ContentRange(0, 3, 3))
	assert.Equal(t, "items 20-29/95", ContentRange(20, 10, 95))
	assert.Equal(t, "items 40-40/3", ContentRange(40, 0, 3))
}

func TestSetHeaders(t *testing.T) {
	h := http.Header{}
	SetHeaders(h, 50, 0, 3, 3)

	assert.Equal(t, "items 0-2/3", h.Get(HeaderContentRange))
	assert.Equal(t, "3", h.Get(HeaderTotalCount))
	assert.Equal(t, "items", h.Get(HeaderAcceptRanges))
	assert.Equal(t, "1", h.Get(HeaderPage))
	assert.Equal(t, "1", h.Get(HeaderTotalPages))
	assert.Equal(t, "false", h.Get(HeaderHasNext))
}
