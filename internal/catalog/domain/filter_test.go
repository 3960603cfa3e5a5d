package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCriteria_HasNoActiveFilters(t *testing.T) {
	assert.Equal(t, 0, DefaultCriteria().ActiveCount())
	assert.Equal(t, 0, FilterCriteria{}.ActiveCount(), "zero value behaves as cleared")
}

func TestFilterCriteria_ActiveCount(t *testing.T) {
	c := DefaultCriteria()
	c.Category = "Electronics"
	c.MinPrice = "10"
	c.MaxPrice = "abc"
	c.MinRating = 4
	c.FreeShipping = true
	c.City = "  "
	c.Country = "Kazakhstan"

	// MaxPrice counts even though it does not parse: the field differs from cleared.
	assert.Equal(t, 6, c.ActiveCount())

	c.Category = AllCategories
	assert.Equal(t, 5, c.ActiveCount(), "count is recomputed on every call")
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"   ", nil},
		{"abc", nil},
		{"NaN", nil},
		{"Inf", nil},
		{"60", ptr(60)},
		{" 12.5 ", ptr(12.5)},
		{"0", ptr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseBound(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortKey("Price: Low to High"))
	assert.Equal(t, SortFeatured, ParseSortKey("cheapest"))
	assert.Equal(t, SortFeatured, ParseSortKey(""))
}

func ptr(v float64) *float64 { return &v }
