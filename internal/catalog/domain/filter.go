package domain

import (
	"math"
	"strconv"
	"strings"
)

// Selector values that mean "no restriction".
const (
	AllCategories = "All"
	AnyCondition  = "Any"
	AllBrands     = "All Brands"
)

// FilterCriteria is the advanced filter panel state.
// Price bounds stay as the raw text the user typed; see Bounds.
type FilterCriteria struct {
	Category     string  `json:"category"`
	Condition    string  `json:"condition"`
	Brand        string  `json:"brand"`
	MinPrice     string  `json:"minPrice"`
	MaxPrice     string  `json:"maxPrice"`
	MinRating    float64 `json:"minRating"`
	FreeShipping bool    `json:"freeShipping"`
	FeaturedOnly bool    `json:"featuredOnly"`
	InStockOnly  bool    `json:"inStockOnly"`
	VerifiedOnly bool    `json:"verifiedOnly"`
	Country      string  `json:"country"`
	State        string  `json:"state"`
	City         string  `json:"city"`
}

// DefaultCriteria returns the cleared filter state.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category:  AllCategories,
		Condition: AnyCondition,
		Brand:     AllBrands,
	}
}

// Normalize fills empty selectors with their "any" value so a zero FilterCriteria behaves as cleared.
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.Category == "" {
		c.Category = AllCategories
	}
	if c.Condition == "" {
		c.Condition = AnyCondition
	}
	if c.Brand == "" {
		c.Brand = AllBrands
	}
	return c
}

// ActiveCount is the number of fields that differ from DefaultCriteria.
func (c FilterCriteria) ActiveCount() int {
	c = c.Normalize()
	n := 0
	count := func(active bool) {
		if active {
			n++
		}
	}
	count(c.Category != AllCategories)
	count(c.Condition != AnyCondition)
	count(c.Brand != AllBrands)
	count(strings.TrimSpace(c.MinPrice) != "")
	count(strings.TrimSpace(c.MaxPrice) != "")
	count(c.MinRating > 0)
	count(c.FreeShipping)
	count(c.FeaturedOnly)
	count(c.InStockOnly)
	count(c.VerifiedOnly)
	count(strings.TrimSpace(c.Country) != "")
	count(strings.TrimSpace(c.State) != "")
	count(strings.TrimSpace(c.City) != "")
	return n
}

// Bounds parses MinPrice and MaxPrice. Text that is not a number yields no bound.
func (c FilterCriteria) Bounds() (lo, hi *float64) {
	return ParseBound(c.MinPrice), ParseBound(c.MaxPrice)
}

// ParseBound parses s as a price bound, returning nil for blank or non-numeric input.
func ParseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
