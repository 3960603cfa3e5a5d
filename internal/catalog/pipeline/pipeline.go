// Package pipeline computes the visible catalog list from raw listings and the
// current query. Everything here is pure: the same inputs always produce the
// same ordered output and the input slice is never reordered.
package pipeline

import (
	"sort"
	"strings"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

// Query is everything that narrows or orders the catalog.
type Query struct {
	Search   string                `json:"search"`
	Tab      string                `json:"tab"`
	Criteria domain.FilterCriteria `json:"criteria"`
	Sort     domain.SortKey        `json:"sort"`
}

// DefaultQuery is the query of a freshly opened catalog screen.
func DefaultQuery() Query {
	return Query{
		Tab:      domain.AllCategories,
		Criteria: domain.DefaultCriteria(),
		Sort:     domain.SortFeatured,
	}
}

// Counts is the "showing N of M" pair.
type Counts struct {
	Total   int `json:"total"`
	Visible int `json:"visible"`
}

// Apply filters listings by q and orders the survivors by q.Sort.
func Apply(listings []domain.Listing, q Query) []domain.Listing {
	m := newMatcher(q)
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if m.match(l) {
			out = append(out, l)
		}
	}
	sortListings(out, q.Sort)
	return out
}

// Matches reports whether l survives every predicate of q.
func Matches(l domain.Listing, q Query) bool {
	return newMatcher(q).match(l)
}

// Count returns the total and visible sizes for q.
func Count(listings []domain.Listing, q Query) Counts {
	m := newMatcher(q)
	c := Counts{Total: len(listings)}
	for _, l := range listings {
		if m.match(l) {
			c.Visible++
		}
	}
	return c
}

// matcher holds the query with its text lowered and price bounds parsed once.
type matcher struct {
	search    string
	tab       string
	criteria  domain.FilterCriteria
	minPrice  *float64
	maxPrice  *float64
	locations []string
}

func newMatcher(q Query) matcher {
	c := q.Criteria.Normalize()
	lo, hi := c.Bounds()
	m := matcher{
		search:   strings.ToLower(strings.TrimSpace(q.Search)),
		tab:      q.Tab,
		criteria: c,
		minPrice: lo,
		maxPrice: hi,
	}
	for _, loc := range []string{c.Country, c.State, c.City} {
		if loc = strings.ToLower(strings.TrimSpace(loc)); loc != "" {
			m.locations = append(m.locations, loc)
		}
	}
	return m
}

func (m matcher) match(l domain.Listing) bool {
	c := m.criteria

	if c.FreeShipping && !l.FreeShipping() {
		return false
	}
	if c.FeaturedOnly && !l.Featured {
		return false
	}
	if c.InStockOnly && !l.InStock() {
		return false
	}
	if c.VerifiedOnly && (l.Seller == nil || !l.Seller.Verified) {
		return false
	}
	if m.tab != "" && m.tab != domain.AllCategories && l.Category != m.tab {
		return false
	}
	if c.Category != domain.AllCategories && l.Category != c.Category {
		return false
	}
	if c.Condition != domain.AnyCondition && string(l.Condition) != c.Condition {
		return false
	}
	if c.Brand != domain.AllBrands && l.Brand != c.Brand {
		return false
	}
	if m.minPrice != nil && l.Price.Amount < *m.minPrice {
		return false
	}
	if m.maxPrice != nil && l.Price.Amount > *m.maxPrice {
		return false
	}
	if l.Rating < c.MinRating {
		return false
	}
	if len(m.locations) > 0 {
		if l.Seller == nil {
			return false
		}
		where := strings.ToLower(l.Seller.Location)
		for _, loc := range m.locations {
			if !strings.Contains(where, loc) {
				return false
			}
		}
	}
	return m.matchSearch(l)
}

func (m matcher) matchSearch(l domain.Listing) bool {
	if m.search == "" {
		return true
	}
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), m.search) }
	if contains(l.Title) || contains(l.Description) || contains(l.SellerName()) || contains(l.Brand) {
		return true
	}
	for _, tag := range l.Tags {
		if contains(tag) {
			return true
		}
	}
	return false
}

// sortListings orders ls in place. Every ordering is stable so equal keys keep feed order.
func sortListings(ls []domain.Listing, key domain.SortKey) {
	var less func(a, b domain.Listing) bool
	switch key {
	case domain.SortPriceAsc:
		less = func(a, b domain.Listing) bool { return a.Price.Amount < b.Price.Amount }
	case domain.SortPriceDesc:
		less = func(a, b domain.Listing) bool { return a.Price.Amount > b.Price.Amount }
	case domain.SortMostPopular:
		less = func(a, b domain.Listing) bool { return a.Views > b.Views }
	case domain.SortNewest:
		less = func(a, b domain.Listing) bool { return a.PostedAt.After(b.PostedAt) }
	case domain.SortBestRated:
		less = func(a, b domain.Listing) bool { return a.Rating > b.Rating }
	case domain.SortMostSaved:
		less = func(a, b domain.Listing) bool { return a.Saves > b.Saves }
	default:
		// Featured is a partition, not a full sort.
		less = func(a, b domain.Listing) bool { return a.Featured && !b.Featured }
	}
	sort.SliceStable(ls, func(i, j int) bool { return less(ls[i], ls[j]) })
}
