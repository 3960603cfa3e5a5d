package domain

// SortKey names one of the catalog orderings.
type SortKey string

const (
	SortFeatured    SortKey = "Featured"
	SortPriceAsc    SortKey = "Price: Low to High"
	SortPriceDesc   SortKey = "Price: High to Low"
	SortMostPopular SortKey = "Most Popular"
	SortNewest      SortKey = "Newest"
	SortBestRated   SortKey = "Best Rated"
	SortMostSaved   SortKey = "Most Saved"
)

// SortKeys lists every ordering in menu order.
var SortKeys = []SortKey{
	SortFeatured, SortPriceAsc, SortPriceDesc, SortMostPopular, SortNewest, SortBestRated, SortMostSaved,
}

// IsValid reports whether k is a known ordering.
func (k SortKey) IsValid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParseSortKey maps s to a SortKey, defaulting to SortFeatured.
func ParseSortKey(s string) SortKey {
	if k := SortKey(s); k.IsValid() {
		return k
	}
	return SortFeatured
}
