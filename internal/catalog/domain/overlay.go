package domain

// OverlayKind is a class of overlay drawn above the catalog grid.
type OverlayKind string

const (
	OverlayDetail       OverlayKind = "detail"
	OverlayReviewEditor OverlayKind = "review_editor"
	OverlayAllReviews   OverlayKind = "all_reviews"
	OverlayOrders       OverlayKind = "orders"
	OverlayFilterPanel  OverlayKind = "filter_panel"
)

// OverlayKinds lists every overlay class.
var OverlayKinds = []OverlayKind{
	OverlayDetail, OverlayReviewEditor, OverlayAllReviews, OverlayOrders, OverlayFilterPanel,
}

// IsValid reports whether k is a known overlay class.
func (k OverlayKind) IsValid() bool {
	for _, known := range OverlayKinds {
		if k == known {
			return true
		}
	}
	return false
}

// OverlayState is closed, or open on an entity reference (a listing ID, or "" for panels).
type OverlayState struct {
	Open bool   `json:"open"`
	Ref  string `json:"ref,omitempty"`
}
