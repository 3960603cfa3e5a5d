package domain

import (
	"context"
	"time"
)

// RemoteRecord is a product record as the hosted database returns it.
type RemoteRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PriceText       string    `json:"price"`
	Currency        string    `json:"currency,omitempty"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory,omitempty"`
	Condition       string    `json:"condition"`
	Brand           string    `json:"brand"`
	Tags            []string  `json:"tags"`
	Thumbnail       string    `json:"thumbnail"`
	ReferenceImages []string  `json:"referenceImages"`
	OwnerID         string    `json:"ownerId"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"createdAt"`
	Shares          *int      `json:"shares,omitempty"`
	Views           *int      `json:"views,omitempty"`
	IsPublic        bool      `json:"isPublic"`
}

// ListingSource is the read-only remote product feed.
type ListingSource interface {
	Fetch(ctx context.Context) ([]RemoteRecord, error)
}

// RefreshableSource is a ListingSource that keeps a copy of the feed and can drop it.
type RefreshableSource interface {
	ListingSource
	Invalidate(ctx context.Context) error
}

// ImageResolver turns a stored image reference into a URL the presentation layer can load.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// EventPublisher receives best-effort notifications of session activity.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Navigator leaves the catalog for another page, e.g. "home", "dashboard" or "favourites".
type Navigator func(page string)

// Event subjects published by the session.
const (
	SubjectListingSaved    = "catalog.listing.saved"
	SubjectListingUnsaved  = "catalog.listing.unsaved"
	SubjectReviewSubmitted = "catalog.review.submitted"
	SubjectReviewEdited    = "catalog.review.edited"
	SubjectReviewDeleted   = "catalog.review.deleted"
	SubjectOrderPlaced     = "catalog.order.placed"
)
