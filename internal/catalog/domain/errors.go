package domain

import "errors"

var (
	// ErrListingNotFound indicates that no listing with the given ID is loaded.
	ErrListingNotFound = errors.New("listing not found")
	// ErrInvalidListing indicates a listing that violates price or stock invariants.
	ErrInvalidListing = errors.New("invalid listing data")
	// ErrDuplicateReview indicates the listing already has a review in this session.
	ErrDuplicateReview = errors.New("review already exists for this listing")
	// ErrInvalidReview indicates a rating or comment that cannot be accepted.
	ErrInvalidReview = errors.New("invalid review input")
	// ErrReviewNotFound indicates that no review with the given ID exists.
	ErrReviewNotFound = errors.New("review not found")
	// ErrInvalidTransition indicates a backwards or unknown order status change.
	ErrInvalidTransition = errors.New("invalid order status transition")
)
