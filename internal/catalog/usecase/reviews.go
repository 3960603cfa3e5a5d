package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

// ReviewLedger holds the reviews written in this session, one per listing.
type ReviewLedger struct {
	reviews []domain.UserReview
	now     func() time.Time
	newID   func() string
}

// NewReviewLedger returns an empty ledger.
func NewReviewLedger() *ReviewLedger {
	return &ReviewLedger{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Submit creates a review for listingID. It refuses, leaving the ledger
// untouched, when the listing already has a review (ErrDuplicateReview) or the
// input is invalid (ErrInvalidReview).
func (r *ReviewLedger) Submit(listingID string, rating int, comment string) (domain.UserReview, error) {
	if _, ok := r.FindByListing(listingID); ok {
		return domain.UserReview{}, fmt.Errorf("%w: listing %s", domain.ErrDuplicateReview, listingID)
	}
	trimmed, err := domain.ValidateReviewInput(rating, comment)
	if err != nil {
		return domain.UserReview{}, err
	}
	review := domain.UserReview{
		ID:        r.newID(),
		ListingID: listingID,
		Rating:    rating,
		Comment:   trimmed,
		UpdatedAt: r.now(),
	}
	r.reviews = append(r.reviews, review)
	return review, nil
}

// Edit replaces the rating and comment of an existing review. ID and listing stay fixed.
func (r *ReviewLedger) Edit(reviewID string, rating int, comment string) (domain.UserReview, error) {
	i := r.indexOf(reviewID)
	if i < 0 {
		return domain.UserReview{}, fmt.Errorf("%w: %s", domain.ErrReviewNotFound, reviewID)
	}
	trimmed, err := domain.ValidateReviewInput(rating, comment)
	if err != nil {
		return domain.UserReview{}, err
	}
	r.reviews[i].Rating = rating
	r.reviews[i].Comment = trimmed
	r.reviews[i].UpdatedAt = r.now()
	return r.reviews[i], nil
}

// Delete removes the review with reviewID and reports whether one existed.
func (r *ReviewLedger) Delete(reviewID string) bool {
	i := r.indexOf(reviewID)
	if i < 0 {
		return false
	}
	r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
	return true
}

// FindByListing returns the review for listingID, if any.
func (r *ReviewLedger) FindByListing(listingID string) (domain.UserReview, bool) {
	for _, rv := range r.reviews {
		if rv.ListingID == listingID {
			return rv, true
		}
	}
	return domain.UserReview{}, false
}

// All returns every review, most recently created first.
func (r *ReviewLedger) All() []domain.UserReview {
	out := make([]domain.UserReview, len(r.reviews))
	for i, rv := range r.reviews {
		out[len(r.reviews)-1-i] = rv
	}
	return out
}

// Len is the number of reviews.
func (r *ReviewLedger) Len() int { return len(r.reviews) }

func (r *ReviewLedger) indexOf(reviewID string) int {
	for i, rv := range r.reviews {
		if rv.ID == reviewID {
			return i
		}
	}
	return -1
}
