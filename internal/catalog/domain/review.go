package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the longest review comment accepted, in characters.
const MaxCommentLength = 500

// UserReview is a review written by the session user. At most one exists per listing.
type UserReview struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateReviewInput checks the rating range and returns the trimmed comment.
func ValidateReviewInput(rating int, comment string) (string, error) {
	if rating < 1 || rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidReview)
	}
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return "", fmt.Errorf("%w: comment cannot be empty", ErrInvalidReview)
	}
	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return "", fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidReview, MaxCommentLength)
	}
	return trimmed, nil
}
