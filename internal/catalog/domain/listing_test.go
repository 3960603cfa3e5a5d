package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListing_Validate(t *testing.T) {
	ok := Listing{ID: "p1", Price: Money{Amount: 100}, OriginalPrice: ptr(120), Stock: 1}
	assert.NoError(t, ok.Validate())

	cases := map[string]Listing{
		"empty id":       {Price: Money{Amount: 1}},
		"negative price": {ID: "p", Price: Money{Amount: -1}},
		"original below": {ID: "p", Price: Money{Amount: 100}, OriginalPrice: ptr(90)},
		"negative stock": {ID: "p", Price: Money{Amount: 1}, Stock: -2},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			err := l.Validate()
			assert.True(t, errors.Is(err, ErrInvalidListing), "got %v", err)
		})
	}
}

func TestListing_DerivedFields(t *testing.T) {
	l := Listing{ID: "p1", Price: Money{Amount: 75}, OriginalPrice: ptr(100), Images: []string{"a.png", "b.png"}}
	assert.Equal(t, 25, l.DiscountPercent())
	assert.Equal(t, "a.png", l.Thumbnail())
	assert.False(t, l.InStock())
	assert.True(t, l.FreeShipping())
	assert.Equal(t, "", l.SellerName())

	l.OriginalPrice = nil
	assert.Equal(t, 0, l.DiscountPercent())
}

func TestValidateReviewInput(t *testing.T) {
	c, err := ValidateReviewInput(5, "  Great  ")
	assert.NoError(t, err)
	assert.Equal(t, "Great", c)

	for _, r := range []int{0, 6, -1} {
		_, err = ValidateReviewInput(r, "fine")
		assert.ErrorIs(t, err, ErrInvalidReview)
	}

	_, err = ValidateReviewInput(3, "   ")
	assert.ErrorIs(t, err, ErrInvalidReview)

	long := make([]rune, MaxCommentLength+1)
	for i := range long {
		long[i] = 'й'
	}
	_, err = ValidateReviewInput(3, string(long))
	assert.ErrorIs(t, err, ErrInvalidReview)
	_, err = ValidateReviewInput(3, string(long[:MaxCommentLength]))
	assert.NoError(t, err)
}
