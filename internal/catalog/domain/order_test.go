package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestNewOrder_SnapshotsListing(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	l := Listing{ID: "p1", Title: "X", Price: Money{Amount: 100, Currency: "USD"}, Images: []string{"thumb"}}

	o, err := NewOrder(l, now)
	require.NoError(t, err)

	assert.Regexp(t, orderCodePattern, o.ID)
	assert.Equal(t, StatusProcessing, o.Status)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, ListingSnapshot{ListingID: "p1", Title: "X", Price: 100, Currency: "USD", Thumbnail: "thumb"}, o.Listing)

	l.Price.Amount = 1
	l.Images[0] = "changed"
	assert.Equal(t, 100.0, o.Listing.Price)
	assert.Equal(t, "thumb", o.Listing.Thumbnail)
}

func TestOrder_Advance(t *testing.T) {
	o := Order{Status: StatusProcessing}

	assert.ErrorIs(t, o.Advance(StatusDelivered), ErrInvalidTransition)
	require.NoError(t, o.Advance(StatusShipped))
	require.NoError(t, o.Advance(StatusShipped), "same status is a no-op")
	require.NoError(t, o.Advance(StatusDelivered))
	assert.ErrorIs(t, o.Advance(StatusProcessing), ErrInvalidTransition)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestNewOrderCode_Pattern(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewOrderCode()
		require.NoError(t, err)
		assert.Regexp(t, orderCodePattern, code)
	}
}
