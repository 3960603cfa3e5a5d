package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OrderStatus moves forward only: Processing, Shipped, Delivered.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

var validTransitions = map[OrderStatus]OrderStatus{
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// ListingSnapshot is a by-value copy of the listing fields an order keeps.
type ListingSnapshot struct {
	ListingID string  `json:"listingId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Thumbnail string  `json:"thumbnail"`
}

// Order is a locally created purchase record.
type Order struct {
	ID        string          `json:"id"`
	Listing   ListingSnapshot `json:"listing"`
	CreatedAt time.Time       `json:"createdAt"`
	Status    OrderStatus     `json:"status"`
}

// NewOrder snapshots l into a Processing order.
func NewOrder(l Listing, now time.Time) (Order, error) {
	id, err := NewOrderCode()
	if err != nil {
		return Order{}, err
	}
	return Order{
		ID: id,
		Listing: ListingSnapshot{
			ListingID: l.ID,
			Title:     l.Title,
			Price:     l.Price.Amount,
			Currency:  l.Price.Currency,
			Thumbnail: l.Thumbnail(),
		},
		CreatedAt: now,
		Status:    StatusProcessing,
	}, nil
}

// Advance moves the order to next if that is the single allowed forward step.
func (o *Order) Advance(next OrderStatus) error {
	if o.Status == next {
		return nil
	}
	if allowed, ok := validTransitions[o.Status]; !ok || allowed != next {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

const (
	orderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderCodeLength   = 6
)

// NewOrderCode returns a random 6 character code of uppercase letters and digits.
func NewOrderCode() (string, error) {
	buf := make([]byte, orderCodeLength)
	max := big.NewInt(int64(len(orderCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate order code: %w", err)
		}
		buf[i] = orderCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
