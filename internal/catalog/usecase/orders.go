package usecase

import (
	"time"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

// OrderLog is the append-only list of orders placed in this session.
type OrderLog struct {
	orders []domain.Order
	now    func() time.Time
}

// NewOrderLog returns an empty log.
func NewOrderLog() *OrderLog {
	return &OrderLog{now: func() time.Time { return time.Now().UTC() }}
}

// PlaceOrder snapshots l into a new Processing order and puts it at the head of the log.
func (o *OrderLog) PlaceOrder(l domain.Listing) (domain.Order, error) {
	order, err := domain.NewOrder(l, o.now())
	if err != nil {
		return domain.Order{}, err
	}
	o.orders = append([]domain.Order{order}, o.orders...)
	return order, nil
}

// Orders returns a copy of the log, most recent first.
func (o *OrderLog) Orders() []domain.Order {
	return append([]domain.Order(nil), o.orders...)
}

// Len is the number of orders.
func (o *OrderLog) Len() int { return len(o.orders) }
