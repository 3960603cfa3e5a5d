package domain

import (
	"fmt"
	"math"
	"time"
)

// Condition is the wear state of a listing.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionDigital Condition = "Digital"
)

// IsValid reports whether c is one of the known conditions.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionDigital:
		return true
	}
	return false
}

// DefaultCurrency tags prices that arrive without a currency.
const DefaultCurrency = "USD"

// Money is a currency-tagged amount.
type Money struct {
	Amount   float64 `json:"amount" yaml:"amount"`
	Currency string  `json:"currency" yaml:"currency"`
}

// Seller is shared by pointer across every listing from the same seller.
type Seller struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Initials    string  `json:"initials" yaml:"initials"`
	Verified    bool    `json:"verified" yaml:"verified"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Sales       int     `json:"sales" yaml:"sales"`
	Location    string  `json:"location" yaml:"location"`
	MemberSince int     `json:"memberSince" yaml:"member_since"`
	Bio         string  `json:"bio" yaml:"bio"`
	AvatarStyle string  `json:"avatarStyle" yaml:"avatar_style"`
}

// Listing is a catalog entry. It is never mutated after load.
type Listing struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          Money     `json:"price"`
	OriginalPrice  *float64  `json:"originalPrice,omitempty"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory"`
	Condition      Condition `json:"condition"`
	Brand          string    `json:"brand"`
	Tags           []string  `json:"tags"`
	Images         []string  `json:"images"`
	Seller         *Seller   `json:"seller"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"reviewCount"`
	Stock          int       `json:"stock"`
	ShippingPrice  float64   `json:"shippingPrice"`
	ShippingMethod string    `json:"shippingMethod"`
	ReturnPolicy   string    `json:"returnPolicy"`
	PostedAt       time.Time `json:"postedAt"`
	Views          int       `json:"views"`
	Saves          int       `json:"saves"`
	Featured       bool      `json:"featured"`
	Badge          string    `json:"badge,omitempty"`
}

// Validate checks the price and stock invariants.
func (l Listing) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidListing)
	}
	if l.Price.Amount < 0 {
		return fmt.Errorf("%w: listing %s has negative price", ErrInvalidListing, l.ID)
	}
	if l.OriginalPrice != nil && *l.OriginalPrice < l.Price.Amount {
		return fmt.Errorf("%w: listing %s original price below price", ErrInvalidListing, l.ID)
	}
	if l.Stock < 0 {
		return fmt.Errorf("%w: listing %s has negative stock", ErrInvalidListing, l.ID)
	}
	return nil
}

// InStock reports whether at least one unit is available.
func (l Listing) InStock() bool { return l.Stock > 0 }

// FreeShipping reports whether shipping costs nothing.
func (l Listing) FreeShipping() bool { return l.ShippingPrice == 0 }

// SellerName returns the seller display name or "" when the seller is unknown.
func (l Listing) SellerName() string {
	if l.Seller == nil {
		return ""
	}
	return l.Seller.Name
}

// Thumbnail returns the first image reference.
func (l Listing) Thumbnail() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// DiscountPercent is the rounded discount against OriginalPrice, 0 when there is none.
func (l Listing) DiscountPercent() int {
	if l.OriginalPrice == nil || *l.OriginalPrice <= 0 || *l.OriginalPrice <= l.Price.Amount {
		return 0
	}
	return int(math.Round((*l.OriginalPrice - l.Price.Amount) / *l.OriginalPrice * 100))
}
