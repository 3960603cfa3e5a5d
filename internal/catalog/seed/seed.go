// Package seed holds the static listings and the five canned sellers that
// back the catalog whenever the remote feed is slow or unavailable.
package seed

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type listingDoc struct {
	ID             string    `yaml:"id"`
	Title          string    `yaml:"title"`
	Description    string    `yaml:"description"`
	Price          float64   `yaml:"price"`
	Currency       string    `yaml:"currency"`
	OriginalPrice  *float64  `yaml:"original_price"`
	Category       string    `yaml:"category"`
	Subcategory    string    `yaml:"subcategory"`
	Condition      string    `yaml:"condition"`
	Brand          string    `yaml:"brand"`
	Tags           []string  `yaml:"tags"`
	Images         []string  `yaml:"images"`
	Seller         string    `yaml:"seller"`
	Rating         float64   `yaml:"rating"`
	ReviewCount    int       `yaml:"review_count"`
	Stock          int       `yaml:"stock"`
	ShippingPrice  float64   `yaml:"shipping_price"`
	ShippingMethod string    `yaml:"shipping_method"`
	ReturnPolicy   string    `yaml:"return_policy"`
	PostedAt       time.Time `yaml:"posted_at"`
	Views          int       `yaml:"views"`
	Saves          int       `yaml:"saves"`
	Featured       bool      `yaml:"featured"`
	Badge          string    `yaml:"badge"`
}

type document struct {
	Sellers  []domain.Seller `yaml:"sellers"`
	Listings []listingDoc    `yaml:"listings"`
}

// Data is a parsed seed file.
type Data struct {
	Sellers  []*domain.Seller
	Listings []domain.Listing
}

var (
	loadOnce sync.Once
	loaded   *Data
	loadErr  error
)

// Parse decodes a seed document. Every listing must reference a declared seller.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if len(doc.Sellers) == 0 {
		return nil, fmt.Errorf("seed declares no sellers")
	}

	data := &Data{Sellers: make([]*domain.Seller, len(doc.Sellers))}
	byID := make(map[string]*domain.Seller, len(doc.Sellers))
	for i := range doc.Sellers {
		s := doc.Sellers[i]
		data.Sellers[i] = &s
		byID[s.ID] = &s
	}

	for _, d := range doc.Listings {
		seller, ok := byID[d.Seller]
		if !ok {
			return nil, fmt.Errorf("listing %s references unknown seller %q", d.ID, d.Seller)
		}
		currency := d.Currency
		if currency == "" {
			currency = domain.DefaultCurrency
		}
		l := domain.Listing{
			ID:             d.ID,
			Title:          d.Title,
			Description:    d.Description,
			Price:          domain.Money{Amount: d.Price, Currency: currency},
			OriginalPrice:  d.OriginalPrice,
			Category:       d.Category,
			Subcategory:    d.Subcategory,
			Condition:      domain.Condition(d.Condition),
			Brand:          d.Brand,
			Tags:           d.Tags,
			Images:         d.Images,
			Seller:         seller,
			Rating:         d.Rating,
			ReviewCount:    d.ReviewCount,
			Stock:          d.Stock,
			ShippingPrice:  d.ShippingPrice,
			ShippingMethod: d.ShippingMethod,
			ReturnPolicy:   d.ReturnPolicy,
			PostedAt:       d.PostedAt,
			Views:          d.Views,
			Saves:          d.Saves,
			Featured:       d.Featured,
			Badge:          d.Badge,
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if !l.Condition.IsValid() {
			return nil, fmt.Errorf("listing %s has unknown condition %q", d.ID, d.Condition)
		}
		data.Listings = append(data.Listings, l)
	}
	return data, nil
}

func load() *Data {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(seedYAML)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("embedded seed data is invalid: %v", loadErr))
	}
	return loaded
}

// Sellers returns the canned sellers in declaration order.
func Sellers() []*domain.Seller {
	s := load().Sellers
	out := make([]*domain.Seller, len(s))
	copy(out, s)
	return out
}

// Listings returns a fresh slice of the static listings.
func Listings() []domain.Listing {
	l := load().Listings
	out := make([]domain.Listing, len(l))
	copy(out, l)
	return out
}

// SellerForOwner maps an owner ID to one of the canned sellers: the sum of
// its bytes modulo the seller count. The same owner always gets the same seller.
func SellerForOwner(ownerID string) *domain.Seller {
	sellers := load().Sellers
	sum := 0
	for i := 0; i < len(ownerID); i++ {
		sum += int(ownerID[i])
	}
	return sellers[sum%len(sellers)]
}
