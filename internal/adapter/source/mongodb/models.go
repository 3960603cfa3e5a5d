package mongodb

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

// productDocument is a record of the hosted products collection.
// _id and price are kept raw because writers store them with more than one BSON type.
type productDocument struct {
	ID              bson.RawValue `bson:"_id"`
	Name            string        `bson:"name"`
	Description     string        `bson:"description"`
	Price           bson.RawValue `bson:"price"`
	Currency        string        `bson:"currency,omitempty"`
	Category        string        `bson:"category"`
	Subcategory     string        `bson:"subcategory,omitempty"`
	Condition       string        `bson:"condition"`
	Brand           string        `bson:"brand"`
	Tags            []string      `bson:"tags,omitempty"`
	Thumbnail       string        `bson:"thumbnail"`
	ReferenceImages []string      `bson:"reference_images,omitempty"`
	OwnerID         string        `bson:"owner_id"`
	City            string        `bson:"city,omitempty"`
	Country         string        `bson:"country,omitempty"`
	CreatedAt       time.Time     `bson:"created_at"`
	Shares          *int          `bson:"shares,omitempty"`
	Views           *int          `bson:"views,omitempty"`
	IsPublic        bool          `bson:"is_public"`
}

func toRemoteRecord(d *productDocument) domain.RemoteRecord {
	return domain.RemoteRecord{
		ID:              rawID(d.ID),
		Name:            d.Name,
		Description:     d.Description,
		PriceText:       rawPrice(d.Price),
		Currency:        d.Currency,
		Category:        d.Category,
		Subcategory:     d.Subcategory,
		Condition:       d.Condition,
		Brand:           d.Brand,
		Tags:            d.Tags,
		Thumbnail:       d.Thumbnail,
		ReferenceImages: d.ReferenceImages,
		OwnerID:         d.OwnerID,
		City:            d.City,
		Country:         d.Country,
		CreatedAt:       d.CreatedAt.UTC(),
		Shares:          d.Shares,
		Views:           d.Views,
		IsPublic:        d.IsPublic,
	}
}

func toRemoteRecords(docs []*productDocument) []domain.RemoteRecord {
	out := make([]domain.RemoteRecord, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toRemoteRecord(doc))
	}
	return out
}

func rawID(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}

// rawPrice renders a string, double, integer or decimal price as text for the mapper to parse.
func rawPrice(v bson.RawValue) string {
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	if f, ok := v.DoubleOK(); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if i, ok := v.Int32OK(); ok {
		return strconv.FormatInt(int64(i), 10)
	}
	if i, ok := v.Int64OK(); ok {
		return strconv.FormatInt(i, 10)
	}
	if d, ok := v.Decimal128OK(); ok {
		return d.String()
	}
	return ""
}
