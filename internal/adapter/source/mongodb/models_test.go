package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decodeDoc(t *testing.T, m bson.M) *productDocument {
	t.Helper()
	raw, err := bson.Marshal(m)
	require.NoError(t, err)
	var doc productDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return &doc
}

func TestToRemoteRecord(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	rec := toRemoteRecord(decodeDoc(t, bson.M{
		"_id":              oid,
		"name":             "Road Bike",
		"price":            "1,450",
		"category":         "Sports",
		"condition":        "Good",
		"tags":             bson.A{"bike", "outdoor"},
		"thumbnail":        "bikes/1.jpg",
		"reference_images": bson.A{"bikes/2.jpg"},
		"owner_id":         "user-7",
		"created_at":       created,
		"views":            int32(12),
		"is_public":        true,
	}))

	assert.Equal(t, oid.Hex(), rec.ID)
	assert.Equal(t, "Road Bike", rec.Name)
	assert.Equal(t, "1,450", rec.PriceText)
	assert.Equal(t, []string{"bike", "outdoor"}, rec.Tags)
	assert.Equal(t, []string{"bikes/2.jpg"}, rec.ReferenceImages)
	assert.Equal(t, "user-7", rec.OwnerID)
	assert.True(t, created.Equal(rec.CreatedAt))
	require.NotNil(t, rec.Views)
	assert.Equal(t, 12, *rec.Views)
	assert.Nil(t, rec.Shares)
	assert.True(t, rec.IsPublic)
}

func TestRawPrice(t *testing.T) {
	dec, err := primitive.ParseDecimal128("19.99")
	require.NoError(t, err)

	tests := []struct {
		name  string
		price interface{}
		want  string
	}{
		{"String", "$45", "$45"},
		{"Double", 45.5, "45.5"},
		{"Int32", int32(45), "45"},
		{"Int64", int64(1200), "1200"},
		{"Decimal", dec, "19.99"},
		{"Bool", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decodeDoc(t, bson.M{"_id": "x", "price": tt.price})
			assert.Equal(t, tt.want, rawPrice(doc.Price))
		})
	}
}

func TestRawID_String(t *testing.T) {
	doc := decodeDoc(t, bson.M{"_id": "legacy-42"})
	assert.Equal(t, "legacy-42", rawID(doc.ID))
}
