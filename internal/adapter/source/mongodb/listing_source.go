package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

var tracer = otel.Tracer("catalog-service/mongodb-source")

// ListingSource reads public product records from MongoDB.
type ListingSource struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     *logger.Logger
}

// NewListingSource reads from collectionName in db. A zero timeout means the caller's deadline only.
func NewListingSource(db *mongo.Database, collectionName string, timeout time.Duration, log *logger.Logger) *ListingSource {
	return &ListingSource{
		collection: db.Collection(collectionName),
		timeout:    timeout,
		logger:     log.Named("MongoListingSource"),
	}
}

// Fetch returns every public record, newest first.
func (s *ListingSource) Fetch(ctx context.Context) ([]domain.RemoteRecord, error) {
	ctx, span := tracer.Start(ctx, "MongoListingSource.Fetch")
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"is_public": true}, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find failed")
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("decode products: %w", err)
	}

	span.SetAttributes(attribute.Int("mongodb.documents", len(docs)))
	s.logger.Debug("Fetched remote products", zap.Int("count", len(docs)))
	return toRemoteRecords(docs), nil
}
