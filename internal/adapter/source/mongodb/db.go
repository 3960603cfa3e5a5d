package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

const pingTimeout = 5 * time.Second

// NewMongoDBConnection connects to uri and pings the primary. An unreachable
// server is logged and the client is still returned: the driver keeps trying
// in the background and fetches fail until it comes up.
func NewMongoDBConnection(ctx context.Context, uri string, connectTimeout time.Duration, log *logger.Logger) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Warn("MongoDB is not reachable yet, remote listings will be unavailable until it is", zap.Error(err))
		return client, nil
	}
	log.Info("Successfully connected and pinged MongoDB")
	return client, nil
}
