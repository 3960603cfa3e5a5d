//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	uri := fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		var errRetry error
		client, errRetry = NewMongoDBConnection(context.Background(), uri, 5*time.Second, logger.NewNop())
		if errRetry != nil {
			return errRetry
		}
		if errRetry = client.Ping(context.Background(), nil); errRetry != nil {
			_ = client.Disconnect(context.Background())
		}
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	testDB = client.Database("catalog_test")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func TestListingSource_FetchPublicNewestFirst(t *testing.T) {
	ctx := context.Background()
	coll := testDB.Collection("products")
	require.NoError(t, coll.Drop(ctx))

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := coll.InsertMany(ctx, []interface{}{
		bson.M{"_id": "old", "name": "Old Lamp", "price": 12.5, "owner_id": "u1", "created_at": base, "is_public": true},
		bson.M{"_id": "draft", "name": "Draft", "price": "3", "owner_id": "u1", "created_at": base.Add(time.Hour), "is_public": false},
		bson.M{"_id": "new", "name": "New Bike", "price": "1,200", "owner_id": "u2", "created_at": base.Add(2 * time.Hour), "is_public": true},
	})
	require.NoError(t, err)

	src := NewListingSource(testDB, "products", 5*time.Second, logger.NewNop())
	records, err := src.Fetch(ctx)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "1,200", records[0].PriceText)
	assert.Equal(t, "old", records[1].ID)
	assert.Equal(t, "12.5", records[1].PriceText)
}
