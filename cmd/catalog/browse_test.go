package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/usecase"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

func testSession() *usecase.Session {
	store := usecase.NewCatalogStore([]domain.Listing{
		{ID: "p1", Title: "Film Camera", Price: domain.Money{Amount: 100, Currency: "USD"}, OriginalPrice: func() *float64 { v := 125.0; return &v }(), Category: "A", Featured: true, Stock: 1},
		{ID: "p2", Title: "Desk Lamp", Price: domain.Money{Amount: 50, Currency: "USD"}, Category: "A", Stock: 1},
	}, nil, nil, logger.NewNop(), nil)
	return usecase.NewSession(store, nil, nil, logger.NewNop(), nil)
}

func TestBrowseOptions_Table(t *testing.T) {
	s := testSession()
	opts := browseOptions{Sort: string(domain.SortPriceAsc), Format: "table"}
	opts.apply(s)

	var buf bytes.Buffer
	require.NoError(t, opts.render(&buf, s.View()))

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("p2")), bytes.Index(buf.Bytes(), []byte("p1")))
	assert.Contains(t, out, "100.00 USD (-20%)")
	assert.Contains(t, out, "Showing 2 of 2 listings (0 active filters, sort: Price: Low to High)")
}

func TestBrowseOptions_FiltersAndJSON(t *testing.T) {
	s := testSession()
	opts := browseOptions{Format: "json"}
	opts.MinPrice = "60"
	opts.apply(s)

	var buf bytes.Buffer
	require.NoError(t, opts.render(&buf, s.View()))

	var view usecase.CatalogView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	require.Len(t, view.Listings, 1)
	assert.Equal(t, "p1", view.Listings[0].ID)
	assert.Equal(t, 1, view.ActiveFilters)
}
