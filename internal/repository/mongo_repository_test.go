package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestDB(t *testing.T) CartRepository {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	return NewMongoRepository(db)
}

func TestAddItem_CreatesLineItem(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, "1", 2)
	require.NoError(t, err)
	assert.Equal(t, "1", item.ProductID)
	assert.Equal(t, 2, item.Qty)
	assert.False(t, item.ID.IsZero())
}

func TestAddItem_MergesOnSameProduct(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.AddItem(ctx, "1", 2)
	require.NoError(t, err)
	second, err := repo.AddItem(ctx, "1", 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Qty)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)
}

func TestSetQuantity_Overwrites(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, "2", 1)
	require.NoError(t, err)

	updated, err := repo.SetQuantity(ctx, item.ID.Hex(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Qty)
	assert.Equal(t, item.ID, updated.ID)
}

func TestSetQuantity_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.SetQuantity(ctx, "65b000000000000000000000", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = repo.SetQuantity(ctx, "not-a-hex-id", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, "3", 1)
	require.NoError(t, err)

	require.NoError(t, repo.RemoveItem(ctx, item.ID.Hex()))
	// Repeating the delete still succeeds.
	require.NoError(t, repo.RemoveItem(ctx, item.ID.Hex()))
	require.NoError(t, repo.RemoveItem(ctx, "not-a-hex-id"))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
