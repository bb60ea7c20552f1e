package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/testutil"
)

func TestGetAll_EmptyStoreReturnsEmptySlice(t *testing.T) {
	s := createTestStore(t)
	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestGetAll_ReturnsEverything(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	for _, r := range testutil.SampleRecipes() {
		require.NoError(t, s.Put(ctx, r))
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assertRecipesEqual(t, testutil.SampleRecipes(), all)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsStorageError(err))
}

func TestPing(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
