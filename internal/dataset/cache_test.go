package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetOrLoadCaches(t *testing.T) {
	path := writeTempCSV(t, "Country,Fintech_Used\nKenya,Yes\n")
	store := NewStore(nil)

	first, err := store.GetOrLoad(context.Background(), path)
	require.NoError(t, err)
	second, err := store.GetOrLoad(context.Background(), path)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated loads return the cached dataset")
	assert.Equal(t, 1, store.Size())
}

func TestStoreInvalidate(t *testing.T) {
	path := writeTempCSV(t, "Country,Fintech_Used\nKenya,Yes\n")
	store := NewStore(nil)

	first, err := store.GetOrLoad(context.Background(), path)
	require.NoError(t, err)

	store.Invalidate(path)
	assert.Equal(t, 0, store.Size())

	second, err := store.GetOrLoad(context.Background(), path)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "invalidation forces a re-read")
	assert.Equal(t, first.Records(), second.Records())
}

func TestStoreLoadFailureNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	store := NewStore(nil)

	_, err := store.GetOrLoad(context.Background(), path)
	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.Equal(t, 0, store.Size(), "failed loads are not cached")

	// The file appearing later recovers without an Invalidate.
	require.NoError(t, os.WriteFile(path, []byte("Country\nKenya\n"), 0o644))
	ds, err := store.GetOrLoad(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestStoreConcurrentFirstLoad(t *testing.T) {
	path := writeTempCSV(t, "Country,Fintech_Used\nKenya,Yes\nGhana,No\n")
	store := NewStore(nil)

	const workers = 16
	results := make([]*Dataset, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := store.GetOrLoad(context.Background(), path)
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, store.Size())
}

func TestStoreReset(t *testing.T) {
	store := NewStore(nil)
	pathA := writeTempCSV(t, "Country\nKenya\n")

	_, err := store.GetOrLoad(context.Background(), pathA)
	require.NoError(t, err)
	require.Equal(t, 1, store.Size())

	store.Reset()
	assert.Equal(t, 0, store.Size())
}
