package dataset

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"finpulse/internal/metrics"
)

// Store memoizes loaded datasets by input path. It replaces a hidden
// process-global cache with an explicit get-or-load / invalidate contract:
// the first GetOrLoad for a path touches the filesystem, later calls return
// the same logical data. Safe for concurrent read-only access; concurrent
// first loads of one path read the file once.
type Store struct {
	mu     sync.RWMutex
	cache  map[string]*Dataset
	group  singleflight.Group
	logger *slog.Logger
}

// NewStore creates an empty dataset cache.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cache:  make(map[string]*Dataset),
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// GetOrLoad returns the cached dataset for path, loading it on first use.
func (s *Store) GetOrLoad(ctx context.Context, path string) (*Dataset, error) {
	s.mu.RLock()
	ds, ok := s.cache[path]
	s.mu.RUnlock()
	if ok {
		metrics.DatasetCacheHits.Inc()
		return ds, nil
	}

	v, err, _ := s.group.Do(path, func() (interface{}, error) {
		// Re-check under the flight: another caller may have stored it
		// between the RUnlock above and entering the group.
		s.mu.RLock()
		cached, ok := s.cache[path]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		s.logger.InfoContext(ctx, "loading dataset", slog.String("path", path))
		loaded, err := Load(path)
		if err != nil {
			s.logger.ErrorContext(ctx, "dataset load failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil, err
		}

		s.mu.Lock()
		s.cache[path] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Invalidate drops the cached dataset for path; the next GetOrLoad re-reads
// the file.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
	s.logger.Info("dataset cache invalidated", slog.String("path", path))
}

// Reset drops every cached dataset.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]*Dataset)
	s.mu.Unlock()
}

// Size returns the number of cached datasets.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
