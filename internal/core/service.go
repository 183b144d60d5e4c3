package core

import (
	"context"
	"log/slog"
	"time"
)

// Service is the main entry point for comparison operations.
// It owns the table cache and the source the cache is filled from.
type Service struct {
	source      Source
	cache       *TableCache
	loadTimeout time.Duration
}

// NewService creates a service reading from src.
// A nil cache gets a fresh one.
func NewService(src Source, cache *TableCache) *Service {
	if cache == nil {
		cache = NewTableCache()
	}
	return &Service{source: src, cache: cache}
}

// SetLoadTimeout bounds each source load. Zero means no bound beyond the
// caller's context.
func (s *Service) SetLoadTimeout(d time.Duration) {
	s.loadTimeout = d
}

// Table returns the canonical table, loading and normalizing it on first use.
func (s *Service) Table(ctx context.Context) (*CanonicalTable, error) {
	return s.cache.GetOrLoad(ctx, s.source.Key(), func(ctx context.Context) (*CanonicalTable, error) {
		start := time.Now()
		if s.loadTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
			defer cancel()
		}

		raw, err := s.source.Load(ctx)
		if err != nil {
			return nil, err
		}

		t, err := Normalize(raw)
		if err != nil {
			return nil, err
		}

		slog.Info("table loaded",
			"origin", t.Origin(),
			"digest", t.Digest(),
			"rows", t.RowCount(),
			"parameters", len(t.Parameters()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return t, nil
	})
}

// Compare pivots the table for selection. With hideSame set, rows whose
// values are identical across the selection are dropped.
//
// The boolean result is false for an empty effective selection.
func (s *Service) Compare(ctx context.Context, selection []string, hideSame bool) (ComparisonMatrix, bool, error) {
	t, err := s.Table(ctx)
	if err != nil {
		return ComparisonMatrix{}, false, err
	}

	m, ok := Pivot(t, selection)
	if !ok {
		return m, false, nil
	}
	if hideSame {
		m = FilterDivergent(m)
	}
	return m, true, nil
}

// ClearCache drops the cached table so the next call reloads the source.
func (s *Service) ClearCache() {
	s.cache.Clear()
	slog.Info("table cache cleared", "source", s.source.Key())
}

// SourceKey returns the key of the configured source.
func (s *Service) SourceKey() string {
	return s.source.Key()
}
