// Package session keeps recently completed scan reports in memory so a later
// selection can be resolved against the exact result set it was rendered
// from. Nothing is written to disk.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/project-glean/internal/scanner"
)

var (
	// ErrUnknownScan indicates the scan ID was never stored or has expired.
	ErrUnknownScan = errors.New("unknown or expired scan")

	// ErrReportRejected indicates the cache refused to admit a report.
	ErrReportRejected = errors.New("report rejected by session store")
)

// DefaultCapacity and DefaultTTL bound the store when not configured.
const (
	DefaultCapacity = 32
	DefaultTTL      = 30 * time.Minute
)

// minCacheCapacity is the smallest capacity handed to otter. Below roughly
// ten entries otter admits nothing, since a single entry's cost exceeds
// the share of the cache it allows one item to take.
const minCacheCapacity = 16

// Store is a bounded, expiring map from scan ID to report.
type Store struct {
	cache otter.Cache[string, *scanner.Report]
}

// NewStore creates a store holding roughly capacity reports, each for ttl.
// Capacities below minCacheCapacity are raised to it.
func NewStore(capacity int, ttl time.Duration) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cache, err := otter.MustBuilder[string, *scanner.Report](max(capacity, minCacheCapacity)).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build session cache: %w", err)
	}
	return &Store{cache: cache}, nil
}

// Put stores a completed report under its ID. Reports without an ID are
// ignored.
func (s *Store) Put(report *scanner.Report) error {
	if report == nil || report.ID == "" {
		return nil
	}
	if !s.cache.Set(report.ID, report) {
		return fmt.Errorf("%w: %s", ErrReportRejected, report.ID)
	}
	return nil
}

// Get returns the report for id.
func (s *Store) Get(id string) (*scanner.Report, error) {
	report, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScan, id)
	}
	return report, nil
}

// Close stops background eviction.
func (s *Store) Close() {
	s.cache.Close()
}
