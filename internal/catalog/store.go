package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/csv"
	"github.com/google/uuid"
)

// Dataset is the projected content of one source document fetch.
type Dataset struct {
	SourceName string
	Headers    []string
	Records    []csv.Record
}

// Loader fetches the source document and projects it into records.
// Implemented by the source package; defined here so the store can be tested
// without touching files or the network.
type Loader interface {
	Load(ctx context.Context) (Dataset, error)
}

// Snapshot is one immutable load of the source document. Records are shared,
// never copied, so snapshots must not be mutated after publication.
type Snapshot struct {
	ID         uuid.UUID
	SourceName string
	LoadedAt   time.Time
	Headers    []string
	Records    []csv.Record
}

// Store holds the current snapshot and swaps it atomically on reload.
// Readers always observe a complete dataset: a failed reload keeps the prior
// snapshot intact and records the error alongside it.
type Store struct {
	loader Loader

	mu      sync.RWMutex
	snap    *Snapshot
	lastErr error
}

// NewStore creates an empty store. Call Reload to populate it.
func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Reload fetches the source and, on success, publishes a fresh snapshot.
// On failure the previous snapshot stays in place and the error is retained
// for status reporting.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}

	snap := &Snapshot{
		ID:         uuid.New(),
		SourceName: ds.SourceName,
		LoadedAt:   time.Now(),
		Headers:    ds.Headers,
		Records:    ds.Records,
	}

	s.mu.Lock()
	s.snap = snap
	s.lastErr = nil
	s.mu.Unlock()

	return snap, nil
}

// Snapshot returns the current snapshot, or false when nothing has loaded
// successfully yet.
func (s *Store) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}

// LastError returns the error from the most recent failed reload, or nil if
// the last reload succeeded.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// StartRefresh reloads the source every interval until ctx is cancelled.
// Failures are logged and retried on the next tick; the previous snapshot
// keeps serving in the meantime.
func (s *Store) StartRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("source refresh scheduler started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("source refresh scheduler stopped")
			return
		case <-ticker.C:
			snap, err := s.Reload(ctx)
			if err != nil {
				slog.Warn("source refresh failed, keeping previous snapshot", "error", err)
				continue
			}
			slog.Info("source refreshed",
				"snapshot_id", snap.ID,
				"source", snap.SourceName,
				"records", len(snap.Records),
			)
		}
	}
}
