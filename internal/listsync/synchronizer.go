// Package listsync keeps a local copy of a remote collection. Each Sync
// fetches the whole collection and replaces the copy; a failed fetch keeps
// the previous copy and records the error next to it.
package listsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/httpapi"
	"github.com/elearn-app/elearn/internal/logging"
	"go.uber.org/zap"
)

// ErrReset is returned by a sync that resolved after the list was reset.
var ErrReset = errors.New("listsync: list reset while syncing")

// FetchFunc retrieves the raw records of a collection.
type FetchFunc[R any] func(ctx context.Context) ([]R, error)

// MapFunc derives the view item of a raw record. Returning false drops it.
type MapFunc[R, T any] func(R) (T, bool)

// Identity is a MapFunc that keeps every record unchanged.
func Identity[R any](r R) (R, bool) { return r, true }

// Options configures a Synchronizer.
type Options struct {
	// Name identifies the list in events, logs and checkpoints.
	Name     string
	Bus      *bus.Bus
	Recorder Recorder
	Logger   *zap.Logger
	Now      func() time.Time
}

// Snapshot is the visible state of a list.
type Snapshot[T any] struct {
	Items []T
	// Err is the error of the latest resolved sync, nil after a success.
	Err      error
	Loading  bool
	Loaded   bool
	SyncedAt time.Time
	// Generation counts applied results (successes and failures).
	Generation uint64
}

// Empty reports whether the list was fetched and holds no items.
func (s Snapshot[T]) Empty() bool { return s.Loaded && len(s.Items) == 0 }

// Synchronizer owns one list. It is safe for concurrent use; overlapping
// syncs are applied in the order they resolve.
type Synchronizer[R, T any] struct {
	name   string
	fetch  FetchFunc[R]
	mapFn  MapFunc[R, T]
	bus    *bus.Bus
	cp     checkpoints
	logger *zap.Logger
	now    func() time.Time

	mu         sync.Mutex
	items      []T
	err        error
	loaded     bool
	inflight   int
	syncedAt   time.Time
	generation uint64
	// epoch changes on every Reset; results fetched in an older epoch are
	// dropped.
	epoch uint64
}

// New creates a synchronizer for the collection returned by fetch.
func New[R, T any](fetch FetchFunc[R], mapFn MapFunc[R, T], opts Options) *Synchronizer[R, T] {
	logger := logging.OrNop(opts.Logger).With(zap.String("list", opts.Name))
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Synchronizer[R, T]{
		name:   opts.Name,
		fetch:  fetch,
		mapFn:  mapFn,
		bus:    opts.Bus,
		cp:     checkpoints{rec: opts.Recorder, logger: logger},
		logger: logger,
		now:    now,
	}
}

// Name returns the list name.
func (s *Synchronizer[R, T]) Name() string { return s.name }

// Sync fetches the collection and replaces the list with the mapped result.
// On failure the list is left as it was and the error is returned. A sync
// whose context is cancelled before it resolves changes nothing, and so
// does one that resolves after Reset (it returns ErrReset).
func (s *Synchronizer[R, T]) Sync(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	s.inflight++
	epoch := s.epoch
	s.mu.Unlock()

	raw, err := s.fetch(ctx)

	if errors.Is(ctx.Err(), context.Canceled) {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
		s.logger.Debug("sync discarded", zap.Error(ctx.Err()))
		if err == nil {
			err = ctx.Err()
		}
		return nil, err
	}

	if err != nil {
		if !s.fail(epoch, err) {
			return nil, ErrReset
		}
		return nil, err
	}

	items := make([]T, 0, len(raw))
	for _, r := range raw {
		if item, ok := s.mapFn(r); ok {
			items = append(items, item)
		}
	}

	at := s.now()
	s.mu.Lock()
	s.inflight--
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug("sync dropped after reset", zap.Int("count", len(items)))
		return nil, ErrReset
	}
	s.items = items
	s.err = nil
	s.loaded = true
	s.syncedAt = at
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.cp.success(s.name, len(items), at)
	s.bus.Emit(bus.KindListSynced, bus.ListSynced{List: s.name, Count: len(items), Generation: gen})
	return clone(items), nil
}

// fail records err unless the list was reset since the sync started.
func (s *Synchronizer[R, T]) fail(epoch uint64, err error) bool {
	at := s.now()
	s.mu.Lock()
	s.inflight--
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug("sync failure dropped after reset", zap.Error(err))
		return false
	}
	s.err = err
	s.generation++
	s.mu.Unlock()

	fields := []zap.Field{zap.String("kind", httpapi.KindName(err)), zap.Error(err)}
	var he *httpapi.Error
	if errors.As(err, &he) && he.Status != 0 {
		fields = append(fields, zap.Int("status", he.Status))
	}
	s.logger.Warn("list sync failed", fields...)

	s.cp.failure(s.name, err, at)
	s.bus.Emit(bus.KindListSyncFailed, bus.ListSyncFailed{List: s.name, Err: err})
	return true
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer[R, T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		Items:      clone(s.items),
		Err:        s.err,
		Loading:    s.inflight > 0,
		Loaded:     s.loaded,
		SyncedAt:   s.syncedAt,
		Generation: s.generation,
	}
}

// Reset forgets the list, as after sign-out. Syncs in flight are dropped
// when they resolve.
func (s *Synchronizer[R, T]) Reset() {
	s.mu.Lock()
	s.epoch++
	s.items = nil
	s.err = nil
	s.loaded = false
	s.syncedAt = time.Time{}
	s.mu.Unlock()
}

func clone[T any](items []T) []T {
	if items == nil {
		return nil
	}
	return append(make([]T, 0, len(items)), items...)
}
