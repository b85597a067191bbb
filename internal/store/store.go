// Package store implements the optimistic resource stores. A Store owns one
// entity collection and reconciles local mutations with the backend,
// falling back to sample data whenever the backend is disabled or
// unreachable.
package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/api"
	"github.com/Tiliavir/trivial-trip-planner/internal/config"
	appLog "github.com/Tiliavir/trivial-trip-planner/internal/log"
	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/normalize"
	"github.com/Tiliavir/trivial-trip-planner/internal/timecalc"
)

// Gate performs backend calls. *api.Client implements it.
type Gate interface {
	Call(ctx context.Context, method, path string, query url.Values, body any) (api.Result, error)
}

// Status is the lifecycle state of the last reload.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Pagination is the list window requested from the backend.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Snapshot is an immutable view of a store.
type Snapshot[T model.Entity[T]] struct {
	Items      []T        `json:"items"`
	Status     Status     `json:"status"`
	Err        error      `json:"-"`
	UsingMock  bool       `json:"usingMock"`
	Pagination Pagination `json:"pagination"`

	paged  bool
	loaded int
}

// HasMore reports whether the last live page filled the requested limit.
// It is a heuristic: an exactly full last page also reports true.
func (s Snapshot[T]) HasMore() bool {
	if s.UsingMock || !s.paged {
		return false
	}
	return s.loaded >= s.Pagination.Limit
}

// Find returns the entity with the given id.
func (s Snapshot[T]) Find(id string) (T, bool) {
	for _, it := range s.Items {
		if it.Metadata().ID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Kind binds a Store to one entity kind.
type Kind[T model.Entity[T], P any] struct {
	Name string
	// Scoped kinds live under a trip and need a scope before they load.
	Scoped bool
	// Paged kinds send limit and offset on list calls.
	Paged bool

	CollectionPath func(scope string) string
	ItemPath       func(scope, id string) string

	Normalize func(raw any) T
	Samples   func(scope string) []T
	Prepare   func(draft T) T
	Payload   func(T) any
	Apply     func(T, P) T
}

type settings struct {
	clock    Clock
	throttle time.Duration
	limit    int
	scope    string
}

// Option configures a Store.
type Option func(*settings)

// WithClock injects the clock used by the reload throttle.
func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithReloadThrottle sets the minimum gap since the last successful reload
// before a failed update reloads again.
func WithReloadThrottle(d time.Duration) Option {
	return func(s *settings) { s.throttle = d }
}

// WithLimit sets the default page size.
func WithLimit(n int) Option {
	return func(s *settings) { s.limit = n }
}

// WithScope sets the initial trip id of a per-trip store.
func WithScope(tripID string) Option {
	return func(s *settings) { s.scope = tripID }
}

// WithStoresConfig applies page size and throttle from the config file.
func WithStoresConfig(c config.StoresConfig) Option {
	return func(s *settings) {
		if c.PageLimit > 0 {
			s.limit = c.PageLimit
		}
		if c.ReloadThrottleMillis > 0 {
			s.throttle = c.ReloadThrottle()
		}
	}
}

// Store is the generic optimistic resource store.
type Store[T model.Entity[T], P any] struct {
	kind         Kind[T, P]
	gate         Gate
	throttle     *Throttle
	defaultLimit int

	mu        sync.Mutex
	scope     string
	snap      Snapshot[T]
	listeners map[int]func(Snapshot[T])
	nextID    int

	wg sync.WaitGroup
}

// New builds a store for kind on top of gate.
func New[T model.Entity[T], P any](kind Kind[T, P], gate Gate, opts ...Option) *Store[T, P] {
	st := settings{
		clock:    SystemClock,
		throttle: config.DefaultReloadThrottle * time.Millisecond,
		limit:    config.DefaultPageLimit,
	}
	for _, opt := range opts {
		opt(&st)
	}
	return &Store[T, P]{
		kind:         kind,
		gate:         gate,
		throttle:     NewThrottle(st.throttle, st.clock),
		defaultLimit: st.limit,
		scope:        st.scope,
		snap: Snapshot[T]{
			Items:      []T{},
			Status:     StatusIdle,
			Pagination: Pagination{Limit: st.limit},
			paged:      kind.Paged,
		},
		listeners: make(map[int]func(Snapshot[T])),
	}
}

// Kind returns the entity kind name, e.g. "notes".
func (s *Store[T, P]) Kind() string { return s.kind.Name }

// Scope returns the active trip id.
func (s *Store[T, P]) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Snapshot returns the current state.
func (s *Store[T, P]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Store[T, P]) copyLocked() Snapshot[T] {
	c := s.snap
	c.Items = slices.Clone(s.snap.Items)
	return c
}

// OnChange registers fn to receive every new snapshot. The returned func
// removes the listener.
func (s *Store[T, P]) OnChange(fn func(Snapshot[T])) (remove func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Wait blocks until background reloads triggered by failed mutations finish.
func (s *Store[T, P]) Wait() {
	s.wg.Wait()
}

// update replaces the state via fn under the lock and notifies listeners.
// fn must return a new Items slice rather than writing into the old one.
func (s *Store[T, P]) update(fn func(snap *Snapshot[T])) Snapshot[T] {
	s.mu.Lock()
	fn(&s.snap)
	out := s.copyLocked()
	listeners := make([]func(Snapshot[T]), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(out)
	}
	return out
}

func (s *Store[T, P]) activeScope() (string, error) {
	scope := s.Scope()
	if s.kind.Scoped && scope == "" {
		return "", ErrNoScope
	}
	return scope, nil
}

// Reload fetches the current page. Failures never escape: the store falls
// back to sample data and records the error in the snapshot.
func (s *Store[T, P]) Reload(ctx context.Context) Snapshot[T] {
	scope, err := s.activeScope()
	if err != nil {
		return s.Snapshot()
	}

	var page Pagination
	s.update(func(snap *Snapshot[T]) {
		snap.Status = StatusPending
		snap.Err = nil
		page = snap.Pagination
	})

	var query url.Values
	if s.kind.Paged {
		query = url.Values{
			"limit":  {strconv.Itoa(page.Limit)},
			"offset": {strconv.Itoa(page.Offset)},
		}
	}
	res, err := s.gate.Call(ctx, http.MethodGet, s.kind.CollectionPath(scope), query, nil)

	switch {
	case err != nil:
		appLog.Error("reload failed; using sample data", err, "kind", s.kind.Name, "scope", scope)
		samples := s.kind.Samples(scope)
		return s.update(func(snap *Snapshot[T]) {
			snap.Items = samples
			snap.UsingMock = true
			snap.Status = StatusError
			snap.Err = err
			snap.loaded = len(samples)
		})
	case res.Mocked:
		samples := s.kind.Samples(scope)
		return s.update(func(snap *Snapshot[T]) {
			snap.Items = samples
			snap.UsingMock = true
			snap.Status = StatusSuccess
			snap.loaded = len(samples)
		})
	default:
		items := dedupe(normalize.List(res.Data, s.kind.Normalize))
		s.throttle.Mark()
		appLog.Debug("reloaded", "kind", s.kind.Name, "scope", scope, "count", len(items))
		return s.update(func(snap *Snapshot[T]) {
			snap.Items = items
			snap.UsingMock = false
			snap.Status = StatusSuccess
			snap.loaded = len(items)
		})
	}
}

// SetPage changes the list window and reloads.
func (s *Store[T, P]) SetPage(ctx context.Context, page Pagination) Snapshot[T] {
	if page.Limit <= 0 {
		page.Limit = s.defaultLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	s.update(func(snap *Snapshot[T]) { snap.Pagination = page })
	return s.Reload(ctx)
}

// SetScope switches a per-trip store to tripID. Pagination returns to its
// defaults and the new scope is loaded.
func (s *Store[T, P]) SetScope(ctx context.Context, tripID string) Snapshot[T] {
	return s.SetScopePage(ctx, tripID, Pagination{})
}

// SetScopePage switches to tripID with the given list window and loads it
// with a single reload. A zero Limit means the default page size.
func (s *Store[T, P]) SetScopePage(ctx context.Context, tripID string, page Pagination) Snapshot[T] {
	if page.Limit <= 0 {
		page.Limit = s.defaultLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	s.mu.Lock()
	changed := s.scope != tripID
	s.scope = tripID
	s.mu.Unlock()

	s.update(func(snap *Snapshot[T]) {
		snap.Pagination = page
		if changed {
			snap.Items = []T{}
			snap.Status = StatusIdle
			snap.Err = nil
			snap.UsingMock = false
			snap.loaded = 0
		}
	})
	return s.Reload(ctx)
}

// Get fetches one entity and merges it into the collection. With the
// backend disabled the local copy is returned.
func (s *Store[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	scope, err := s.activeScope()
	if err != nil {
		return zero, err
	}
	res, err := s.gate.Call(ctx, http.MethodGet, s.kind.ItemPath(scope, id), nil, nil)
	if err != nil {
		return zero, fmt.Errorf("get %s %s: %w", s.kind.Name, id, err)
	}
	if res.Mocked {
		if it, ok := s.Snapshot().Find(id); ok {
			return it, nil
		}
		return zero, fmt.Errorf("get %s %s: %w", s.kind.Name, id, ErrNotFound)
	}

	got := s.kind.Normalize(res.Data)
	if got.Metadata().Ref.IsZero() {
		return zero, fmt.Errorf("get %s %s: %w", s.kind.Name, id, ErrNotFound)
	}
	s.update(func(snap *Snapshot[T]) {
		if i := indexOf(snap.Items, got.Metadata().ID()); i >= 0 {
			snap.Items = replaceAt(snap.Items, i, got)
			return
		}
		snap.Items = prepend(snap.Items, got)
	})
	return got, nil
}

// Create prepends an optimistic entity with a pending id, then reconciles
// it with the backend. On failure the entity is removed and the error
// returned.
func (s *Store[T, P]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	scope, err := s.activeScope()
	if err != nil {
		return zero, err
	}

	ref := model.Pending(timecalc.NewTempID())
	optimistic := s.kind.Prepare(draft).WithMetadata(model.Meta{Ref: ref, Optimistic: true})
	s.update(func(snap *Snapshot[T]) {
		snap.Items = prepend(snap.Items, optimistic)
	})

	res, err := s.gate.Call(ctx, http.MethodPost, s.kind.CollectionPath(scope), nil, s.kind.Payload(optimistic))
	if err != nil {
		s.update(func(snap *Snapshot[T]) {
			snap.Items = removeRef(snap.Items, ref)
		})
		return zero, fmt.Errorf("create %s: %w", s.kind.Name, err)
	}

	if res.Mocked {
		// No server identity to adopt: the pending ref stays.
		settled := optimistic.WithMetadata(model.Meta{Ref: ref, Mock: true})
		s.update(func(snap *Snapshot[T]) {
			snap.Items = replaceRef(snap.Items, ref, settled)
			snap.UsingMock = true
		})
		return settled, nil
	}

	confirmed := s.kind.Normalize(res.Data)
	if confirmed.Metadata().Ref.IsZero() {
		confirmed = optimistic.WithMetadata(model.Meta{Ref: ref})
	}
	s.update(func(snap *Snapshot[T]) {
		snap.UsingMock = false
		id := confirmed.Metadata().ID()
		if indexOfRef(snap.Items, ref) < 0 {
			// A reload replaced the collection while the POST was in flight.
			if i := indexOf(snap.Items, id); i >= 0 {
				snap.Items = replaceAt(snap.Items, i, confirmed)
			} else {
				snap.Items = prepend(snap.Items, confirmed)
			}
			return
		}
		items := make([]T, 0, len(snap.Items))
		for _, it := range snap.Items {
			m := it.Metadata()
			switch {
			case m.Ref == ref:
				items = append(items, confirmed)
			case m.ID() == id:
				// Already delivered by a concurrent reload.
			default:
				items = append(items, it)
			}
		}
		snap.Items = items
	})
	return confirmed, nil
}

// Update merges patch into the entity optimistically. On failure the
// previous value is restored and, unless a reload succeeded recently, the
// collection is reloaded in the background.
func (s *Store[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	scope, err := s.activeScope()
	if err != nil {
		return zero, err
	}

	var previous T
	var lookupErr error
	s.update(func(snap *Snapshot[T]) {
		i := indexOf(snap.Items, id)
		if i < 0 {
			lookupErr = ErrNotFound
			return
		}
		previous = snap.Items[i]
		if m := previous.Metadata(); m.Ref.IsPending() && m.Optimistic {
			lookupErr = ErrPending
			return
		}
		meta := previous.Metadata()
		meta.Optimistic = true
		snap.Items = replaceAt(snap.Items, i, s.kind.Apply(previous, patch).WithMetadata(meta))
	})
	if lookupErr != nil {
		return zero, fmt.Errorf("update %s %s: %w", s.kind.Name, id, lookupErr)
	}
	ref := previous.Metadata().Ref

	res, err := s.gate.Call(ctx, http.MethodPatch, s.kind.ItemPath(scope, id), nil, patch)
	if err != nil {
		s.update(func(snap *Snapshot[T]) {
			snap.Items = replaceRef(snap.Items, ref, previous)
		})
		s.throttle.Do(func() { s.reloadAsync(ctx) })
		return zero, fmt.Errorf("update %s %s: %w", s.kind.Name, id, err)
	}

	var settled T
	var confirmed bool
	if !res.Mocked {
		settled = s.kind.Normalize(res.Data)
		confirmed = !settled.Metadata().Ref.IsZero()
	}
	s.update(func(snap *Snapshot[T]) {
		i := indexOfRef(snap.Items, ref)
		if i < 0 {
			return
		}
		if !confirmed {
			meta := snap.Items[i].Metadata()
			meta.Optimistic = false
			settled = snap.Items[i].WithMetadata(meta)
		}
		snap.Items = replaceAt(snap.Items, i, settled)
		snap.UsingMock = res.Mocked
	})
	return settled, nil
}

// Delete removes the entity optimistically. On failure it is re-inserted at
// the front and the collection is reloaded in the background.
func (s *Store[T, P]) Delete(ctx context.Context, id string) error {
	scope, err := s.activeScope()
	if err != nil {
		return err
	}

	var removed T
	var lookupErr error
	s.update(func(snap *Snapshot[T]) {
		i := indexOf(snap.Items, id)
		if i < 0 {
			lookupErr = ErrNotFound
			return
		}
		removed = snap.Items[i]
		if m := removed.Metadata(); m.Ref.IsPending() && m.Optimistic {
			lookupErr = ErrPending
			return
		}
		snap.Items = slices.Delete(slices.Clone(snap.Items), i, i+1)
	})
	if lookupErr != nil {
		return fmt.Errorf("delete %s %s: %w", s.kind.Name, id, lookupErr)
	}

	res, err := s.gate.Call(ctx, http.MethodDelete, s.kind.ItemPath(scope, id), nil, nil)
	if err != nil {
		s.update(func(snap *Snapshot[T]) {
			if indexOfRef(snap.Items, removed.Metadata().Ref) < 0 {
				snap.Items = prepend(snap.Items, removed)
			}
		})
		s.reloadAsync(ctx)
		return fmt.Errorf("delete %s %s: %w", s.kind.Name, id, err)
	}
	s.update(func(snap *Snapshot[T]) { snap.UsingMock = res.Mocked })
	return nil
}

// reloadAsync reloads in the background, detached from ctx cancellation.
func (s *Store[T, P]) reloadAsync(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Reload(context.WithoutCancel(ctx))
	}()
}

// dedupe keeps the first entity per id so the collection never holds two
// entities with the same identifier. Records without an id are dropped.
func dedupe[T model.Entity[T]](items []T) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		id := it.Metadata().ID()
		if id == "" {
			appLog.Debug("dropping record without id")
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, it)
	}
	return out
}

func indexOf[T model.Entity[T]](items []T, id string) int {
	return slices.IndexFunc(items, func(it T) bool { return it.Metadata().ID() == id })
}

func indexOfRef[T model.Entity[T]](items []T, ref model.Ref) int {
	return slices.IndexFunc(items, func(it T) bool { return it.Metadata().Ref == ref })
}

func prepend[T any](items []T, it T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, it)
	return append(out, items...)
}

func replaceAt[T any](items []T, i int, it T) []T {
	out := slices.Clone(items)
	out[i] = it
	return out
}

func replaceRef[T model.Entity[T]](items []T, ref model.Ref, it T) []T {
	i := indexOfRef(items, ref)
	if i < 0 {
		return items
	}
	return replaceAt(items, i, it)
}

func removeRef[T model.Entity[T]](items []T, ref model.Ref) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Metadata().Ref != ref {
			out = append(out, it)
		}
	}
	return out
}
