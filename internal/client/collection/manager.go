// Package collection keeps a local ordered list synchronized with a remote
// sub-resource collection, applying mutations optimistically and rolling
// back (or re-fetching) on failure. One generic Manager serves education,
// experience, application, and saved-job records; only the field shapes
// differ.
//
// Entries are keyed by a stable identity (the server id once assigned, a
// local uuid before that), never by raw position, so an in-flight mutation
// survives unrelated inserts and removals. Concurrent mutations to the
// same identity are rejected by the pending tracker rather than queued.
package collection

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/repositories/snapshots"
	"github.com/dsmolyakov/jobdeck/internal/common"
	"github.com/dsmolyakov/jobdeck/internal/logging"
)

var validate = validator.New()

// Item is the record contract for a managed collection. ServerID is empty
// until the backend has acknowledged the record. ForWire and ForDisplay
// convert field encodings (month-precision dates) between the backend and
// the UI.
type Item[T any] interface {
	ServerID() string
	ForWire() T
	ForDisplay() T
}

// Config assembles a Manager.
type Config[T Item[T]] struct {
	// Name is the resource name: the envelope key in list responses and
	// the snapshot name.
	Name string
	// Path is the collection endpoint, e.g. "/profile/education".
	Path string
	API  *api.Client
	// Snapshots, when set, enables the stale-data fallback for FetchAll.
	Snapshots snapshots.Repository
	// Enrich, when set, is applied per fetched item. A failing enrichment
	// degrades that item only (the hook leaves placeholder content) and
	// never fails the list.
	Enrich  func(ctx context.Context, item *T) error
	Tracker *Tracker
	Log     logging.Logger
}

type entry[T Item[T]] struct {
	key  string // stable local key, assigned once
	item T
}

// Manager mirrors one remote collection. Display order is insertion order
// for creates and stable index order otherwise; no sorting is imposed.
type Manager[T Item[T]] struct {
	name    string
	path    string
	api     *api.Client
	snaps   snapshots.Repository
	enrich  func(ctx context.Context, item *T) error
	tracker *Tracker
	log     logging.Logger

	mu      sync.Mutex
	entries []entry[T]
	stale   bool
}

func New[T Item[T]](cfg Config[T]) *Manager[T] {
	if cfg.Tracker == nil {
		cfg.Tracker = NewTracker(DefaultPendingTTL)
	}
	if cfg.Log == nil {
		cfg.Log = logging.NewDiscardLogger()
	}
	return &Manager[T]{
		name:    cfg.Name,
		path:    cfg.Path,
		api:     cfg.API,
		snaps:   cfg.Snapshots,
		enrich:  cfg.Enrich,
		tracker: cfg.Tracker,
		log:     cfg.Log,
	}
}

// Items returns a copy of the current list in display order.
func (m *Manager[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]T, len(m.entries))
	for i, e := range m.entries {
		items[i] = e.item
	}
	return items
}

// Len returns the current list length.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stale reports whether the current list came from the offline snapshot
// rather than the backend.
func (m *Manager[T]) Stale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stale
}

// Pending reports whether the item at index has a remote mutation in
// flight. Used to disable edit controls.
func (m *Manager[T]) Pending(index int) bool {
	m.mu.Lock()
	if index < 0 || index >= len(m.entries) {
		m.mu.Unlock()
		return false
	}
	id := m.identityLocked(index)
	m.mu.Unlock()
	return m.tracker.Active(id)
}

// FetchAll requests the full collection and replaces the local list
// wholesale. A transport failure falls back to the last snapshot when one
// exists; an unrecognized response shape is a loud error, never an empty
// list.
func (m *Manager[T]) FetchAll(ctx context.Context) ([]T, error) {
	items, raw, err := api.List[T](ctx, m.api, m.path, m.name)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) && m.snaps != nil {
			if items, ok := m.loadSnapshot(ctx); ok {
				m.log.Warn(ctx, "serving stale collection", "resource", m.name)
				m.replace(items, true)
				return items, nil
			}
		}
		return nil, err
	}
	for i := range items {
		items[i] = items[i].ForDisplay()
		if m.enrich != nil {
			if err := m.enrich(ctx, &items[i]); err != nil {
				// Per-item isolation: this record degrades, the rest render.
				m.log.Warn(ctx, "enrichment degraded", "resource", m.name, "error", err)
			}
		}
	}

	m.replace(items, false)

	if m.snaps != nil {
		if err := m.snaps.Save(ctx, m.name, raw); err != nil {
			m.log.Warn(ctx, "saving snapshot", "resource", m.name, "error", err)
		}
	}
	return items, nil
}

// Create appends item locally, then sends the create. On success the
// server echo is merged over the local fields in the same slot (the
// server-assigned id always wins); on failure the appended entry is
// removed and the error surfaced.
func (m *Manager[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := validate.Struct(item); err != nil {
		return zero, errors.Join(common.ErrorInvalidPayload, err)
	}

	key := uuid.NewString()
	m.mu.Lock()
	m.entries = append(m.entries, entry[T]{key: key, item: item})
	m.mu.Unlock()

	if err := m.tracker.Begin(key); err != nil {
		m.removeByKey(key)
		return zero, err
	}
	defer m.tracker.End(key)

	merged := item.ForWire()
	err := m.api.Do(ctx, api.Request{Method: http.MethodPost, Path: m.path, Body: item.ForWire()}, &merged)
	if err != nil {
		m.removeByKey(key)
		return zero, err
	}

	merged = merged.ForDisplay()
	m.setByKey(key, merged)
	return merged, nil
}

// Update replaces the entry at index optimistically and sends the update.
// The item must already carry a server id; violating that is a
// precondition failure and no network call is made. On remote failure the
// whole collection is re-fetched to guarantee convergence rather than
// attempting a local undo.
func (m *Manager[T]) Update(ctx context.Context, index int, item T) (T, error) {
	var zero T

	m.mu.Lock()
	if index < 0 || index >= len(m.entries) {
		m.mu.Unlock()
		return zero, ErrIndexOutOfRange
	}
	e := m.entries[index]
	id := e.item.ServerID()
	m.mu.Unlock()

	if id == "" {
		return zero, ErrNoServerID
	}
	if err := validate.Struct(item); err != nil {
		return zero, errors.Join(common.ErrorInvalidPayload, err)
	}

	if err := m.tracker.Begin(id); err != nil {
		return zero, err
	}
	defer m.tracker.End(id)

	// Optimistic replace, addressed by the stable local key so unrelated
	// inserts or removals cannot land the result on the wrong item.
	m.setByKey(e.key, item.ForDisplay())

	merged := item.ForWire()
	err := m.api.Do(ctx, api.Request{Method: http.MethodPut, Path: m.path + "/" + id, Body: item.ForWire()}, &merged)
	if err != nil {
		if _, ferr := m.FetchAll(ctx); ferr != nil {
			m.log.Error(ctx, "resync after failed update", "resource", m.name, "error", ferr)
		}
		return zero, err
	}

	merged = merged.ForDisplay()
	m.setByKey(e.key, merged)
	return merged, nil
}

// Delete removes the entry at index. Items without a server id are removed
// locally with no network call; an index that no longer exists is a no-op,
// so repeating a delete never fails. Persisted items are removed
// optimistically and the collection is re-fetched if the remote delete
// fails.
func (m *Manager[T]) Delete(ctx context.Context, index int) error {
	m.mu.Lock()
	if index < 0 || index >= len(m.entries) {
		m.mu.Unlock()
		return nil
	}
	e := m.entries[index]
	id := e.item.ServerID()
	if id == "" {
		m.entries = append(m.entries[:index], m.entries[index+1:]...)
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	if err := m.tracker.Begin(id); err != nil {
		return err
	}
	defer m.tracker.End(id)

	m.removeByKey(e.key)

	if err := m.api.Do(ctx, api.Request{Method: http.MethodDelete, Path: m.path + "/" + id}, nil); err != nil {
		if _, ferr := m.FetchAll(ctx); ferr != nil {
			m.log.Error(ctx, "resync after failed delete", "resource", m.name, "error", ferr)
		}
		return err
	}
	return nil
}

func (m *Manager[T]) identityLocked(index int) string {
	e := m.entries[index]
	if id := e.item.ServerID(); id != "" {
		return id
	}
	return e.key
}

func (m *Manager[T]) replace(items []T, stale bool) {
	entries := make([]entry[T], len(items))
	for i, item := range items {
		entries[i] = entry[T]{key: uuid.NewString(), item: item}
	}
	m.mu.Lock()
	m.entries = entries
	m.stale = stale
	m.mu.Unlock()
}

func (m *Manager[T]) setByKey(key string, item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].key == key {
			m.entries[i].item = item
			return
		}
	}
}

func (m *Manager[T]) removeByKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].key == key {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

func (m *Manager[T]) loadSnapshot(ctx context.Context) ([]T, bool) {
	data, _, err := m.snaps.Load(ctx, m.name)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			m.log.Warn(ctx, "loading snapshot", "resource", m.name, "error", err)
		}
		return nil, false
	}
	items, err := api.DecodeList[T](data, m.name)
	if err != nil {
		m.log.Warn(ctx, "decoding snapshot", "resource", m.name, "error", err)
		return nil, false
	}
	for i := range items {
		items[i] = items[i].ForDisplay()
	}
	return items, true
}
