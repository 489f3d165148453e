package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/logger"
	"lifeseed/internal/storage"
)

// Store names carried by change notifications.
const (
	StoreHabits  = "habits"
	StoreTasks   = "tasks"
	StoreFinance = "finance"
)

// Change describes a committed mutation of one of the persisted stores.
type Change struct {
	Store    string    `json:"store"`
	Action   string    `json:"action"`
	EntityID string    `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}

// documentStore holds one persisted document in memory. Every mutation
// rewrites the whole document; a failed write rolls the memory copy back.
type documentStore[T any] struct {
	name    string
	key     string
	storage storage.Storage

	mu  sync.RWMutex
	doc T

	subsMu  sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

func newDocumentStore[T any](st storage.Storage, name, key string) (*documentStore[T], error) {
	s := &documentStore[T]{
		name:    name,
		key:     key,
		storage: st,
		subs:    make(map[int]func(Change)),
	}

	data, err := st.Load(key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return s, nil
}

// view runs fn with shared access. fn must copy anything it returns.
func (s *documentStore[T]) view(fn func(doc *T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.doc)
}

// update applies fn and persists the result. If fn fails the document is left
// as it was; if the save fails it is restored from the pre-mutation snapshot.
func (s *documentStore[T]) update(action, entityID string, fn func(doc *T) error) error {
	s.mu.Lock()

	snapshot, err := json.Marshal(s.doc)
	if err != nil {
		s.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := fn(&s.doc); err != nil {
		s.restore(snapshot)
		s.mu.Unlock()
		return err
	}

	data, err := json.Marshal(s.doc)
	if err == nil {
		err = s.storage.Save(s.key, data)
	}
	if err != nil {
		s.restore(snapshot)
		s.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}
	s.mu.Unlock()

	s.notify(Change{Store: s.name, Action: action, EntityID: entityID, At: time.Now()})
	return nil
}

func (s *documentStore[T]) restore(snapshot []byte) {
	var previous T
	if err := json.Unmarshal(snapshot, &previous); err != nil {
		logger.Named("store").Errorw("failed to restore document snapshot", "store", s.name, "error", err)
		return
	}
	s.doc = previous
}

// subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *documentStore[T]) subscribe(fn func(Change)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *documentStore[T]) notify(change Change) {
	s.subsMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
