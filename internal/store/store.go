// Package store holds the client-visible state of each resource
// collection: items, pagination, active filters and the loading/error
// flags views render from. One generic store implementation serves all
// resources; per-resource types bind it to the API client and the
// matching normalization function.
package store

import (
	"context"
	"errors"
	"sync"

	"saglikhep/internal/api"
	"saglikhep/pkg/domain"
)

// defaultErrorMessage is the localized fallback shown when neither the
// server nor the transport produced a usable message.
const defaultErrorMessage = "Bir hata oluştu. Lütfen tekrar deneyin."

// ListFunc fetches one page of a resource for the given filters.
type ListFunc[T any] func(ctx context.Context, f domain.Filters) ([]T, domain.Pagination, error)

// Config binds a generic store to one resource.
type Config[T any] struct {
	Name      string
	List      ListFunc[T]
	Normalize func(T) T
	ID        func(T) string
}

// State is an atomic snapshot of a store, safe to render from.
type State[T any] struct {
	Items      []T
	Pagination domain.Pagination
	Filters    domain.Filters
	Loading    bool
	Error      string
}

// Store is the single source of truth for one resource collection.
// It is explicitly constructed and injectable so tests get isolated
// instances; Reset returns it to its initial state.
type Store[T any] struct {
	mu         sync.Mutex
	cfg        Config[T]
	items      []T
	pagination domain.Pagination
	filters    domain.Filters
	loading    bool
	errMsg     string
	gen        uint64
}

func New[T any](cfg Config[T]) *Store[T] {
	return &Store[T]{cfg: cfg, filters: domain.Filters{}}
}

func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return State[T]{
		Items:      items,
		Pagination: s.pagination,
		Filters:    s.filters.Clone(),
		Loading:    s.loading,
		Error:      s.errMsg,
	}
}

// Fetch merges the partial filter set onto the active one and loads
// the matching page. Previous items stay visible while the fetch is in
// flight and are left untouched when it fails; only a successful fetch
// replaces them with normalized entities. A fetch superseded by a
// newer dispatch is dropped on completion so a slow stale response
// cannot overwrite fresher results.
func (s *Store[T]) Fetch(ctx context.Context, partial domain.Filters) error {
	s.mu.Lock()
	s.filters = s.filters.Merge(partial)
	filters := s.filters.Clone()
	s.loading = true
	s.errMsg = ""
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	items, pagination, err := s.cfg.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = messageFrom(err)
		return err
	}
	normalized := make([]T, len(items))
	for i := range items {
		normalized[i] = s.cfg.Normalize(items[i])
	}
	s.items = normalized
	s.pagination = pagination
	return nil
}

// Refetch reloads the list with the active filters unchanged.
func (s *Store[T]) Refetch(ctx context.Context) error {
	return s.Fetch(ctx, nil)
}

// Do wraps one mutating service call in the store's loading flag. On
// failure the extracted message is recorded and the error is returned
// to the caller so action-specific UI can also react to it.
func (s *Store[T]) Do(ctx context.Context, call func(ctx context.Context) error) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	err := call(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = messageFrom(err)
	}
	s.mu.Unlock()
	return err
}

// Prepend reconciles a freshly created entity into the list and
// returns its normalized form.
func (s *Store[T]) Prepend(item T) T {
	item = s.cfg.Normalize(item)
	s.mu.Lock()
	s.items = append([]T{item}, s.items...)
	s.mu.Unlock()
	return item
}

// ReplaceItem swaps the entity with the same canonical ID in place.
func (s *Store[T]) ReplaceItem(item T) T {
	item = s.cfg.Normalize(item)
	id := s.cfg.ID(item)
	s.mu.Lock()
	for i := range s.items {
		if s.cfg.ID(s.items[i]) == id {
			s.items[i] = item
			break
		}
	}
	s.mu.Unlock()
	return item
}

// RemoveItem drops the entity with the given canonical ID.
func (s *Store[T]) RemoveItem(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if s.cfg.ID(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
}

// Reset returns the store to its initial state (logout, test teardown).
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.items = nil
	s.pagination = domain.Pagination{}
	s.filters = domain.Filters{}
	s.loading = false
	s.errMsg = ""
	s.gen++
	s.mu.Unlock()
}

// messageFrom resolves a user-presentable message: the structured
// server message first, the transport error's own text next, the
// localized default last.
func messageFrom(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return defaultErrorMessage
}
