package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saglikhep/internal/api"
	"saglikhep/pkg/domain"
)

func postStore(list ListFunc[domain.Post]) *Store[domain.Post] {
	return New(Config[domain.Post]{
		Name:      "posts",
		List:      list,
		Normalize: domain.NormalizePost,
		ID:        func(p domain.Post) string { return p.ID },
	})
}

func TestFetchStoresNormalizedEntities(t *testing.T) {
	s := postStore(func(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
		return []domain.Post{
			{LegacyID: "507f", Likes: []string{"u1", "u2"}},
		}, domain.Pagination{CurrentPage: 1, TotalCount: 1}, nil
	})

	require.NoError(t, s.Fetch(context.Background(), nil))

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "507f", state.Items[0].ID)
	assert.Equal(t, 2, state.Items[0].LikeCount)
	assert.Equal(t, 1, state.Pagination.TotalCount)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
}

func TestFetchFailureLeavesItemsAndPaginationUntouched(t *testing.T) {
	failing := false
	s := postStore(func(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
		if failing {
			return nil, domain.Pagination{}, &api.APIError{Status: 500, Message: "Sunucu hatası"}
		}
		return []domain.Post{{ID: "p1"}}, domain.Pagination{TotalCount: 1}, nil
	})

	require.NoError(t, s.Fetch(context.Background(), nil))
	before := s.State()

	failing = true
	err := s.Fetch(context.Background(), domain.Filters{"page": 2})
	require.Error(t, err)

	after := s.State()
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Pagination, after.Pagination)
	assert.Equal(t, "Sunucu hatası", after.Error)
	assert.False(t, after.Loading)
}

func TestFetchMergesPartialFilters(t *testing.T) {
	var seen []domain.Filters
	s := postStore(func(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
		seen = append(seen, f)
		return nil, domain.Pagination{}, nil
	})

	require.NoError(t, s.Fetch(context.Background(), domain.Filters{"search": "diyet"}))
	require.NoError(t, s.Fetch(context.Background(), domain.Filters{"category": "beslenme"}))

	require.Len(t, seen, 2)
	assert.Equal(t, domain.Filters{"search": "diyet"}, seen[0])
	assert.Equal(t, domain.Filters{"search": "diyet", "category": "beslenme"}, seen[1])
}

func TestStaleFetchCompletionIsDropped(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	s := postStore(func(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()
		if call == 1 {
			// the first fetch is slow and finishes after the second
			<-release
			return []domain.Post{{ID: "stale"}}, domain.Pagination{TotalCount: 99}, nil
		}
		return []domain.Post{{ID: "fresh"}}, domain.Pagination{TotalCount: 1}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Fetch(context.Background(), domain.Filters{"search": "eski"})
	}()
	// wait for the slow fetch to be in flight
	for {
		mu.Lock()
		started := calls >= 1
		mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, s.Fetch(context.Background(), domain.Filters{"search": "yeni"}))
	close(release)
	wg.Wait()

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "fresh", state.Items[0].ID, "a superseded fetch must not overwrite newer results")
	assert.Equal(t, 1, state.Pagination.TotalCount)
}

func TestReconcileHelpersUseCanonicalID(t *testing.T) {
	s := postStore(func(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
		return []domain.Post{{ID: "p1", Title: "eski"}, {ID: "p2"}}, domain.Pagination{}, nil
	})
	require.NoError(t, s.Fetch(context.Background(), nil))

	created := s.Prepend(domain.Post{LegacyID: "p0"})
	assert.Equal(t, "p0", created.ID)

	s.ReplaceItem(domain.Post{ID: "p1", Title: "yeni", Likes: []string{"u1"}})
	s.RemoveItem("p2")

	state := s.State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "p0", state.Items[0].ID)
	assert.Equal(t, "yeni", state.Items[1].Title)
	assert.Equal(t, 1, state.Items[1].LikeCount)
}

func TestResetReturnsToInitialState(t *testing.T) {
	s := postStore(func(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
		return []domain.Post{{ID: "p1"}}, domain.Pagination{TotalCount: 1}, nil
	})
	require.NoError(t, s.Fetch(context.Background(), domain.Filters{"search": "x"}))

	s.Reset()
	state := s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, domain.Pagination{}, state.Pagination)
	assert.Equal(t, domain.Filters{}, state.Filters)
	assert.Empty(t, state.Error)
}

func TestDoRecordsErrorAndRethrows(t *testing.T) {
	s := postStore(nil)
	wantErr := errors.New("bağlantı reddedildi")
	err := s.Do(context.Background(), func(ctx context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, "bağlantı reddedildi", s.State().Error)
	assert.False(t, s.State().Loading)
}

func TestMessageExtractionOrder(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message wins", &api.APIError{Status: 400, Message: "Kayıt bulunamadı"}, "Kayıt bulunamadı"},
		{"transport message next", errors.New("connection refused"), "connection refused"},
		{"empty api message falls through", &api.APIError{Status: 500}, defaultErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageFrom(tt.err))
		})
	}
}
