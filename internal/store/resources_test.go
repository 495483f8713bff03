package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saglikhep/internal/api"
	"saglikhep/pkg/domain"
)

// postsBackend is a minimal moderation endpoint the Posts store runs
// against end to end.
type postsBackend struct {
	mu        sync.Mutex
	listCalls int
	posts     []map[string]any
}

func (b *postsBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/posts":
			b.listCalls++
			json.NewEncoder(w).Encode(map[string]any{
				"posts":      b.posts,
				"pagination": map[string]any{"currentPage": 1, "totalCount": len(b.posts)},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/posts":
			post := map[string]any{"_id": "p-new", "title": "Yeni", "status": "pending"}
			b.posts = append([]map[string]any{post}, b.posts...)
			json.NewEncoder(w).Encode(map[string]any{"post": post})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/approve"):
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/posts/"), "/approve")
			json.NewEncoder(w).Encode(map[string]any{
				"post": map[string]any{"_id": id, "status": "approved", "likes": []string{"u1"}},
			})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/posts/"):
			id := strings.TrimPrefix(r.URL.Path, "/posts/")
			kept := b.posts[:0]
			for _, p := range b.posts {
				if p["_id"] != id {
					kept = append(kept, p)
				}
			}
			b.posts = kept
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
}

func TestPostsModerationFlow(t *testing.T) {
	backend := &postsBackend{posts: []map[string]any{
		{"_id": "p1", "title": "Mevcut", "status": "pending"},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	ctx := context.Background()
	posts := NewPosts(api.NewClient(srv.URL, staticTokens{}))
	require.NoError(t, posts.Fetch(ctx, nil))

	created, err := posts.Create(ctx, api.PostInput{Title: "Yeni", Content: "içerik", Category: "genel"})
	require.NoError(t, err)
	assert.Equal(t, "p-new", created.ID, "created entity must come back canonicalized")
	assert.Equal(t, "p-new", posts.State().Items[0].ID, "created entity must lead the list")

	approved, err := posts.Approve(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.PostApproved, approved.Status)
	assert.Equal(t, 1, approved.LikeCount)

	state := posts.State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, domain.PostApproved, state.Items[1].Status, "approval must replace the entry in place")

	listCallsBefore := backend.listCalls
	require.NoError(t, posts.Delete(ctx, "p-new", true))
	assert.Equal(t, listCallsBefore+1, backend.listCalls, "delete with refetch must reload the list")
	state = posts.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "p1", state.Items[0].ID)
}

func TestCommentsFetchForResetsOnParentChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/comments/post-1":
			w.Write([]byte(`{"comments":[{"_id":"c1","content":"ilk"}],"pagination":{"totalCount":1}}`))
		case "/comments/post-2":
			w.Write([]byte(`{"comments":[{"_id":"c9","content":"öteki"}],"pagination":{"totalCount":1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	comments := NewComments(api.NewClient(srv.URL, staticTokens{}))

	require.NoError(t, comments.FetchFor(ctx, "post-1", domain.PostTypePost, domain.Filters{"page": 3}))
	require.NoError(t, comments.FetchFor(ctx, "post-2", domain.PostTypePost, nil))

	state := comments.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "c9", state.Items[0].ID, "previous parent's comments must not survive a rebind")
	assert.Equal(t, domain.Filters{}, state.Filters, "filters must reset with the parent")
}

func TestCommentsConcurrentRebindsStayScoped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parent := strings.TrimPrefix(r.URL.Path, "/comments/")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"comments":   []map[string]any{{"_id": "c-" + parent, "content": parent}},
			"pagination": map[string]any{"totalCount": 1},
		})
	}))
	defer srv.Close()

	ctx := context.Background()
	comments := NewComments(api.NewClient(srv.URL, staticTokens{}))

	var wg sync.WaitGroup
	for _, parent := range []string{"post-1", "post-2", "post-3", "post-1", "post-2"} {
		wg.Add(1)
		go func(parent string) {
			defer wg.Done()
			_ = comments.FetchFor(ctx, parent, domain.PostTypePost, nil)
		}(parent)
	}
	wg.Wait()

	// whichever rebind won, the surviving items must belong to it
	state := comments.State()
	for _, item := range state.Items {
		if !strings.HasPrefix(item.ID, "c-post-") {
			t.Fatalf("unexpected item %q", item.ID)
		}
	}
}

func TestDoctorsDecisionRemovesFromPendingList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/admin/doctors/pending":
			w.Write([]byte(`{"doctors":[{"_id":"d1","name":"Dr. Elif"},{"_id":"d2","name":"Dr. Can"}],"pagination":{"totalCount":2}}`))
		case strings.HasSuffix(r.URL.Path, "/approve"):
			w.Write([]byte(`{"doctor":{"_id":"d1","name":"Dr. Elif"}}`))
		case strings.HasSuffix(r.URL.Path, "/reject"):
			w.Write([]byte(`{"doctor":{"_id":"d2","name":"Dr. Can"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	doctors := NewDoctors(api.NewClient(srv.URL, staticTokens{}))
	require.NoError(t, doctors.Fetch(ctx, nil))
	require.Len(t, doctors.State().Items, 2)

	require.NoError(t, doctors.Approve(ctx, "d1"))
	require.NoError(t, doctors.Reject(ctx, "d2", "Belgeler eksik"))
	assert.Empty(t, doctors.State().Items, "decided applications must leave the pending list")
}
