package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalIDFallback(t *testing.T) {
	tests := []struct {
		name   string
		post   Post
		wantID string
	}{
		{"legacy only", Post{LegacyID: "507f1f77bcf86cd799439011"}, "507f1f77bcf86cd799439011"},
		{"both set prefers primary", Post{ID: "x1", LegacyID: "507f"}, "x1"},
		{"primary only", Post{ID: "x1"}, "x1"},
		{"neither", Post{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePost(tt.post)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	post := Post{LegacyID: "507f", Likes: []string{"u1", "u2"}}
	once := NormalizePost(post)
	twice := NormalizePost(once)
	assert.Equal(t, once, twice)
}

func TestDerivedCountsMatchSourceArrays(t *testing.T) {
	comment := NormalizeComment(Comment{
		ID:      "c1",
		Likes:   []string{"u1", "u2", "u3"},
		Replies: []string{"r1"},
	})
	assert.Equal(t, 3, comment.LikeCount)
	assert.Equal(t, 1, comment.ReplyCount)

	blog := NormalizeBlog(Blog{ID: "b1", Likes: []string{"u1", "u2"}})
	assert.Equal(t, 2, blog.LikesCount)

	post := NormalizePost(Post{ID: "p1", Dislikes: []string{"u9"}})
	assert.Equal(t, 0, post.LikeCount)
	assert.Equal(t, 1, post.DislikeCount)
}

func TestNormalizeEventKeepsAbsentEndDate(t *testing.T) {
	event := NormalizeEvent(Event{LegacyID: "e1", Attendees: []string{"u1"}})
	require.Nil(t, event.EndDate)
	assert.Equal(t, "e1", event.ID)
	assert.Equal(t, 1, event.AttendeeCount)
}
