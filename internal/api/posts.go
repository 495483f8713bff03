package api

import (
	"context"
	"fmt"
	"net/http"

	"saglikhep/pkg/domain"
)

// postListSentinels: the post table's category and status pickers use
// "all" to mean "no filter"; those values never reach the wire.
var postListSentinels = map[string]string{
	"category": "all",
	"status":   "all",
}

// PostInput is the create/update payload for a post.
type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type postEnvelope struct {
	Post domain.Post `json:"post"`
}

type postListEnvelope struct {
	Posts      []domain.Post     `json:"posts"`
	Pagination domain.Pagination `json:"pagination"`
}

// ListPosts fetches a page of posts for the given filters.
func (c *Client) ListPosts(ctx context.Context, f domain.Filters) ([]domain.Post, domain.Pagination, error) {
	var resp postListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/posts", queryValues(f, postListSentinels), nil, &resp); err != nil {
		return nil, domain.Pagination{}, err
	}
	return resp.Posts, resp.Pagination, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (domain.Post, error) {
	var resp postEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/posts/"+id, nil, nil, &resp); err != nil {
		return domain.Post{}, err
	}
	return resp.Post, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (domain.Post, error) {
	var resp postEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/posts", nil, in, &resp); err != nil {
		return domain.Post{}, err
	}
	return resp.Post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, in PostInput) (domain.Post, error) {
	var resp postEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/posts/"+id, nil, in, &resp); err != nil {
		return domain.Post{}, err
	}
	return resp.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/posts/"+id, nil, nil, nil)
}

// Moderation actions. Each returns the post as recalculated by the
// server so the store can map-replace it in place.

func (c *Client) LikePost(ctx context.Context, id string) (domain.Post, error) {
	return c.postAction(ctx, id, "like")
}

func (c *Client) DislikePost(ctx context.Context, id string) (domain.Post, error) {
	return c.postAction(ctx, id, "dislike")
}

func (c *Client) ReportPost(ctx context.Context, id string) (domain.Post, error) {
	return c.postAction(ctx, id, "report")
}

func (c *Client) ApprovePost(ctx context.Context, id string) (domain.Post, error) {
	return c.postAction(ctx, id, "approve")
}

func (c *Client) RejectPost(ctx context.Context, id string) (domain.Post, error) {
	return c.postAction(ctx, id, "reject")
}

func (c *Client) UnpublishPost(ctx context.Context, id string) (domain.Post, error) {
	return c.postAction(ctx, id, "unpublish")
}

func (c *Client) postAction(ctx context.Context, id, action string) (domain.Post, error) {
	var resp postEnvelope
	path := fmt.Sprintf("/posts/%s/%s", id, action)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return domain.Post{}, err
	}
	return resp.Post, nil
}
