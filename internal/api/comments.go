package api

import (
	"context"
	"net/http"

	"saglikhep/pkg/domain"
)

// CommentInput is the create/update payload for a comment.
type CommentInput struct {
	Content  string          `json:"content"`
	PostType domain.PostType `json:"postType,omitempty"`
}

type commentEnvelope struct {
	Comment domain.Comment `json:"comment"`
}

type commentListEnvelope struct {
	Comments   []domain.Comment  `json:"comments"`
	Pagination domain.Pagination `json:"pagination"`
}

// ListComments fetches comments scoped to a parent post or blog. The
// parent type travels as the postType query parameter; the filter set
// supplies page, limit and search.
func (c *Client) ListComments(ctx context.Context, postID string, postType domain.PostType, f domain.Filters) ([]domain.Comment, domain.Pagination, error) {
	query := queryValues(f, nil)
	query.Set("postType", string(postType))
	var resp commentListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/comments/"+postID, query, nil, &resp); err != nil {
		return nil, domain.Pagination{}, err
	}
	return resp.Comments, resp.Pagination, nil
}

func (c *Client) CreateComment(ctx context.Context, postID string, in CommentInput) (domain.Comment, error) {
	var resp commentEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/comments/"+postID, nil, in, &resp); err != nil {
		return domain.Comment{}, err
	}
	return resp.Comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, id string, in CommentInput) (domain.Comment, error) {
	var resp commentEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/comments/"+id, nil, in, &resp); err != nil {
		return domain.Comment{}, err
	}
	return resp.Comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/comments/"+id, nil, nil, nil)
}
