package api

import (
	"context"
	"net/http"

	"saglikhep/pkg/domain"
)

var blogListSentinels = map[string]string{
	"category": "all",
}

// BlogInput is the create/update payload for an editorial blog.
type BlogInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Published bool   `json:"published"`
}

type blogEnvelope struct {
	Blog domain.Blog `json:"blog"`
}

type blogListEnvelope struct {
	Blogs      []domain.Blog     `json:"blogs"`
	Pagination domain.Pagination `json:"pagination"`
}

// ListBlogs fetches a page of blogs. Admin panel list requests always
// carry isAdmin=true so unpublished drafts are included.
func (c *Client) ListBlogs(ctx context.Context, f domain.Filters) ([]domain.Blog, domain.Pagination, error) {
	query := queryValues(f, blogListSentinels)
	query.Set("isAdmin", "true")
	var resp blogListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/blogs", query, nil, &resp); err != nil {
		return nil, domain.Pagination{}, err
	}
	return resp.Blogs, resp.Pagination, nil
}

func (c *Client) GetBlog(ctx context.Context, id string) (domain.Blog, error) {
	var resp blogEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/blogs/"+id, nil, nil, &resp); err != nil {
		return domain.Blog{}, err
	}
	return resp.Blog, nil
}

func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (domain.Blog, error) {
	var resp blogEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/blogs", nil, in, &resp); err != nil {
		return domain.Blog{}, err
	}
	return resp.Blog, nil
}

func (c *Client) UpdateBlog(ctx context.Context, id string, in BlogInput) (domain.Blog, error) {
	var resp blogEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/blogs/"+id, nil, in, &resp); err != nil {
		return domain.Blog{}, err
	}
	return resp.Blog, nil
}

func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/blogs/"+id, nil, nil, nil)
}
