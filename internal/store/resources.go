package store

import (
	"context"
	"sync"

	"saglikhep/internal/api"
	"saglikhep/pkg/domain"
)

// Posts moderates the user post collection.
type Posts struct {
	*Store[domain.Post]
	api *api.Client
}

func NewPosts(client *api.Client) *Posts {
	return &Posts{
		api: client,
		Store: New(Config[domain.Post]{
			Name:      "posts",
			List:      client.ListPosts,
			Normalize: domain.NormalizePost,
			ID:        func(p domain.Post) string { return p.ID },
		}),
	}
}

func (p *Posts) Create(ctx context.Context, in api.PostInput) (domain.Post, error) {
	var created domain.Post
	err := p.Do(ctx, func(ctx context.Context) error {
		post, err := p.api.CreatePost(ctx, in)
		if err != nil {
			return err
		}
		created = post
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return p.Prepend(created), nil
}

func (p *Posts) Update(ctx context.Context, id string, in api.PostInput) (domain.Post, error) {
	return p.replaceWith(ctx, func(ctx context.Context) (domain.Post, error) {
		return p.api.UpdatePost(ctx, id, in)
	})
}

// Delete removes the post locally by canonical ID. With refetch set
// the full list is reloaded afterwards so server-side recalculated
// counts land in the pagination metadata.
func (p *Posts) Delete(ctx context.Context, id string, refetch bool) error {
	err := p.Do(ctx, func(ctx context.Context) error {
		return p.api.DeletePost(ctx, id)
	})
	if err != nil {
		return err
	}
	p.RemoveItem(id)
	if refetch {
		return p.Refetch(ctx)
	}
	return nil
}

func (p *Posts) Approve(ctx context.Context, id string) (domain.Post, error) {
	return p.replaceWith(ctx, func(ctx context.Context) (domain.Post, error) {
		return p.api.ApprovePost(ctx, id)
	})
}

func (p *Posts) Reject(ctx context.Context, id string) (domain.Post, error) {
	return p.replaceWith(ctx, func(ctx context.Context) (domain.Post, error) {
		return p.api.RejectPost(ctx, id)
	})
}

func (p *Posts) Unpublish(ctx context.Context, id string) (domain.Post, error) {
	return p.replaceWith(ctx, func(ctx context.Context) (domain.Post, error) {
		return p.api.UnpublishPost(ctx, id)
	})
}

func (p *Posts) replaceWith(ctx context.Context, call func(ctx context.Context) (domain.Post, error)) (domain.Post, error) {
	var updated domain.Post
	err := p.Do(ctx, func(ctx context.Context) error {
		post, err := call(ctx)
		if err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return p.ReplaceItem(updated), nil
}

// Blogs manages the editorial blog collection.
type Blogs struct {
	*Store[domain.Blog]
	api *api.Client
}

func NewBlogs(client *api.Client) *Blogs {
	return &Blogs{
		api: client,
		Store: New(Config[domain.Blog]{
			Name:      "blogs",
			List:      client.ListBlogs,
			Normalize: domain.NormalizeBlog,
			ID:        func(b domain.Blog) string { return b.ID },
		}),
	}
}

func (b *Blogs) Create(ctx context.Context, in api.BlogInput) (domain.Blog, error) {
	var created domain.Blog
	err := b.Do(ctx, func(ctx context.Context) error {
		blog, err := b.api.CreateBlog(ctx, in)
		if err != nil {
			return err
		}
		created = blog
		return nil
	})
	if err != nil {
		return domain.Blog{}, err
	}
	return b.Prepend(created), nil
}

func (b *Blogs) Update(ctx context.Context, id string, in api.BlogInput) (domain.Blog, error) {
	var updated domain.Blog
	err := b.Do(ctx, func(ctx context.Context) error {
		blog, err := b.api.UpdateBlog(ctx, id, in)
		if err != nil {
			return err
		}
		updated = blog
		return nil
	})
	if err != nil {
		return domain.Blog{}, err
	}
	return b.ReplaceItem(updated), nil
}

func (b *Blogs) Delete(ctx context.Context, id string, refetch bool) error {
	err := b.Do(ctx, func(ctx context.Context) error {
		return b.api.DeleteBlog(ctx, id)
	})
	if err != nil {
		return err
	}
	b.RemoveItem(id)
	if refetch {
		return b.Refetch(ctx)
	}
	return nil
}

// Comments holds the comment list of one parent post or blog at a
// time; FetchFor rebinds the scope. The scope fields have their own
// lock: the list closure reads them while a fetch is in flight.
type Comments struct {
	*Store[domain.Comment]
	api      *api.Client
	scopeMu  sync.Mutex
	postID   string
	postType domain.PostType
}

func NewComments(client *api.Client) *Comments {
	c := &Comments{api: client}
	c.Store = New(Config[domain.Comment]{
		Name: "comments",
		List: func(ctx context.Context, f domain.Filters) ([]domain.Comment, domain.Pagination, error) {
			postID, postType := c.scope()
			return client.ListComments(ctx, postID, postType, f)
		},
		Normalize: domain.NormalizeComment,
		ID:        func(cm domain.Comment) string { return cm.ID },
	})
	return c
}

func (c *Comments) scope() (string, domain.PostType) {
	c.scopeMu.Lock()
	defer c.scopeMu.Unlock()
	return c.postID, c.postType
}

// FetchFor loads comments for a parent, resetting state when the
// parent changed so one post's comments never bleed into another's.
func (c *Comments) FetchFor(ctx context.Context, postID string, postType domain.PostType, f domain.Filters) error {
	c.scopeMu.Lock()
	changed := c.postID != postID || c.postType != postType
	c.postID = postID
	c.postType = postType
	c.scopeMu.Unlock()
	if changed {
		c.Reset()
	}
	return c.Fetch(ctx, f)
}

func (c *Comments) Delete(ctx context.Context, id string, refetch bool) error {
	err := c.Do(ctx, func(ctx context.Context) error {
		return c.api.DeleteComment(ctx, id)
	})
	if err != nil {
		return err
	}
	c.RemoveItem(id)
	if refetch {
		return c.Refetch(ctx)
	}
	return nil
}

// Events manages the event collection and its approval workflow.
type Events struct {
	*Store[domain.Event]
	api *api.Client
}

func NewEvents(client *api.Client) *Events {
	return &Events{
		api: client,
		Store: New(Config[domain.Event]{
			Name:      "events",
			List:      client.ListEvents,
			Normalize: domain.NormalizeEvent,
			ID:        func(e domain.Event) string { return e.ID },
		}),
	}
}

func (e *Events) Create(ctx context.Context, in api.EventInput) (domain.Event, error) {
	var created domain.Event
	err := e.Do(ctx, func(ctx context.Context) error {
		event, err := e.api.CreateEvent(ctx, in)
		if err != nil {
			return err
		}
		created = event
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return e.Prepend(created), nil
}

func (e *Events) Update(ctx context.Context, id string, in api.EventInput) (domain.Event, error) {
	var updated domain.Event
	err := e.Do(ctx, func(ctx context.Context) error {
		event, err := e.api.UpdateEvent(ctx, id, in)
		if err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return e.ReplaceItem(updated), nil
}

func (e *Events) Delete(ctx context.Context, id string, refetch bool) error {
	err := e.Do(ctx, func(ctx context.Context) error {
		return e.api.DeleteEvent(ctx, id)
	})
	if err != nil {
		return err
	}
	e.RemoveItem(id)
	if refetch {
		return e.Refetch(ctx)
	}
	return nil
}

func (e *Events) Approve(ctx context.Context, id string, decision api.EventApproval) (domain.Event, error) {
	var updated domain.Event
	err := e.Do(ctx, func(ctx context.Context) error {
		event, err := e.api.ApproveEvent(ctx, id, decision)
		if err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return e.ReplaceItem(updated), nil
}

// Users manages the platform user collection.
type Users struct {
	*Store[domain.User]
	api *api.Client
}

func NewUsers(client *api.Client) *Users {
	return &Users{
		api: client,
		Store: New(Config[domain.User]{
			Name:      "users",
			List:      client.ListUsers,
			Normalize: domain.NormalizeUser,
			ID:        func(u domain.User) string { return u.ID },
		}),
	}
}

func (u *Users) SetStatus(ctx context.Context, id string, status domain.UserStatus) (domain.User, error) {
	var updated domain.User
	err := u.Do(ctx, func(ctx context.Context) error {
		user, err := u.api.UpdateUserStatus(ctx, id, status)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u.ReplaceItem(updated), nil
}

func (u *Users) Delete(ctx context.Context, id string, refetch bool) error {
	err := u.Do(ctx, func(ctx context.Context) error {
		return u.api.DeleteUser(ctx, id)
	})
	if err != nil {
		return err
	}
	u.RemoveItem(id)
	if refetch {
		return u.Refetch(ctx)
	}
	return nil
}

// Doctors holds the pending expert applications. A decided application
// leaves the pending list, so both outcomes remove the entry.
type Doctors struct {
	*Store[domain.PendingDoctor]
	api *api.Client
}

func NewDoctors(client *api.Client) *Doctors {
	return &Doctors{
		api: client,
		Store: New(Config[domain.PendingDoctor]{
			Name:      "doctors",
			List:      client.ListPendingDoctors,
			Normalize: domain.NormalizePendingDoctor,
			ID:        func(d domain.PendingDoctor) string { return d.ID },
		}),
	}
}

func (d *Doctors) Approve(ctx context.Context, id string) error {
	err := d.Do(ctx, func(ctx context.Context) error {
		_, err := d.api.ApproveDoctor(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	d.RemoveItem(id)
	return nil
}

func (d *Doctors) Reject(ctx context.Context, id, reason string) error {
	err := d.Do(ctx, func(ctx context.Context) error {
		_, err := d.api.RejectDoctor(ctx, id, reason)
		return err
	})
	if err != nil {
		return err
	}
	d.RemoveItem(id)
	return nil
}
