package api

import (
	"context"
	"net/http"
	"time"

	"saglikhep/pkg/domain"
)

var eventListSentinels = map[string]string{
	"category": "all",
	"status":   "all",
}

// EventInput is the create/update payload for an event.
type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Capacity    int        `json:"capacity"`
}

// EventApproval carries the moderation decision for an event.
// Reason is omitted from the wire when empty.
type EventApproval struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

type eventEnvelope struct {
	Event domain.Event `json:"event"`
}

type eventListEnvelope struct {
	Events     []domain.Event    `json:"events"`
	Pagination domain.Pagination `json:"pagination"`
}

func (c *Client) ListEvents(ctx context.Context, f domain.Filters) ([]domain.Event, domain.Pagination, error) {
	var resp eventListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/events", queryValues(f, eventListSentinels), nil, &resp); err != nil {
		return nil, domain.Pagination{}, err
	}
	return resp.Events, resp.Pagination, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	var resp eventEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/events/"+id, nil, nil, &resp); err != nil {
		return domain.Event{}, err
	}
	return resp.Event, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (domain.Event, error) {
	var resp eventEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/events", nil, in, &resp); err != nil {
		return domain.Event{}, err
	}
	return resp.Event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in EventInput) (domain.Event, error) {
	var resp eventEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/events/"+id, nil, in, &resp); err != nil {
		return domain.Event{}, err
	}
	return resp.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/events/"+id, nil, nil, nil)
}

// ApproveEvent submits an approve/reject decision for a pending event.
func (c *Client) ApproveEvent(ctx context.Context, id string, decision EventApproval) (domain.Event, error) {
	var resp eventEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/events/"+id+"/approve", nil, decision, &resp); err != nil {
		return domain.Event{}, err
	}
	return resp.Event, nil
}

// EventStats fetches the aggregate event statistics.
func (c *Client) EventStats(ctx context.Context) (domain.EventStats, error) {
	var resp struct {
		Stats domain.EventStats `json:"stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/events/stats", nil, nil, &resp); err != nil {
		return domain.EventStats{}, err
	}
	return resp.Stats, nil
}
