package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"saglikhep/internal/api"
	"saglikhep/pkg/domain"
)

// DashboardState is the rendered aggregate of the admin landing page.
type DashboardState struct {
	Stats      domain.DashboardStats
	EventStats domain.EventStats
	Loading    bool
	Error      string
}

// Dashboard combines the platform-wide and event aggregates. Both
// endpoints are independent, so Refresh fetches them concurrently.
type Dashboard struct {
	mu     sync.Mutex
	api    *api.Client
	stats  domain.DashboardStats
	events domain.EventStats
	load   bool
	errMsg string
}

func NewDashboard(client *api.Client) *Dashboard {
	return &Dashboard{api: client}
}

func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DashboardState{
		Stats:      d.stats,
		EventStats: d.events,
		Loading:    d.load,
		Error:      d.errMsg,
	}
}

// Refresh loads both aggregates. A failure of either endpoint leaves
// the previous values in place and records the error.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.load = true
	d.errMsg = ""
	d.mu.Unlock()

	var (
		stats  domain.DashboardStats
		events domain.EventStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = d.api.DashboardStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = d.api.EventStats(gctx)
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.load = false
	if err != nil {
		d.errMsg = messageFrom(err)
		return err
	}
	d.stats = stats
	d.events = events
	return nil
}

// Reset returns the dashboard to its initial state.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	d.stats = domain.DashboardStats{}
	d.events = domain.EventStats{}
	d.load = false
	d.errMsg = ""
	d.mu.Unlock()
}
