// Package dashboard keeps the article view shown to the user. It owns the user filter, polls the
// article endpoint, re-merges the poll with the live feed on every change and falls back to the
// last known view or the local archive when polling fails.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newspulse/pkg/domain"
	"github.com/umputun/newspulse/pkg/livefeed"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . ArticleSource
//go:generate moq -out mocks/archive.go -pkg mocks -skip-ensure -fmt goimports . Archive
//go:generate moq -out mocks/filter_store.go -pkg mocks -skip-ensure -fmt goimports . FilterStore

// DefaultPollInterval is the periodic refresh period
const DefaultPollInterval = 60 * time.Second

// ArticleSource is the polled side of the view
type ArticleSource interface {
	Articles(ctx context.Context, f domain.Filter) ([]domain.Article, error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

// LiveFeed is the push side of the view
type LiveFeed interface {
	Snapshot() []domain.Article
	Updates() <-chan struct{}
}

// Archive stores live articles and serves them when the poll endpoint never answered
type Archive interface {
	Save(ctx context.Context, articles []domain.Article) (int, error)
	List(ctx context.Context, f domain.Filter) ([]domain.Article, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

// FilterStore persists the user filter between restarts
type FilterStore interface {
	LoadFilter(ctx context.Context) (domain.Filter, bool, error)
	SaveFilter(ctx context.Context, f domain.Filter) error
}

// Params defines controller dependencies, Archive and Filters are optional
type Params struct {
	Source       ArticleSource
	Feed         LiveFeed
	Archive      Archive
	Filters      FilterStore
	PollInterval time.Duration
	ArchiveKeep  int // rows kept in the archive, 0 disables pruning
}

// View is the merged article list for the active filter
type View struct {
	Articles    []domain.Article `json:"articles"`
	Filter      domain.Filter    `json:"filter"`
	Live        int              `json:"live"`   // live entries not known to the poll
	Polled      int              `json:"polled"` // distinct entries of the polled base
	PolledAt    time.Time        `json:"polled_at"`
	Stale       bool             `json:"stale"`        // last poll failed, polled base is the last known one
	FromArchive bool             `json:"from_archive"` // polled base comes from the local archive
	LastError   string           `json:"last_error,omitempty"`
}

// Controller drives the display refresh
type Controller struct {
	source       ArticleSource
	feed         LiveFeed
	archive      Archive
	filters      FilterStore
	pollInterval time.Duration
	archiveKeep  int

	refresh   chan struct{}
	results   chan pollResult
	toArchive chan []domain.Article

	mu       sync.RWMutex
	filter   domain.Filter
	view     View
	stats    *domain.DashboardStats
	statsAt  time.Time
	polledOK bool // at least one poll succeeded

	// owned by the run loop
	polled      []domain.Article
	polling     bool
	pollPending bool
}

type pollResult struct {
	filter   domain.Filter
	articles []domain.Article
	err      error
	stats    *domain.DashboardStats
	at       time.Time
}

// New makes a controller
func New(p Params) *Controller {
	if p.PollInterval <= 0 {
		p.PollInterval = DefaultPollInterval
	}
	return &Controller{
		source:       p.Source,
		feed:         p.Feed,
		archive:      p.Archive,
		filters:      p.Filters,
		pollInterval: p.PollInterval,
		archiveKeep:  p.ArchiveKeep,
		refresh:      make(chan struct{}, 1),
		results:      make(chan pollResult, 1),
		toArchive:    make(chan []domain.Article, 1),
	}
}

// Run polls on start, on every tick and on filter changes, and re-merges on live updates until ctx is canceled
func (c *Controller) Run(ctx context.Context) error {
	if c.filters != nil {
		f, ok, err := c.filters.LoadFilter(ctx)
		switch {
		case err != nil:
			lgr.Printf("[WARN] can't load saved filter, %v", err)
		case ok:
			c.mu.Lock()
			c.filter = f
			c.mu.Unlock()
			lgr.Printf("[INFO] restored filter %+v", f)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if c.archive != nil {
		g.Go(func() error {
			c.archiveLoop(gctx)
			return nil
		})
	}
	g.Go(func() error {
		c.loop(gctx)
		return nil
	})
	return g.Wait()
}

// Refresh requests an immediate poll
func (c *Controller) Refresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// Filter returns the active filter
func (c *Controller) Filter() domain.Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// SetFilter replaces the active filter and requests a poll for it.
// The filter applies right away, a failure to persist it is returned but doesn't revert it.
func (c *Controller) SetFilter(ctx context.Context, f domain.Filter) error {
	c.mu.Lock()
	changed := c.filter != f
	c.filter = f
	c.mu.Unlock()
	if !changed {
		return nil
	}
	lgr.Printf("[INFO] filter changed to %+v", f)
	c.Refresh()

	if c.filters != nil {
		if err := c.filters.SaveFilter(ctx, f); err != nil {
			return fmt.Errorf("save filter: %w", err)
		}
	}
	return nil
}

// View returns the current merged view
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := c.view
	v.Articles = append([]domain.Article(nil), c.view.Articles...)
	return v
}

// Stats returns the last fetched dashboard stats and the time they were fetched, false if none yet
func (c *Controller) Stats() (domain.DashboardStats, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return domain.DashboardStats{}, time.Time{}, false
	}
	return *c.stats, c.statsAt, true
}

func (c *Controller) loop(ctx context.Context) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	viewFilter := c.Filter()
	c.startPoll(ctx)
	c.remerge(viewFilter)

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			c.startPoll(ctx)

		case <-c.refresh:
			if f := c.Filter(); f != viewFilter {
				// narrow the known base locally until the poll for the new filter arrives
				viewFilter = f
				c.polled = matching(c.polled, f)
				c.remerge(f)
			}
			c.startPoll(ctx)

		case res := <-c.results:
			c.polling = false
			if res.filter == c.Filter() {
				c.applyPoll(ctx, res)
				viewFilter = res.filter
			} else {
				lgr.Printf("[DEBUG] discard poll result for outdated filter %+v", res.filter)
				c.pollPending = true
			}
			if c.pollPending {
				c.pollPending = false
				c.startPoll(ctx)
			}

		case <-c.feed.Updates():
			c.remerge(viewFilter)
			if c.archive != nil {
				c.queueArchive(c.feed.Snapshot())
			}
		}
	}
}

// startPoll fetches articles and stats in background, one poll at a time
func (c *Controller) startPoll(ctx context.Context) {
	if c.polling {
		c.pollPending = true
		return
	}
	c.polling = true
	f := c.Filter()

	go func() {
		res := pollResult{filter: f, at: time.Now()}
		res.articles, res.err = c.source.Articles(ctx, f)
		if st, err := c.source.DashboardStats(ctx); err == nil {
			res.stats = &st
		} else {
			lgr.Printf("[WARN] can't fetch dashboard stats, %v", err)
		}
		select {
		case c.results <- res:
		case <-ctx.Done():
		}
	}()
}

// applyPoll replaces the polled base, on failure keeps the last known one or falls back to the archive
func (c *Controller) applyPoll(ctx context.Context, res pollResult) {
	if res.stats != nil {
		c.mu.Lock()
		c.stats, c.statsAt = res.stats, res.at
		c.mu.Unlock()
	}

	if res.err == nil {
		c.polled = res.articles
		c.mu.Lock()
		c.polledOK = true
		c.view.PolledAt, c.view.Stale, c.view.FromArchive, c.view.LastError = res.at, false, false, ""
		c.mu.Unlock()
		c.remerge(res.filter)
		return
	}

	lgr.Printf("[WARN] poll failed, keep last known view, %v", res.err)
	c.mu.RLock()
	polledOK := c.polledOK
	c.mu.RUnlock()

	fromArchive := false
	if !polledOK && c.archive != nil {
		archived, err := c.archive.List(ctx, res.filter)
		if err != nil {
			lgr.Printf("[WARN] can't read archive, %v", err)
		} else {
			c.polled = archived
			fromArchive = true
		}
	}

	c.mu.Lock()
	c.view.Stale, c.view.LastError = true, res.err.Error()
	c.view.FromArchive = fromArchive || (c.view.FromArchive && !polledOK)
	c.mu.Unlock()
	c.remerge(res.filter)
}

// remerge rebuilds the view from the live snapshot and the polled base
func (c *Controller) remerge(f domain.Filter) {
	live := matching(c.feed.Snapshot(), f)
	merged := livefeed.Merge(live, c.polled)

	polledKeys := make(map[domain.IdentityKey]struct{}, len(c.polled))
	for _, a := range c.polled {
		polledKeys[a.Key()] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Articles = merged
	c.view.Filter = f
	c.view.Polled = len(polledKeys)
	c.view.Live = len(merged) - len(polledKeys)
}

// queueArchive hands the snapshot to the archiver, a pending older snapshot is replaced
func (c *Controller) queueArchive(snapshot []domain.Article) {
	select {
	case <-c.toArchive:
	default:
	}
	select {
	case c.toArchive <- snapshot:
	default:
	}
}

func (c *Controller) archiveLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-c.toArchive:
			n, err := c.archive.Save(ctx, batch)
			if err != nil {
				lgr.Printf("[WARN] can't archive live articles, %v", err)
				continue
			}
			if n == 0 {
				continue
			}
			lgr.Printf("[DEBUG] archived %d live articles", n)
			if c.archiveKeep > 0 {
				if _, err := c.archive.Prune(ctx, c.archiveKeep); err != nil {
					lgr.Printf("[WARN] can't prune archive, %v", err)
				}
			}
		}
	}
}

// matching returns the articles passing the filter
func matching(list []domain.Article, f domain.Filter) []domain.Article {
	res := make([]domain.Article, 0, len(list))
	for _, a := range list {
		if f.Match(a) {
			res = append(res, a)
		}
	}
	return res
}
