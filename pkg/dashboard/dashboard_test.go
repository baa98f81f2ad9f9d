package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newspulse/pkg/dashboard/mocks"
	"github.com/umputun/newspulse/pkg/domain"
	"github.com/umputun/newspulse/pkg/livefeed"
)

func art(title, category string) domain.Article {
	return domain.Article{Title: title, Source: "S", PublishDate: "2024-01-01", Category: category}
}

func titles(list []domain.Article) []string {
	res := make([]string, 0, len(list))
	for _, a := range list {
		res = append(res, a.Title)
	}
	return res
}

func staticSource(articles ...domain.Article) *mocks.ArticleSourceMock {
	return &mocks.ArticleSourceMock{
		ArticlesFunc: func(_ context.Context, f domain.Filter) ([]domain.Article, error) {
			res := []domain.Article{}
			for _, a := range articles {
				if f.Match(a) {
					res = append(res, a)
				}
			}
			return res, nil
		},
		DashboardStatsFunc: func(context.Context) (domain.DashboardStats, error) {
			return domain.DashboardStats{TotalArticles: len(articles)}, nil
		},
	}
}

func runController(t *testing.T, c *Controller) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("controller did not stop")
		}
	})
}

func waitView(t *testing.T, c *Controller, want []string) {
	t.Helper()
	require.Eventually(t, func() bool { return assert.ObjectsAreEqual(want, titles(c.View().Articles)) },
		2*time.Second, 5*time.Millisecond, "view %v, want %v", titles(c.View().Articles), want)
}

func TestController_PollAndMerge(t *testing.T) {
	buf := livefeed.NewBuffer(10)
	c := New(Params{Source: staticSource(art("A", ""), art("B", "")), Feed: buf, PollInterval: time.Hour})
	runController(t, c)

	waitView(t, c, []string{"A", "B"})
	v := c.View()
	assert.Equal(t, 2, v.Polled)
	assert.Equal(t, 0, v.Live)
	assert.False(t, v.PolledAt.IsZero())
	assert.False(t, v.Stale)

	buf.Push(art("C", ""))
	waitView(t, c, []string{"C", "A", "B"})
	assert.Equal(t, 1, c.View().Live)

	buf.Push(art("A", "")) // already in the poll
	buf.Push(art("D", ""))
	waitView(t, c, []string{"D", "C", "A", "B"})

	st, at, ok := c.Stats()
	require.True(t, ok)
	assert.Equal(t, 2, st.TotalArticles)
	assert.False(t, at.IsZero())
}

func TestController_CountsWithRepeatedPolledEntries(t *testing.T) {
	buf := livefeed.NewBuffer(10)
	c := New(Params{Source: staticSource(art("A", ""), art("B", ""), art("A", "")), Feed: buf, PollInterval: time.Hour})
	runController(t, c)

	waitView(t, c, []string{"A", "B"})
	assert.Equal(t, 2, c.View().Polled)
	assert.Equal(t, 0, c.View().Live)

	buf.Push(art("C", ""))
	buf.Push(art("D", ""))
	waitView(t, c, []string{"D", "C", "A", "B"})
	assert.Equal(t, 2, c.View().Live)
	assert.Equal(t, 2, c.View().Polled)
}

func TestController_ViewIsCopy(t *testing.T) {
	c := New(Params{Source: staticSource(art("A", "")), Feed: livefeed.NewBuffer(10), PollInterval: time.Hour})
	runController(t, c)
	waitView(t, c, []string{"A"})

	v := c.View()
	v.Articles[0].Title = "changed"
	assert.Equal(t, "A", c.View().Articles[0].Title)
}

func TestController_FilterChange(t *testing.T) {
	buf := livefeed.NewBuffer(10)
	src := staticSource(art("P1", "politics"), art("W1", "weather"))
	store := &mocks.FilterStoreMock{
		LoadFilterFunc: func(context.Context) (domain.Filter, bool, error) { return domain.Filter{}, false, nil },
		SaveFilterFunc: func(context.Context, domain.Filter) error { return nil },
	}
	c := New(Params{Source: src, Feed: buf, Filters: store, PollInterval: time.Hour})
	runController(t, c)
	waitView(t, c, []string{"P1", "W1"})

	buf.Push(art("P2", "politics"))
	buf.Push(art("W2", "weather"))
	waitView(t, c, []string{"W2", "P2", "P1", "W1"})

	f := domain.Filter{Category: "weather"}
	require.NoError(t, c.SetFilter(context.Background(), f))
	assert.Equal(t, f, c.Filter())
	waitView(t, c, []string{"W2", "W1"})
	assert.Equal(t, f, c.View().Filter)

	require.Len(t, store.SaveFilterCalls(), 1)
	assert.Equal(t, f, store.SaveFilterCalls()[0].F)
	require.Eventually(t, func() bool {
		calls := src.ArticlesCalls()
		return calls[len(calls)-1].F == f
	}, 2*time.Second, 5*time.Millisecond, "poll for the new filter")

	// same filter again is a no-op
	require.NoError(t, c.SetFilter(context.Background(), f))
	assert.Len(t, store.SaveFilterCalls(), 1)
}

func TestController_SetFilterSaveError(t *testing.T) {
	store := &mocks.FilterStoreMock{
		LoadFilterFunc: func(context.Context) (domain.Filter, bool, error) { return domain.Filter{}, false, nil },
		SaveFilterFunc: func(context.Context, domain.Filter) error { return errors.New("disk full") },
	}
	c := New(Params{Source: staticSource(), Feed: livefeed.NewBuffer(10), Filters: store, PollInterval: time.Hour})
	err := c.SetFilter(context.Background(), domain.Filter{Region: "Goa"})
	require.Error(t, err)
	assert.Equal(t, domain.Filter{Region: "Goa"}, c.Filter(), "filter applied anyway")
}

func TestController_RestoresSavedFilter(t *testing.T) {
	saved := domain.Filter{Category: "politics"}
	store := &mocks.FilterStoreMock{
		LoadFilterFunc: func(context.Context) (domain.Filter, bool, error) { return saved, true, nil },
		SaveFilterFunc: func(context.Context, domain.Filter) error { return nil },
	}
	src := staticSource(art("P1", "politics"), art("W1", "weather"))
	c := New(Params{Source: src, Feed: livefeed.NewBuffer(10), Filters: store, PollInterval: time.Hour})
	runController(t, c)

	waitView(t, c, []string{"P1"})
	assert.Equal(t, saved, c.Filter())
	assert.Equal(t, saved, src.ArticlesCalls()[0].F)
}

func TestController_PollFailureKeepsLastView(t *testing.T) {
	var fail atomic.Bool
	src := &mocks.ArticleSourceMock{
		ArticlesFunc: func(context.Context, domain.Filter) ([]domain.Article, error) {
			if fail.Load() {
				return nil, errors.New("connection refused")
			}
			return []domain.Article{art("A", ""), art("B", "")}, nil
		},
		DashboardStatsFunc: func(context.Context) (domain.DashboardStats, error) {
			if fail.Load() {
				return domain.DashboardStats{}, errors.New("connection refused")
			}
			return domain.DashboardStats{TotalArticles: 2}, nil
		},
	}
	buf := livefeed.NewBuffer(10)
	c := New(Params{Source: src, Feed: buf, PollInterval: time.Hour})
	runController(t, c)
	waitView(t, c, []string{"A", "B"})

	fail.Store(true)
	c.Refresh()
	require.Eventually(t, func() bool { return c.View().Stale }, 2*time.Second, 5*time.Millisecond)
	v := c.View()
	assert.Equal(t, []string{"A", "B"}, titles(v.Articles))
	assert.Equal(t, "connection refused", v.LastError)
	assert.False(t, v.FromArchive)

	st, _, ok := c.Stats()
	require.True(t, ok, "last stats kept")
	assert.Equal(t, 2, st.TotalArticles)

	// live updates still merge while polling fails
	buf.Push(art("C", ""))
	waitView(t, c, []string{"C", "A", "B"})

	fail.Store(false)
	c.Refresh()
	require.Eventually(t, func() bool { return !c.View().Stale }, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, c.View().LastError)
}

func TestController_ArchiveFallback(t *testing.T) {
	src := &mocks.ArticleSourceMock{
		ArticlesFunc: func(context.Context, domain.Filter) ([]domain.Article, error) {
			return nil, errors.New("no route to host")
		},
		DashboardStatsFunc: func(context.Context) (domain.DashboardStats, error) {
			return domain.DashboardStats{}, errors.New("no route to host")
		},
	}
	archive := &mocks.ArchiveMock{
		ListFunc: func(_ context.Context, f domain.Filter) ([]domain.Article, error) {
			return []domain.Article{art("Z", "")}, nil
		},
		SaveFunc:  func(_ context.Context, list []domain.Article) (int, error) { return len(list), nil },
		PruneFunc: func(context.Context, int) (int64, error) { return 0, nil },
	}
	buf := livefeed.NewBuffer(10)
	c := New(Params{Source: src, Feed: buf, Archive: archive, PollInterval: time.Hour})
	runController(t, c)

	waitView(t, c, []string{"Z"})
	v := c.View()
	assert.True(t, v.FromArchive)
	assert.True(t, v.Stale)
	_, _, ok := c.Stats()
	assert.False(t, ok)

	buf.Push(art("Z", "")) // known to the archive
	buf.Push(art("Y", ""))
	waitView(t, c, []string{"Y", "Z"})
}

func TestController_LiveArticlesArchived(t *testing.T) {
	saved := make(chan []domain.Article, 10)
	archive := &mocks.ArchiveMock{
		ListFunc: func(context.Context, domain.Filter) ([]domain.Article, error) { return nil, nil },
		SaveFunc: func(_ context.Context, list []domain.Article) (int, error) {
			saved <- list
			return len(list), nil
		},
		PruneFunc: func(context.Context, int) (int64, error) { return 0, nil },
	}
	buf := livefeed.NewBuffer(10)
	c := New(Params{Source: staticSource(), Feed: buf, Archive: archive, ArchiveKeep: 500, PollInterval: time.Hour})
	runController(t, c)

	buf.Push(art("L1", ""))
	select {
	case list := <-saved:
		assert.Equal(t, []string{"L1"}, titles(list))
	case <-time.After(2 * time.Second):
		t.Fatal("live article not archived")
	}
	require.Eventually(t, func() bool { return len(archive.PruneCalls()) > 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 500, archive.PruneCalls()[0].Keep)
}

func TestController_OutdatedPollDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	src := &mocks.ArticleSourceMock{
		ArticlesFunc: func(_ context.Context, f domain.Filter) ([]domain.Article, error) {
			if calls.Add(1) == 1 {
				<-release // the first poll is slow
				return []domain.Article{art("old-"+f.Category, "")}, nil
			}
			return []domain.Article{art("new-"+f.Category, "")}, nil
		},
		DashboardStatsFunc: func(context.Context) (domain.DashboardStats, error) { return domain.DashboardStats{}, nil },
	}
	c := New(Params{Source: src, Feed: livefeed.NewBuffer(10), PollInterval: time.Hour})
	runController(t, c)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.SetFilter(context.Background(), domain.Filter{Search: "new"}))
	time.Sleep(20 * time.Millisecond) // the filter change is seen while the first poll is in flight
	close(release)

	waitView(t, c, []string{"new-"})
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, domain.Filter{Search: "new"}, c.View().Filter)
}

func TestController_PeriodicPoll(t *testing.T) {
	src := staticSource(art("A", ""))
	c := New(Params{Source: src, Feed: livefeed.NewBuffer(10), PollInterval: 10 * time.Millisecond})
	runController(t, c)
	require.Eventually(t, func() bool { return len(src.ArticlesCalls()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(src.DashboardStatsCalls()) >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestMatching(t *testing.T) {
	list := []domain.Article{art("a", "x"), art("b", "y"), art("c", "x")}
	assert.Equal(t, []string{"a", "c"}, titles(matching(list, domain.Filter{Category: "x"})))
	assert.Equal(t, []string{"a", "b", "c"}, titles(matching(list, domain.Filter{})))
	assert.Empty(t, matching(nil, domain.Filter{}))
}
