package stream

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newspulse/pkg/domain"
)

// FeedWriter receives live articles
type FeedWriter interface {
	Push(a domain.Article)
}

// ArticleCleaner normalizes articles before they reach the feed
type ArticleCleaner interface {
	Article(a domain.Article) domain.Article
}

// RouterParams holds router dependencies
type RouterParams struct {
	Feed    FeedWriter
	Cleaner ArticleCleaner // optional
	OnPong  func()         // optional, called for every pong frame
}

// RouterCounters are frame counters since start
type RouterCounters struct {
	Frames    uint64 `json:"frames"`
	Articles  uint64 `json:"articles"`
	Malformed uint64 `json:"malformed"`
	Unknown   uint64 `json:"unknown"`
}

// Router classifies inbound frames and dispatches them.
// Malformed frames are logged and dropped, they never affect the connection.
type Router struct {
	feed    FeedWriter
	cleaner ArticleCleaner
	onPong  func()

	handlers map[FrameKind]func(Frame) error

	mu        sync.RWMutex
	stats     *domain.ConnectionStats
	topics    []string
	welcome   string
	lastFrame time.Time
	lastPong  time.Time

	frames, articles, malformed, unknown atomic.Uint64
}

// NewRouter makes a router writing live articles to the feed
func NewRouter(p RouterParams) *Router {
	r := &Router{feed: p.Feed, cleaner: p.Cleaner, onPong: p.OnPong}
	r.handlers = map[FrameKind]func(Frame) error{
		KindNewArticle: r.handleArticle,
		KindStats:      r.handleStats,
		KindWelcome:    r.handleWelcome,
		KindSubscribed: r.handleSubscribed,
		KindPong:       r.handlePong,
	}
	return r
}

// Handle parses and dispatches a raw frame
func (r *Router) Handle(raw []byte) {
	r.frames.Add(1)
	f, err := ParseFrame(raw)
	if err != nil {
		r.malformed.Add(1)
		lgr.Printf("[WARN] drop malformed frame: %v", err)
		return
	}

	r.mu.Lock()
	r.lastFrame = time.Now()
	r.mu.Unlock()

	handler, ok := r.handlers[f.Kind]
	if !ok {
		// newer servers may send kinds we don't know about yet
		r.unknown.Add(1)
		lgr.Printf("[DEBUG] ignore frame of unknown type %q", f.Kind)
		return
	}
	if err := handler(f); err != nil {
		r.malformed.Add(1)
		lgr.Printf("[WARN] drop %s frame: %v", f.Kind, err)
	}
}

func (r *Router) handleArticle(f Frame) error {
	if !f.hasData() {
		return errNoData
	}
	var a domain.Article
	if err := json.Unmarshal(f.Data, &a); err != nil {
		return err
	}
	if r.cleaner != nil {
		a = r.cleaner.Article(a)
	}
	r.feed.Push(a)
	r.articles.Add(1)
	lgr.Printf("[DEBUG] live article %q from %s", a.Title, a.Source)
	return nil
}

func (r *Router) handleStats(f Frame) error {
	if !f.hasData() {
		return errNoData
	}
	var st domain.ConnectionStats
	if err := json.Unmarshal(f.Data, &st); err != nil {
		return err
	}
	r.mu.Lock()
	r.stats = &st
	r.mu.Unlock()
	return nil
}

func (r *Router) handleWelcome(f Frame) error {
	lgr.Printf("[INFO] stream welcome: %s", f.Message)
	r.mu.Lock()
	r.welcome = f.Message
	r.mu.Unlock()
	return nil
}

func (r *Router) handleSubscribed(f Frame) error {
	lgr.Printf("[INFO] subscribed to topics: %v", f.Topics)
	topics := append([]string(nil), f.Topics...)
	r.mu.Lock()
	r.topics = topics
	r.mu.Unlock()
	return nil
}

func (r *Router) handlePong(Frame) error {
	r.mu.Lock()
	r.lastPong = time.Now()
	r.mu.Unlock()
	if r.onPong != nil {
		r.onPong()
	}
	return nil
}

// Stats returns the last connection stats, false if none received yet
func (r *Router) Stats() (domain.ConnectionStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stats == nil {
		return domain.ConnectionStats{}, false
	}
	return *r.stats, true
}

// Topics returns topics acknowledged by the server
func (r *Router) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.topics...)
}

// Welcome returns the last welcome message
func (r *Router) Welcome() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.welcome
}

// LastFrame returns the arrival time of the last valid frame
func (r *Router) LastFrame() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastFrame
}

// LastPong returns the arrival time of the last pong
func (r *Router) LastPong() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastPong
}

// Counters returns frame counters
func (r *Router) Counters() RouterCounters {
	return RouterCounters{
		Frames:    r.frames.Load(),
		Articles:  r.articles.Load(),
		Malformed: r.malformed.Load(),
		Unknown:   r.unknown.Load(),
	}
}
