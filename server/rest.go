package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/newspulse/pkg/domain"
	"github.com/umputun/newspulse/pkg/stream"
)

// statusResponse is the push connection report
type statusResponse struct {
	Status       string                  `json:"status"`
	Version      string                  `json:"version"`
	Time         time.Time               `json:"time"`
	Connection   domain.ConnectionHealth `json:"connection"`
	ServerStats  *domain.ConnectionStats `json:"server_stats,omitempty"`
	Welcome      string                  `json:"welcome,omitempty"`
	Topics       []string                `json:"topics"`
	Frames       stream.RouterCounters   `json:"frames"`
	LastFrame    *time.Time              `json:"last_frame,omitempty"`
	LastPong     *time.Time              `json:"last_pong,omitempty"`
	PingsSent    uint64                  `json:"pings_sent"`
	PongsMissed  uint64                  `json:"pongs_missed"`
	LiveBuffered int                     `json:"live_buffered"` // articles held by the live feed buffer
}

// statsResponse wraps dashboard stats with the time they were fetched
type statsResponse struct {
	Stats     domain.DashboardStats `json:"stats"`
	FetchedAt time.Time             `json:"fetched_at"`
}

type subscribeRequest struct {
	Topics []string `json:"topics"`
}

// statusHandler returns server and connection status
func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	sent, missed := s.status.Pings()
	resp := statusResponse{
		Status:       "ok",
		Version:      s.version,
		Time:         time.Now().UTC(),
		Connection:   s.status.Health(),
		Welcome:      s.status.Welcome(),
		Topics:       s.status.Topics(),
		Frames:       s.status.Counters(),
		PingsSent:    sent,
		PongsMissed:  missed,
		LiveBuffered: s.status.Buffered(),
	}
	if resp.Topics == nil {
		resp.Topics = []string{}
	}
	if st, ok := s.status.ServerStats(); ok {
		resp.ServerStats = &st
	}
	if ts := s.status.LastFrame(); !ts.IsZero() {
		resp.LastFrame = &ts
	}
	if ts := s.status.LastPong(); !ts.IsZero() {
		resp.LastPong = &ts
	}
	rest.RenderJSON(w, resp)
}

// articlesHandler returns the merged view for the active filter
func (s *Server) articlesHandler(w http.ResponseWriter, _ *http.Request) {
	view := s.dashboard.View()
	if view.Articles == nil {
		view.Articles = []domain.Article{}
	}
	rest.RenderJSON(w, view)
}

// getFilterHandler returns the active filter
func (s *Server) getFilterHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, s.dashboard.Filter())
}

// setFilterHandler replaces the active filter, the view re-polls for it
func (s *Server) setFilterHandler(w http.ResponseWriter, r *http.Request) {
	var f domain.Filter
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid filter")
		return
	}
	if err := validateFilter(f); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, err.Error())
		return
	}

	if err := s.dashboard.SetFilter(r.Context(), f); err != nil {
		// filter is applied anyway, only persisting failed
		lgr.Printf("[WARN] filter applied but not saved, %v", err)
	}
	rest.RenderJSON(w, s.dashboard.Filter())
}

// dashboardStatsHandler returns the last fetched dashboard stats
func (s *Server) dashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	st, at, ok := s.dashboard.Stats()
	if !ok {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound, errors.New("no stats"), "stats not fetched yet")
		return
	}
	rest.RenderJSON(w, statsResponse{Stats: st, FetchedAt: at})
}

// refreshHandler requests an immediate poll
func (s *Server) refreshHandler(w http.ResponseWriter, _ *http.Request) {
	s.dashboard.Refresh()
	rest.RenderJSON(w, rest.JSON{"status": "ok"})
}

// connectHandler starts a connection, it is the way out of the failed state
func (s *Server) connectHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.stream.Connect(r.Context()); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusServiceUnavailable, err, "can't connect")
		return
	}
	rest.RenderJSON(w, rest.JSON{"status": "ok", "state": s.status.Health().State})
}

// disconnectHandler closes the connection with the normal code
func (s *Server) disconnectHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.stream.Disconnect(r.Context()); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusServiceUnavailable, err, "can't disconnect")
		return
	}
	rest.RenderJSON(w, rest.JSON{"status": "ok", "state": s.status.Health().State})
}

// subscribeHandler sends a subscribe control message
func (s *Server) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid subscribe request")
		return
	}
	topics := make([]string, 0, len(req.Topics))
	for _, t := range req.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, errors.New("no topics"), "topics required")
		return
	}

	if err := s.stream.Subscribe(r.Context(), topics); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), sendErrorCode(err), err, "can't subscribe")
		return
	}
	rest.RenderJSON(w, rest.JSON{"status": "ok", "topics": topics})
}

// requestStatsHandler asks the push server for a stats frame
func (s *Server) requestStatsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.stream.RequestStats(r.Context()); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), sendErrorCode(err), err, "can't request stats")
		return
	}
	rest.RenderJSON(w, rest.JSON{"status": "ok"})
}

// sendErrorCode maps stream send errors to HTTP codes
func sendErrorCode(err error) int {
	if errors.Is(err, stream.ErrNotConnected) {
		return http.StatusConflict
	}
	return http.StatusServiceUnavailable
}

// validateFilter rejects values the article endpoint can't take
func validateFilter(f domain.Filter) error {
	if f.Limit < 0 || f.Offset < 0 {
		return fmt.Errorf("limit and offset must be non-negative, got %d/%d", f.Limit, f.Offset)
	}
	if f.Limit > 500 {
		return fmt.Errorf("limit must be at most 500, got %d", f.Limit)
	}
	if f.Sentiment != "" && f.Sentiment != "positive" && f.Sentiment != "negative" && f.Sentiment != "neutral" {
		return fmt.Errorf("unknown sentiment %q", f.Sentiment)
	}
	return nil
}
