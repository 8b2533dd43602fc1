package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/catalog"
	"github.com/JonMunkholm/eventdeck/internal/csv"
	"github.com/JonMunkholm/eventdeck/internal/logging"
)

// EventsResponse is the JSON shape of a filtered event listing.
type EventsResponse struct {
	SnapshotID string       `json:"snapshot_id"`
	Source     string       `json:"source"`
	LoadedAt   time.Time    `json:"loaded_at"`
	Headers    []string     `json:"headers"`
	Total      int          `json:"total"`
	Count      int          `json:"count"`
	Events     []csv.Record `json:"events"`
}

// StatsResponse reports snapshot status, including the last reload failure
// if the currently served data is stale.
type StatsResponse struct {
	Loaded     bool       `json:"loaded"`
	SnapshotID string     `json:"snapshot_id,omitempty"`
	Source     string     `json:"source,omitempty"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
	Records    int        `json:"records"`
	LastError  *ErrorInfo `json:"last_error,omitempty"`
}

// ErrorInfo carries a mapped reload error in status responses.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// handleListEvents returns the records matching the query criteria, in
// source order.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Snapshot()
	if !ok {
		s.respondError(w, r, catalog.ErrNoSnapshot, http.StatusServiceUnavailable)
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	filtered := catalog.Filter(snap.Records, s.fields, criteria)

	logging.FromContext(r.Context()).Debug("events filtered",
		"search", criteria.Search,
		"total", len(snap.Records),
		"matched", len(filtered),
	)

	writeJSON(w, EventsResponse{
		SnapshotID: snap.ID.String(),
		Source:     snap.SourceName,
		LoadedAt:   snap.LoadedAt,
		Headers:    snap.Headers,
		Total:      len(snap.Records),
		Count:      len(filtered),
		Events:     filtered,
	})
}

// handleStats reports the current snapshot and any stale-data condition.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{}

	if snap, ok := s.store.Snapshot(); ok {
		resp.Loaded = true
		resp.SnapshotID = snap.ID.String()
		resp.Source = snap.SourceName
		resp.LoadedAt = &snap.LoadedAt
		resp.Records = len(snap.Records)
	}

	if err := s.store.LastError(); err != nil {
		msg := catalog.MapError(err)
		resp.LastError = &ErrorInfo{Message: msg.Message, Code: msg.Code}
	}

	writeJSON(w, resp)
}

// handleExport streams the filtered records as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Snapshot()
	if !ok {
		s.respondError(w, r, catalog.ErrNoSnapshot, http.StatusServiceUnavailable)
		return
	}

	criteria, err := parseCriteria(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	filtered := catalog.Filter(snap.Records, s.fields, criteria)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("events_%s.csv", timestamp)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if err := csv.Write(w, snap.Headers, filtered); err != nil {
		// Headers are already sent, so log instead of changing the status
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
	}
}

// handleReload re-fetches the source document. A fetch failure is reported
// as a recoverable error while the previous snapshot keeps serving.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Reload(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	logging.FromContext(r.Context()).Info("source reloaded",
		"snapshot_id", snap.ID,
		"source", snap.SourceName,
		"records", len(snap.Records),
	)

	writeJSON(w, StatsResponse{
		Loaded:     true,
		SnapshotID: snap.ID.String(),
		Source:     snap.SourceName,
		LoadedAt:   &snap.LoadedAt,
		Records:    len(snap.Records),
	})
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, loaded := s.store.Snapshot()
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"loaded": loaded,
	})
}

// parseCriteria extracts filter criteria from query parameters. The date
// bounds arrive as plain strings from the client; parsing them here keeps
// the core filter working on typed values only.
func parseCriteria(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()

	criteria := catalog.Criteria{Search: q.Get("q")}

	if raw := q.Get("from"); raw != "" {
		t, ok := catalog.ParseWhen(raw)
		if !ok {
			return catalog.Criteria{}, fmt.Errorf("invalid date %q for parameter from", raw)
		}
		criteria.From = &t
	}

	if raw := q.Get("to"); raw != "" {
		t, ok := catalog.ParseWhen(raw)
		if !ok {
			return catalog.Criteria{}, fmt.Errorf("invalid date %q for parameter to", raw)
		}
		criteria.To = &t
	}

	return criteria, nil
}
