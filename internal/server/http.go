package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ferrylab/tagmind/internal/events"
	"github.com/ferrylab/tagmind/internal/format"
	"github.com/ferrylab/tagmind/internal/model"
	"github.com/ferrylab/tagmind/internal/status"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.HandleFunc("GET /v1/reminders", s.handleListReminders)
	mux.HandleFunc("GET /v1/reminders/{name}", s.handleGetReminder)
	mux.HandleFunc("POST /v1/scan", s.handleScan)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	return AuthMiddleware(authToken, mux)
}

// reminderView is the API shape of one reminder with its live status.
type reminderView struct {
	Name     string     `json:"name"`
	Key      string     `json:"key"`
	Tag      string     `json:"tag"`
	Interval int        `json:"interval"`
	Unit     model.Unit `json:"unit"`

	LastScan         *time.Time `json:"last_scan,omitempty"`
	LastScanRelative string     `json:"last_scan_relative"`
	LastScanAbsolute string     `json:"last_scan_absolute,omitempty"`
	Actor            string     `json:"last_scanned_by,omitempty"`
	Count            int64      `json:"scan_count,omitempty"`

	Status status.Snapshot `json:"status"`
}

func (s *Server) reminderView(r *http.Request, rem *model.Reminder) (reminderView, error) {
	rec, err := s.store.Get(r.Context(), rem.Key())
	if err != nil {
		return reminderView{}, err
	}
	now := s.now()
	snap, err := status.Evaluate(now, rec.LastScan, rem.Interval, rem.Unit)
	if err != nil {
		return reminderView{}, err
	}
	return reminderView{
		Name:             rem.Name,
		Key:              rem.Key(),
		Tag:              rem.Tag,
		Interval:         rem.Interval,
		Unit:             rem.Unit,
		LastScan:         rec.LastScan,
		LastScanRelative: format.RelativeLabel(now, rec.LastScan),
		LastScanAbsolute: format.AbsoluteLabel(rec.LastScan),
		Actor:            rec.Actor,
		Count:            rec.Count,
		Status:           snap,
	}, nil
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListReminders handles GET /v1/reminders.
func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	views := make([]reminderView, 0, s.reg.Len())
	for _, rem := range s.reg.Reminders() {
		v, err := s.reminderView(r, rem)
		if err != nil {
			s.logger.Error("failed to build reminder view", "name", rem.Name, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to load reminder status")
			return
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": views})
}

// handleGetReminder handles GET /v1/reminders/{name}. The name is matched
// after normalization, so "Coffee Machine" and "coffee_machine" are the same
// reminder.
func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	key := model.NormalizeName(r.PathValue("name"))
	rem, ok := s.reg.ByKey(key)
	if !ok {
		writeError(w, http.StatusNotFound, "reminder not found: "+key)
		return
	}
	v, err := s.reminderView(r, rem)
	if err != nil {
		s.logger.Error("failed to build reminder view", "name", rem.Name, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load reminder status")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// scanRequest is the body of POST /v1/scan.
type scanRequest struct {
	TagID     string `json:"tag_id"`
	ScannedBy string `json:"scanned_by,omitempty"`
}

// handleScan handles POST /v1/scan: the HTTP ingestion path for scans, used
// by readers that do not speak NATS and by the CLI.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TagID) == "" {
		writeError(w, http.StatusBadRequest, "tag_id is required")
		return
	}

	ev := events.ScanEvent{TagID: req.TagID, ScannedBy: req.ScannedBy, At: s.now()}
	applied, err := s.ApplyScan(r.Context(), ev)
	if err != nil {
		s.logger.Error("failed to apply scan", "tag_id", req.TagID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to apply scan")
		return
	}

	// An unmatched tag is a no-op, not an error.
	writeJSON(w, http.StatusOK, map[string]any{
		"tag_id":    req.TagID,
		"reminders": applied,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// AuthMiddleware enforces bearer-token auth on all routes except the health
// check. An empty token disables auth entirely.
func AuthMiddleware(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/v1/health" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "invalid authorization scheme")
			return
		}

		provided := strings.TrimPrefix(auth, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
