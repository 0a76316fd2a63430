package telemetry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

const maxRecent = 1000

// Store keeps recent race events and per-type counters in memory.
type Store struct {
	mu          sync.RWMutex
	recent      []types.RaceEvent
	totalIngest int64
	byType      map[string]int64
}

// Summary is a point-in-time copy of the counters.
type Summary struct {
	Total  int64
	ByType map[string]int64
}

func NewStore() *Store {
	return &Store{
		recent: make([]types.RaceEvent, 0, 512),
		byType: make(map[string]int64),
	}
}

// Ingest records one event.
func (s *Store) Ingest(ev types.RaceEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalIngest++
	s.byType[ev.Type]++
	s.recent = append(s.recent, ev)
	if len(s.recent) > maxRecent {
		s.recent = s.recent[len(s.recent)-maxRecent:]
	}
}

// Recent returns up to limit of the newest events, oldest first.
func (s *Store) Recent(limit int) []types.RaceEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]types.RaceEvent, limit)
	copy(out, s.recent[len(s.recent)-limit:])
	return out
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byType := make(map[string]int64, len(s.byType))
	for k, v := range s.byType {
		byType[k] = v
	}
	return Summary{Total: s.totalIngest, ByType: byType}
}

// Register mounts /v1/events and /metrics on mux.
func (s *Store) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/metrics", s.handleMetrics)
}

func (s *Store) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var ev types.RaceEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request"})
			return
		}
		if ev.Type == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "event_type_required"})
			return
		}
		if ev.OccurredMS == 0 {
			ev.OccurredMS = time.Now().UTC().UnixMilli()
		}
		s.Ingest(ev)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	case http.MethodGet:
		limit := 100
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		recent := s.Recent(limit)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":  len(recent),
			"events": recent,
		})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	}
}

func (s *Store) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	summary := s.Summary()
	_, _ = fmt.Fprintln(w, "# HELP racer_events_total Total race events recorded")
	_, _ = fmt.Fprintln(w, "# TYPE racer_events_total counter")
	_, _ = fmt.Fprintf(w, "racer_events_total %d\n", summary.Total)

	kinds := make([]string, 0, len(summary.ByType))
	for typ := range summary.ByType {
		kinds = append(kinds, typ)
	}
	sort.Strings(kinds)
	for _, typ := range kinds {
		_, _ = fmt.Fprintf(w, "racer_events_by_type{event_type=\"%s\"} %d\n", typ, summary.ByType[typ])
	}
}

// WithCORS allows browser clients served from another origin.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
