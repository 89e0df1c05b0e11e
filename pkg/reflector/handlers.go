package reflector

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// errorPayload is the JSON error body for 4xx responses.
type errorPayload struct {
	Error string `json:"error"`
}

// routes builds the inspector API mux. All /api routes answer CORS
// preflight with 204 and carry Access-Control-Allow-Origin: * so the
// inspector UI can be served from a different origin during development.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/perf", s.withCORS(s.handlePerf))
	mux.HandleFunc("/api/scene", s.withCORS(s.handleScene))
	mux.HandleFunc("/api/entity/", s.withCORS(s.handleEntity))
	mux.HandleFunc("/api/profile", s.withCORS(s.handleProfile))
	mux.HandleFunc("/api/system", s.withCORS(s.handleSystem))
	mux.HandleFunc("/api/live", s.handleLive)
	return mux
}

func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet {
			s.writeJSON(w, http.StatusMethodNotAllowed, errorPayload{Error: "Method not allowed"})
			return
		}

		next(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) handlePerf(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cfg.Perf.Perf())
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, buildSceneTree(s.cfg.Scene.Scene()))
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/entity/")
	if idStr == "" {
		s.writeJSON(w, http.StatusNotFound, errorPayload{Error: "Missing entity ID"})
		return
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, errorPayload{Error: "Invalid entity ID"})
		return
	}

	entity, ok := s.cfg.Entities.Entity(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorPayload{Error: "Entity not found"})
		return
	}

	s.writeJSON(w, http.StatusOK, encodeEntity(entity))
}

func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.profiler.Snapshot())
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	metrics, err := collectSystemMetrics(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to collect system metrics")
		s.writeJSON(w, http.StatusInternalServerError, errorPayload{Error: "System metrics unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, metrics)
}
