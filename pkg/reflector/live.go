package reflector

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/reflector-dev/reflector-go/internal/errors"
)

const liveWriteWait = 10 * time.Second

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The inspector UI runs on a different origin during development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// liveUpdate is one websocket push: the host's perf metrics plus the
// current profile snapshot, so the UI does not have to poll two endpoints.
type liveUpdate struct {
	Type    string      `json:"type"`
	Perf    PerfMetrics `json:"perf"`
	Profile any         `json:"profile"`
}

// handleLive upgrades to a websocket and pushes profile updates at the
// configured stream interval until the client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	sessionID := uuid.NewString()
	logger := s.logger.With().Str("session_id", sessionID).Logger()
	logger.Info().Str("remote", r.RemoteAddr).Msg("Live session opened")

	// Reader goroutine: we never expect client messages, but reading is
	// what surfaces close frames and connection errors.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.StreamInterval)
	defer ticker.Stop()
	defer logger.Info().Msg("Live session closed")
	defer errors.DeferClose(logger, conn, "Failed to close live session")

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			update := liveUpdate{
				Type:    "update",
				Perf:    s.cfg.Perf.Perf(),
				Profile: s.profiler.Snapshot(),
			}
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(update); err != nil {
				logger.Debug().Err(err).Msg("Live push failed")
				return
			}
		}
	}
}
