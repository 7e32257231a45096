// internal/httpserver/ws.go
//
// GET /game/{id}/ws streams the board snapshot so the page timer stays in
// step with the server ticker. One writer goroutine per connection; a reader
// goroutine only watches for the client going away.

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
)

const writeWait = 5 * time.Second

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		hlog.FromRequest(r).Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	t := time.NewTicker(s.opts.PushInterval)
	defer t.Stop()
	for {
		sess.Touch()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(sess.Snapshot()); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				hlog.FromRequest(r).Debug().Err(err).Msg("websocket write")
			}
			return
		}
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-t.C:
		}
	}
}
