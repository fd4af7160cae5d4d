package httpserver

import (
	"context"
	"net/http"
	"time"

	"btcwidget-service/internal/domain"
	"btcwidget-service/internal/infrastructure/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const streamWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamTimeline pushes the current timeline, then every newly stored one.
func (s *Server) StreamTimeline(w http.ResponseWriter, r *http.Request) {
	log := logx.WithFields(r.Context())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("stream.upgrade_failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Read before subscribing so a refresh triggered here is not delivered twice.
	current, err := s.svc.Current(ctx)
	if err != nil {
		log.Warn("stream.current_failed", zap.Error(err))
		return
	}
	updates, err := s.svc.Subscribe(ctx)
	if err != nil {
		log.Warn("stream.subscribe_failed", zap.Error(err))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"))
		return
	}

	// Reads only detect the peer going away; clients send nothing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.writeTimeline(conn, current); err != nil {
		return
	}
	log.Info("stream.opened")
	for {
		select {
		case <-ctx.Done():
			log.Info("stream.closed")
			return
		case tl, ok := <-updates:
			if !ok {
				return
			}
			if err := s.writeTimeline(conn, tl); err != nil {
				log.Info("stream.write_failed", zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) writeTimeline(conn *websocket.Conn, tl domain.Timeline) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(s.timelineResponse(tl))
}
