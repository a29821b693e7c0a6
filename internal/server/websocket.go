package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/litescript/ls-orrery/internal/metrics"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// handleWS upgrades to a WebSocket and pushes each new frame, at most
// pushHz times per second. Frames published between pushes are skipped.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !s.limiter.acquire(ip) {
		s.logger.Warn("websocket limit reached for %s (%d open)", ip, s.limiter.count(ip))
		w.Header().Set("Retry-After", "30")
		writeError(w, http.StatusTooManyRequests, "too many concurrent connections")
		return
	}
	defer s.limiter.release(ip)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Debug("websocket upgrade from %s failed: %v", ip, err)
		return
	}
	defer conn.Close()

	metrics.ClientConnected()
	defer metrics.ClientDisconnected()

	start := time.Now()
	s.logger.Info("websocket connected: %s", ip)
	defer func() {
		s.logger.Info("websocket disconnected: %s after %v", ip, time.Since(start).Round(time.Second))
	}()

	ctx, cancel := context.WithCancel(s.done)
	defer cancel()
	go s.readPump(conn, cancel)

	s.writePump(ctx, conn)
}

// readPump discards client messages and cancels the push when the client
// goes away.
func (s *Server) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(ctx context.Context, conn *websocket.Conn) {
	limiter := rate.NewLimiter(rate.Limit(s.pushHz), 1)
	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	var sent uint64
	for {
		if err := limiter.Wait(ctx); err != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(wsWriteWait))
			return
		}

		select {
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		default:
		}

		frame, seq := s.state.Frame()
		if seq == 0 || seq == sent {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Debug("websocket write: %v", err)
			return
		}
		sent = seq
	}
}
