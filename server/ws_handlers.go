package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

const (
	wsSendQueueSize = 64
	wsWriteTimeout  = 5 * time.Second
)

// wsNotificationsHandler upgrades the connection and streams the
// caller's notifications as they are created. The stream is push-only;
// client frames are drained and ignored.
func (s *Server) wsNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set Authorization on websocket upgrades, so the
	// access token may arrive as a query parameter instead.
	raw, ok := bearerToken(r)
	if !ok {
		raw = r.URL.Query().Get("token")
	}
	if raw == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "access token required")
		return
	}

	claims, err := s.codec.Verify(raw)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired access token")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.wsOriginPatterns(),
	})
	if err != nil {
		s.log.Info().Err(err).Msg("websocket accept failed")
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	client, unsubscribe := s.hub.Subscribe(claims.Subject, wsSendQueueSize)
	defer unsubscribe()

	// CloseRead keeps control frames (ping, close) processed while
	// rejecting any data the client sends.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			return
		case payload := <-client.Send:
			writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				s.log.Info().Err(err).Str("owner_id", claims.Subject).Msg("websocket write failed")
				return
			}
		}
	}
}

// wsOriginPatterns maps the CORS allowlist onto the host patterns
// websocket.Accept matches against. Accept compares patterns to the
// Origin host including its port, so the port is kept.
func (s *Server) wsOriginPatterns() []string {
	var patterns []string
	for origin := range s.config.GetAllowedOrigins() {
		if origin == "*" {
			return []string{"*"}
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
