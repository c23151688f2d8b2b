package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
	"github.com/secmon-lab/wayfinder/pkg/utils/errutil"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadLimit    = maxTurnBody
)

// Error codes sent to websocket clients
const (
	wsErrInvalidMessage   = "invalid_message"
	wsErrGenerationFailed = "generation_failed"
	wsErrInternal         = "internal_error"
)

type wsErrorMessage struct {
	Error string `json:"error"`
}

func wsErrorCode(err error) string {
	if errors.Is(err, usecase.ErrGenerationFailed) {
		return wsErrGenerationFailed
	}
	return wsErrInternal
}

// websocketHandler runs one turn per received JSON message. Messages of a
// connection are handled in order; a failed turn is reported and the
// connection stays open.
func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	logger := logging.From(ctx).With(usecase.UserIDKey, userID)
	ctx = logging.With(ctx, logger)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close() //nolint:errcheck // connection is done either way

	conn.SetReadLimit(wsReadLimit)

	logger.Info("websocket connected")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket closed unexpectedly", "error", err)
			} else {
				logger.Info("websocket disconnected")
			}
			return
		}

		var req turnRequest
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Warn("invalid websocket message", "error", err)
			if err := s.writeWS(conn, wsErrorMessage{Error: wsErrInvalidMessage}); err != nil {
				return
			}
			continue
		}

		in := req.input(userID)
		result, err := s.dialog.HandleTurn(ctx, in)
		var msg any
		if err != nil {
			errutil.Handle(ctx, err, "websocket turn failed")
			msg = wsErrorMessage{Error: wsErrorCode(err)}
		} else {
			msg = toTurnResponse(in, result)
		}

		if err := s.writeWS(conn, msg); err != nil {
			logger.Warn("failed to write websocket message", "error", err)
			return
		}
	}
}

func (s *Server) writeWS(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return goerr.Wrap(err, "failed to set write deadline")
	}
	if err := conn.WriteJSON(v); err != nil {
		return goerr.Wrap(err, "failed to write websocket message")
	}
	return nil
}
