package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// realtimeRequest selects the feature event kinds to stream ("building",
// "housing-unit"). Type "h" is a heartbeat.
type realtimeRequest struct {
	Type  string   `json:"type"`
	Kinds []string `json:"kinds"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket", zap.Error(err))
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan domain.FeatureEvent)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				if wsErr, ok := err.(*websocket.CloseError); ok {
					if wsErr.Code != websocket.CloseNormalClosure && wsErr.Code != websocket.CloseGoingAway {
						h.logger.Debug("websocket closed", zap.Error(wsErr))
					}
				} else {
					h.logger.Error("error reading message", zap.Error(err))
				}
				return
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Kinds:
					h.logger.Debug("socket subscribe", zap.Strings("kinds", req.Kinds))
				case <-ctx.Done():
					return
				}
			case "h":
			default:
				h.logger.Info("unknown request type", zap.String("type", req.Type))
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				h.logger.Error("error writing message", zap.Error(err))
				return nil
			}
		}
	}
}
