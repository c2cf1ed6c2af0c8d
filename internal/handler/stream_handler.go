package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/service"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type Subscriber interface {
	Subscribe(storeID string) (<-chan models.ChangeEvent, func())
	Subscribers(storeID string) int
}

// StreamHandler pushes a store's change events to websocket clients.
type StreamHandler struct {
	stores   service.StoreService
	hub      Subscriber
	upgrader websocket.Upgrader
}

func NewStreamHandler(stores service.StoreService, hub Subscriber) *StreamHandler {
	return &StreamHandler{
		stores: stores,
		hub:    hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/stores/:id/stream", h.Stream)
}

func (h *StreamHandler) Stream(c echo.Context) error {
	storeID := c.Param("id")
	if _, err := h.stores.GetStore(c.Request().Context(), storeID); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		return nil
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(storeID)
	defer cancel()

	log := slog.With("component", "stream", "store_id", storeID, "remote", c.RealIP())
	log.Info("stream opened", "subscribers", h.hub.Subscribers(storeID))
	defer log.Info("stream closed")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Warn("stream write failed", "error", err)
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}
