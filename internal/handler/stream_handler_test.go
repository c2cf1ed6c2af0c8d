package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/realtime"
	"github.com/chrisng16/waitlist/internal/service"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knownStores(ids ...string) *mockStoreService {
	return &mockStoreService{
		getFn: func(ctx context.Context, id string) (*models.Store, error) {
			for _, known := range ids {
				if id == known {
					return &models.Store{ID: id}, nil
				}
			}
			return nil, service.ErrStoreNotFound
		},
	}
}

func TestStream_DeliversStoreChanges(t *testing.T) {
	hub := realtime.NewHub(nil)
	e := echo.New()
	NewStreamHandler(knownStores("store-1"), hub).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stores/store-1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("store-1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(models.ChangeEvent{Type: models.ChangeInsert, StoreID: "store-1", EntryID: "e1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev models.ChangeEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, models.ChangeInsert, ev.Type)
	assert.Equal(t, "e1", ev.EntryID)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers("store-1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestStream_UnknownStore(t *testing.T) {
	e := echo.New()
	NewStreamHandler(knownStores(), realtime.NewHub(nil)).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stores/nope/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
