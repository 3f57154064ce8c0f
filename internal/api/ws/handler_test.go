package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/events"
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
)

type fakeSource struct {
	events *events.Broadcaster
}

func (fakeSource) ID() string                     { return "01TESTDESKTOP" }
func (s fakeSource) Events() *events.Broadcaster { return s.events }

type message struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

func setup(t *testing.T, origins []string) (*events.Broadcaster, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := events.NewBroadcaster(events.DefaultBuffer)
	router := gin.New()
	router.GET("/stream", NewHandler(fakeSource{events: b}, origins, monitoring.NewMetrics(), nil).HandleConnection)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return b, "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStreamDeliversEvents(t *testing.T) {
	b, url := setup(t, nil)
	conn := dial(t, url)

	hello := read(t, conn)
	assert.Equal(t, events.TypeSystem, hello.Type)
	assert.Equal(t, "01TESTDESKTOP", hello.Data["desktop_id"])

	require.Eventually(t, func() bool { return b.Count() == 1 }, time.Second, 5*time.Millisecond)

	b.Emit(events.TypeWindowCreated, map[string]string{"id": "window-clock-1"})
	ev := read(t, conn)
	assert.Equal(t, events.TypeWindowCreated, ev.Type)
	assert.Equal(t, "window-clock-1", ev.Data["id"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	assert.Equal(t, events.TypePong, read(t, conn).Type)
}

func TestStreamClosesOnShutdown(t *testing.T) {
	b, url := setup(t, nil)
	conn := dial(t, url)
	read(t, conn)

	require.Eventually(t, func() bool { return b.Count() == 1 }, time.Second, 5*time.Millisecond)
	b.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestUnsubscribeOnDisconnect(t *testing.T) {
	b, url := setup(t, nil)
	conn := dial(t, url)
	read(t, conn)

	require.Eventually(t, func() bool { return b.Count() == 1 }, time.Second, 5*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return b.Count() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestOriginCheck(t *testing.T) {
	_, url := setup(t, []string{"http://localhost:5173"})

	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)

	header = map[string][]string{"Origin": {"http://localhost:5173"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	conn.Close()
}
