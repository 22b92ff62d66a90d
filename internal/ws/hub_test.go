package ws

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(log.New(io.Discard, "", 0))
	stop := make(chan struct{})
	go h.Run(stop)
	t.Cleanup(func() { close(stop) })
	return h
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func TestNotifier_BroadcastsAnalysisCompleted(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)

	n := NewNotifier(h)
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	n.AnalysisCompleted(AnalysisCompletedEvent{ReportID: "r1", Role: "Data Scientist", GapCount: 3, HighPriority: 2})

	select {
	case msg := <-c.send:
		var evt AnalysisCompletedEvent
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, EventAnalysisCompleted, evt.Type)
		assert.Equal(t, "r1", evt.ReportID)
		assert.Equal(t, 2, evt.HighPriority)
		assert.Equal(t, "2026-01-02T03:04:05Z", evt.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)

	h.Unregister(c)
	waitForClients(t, h, 0)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)

	for i := 0; i <= sendBuffer; i++ {
		h.Broadcast([]byte("x"))
	}
	waitForClients(t, h, 0)
}

func TestNotifier_NilSafe(t *testing.T) {
	var n *Notifier
	n.AnalysisCompleted(AnalysisCompletedEvent{})
	NewNotifier(nil).AnalysisCompleted(AnalysisCompletedEvent{})
}

func TestHandler_RequiresUpgrade(t *testing.T) {
	h := startHub(t)
	app := fiber.New()
	app.Get("/ws/analyses", NewHandler(h, nil).HandleAnalysesWS)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/analyses", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestHandler_OriginCheck(t *testing.T) {
	h := NewHandler(nil, nil, "https://placement.example.com")

	ok := httptest.NewRequest(http.MethodGet, "/ws/analyses", nil)
	ok.Header.Set("Origin", "https://Placement.example.com")
	assert.True(t, h.upgrader.CheckOrigin(ok))

	bad := httptest.NewRequest(http.MethodGet, "/ws/analyses", nil)
	bad.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, h.upgrader.CheckOrigin(bad))

	assert.True(t, NewHandler(nil, nil).upgrader.CheckOrigin(bad))
}
