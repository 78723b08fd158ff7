package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"

	oilspill "github.com/spatialmodel/oilspillsim"
)

func TestHubBroadcastWithNoClients(t *testing.T) {
	hub := NewHub(nil)
	// Broadcasting with no connected clients must not panic or block.
	hub.BroadcastUpdate(nil, oilspill.Statistics{}, 0)
	hub.BroadcastComplete()
}

func TestHubHandlerAcceptsConnections(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.Handler))
	defer srv.Close()

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	hub.BroadcastUpdate([]oilspill.Particle{{}}, oilspill.Statistics{RemainingPct: 80}, 600)

	if _, _, err := conn.ReadMessage(); err != nil {
		t.Errorf("expected an update message, got error: %v", err)
	}
}
