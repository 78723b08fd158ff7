/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package server streams SimulationDriver tick events to connected
// websocket clients. It is one concrete implementation of the
// abstract on_update/on_complete observer the engine exposes; it does
// not serve the map UI or the grid API.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	oilspill "github.com/spatialmodel/oilspillsim"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// tickEvent is the JSON payload broadcast after every driver tick.
type tickEvent struct {
	Type      string              `json:"type"`
	Time      float64             `json:"time_seconds,omitempty"`
	Stats     oilspill.Statistics `json:"stats,omitempty"`
	Particles []oilspill.Particle `json:"particles,omitempty"`
}

// Hub tracks connected websocket clients and broadcasts tick events
// to all of them. The zero value is not usable; use NewHub.
type Hub struct {
	log *logrus.Entry

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewHub returns an empty Hub.
func NewHub(log *logrus.Entry) *Hub {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Hub{log: log, clients: make(map[*websocket.Conn]chan []byte)}
}

// Handler upgrades the connection to a websocket and registers it with
// the hub until the client disconnects.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("server: websocket upgrade failed")
		return
	}
	send := make(chan []byte, 16)

	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()
	h.log.WithField("remote", r.RemoteAddr).Info("server: client connected")

	go h.writeLoop(conn, send)
	go h.readLoop(conn)
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan []byte) {
	for msg := range send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.WithError(err).Debug("server: write failed, dropping client")
			h.remove(conn)
			return
		}
	}
}

// readLoop discards client messages but notices disconnects.
func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[conn]; ok {
		close(send)
		delete(h.clients, conn)
		conn.Close()
		h.log.Info("server: client disconnected")
	}
}

// BroadcastUpdate implements oilspill.UpdateFunc: it fans out an
// on_update event to every connected client.
func (h *Hub) BroadcastUpdate(particles []oilspill.Particle, stats oilspill.Statistics, timeSeconds float64) {
	h.broadcast(tickEvent{Type: "update", Time: timeSeconds, Stats: stats, Particles: particles})
}

// BroadcastComplete implements oilspill.CompleteFunc.
func (h *Hub) BroadcastComplete() {
	h.broadcast(tickEvent{Type: "complete"})
}

func (h *Hub) broadcast(ev tickEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("server: failed to encode tick event")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- msg:
		default:
			h.log.Warn("server: client send buffer full, dropping event")
			_ = conn
		}
	}
}
