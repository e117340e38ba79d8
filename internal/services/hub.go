package services

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now (should be restricted in production)
	},
}

// WSClient represents one connected draft-room client.
type WSClient struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
	Hub       *Hub
}

// Hub maintains active WebSocket connections and pushes draft events
// (picks, valuation refreshes) to clients watching a session.
type Hub struct {
	clients        map[*WSClient]bool
	sessionClients map[string][]*WSClient
	broadcast      chan []byte
	register       chan *WSClient
	unregister     chan *WSClient
	logger         *logrus.Logger
	mutex          sync.RWMutex
}

// WSEvent is the envelope for every pushed message.
type WSEvent struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewHub creates a new WebSocket hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:        make(map[*WSClient]bool),
		sessionClients: make(map[string][]*WSClient),
		broadcast:      make(chan []byte, 256),
		register:       make(chan *WSClient),
		unregister:     make(chan *WSClient),
		logger:         logger,
	}
}

// Run starts the hub and handles client registration/unregistration
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.sessionClients[client.SessionID] = append(h.sessionClients[client.SessionID], client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"session_id":    client.SessionID,
				"total_clients": len(h.clients),
			}).Info("WebSocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			h.removeClientLocked(client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"session_id":    client.SessionID,
				"total_clients": h.GetConnectionCount(),
			}).Info("WebSocket client disconnected")

		case message := <-h.broadcast:
			// Removal mutates the maps and closes Send, so the
			// fan-out holds the write lock.
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.removeClientLocked(client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// removeClientLocked drops a client from both maps and closes its Send
// channel. Safe to call for an already-removed client; the caller must hold
// the write lock.
func (h *Hub) removeClientLocked(client *WSClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)

	sessionClients := h.sessionClients[client.SessionID]
	for i, c := range sessionClients {
		if c == client {
			h.sessionClients[client.SessionID] = append(sessionClients[:i], sessionClients[i+1:]...)
			break
		}
	}
	if len(h.sessionClients[client.SessionID]) == 0 {
		delete(h.sessionClients, client.SessionID)
	}
}

func (h *Hub) dropClient(client *WSClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeClientLocked(client)
}

// HandleWebSocket upgrades the connection and attaches it to a session.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}

	client := &WSClient{
		SessionID: sessionID,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		Hub:       h,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastEvent wraps the payload in an event envelope and sends it to all
// connected clients.
func (h *Hub) BroadcastEvent(eventType string, payload interface{}) {
	data, err := json.Marshal(WSEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal WebSocket event")
		return
	}
	h.broadcast <- data
}

// BroadcastToSession sends an event only to clients watching one session.
func (h *Hub) BroadcastToSession(sessionID, eventType string, payload interface{}) {
	data, err := json.Marshal(WSEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal WebSocket event")
		return
	}

	// Sends happen under the read lock so no concurrent removal can close
	// a channel mid-send; stalled clients are dropped afterwards under the
	// write lock.
	var stalled []*WSClient
	h.mutex.RLock()
	for _, client := range h.sessionClients[sessionID] {
		select {
		case client.Send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range stalled {
		h.dropClient(client)
	}
}

// GetConnectionCount returns the total number of active connections
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *WSClient) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Error("WebSocket error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *WSClient) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.logger.WithError(err).Error("Failed to write WebSocket message")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
