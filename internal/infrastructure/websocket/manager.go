package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a WebSocket connection subscribed to one match's chat
type Client struct {
	UserID  string
	MatchID string
	Conn    *websocket.Conn
	Send    chan []byte
}

type roomMessage struct {
	matchID string
	payload []byte
}

// Manager manages all active WebSocket connections, grouped by match room
type Manager struct {
	rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan roomMessage
	mutex      sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				room := m.rooms[client.MatchID]
				if room == nil {
					room = make(map[*Client]bool)
					m.rooms[client.MatchID] = room
				}
				room[client] = true
				m.mutex.Unlock()
				log.Printf("Client registered: %s (match %s)", client.UserID, client.MatchID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if room, ok := m.rooms[client.MatchID]; ok {
					if _, ok := room[client]; ok {
						delete(room, client)
						close(client.Send)
					}
					if len(room) == 0 {
						delete(m.rooms, client.MatchID)
					}
				}
				m.mutex.Unlock()
				log.Printf("Client unregistered: %s (match %s)", client.UserID, client.MatchID)

			case message := <-m.broadcast:
				m.mutex.Lock()
				for client := range m.rooms[message.matchID] {
					select {
					case client.Send <- message.payload:
					default:
						close(client.Send)
						delete(m.rooms[message.matchID], client)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// BroadcastToMatch sends a message to every client subscribed to a match room
func (m *Manager) BroadcastToMatch(matchID string, message []byte) {
	m.broadcast <- roomMessage{matchID: matchID, payload: message}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("error: %v", err)
			return
		}
	}
}
