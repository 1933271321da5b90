package websockets

import (
	"encoding/json"
	"sync"
	"time"

	"shiftwatch/internal/events"
	"shiftwatch/internal/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	sendBuffer = 32
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
}

// Manager pushes every bus event to the connected dashboard clients.
type Manager struct {
	mu          sync.RWMutex
	clients     map[string]*Client
	unsubscribe []func()
	log         logger.Logger
}

func New(eventBus *events.EventBus) (*Manager, error) {
	log := logger.New("websockets").Function("New")
	if eventBus == nil {
		return nil, log.ErrMsg("event bus is nil")
	}

	m := &Manager{
		clients: make(map[string]*Client),
		log:     logger.New("websockets"),
	}
	for _, channel := range events.Channels {
		m.unsubscribe = append(m.unsubscribe, eventBus.Subscribe(channel, m.broadcast))
	}
	return m, nil
}

func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	m.register(client)
	log.Info("client connected", "clientID", client.ID, "clients", m.ClientCount())

	done := make(chan struct{})
	go m.writePump(client, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Debug("client read ended", "clientID", client.ID, "error", err)
			break
		}
	}

	close(done)
	m.unregister(client)
	log.Info("client disconnected", "clientID", client.ID, "clients", m.ClientCount())
}

func (m *Manager) writePump(client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case message, ok := <-client.send:
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) register(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
}

func (m *Manager) unregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.send)
	}
}

// broadcast drops clients whose send buffer is full.
func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to marshal event", err, "type", event.Type)
		return
	}

	var slow []*Client
	m.mu.RLock()
	for _, client := range m.clients {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range slow {
		log.Warn("dropping slow client", "clientID", client.ID)
		m.unregister(client)
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, client := range m.clients {
		close(client.send)
		delete(m.clients, id)
	}
}
