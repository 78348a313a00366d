// Package websocket pushes live flight status reports to browser clients.
// Clients subscribe to a single flight number and only ever receive data.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Message struct {
	Event        string      `json:"event"`
	FlightNumber string      `json:"flightNumber"`
	Data         interface{} `json:"data,omitempty"`
	Timestamp    int64       `json:"timestamp"`

	// target restricts delivery to a single client when set.
	target *Client
}

type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	flightNumber string
}

// Hub groups clients by the flight number they watch.
type Hub struct {
	mu         sync.RWMutex
	flights    map[string]map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		flights:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastMessage(message)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// ServeWS upgrades the request and subscribes the connection to flightNumber.
// It returns nil when the upgrade fails or the hub is stopped.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, flightNumber string) *Client {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return nil
	}

	client := &Client{
		hub:          h,
		conn:         conn,
		send:         make(chan []byte, 16),
		flightNumber: flightNumber,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()
	return client
}

// Broadcast queues an event for every client watching flightNumber.
func (h *Hub) Broadcast(flightNumber, event string, data interface{}) {
	h.enqueue(&Message{
		Event:        event,
		FlightNumber: flightNumber,
		Data:         data,
		Timestamp:    time.Now().UnixMilli(),
	})
}

// SendTo queues an event for one client only. It is dropped if the client
// has already gone away.
func (h *Hub) SendTo(client *Client, event string, data interface{}) {
	h.enqueue(&Message{
		Event:        event,
		FlightNumber: client.flightNumber,
		Data:         data,
		Timestamp:    time.Now().UnixMilli(),
		target:       client,
	})
}

func (h *Hub) enqueue(msg *Message) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// WatchedFlights returns the flight numbers with at least one subscriber.
func (h *Hub) WatchedFlights() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	numbers := make([]string, 0, len(h.flights))
	for number := range h.flights {
		numbers = append(numbers, number)
	}
	return numbers
}

func (h *Hub) ClientCount(flightNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.flights[flightNumber])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.flights[client.flightNumber] == nil {
		h.flights[client.flightNumber] = make(map[*Client]bool)
	}
	h.flights[client.flightNumber][client] = true
	log.Printf("websocket: client watching %s (total: %d)", client.flightNumber, len(h.flights[client.flightNumber]))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.flights[client.flightNumber]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.flights, client.flightNumber)
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("websocket: failed to marshal message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.flights[message.FlightNumber] {
		if message.target != nil && client != message.target {
			continue
		}
		select {
		case client.send <- data:
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.flights {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
