package notify

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is one message pushed to connected clients. Kind names what
// happened (job_updated, requisition_updated, return_updated) and Payload
// carries the fresh state.
type Event struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Hub fans job and inventory events out to websocket clients. Slow or dead
// clients get dropped rather than blocking the broadcaster.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
	}
}

// Run drains the broadcast channel. Call once from a goroutine at startup.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(event); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues an event for all clients. Never blocks: when the buffer is
// full the event is dropped, clients re-sync on their next read anyway.
func (h *Hub) Publish(kind string, payload interface{}) {
	select {
	case h.broadcast <- Event{Kind: kind, Payload: payload}:
	default:
		log.Printf("[Notify] broadcast buffer full, dropped %s event", kind)
	}
}

// HandleWebSocket upgrades the connection and parks it until the client
// goes away. Clients only listen; inbound messages are discarded.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}
