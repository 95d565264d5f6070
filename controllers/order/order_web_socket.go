package orderControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/trendy-shop/middleware"
	"github.com/junaidrashid-git/trendy-shop/models"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderUpdate is pushed to a user's sockets whenever one of their orders
// changes. Type is the event topic, e.g. "order.paid".
type OrderUpdate struct {
	Type  string        `json:"type"`
	Order *models.Order `json:"order"`
}

// Hub tracks open order sockets per user. Broadcasts go only to the owner of
// the order.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
}

// client is one open socket. Only writeLoop writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, sendBuffer)}
}

// close stops writeLoop. Callers drop the client from the hub first so no
// Broadcast sends on the closed channel.
func (cl *client) close() {
	cl.once.Do(func() { close(cl.send) })
}

func (cl *client) writeLoop() {
	defer cl.conn.Close()
	for data := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = cl.conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// Serve upgrades the request and holds the socket open until the client goes
// away. Clients only listen; anything they send is discarded.
func (h *Hub) Serve(c *gin.Context) {
	userID := middleware.UserID(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := newClient(conn)
	h.add(userID, cl)
	defer h.remove(userID, cl)
	go cl.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Connections returns how many sockets userID has open.
func (h *Hub) Connections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// Broadcast queues update on every socket userID has open. It never waits on
// the network; a socket whose queue is full is dropped.
func (h *Hub) Broadcast(userID string, update OrderUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("❌ encode order update: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients[userID] {
		select {
		case cl.send <- data:
		default:
			log.Printf("⚠️ dropping slow order socket for user %s", userID)
			h.dropLocked(userID, cl)
			cl.close()
		}
	}
}

func (h *Hub) add(userID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][cl] = struct{}{}
}

func (h *Hub) remove(userID string, cl *client) {
	h.mu.Lock()
	h.dropLocked(userID, cl)
	h.mu.Unlock()
	cl.close()
}

func (h *Hub) dropLocked(userID string, cl *client) {
	delete(h.clients[userID], cl)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}
