package devtools

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/weave/pkg/engine"
)

// PassMessage is sent to stream clients after every pass.
type PassMessage struct {
	Type       string         `json:"type"`
	Seq        uint64         `json:"seq"`
	BuildMs    float64        `json:"buildMs"`
	PatchMs    float64        `json:"patchMs"`
	TotalMs    float64        `json:"totalMs"`
	Ops        map[string]int `json:"ops,omitempty"`
	Components int            `json:"components"`
	Error      string         `json:"error,omitempty"`
}

func newPassMessage(r engine.PassReport) PassMessage {
	msg := PassMessage{
		Type:       "pass",
		Seq:        r.Seq,
		BuildMs:    float64(r.Build.Microseconds()) / 1000,
		PatchMs:    float64(r.Patch.Microseconds()) / 1000,
		TotalMs:    float64(r.Total.Microseconds()) / 1000,
		Ops:        r.Ops.ByName(),
		Components: r.Components,
	}
	if r.Err != nil {
		msg.Error = r.Err.Error()
	}
	return msg
}

// DefaultWriteTimeout bounds a single write to a stream client.
const DefaultWriteTimeout = 5 * time.Second

// PassStream fans pass reports out to WebSocket clients. Observe never
// blocks the engine: reports are queued and dropped when the queue is full.
// A client whose write misses the deadline is disconnected.
type PassStream struct {
	clients      map[*websocket.Conn]bool
	mu           sync.RWMutex
	upgrader     websocket.Upgrader
	writeTimeout time.Duration

	queue chan PassMessage
	done  chan struct{}
	once  sync.Once
}

// StreamOption configures a PassStream.
type StreamOption func(*PassStream)

// WithWriteTimeout sets the per-write deadline for stream clients.
func WithWriteTimeout(d time.Duration) StreamOption {
	return func(s *PassStream) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// NewPassStream creates a stream and starts its broadcast goroutine.
func NewPassStream(opts ...StreamOption) *PassStream {
	s := &PassStream{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
		writeTimeout: DefaultWriteTimeout,
		queue:        make(chan PassMessage, 64),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.pump()
	return s
}

// Observe queues a report for broadcast. It has the engine.Observer
// signature.
func (s *PassStream) Observe(r engine.PassReport) {
	select {
	case s.queue <- newPassMessage(r):
	default:
	}
}

func (s *PassStream) pump() {
	for {
		select {
		case msg := <-s.queue:
			s.broadcast(msg)
		case <-s.done:
			return
		}
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (s *PassStream) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *PassStream) broadcast(msg PassMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		err := client.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *PassStream) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close stops broadcasting and closes all client connections.
func (s *PassStream) Close() {
	s.once.Do(func() { close(s.done) })

	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
