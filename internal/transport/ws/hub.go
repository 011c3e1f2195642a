package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgRunStarted        MessageType = "run_started"
	MsgRespondentSampled MessageType = "respondent_sampled"
	MsgRunCompleted      MessageType = "run_completed"
	MsgRunFailed         MessageType = "run_failed"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for study progress watchers.
// Several watchers may follow one study at once; every run event goes
// to all of them.
type Hub struct {
	// studyID -> watchers
	watchers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one watcher's WebSocket connection
type Connection struct {
	StudyID string
	HostID  string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message to fan out to a study's watchers
type BroadcastMessage struct {
	StudyID string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.StudyID] == nil {
				h.watchers[conn.StudyID] = make(map[*Connection]bool)
			}
			h.watchers[conn.StudyID][conn] = true
			log.Printf("Host %s watching study %s", conn.HostID, conn.StudyID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.StudyID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Host %s stopped watching study %s", conn.HostID, conn.StudyID)
				}
				if len(conns) == 0 {
					delete(h.watchers, conn.StudyID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.watchers[msg.StudyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToStudy sends a message to every watcher of a study
// (implements service.Broadcaster)
func (h *Hub) BroadcastToStudy(studyID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		StudyID: studyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
