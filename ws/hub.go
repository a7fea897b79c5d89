package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub keeps one room per question so answer activity can be pushed to
// everyone watching that thread.
type Hub struct {
	Rooms map[string]map[*websocket.Conn]*Client
	Mutex sync.RWMutex
}

var H = Hub{
	Rooms: make(map[string]map[*websocket.Conn]*Client),
}

type AnswerEvent struct {
	Type       string `json:"type"`
	QuestionID string `json:"question_id"`
	AnswerID   string `json:"answer_id"`
}

func (h *Hub) Register(questionID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Rooms[questionID]; !ok {
		h.Rooms[questionID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Rooms[questionID][conn] = client

	go h.writePump(client)
}

func (h *Hub) Unregister(questionID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Rooms[questionID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Rooms, questionID)
		}
	}
}

// Broadcast drops the message for clients whose send buffer is full.
func (h *Hub) Broadcast(questionID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Rooms[questionID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) Stats() map[string]interface{} {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	total := 0
	for _, clients := range h.Rooms {
		total += len(clients)
	}
	return map[string]interface{}{
		"rooms":   len(h.Rooms),
		"clients": total,
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// NotifyNewAnswer pushes a new_answer event to the question's room.
func NotifyNewAnswer(questionID, answerID string) {
	event := AnswerEvent{
		Type:       "new_answer",
		QuestionID: questionID,
		AnswerID:   answerID,
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(questionID, data)
}
