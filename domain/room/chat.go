package room

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultChatLogSize = 200

// ChatMessage is an immutable chat line scoped to one room.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	RoomName  string    `json:"room_name"`
	SenderUID string    `json:"sender_uid"`
	Alias     string    `json:"alias"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatLog keeps the last N messages of a room in arrival order.
type ChatLog struct {
	mu       sync.RWMutex
	limit    int
	messages []ChatMessage
}

func NewChatLog(limit int) *ChatLog {
	if limit <= 0 {
		limit = DefaultChatLogSize
	}
	return &ChatLog{limit: limit}
}

func (c *ChatLog) Append(msg ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	c.messages = append(c.messages, msg)
	if overflow := len(c.messages) - c.limit; overflow > 0 {
		c.messages = append([]ChatMessage(nil), c.messages[overflow:]...)
	}
}

func (c *ChatLog) Messages() []ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ChatMessage(nil), c.messages...)
}

func (c *ChatLog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

func (c *ChatLog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}
