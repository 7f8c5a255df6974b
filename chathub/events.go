package chathub

import (
	"encoding/json"
	"time"

	"github.com/Anjali11s/prolance/models"
	"github.com/google/uuid"
)

// Client-initiated events.
const (
	EventJoinConversation  = "join-conversation"
	EventLeaveConversation = "leave-conversation"
	EventSendMessage       = "send-message"
	EventTyping            = "typing"
	EventMarkRead          = "mark-read"
)

// Server-initiated events.
const (
	EventNewMessage          = "new-message"
	EventConversationUpdated = "conversation-updated"
	EventUserTyping          = "user-typing"
	EventMessagesRead        = "messages-read"
	EventError               = "error"
)

// ClientFrame is the envelope every inbound websocket message uses.
type ClientFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is the envelope every outbound websocket message uses.
type ServerEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type JoinConversationPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type SendMessagePayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
}

type TypingPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	IsTyping       bool      `json:"is_typing"`
}

type MarkReadPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type NewMessageData struct {
	Message *models.Message `json:"message"`
}

type ConversationUpdatedData struct {
	Conversation *models.Conversation `json:"conversation"`
}

// UserTypingData is transient signaling only; it is never persisted and clients
// expire a typing indicator locally after a few seconds regardless of whether a
// stop event arrives.
type UserTypingData struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uint      `json:"user_id"`
	IsTyping       bool      `json:"is_typing"`
}

type MessagesReadData struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	ReaderID       uint      `json:"reader_id"`
	ReadAt         time.Time `json:"read_at"`
}

// ErrorData is sent to the originating connection only, keyed to the event that
// failed. Errors never fan out.
type ErrorData struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}
