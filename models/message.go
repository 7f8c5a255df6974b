package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageContentLength bounds message content size.
const MaxMessageContentLength = 5000

// Message belongs to exactly one conversation and is immutable after creation
// except for the read receipt fields. Sender-side deletes are soft.
type Message struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID      `gorm:"type:uuid;not null;index:idx_conversation_created" json:"conversation_id"`
	SenderID       uint           `gorm:"not null;index" json:"sender_id"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Read           bool           `gorm:"default:false;index" json:"read"`
	ReadAt         *time.Time     `json:"read_at,omitempty"`
	CreatedAt      time.Time      `gorm:"index:idx_conversation_created" json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

type SendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	RecipientID    uint      `json:"recipient_id"`
	ProjectID      uint      `json:"project_id"`
	Content        string    `json:"content" binding:"required"`
}

type MarkReadRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" binding:"required"`
}

// MessagePage is one cursor page of a conversation's history, oldest first.
// NextBefore carries the cursor for the page preceding this one; HasMore is
// false once the beginning of the conversation is reached.
type MessagePage struct {
	Messages     []Message  `json:"messages"`
	HasMore      bool       `json:"has_more"`
	NextBefore   *time.Time `json:"next_before,omitempty"`
	NextBeforeID *uuid.UUID `json:"next_before_id,omitempty"`
}
