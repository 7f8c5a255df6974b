package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party message thread. The participant pair is stored
// normalized (lower id first) so the composite unique index holds regardless of
// who initiated. ProjectID is 0 for conversations with no project context so the
// uniqueness constraint still applies to them.
type Conversation struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantOneID    uint       `gorm:"not null;uniqueIndex:idx_participants_project;index" json:"participant_one_id"`
	ParticipantTwoID    uint       `gorm:"not null;uniqueIndex:idx_participants_project;index" json:"participant_two_id"`
	ProjectID           uint       `gorm:"default:0;uniqueIndex:idx_participants_project" json:"project_id,omitempty"`
	LastMessage         string     `json:"last_message"`
	LastMessageSenderID *uint      `json:"last_message_sender_id,omitempty"`
	LastMessageAt       *time.Time `json:"last_message_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NormalizeParticipants orders a participant pair for storage and lookup.
func NormalizeParticipants(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.ParticipantOneID == userID || c.ParticipantTwoID == userID
}

// OtherParticipant returns the counterpart of userID. Callers must check
// HasParticipant first.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.ParticipantOneID == userID {
		return c.ParticipantTwoID
	}
	return c.ParticipantOneID
}

type CreateConversationRequest struct {
	RecipientID uint `json:"recipient_id" binding:"required"`
	ProjectID   uint `json:"project_id"`
}

// ConversationResponse annotates a conversation with caller-specific fields for
// the conversation list.
type ConversationResponse struct {
	Conversation
	UnreadCount      int64        `json:"unread_count"`
	OtherParticipant UserResponse `json:"other_participant"`
}
