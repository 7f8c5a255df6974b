package db

import (
	"log"
	"time"

	"github.com/Anjali11s/prolance/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	GetOrCreateConversation(userA, userB, projectID uint) (*models.Conversation, error)
	GetConversationByID(id uuid.UUID) (*models.Conversation, error)
	GetConversationsForUser(userID uint) ([]models.Conversation, error)
	SaveMessage(msg *models.Message) error
	GetMessages(conversationID uuid.UUID, limit int, beforeAt *time.Time, beforeID *uuid.UUID) ([]models.Message, error)
	GetMessageByID(id uuid.UUID) (*models.Message, error)
	MarkMessagesRead(conversationID uuid.UUID, readerID uint, readAt time.Time) (int64, error)
	DeleteMessage(id uuid.UUID) error
	CountUnreadForUser(userID uint) (int64, error)
	CountUnreadInConversation(conversationID uuid.UUID, userID uint) (int64, error)
}

type chatRepo struct {
	DB *gorm.DB
}

func NewChatRepo(db *GormDB) ChatRepository {
	return &chatRepo{db.DB}
}

// GetOrCreateConversation inserts the normalized participant pair, relying on
// the composite unique index to collapse concurrent first-contact attempts,
// then fetches the canonical row.
func (r *chatRepo) GetOrCreateConversation(userA, userB, projectID uint) (*models.Conversation, error) {
	one, two := models.NormalizeParticipants(userA, userB)

	conv := &models.Conversation{
		ID:               uuid.New(),
		ParticipantOneID: one,
		ParticipantTwoID: two,
		ProjectID:        projectID,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "participant_one_id"},
			{Name: "participant_two_id"},
			{Name: "project_id"},
		},
		DoNothing: true,
	}).Create(conv).Error
	if err != nil {
		log.Printf("GetOrCreateConversation insert error: %v", err)
		return nil, errors.Wrap(err, "create conversation")
	}

	// Re-read so the loser of a creation race gets the winner's row.
	found := &models.Conversation{}
	err = r.DB.Where("participant_one_id = ? AND participant_two_id = ? AND project_id = ?", one, two, projectID).
		First(found).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch conversation")
	}
	return found, nil
}

func (r *chatRepo) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{}
	err := r.DB.Where("id = ?", id).First(conv).Error
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *chatRepo) GetConversationsForUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.DB.
		Where("participant_one_id = ? OR participant_two_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Order("created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "list conversations")
	}
	return conversations, nil
}

// SaveMessage persists a message and the owning conversation's last-message
// snapshot in one transaction. The snapshot only moves forward in time, so two
// near-simultaneous sends settle on whichever carries the later timestamp no
// matter the order they commit in.
func (r *chatRepo) SaveMessage(msg *models.Message) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			log.Printf("SaveMessage create error: %v", err)
			return errors.Wrap(err, "create message")
		}

		res := tx.Model(&models.Conversation{}).
			Where("id = ? AND (last_message_at IS NULL OR last_message_at <= ?)", msg.ConversationID, msg.CreatedAt).
			Updates(map[string]interface{}{
				"last_message":           msg.Content,
				"last_message_sender_id": msg.SenderID,
				"last_message_at":        msg.CreatedAt,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "update conversation snapshot")
		}
		// Zero rows updated means a newer message already owns the snapshot.
		return nil
	})
}

func (r *chatRepo) GetMessages(conversationID uuid.UUID, limit int, beforeAt *time.Time, beforeID *uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	q := r.DB.Where("conversation_id = ?", conversationID)
	if beforeAt != nil {
		if beforeID != nil {
			q = q.Where("(created_at, id) < (?, ?)", *beforeAt, *beforeID)
		} else {
			q = q.Where("created_at < ?", *beforeAt)
		}
	}

	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	return messages, nil
}

func (r *chatRepo) GetMessageByID(id uuid.UUID) (*models.Message, error) {
	msg := &models.Message{}
	err := r.DB.Where("id = ?", id).First(msg).Error
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkMessagesRead flips every unread message from the other participant.
// Running it twice in a row affects zero rows the second time.
func (r *chatRepo) MarkMessagesRead(conversationID uuid.UUID, readerID uint, readAt time.Time) (int64, error) {
	res := r.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": readAt,
		})
	if res.Error != nil {
		log.Printf("MarkMessagesRead error: %v", res.Error)
		return 0, errors.Wrap(res.Error, "mark messages read")
	}
	return res.RowsAffected, nil
}

func (r *chatRepo) DeleteMessage(id uuid.UUID) error {
	res := r.DB.Delete(&models.Message{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete message")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *chatRepo) CountUnreadForUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.participant_one_id = ? OR conversations.participant_two_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread")
	}
	return count, nil
}

func (r *chatRepo) CountUnreadInConversation(conversationID uuid.UUID, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, userID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread in conversation")
	}
	return count, nil
}
