package services

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Anjali11s/prolance/db"
	apiError "github.com/Anjali11s/prolance/errors"
	"github.com/Anjali11s/prolance/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService interface
type ChatService interface {
	GetOrCreateConversation(userID, recipientID, projectID uint) (*models.Conversation, error)
	ListConversations(userID uint) ([]models.ConversationResponse, error)
	ConversationForUser(conversationID uuid.UUID, userID uint) (*models.Conversation, error)
	SendMessage(conversationID uuid.UUID, senderID uint, content string) (*models.Message, *models.Conversation, error)
	ListMessages(conversationID uuid.UUID, userID uint, limit int, beforeAt *time.Time, beforeID *uuid.UUID) (*models.MessagePage, error)
	MarkConversationRead(conversationID uuid.UUID, readerID uint) (int64, time.Time, *models.Conversation, error)
	DeleteMessage(messageID uuid.UUID, requesterID uint) error
}

// chatService struct
type chatService struct {
	chatRepo db.ChatRepository
	authRepo db.AuthRepository
}

// NewChatService instantiate a chatService
func NewChatService(chatRepo db.ChatRepository, authRepo db.AuthRepository) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		authRepo: authRepo,
	}
}

const defaultMessagePageSize = 50
const maxMessagePageSize = 100

func (s *chatService) GetOrCreateConversation(userID, recipientID, projectID uint) (*models.Conversation, error) {
	if recipientID == 0 || recipientID == userID {
		return nil, apiError.New("invalid recipient", http.StatusBadRequest)
	}

	if _, err := s.authRepo.FindUserByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("recipient not found", http.StatusNotFound)
		}
		log.Printf("GetOrCreateConversation error finding recipient: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	conv, err := s.chatRepo.GetOrCreateConversation(userID, recipientID, projectID)
	if err != nil {
		log.Printf("GetOrCreateConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conv, nil
}

func (s *chatService) ListConversations(userID uint) ([]models.ConversationResponse, error) {
	conversations, err := s.chatRepo.GetConversationsForUser(userID)
	if err != nil {
		log.Printf("ListConversations error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	otherIDs := make([]uint, 0, len(conversations))
	for _, conv := range conversations {
		otherIDs = append(otherIDs, conv.OtherParticipant(userID))
	}

	profiles := make(map[uint]models.UserResponse, len(otherIDs))
	if len(otherIDs) > 0 {
		users, err := s.authRepo.FindUsersByIDs(otherIDs)
		if err != nil {
			log.Printf("ListConversations error loading participants: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		for i := range users {
			profiles[users[i].ID] = users[i].PublicProfile()
		}
	}

	responses := make([]models.ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		unread, err := s.chatRepo.CountUnreadInConversation(conv.ID, userID)
		if err != nil {
			log.Printf("ListConversations error counting unread: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		responses = append(responses, models.ConversationResponse{
			Conversation:     conv,
			UnreadCount:      unread,
			OtherParticipant: profiles[conv.OtherParticipant(userID)],
		})
	}
	return responses, nil
}

func (s *chatService) ConversationForUser(conversationID uuid.UUID, userID uint) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("ConversationForUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if !conv.HasParticipant(userID) {
		return nil, apiError.New("not a participant of this conversation", http.StatusForbidden)
	}
	return conv, nil
}

func (s *chatService) SendMessage(conversationID uuid.UUID, senderID uint, content string) (*models.Message, *models.Conversation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, apiError.New("message content cannot be empty", http.StatusBadRequest)
	}
	if utf8.RuneCountInString(content) > models.MaxMessageContentLength {
		return nil, nil, apiError.New("message content exceeds maximum length", http.StatusBadRequest)
	}

	conv, err := s.ConversationForUser(conversationID, senderID)
	if err != nil {
		return nil, nil, err
	}

	// V7 ids sort by creation time, so the (created_at, id) order used for
	// pagination agrees with append order even when two timestamps collide.
	msg := &models.Message{
		ID:             uuid.Must(uuid.NewV7()),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.chatRepo.SaveMessage(msg); err != nil {
		log.Printf("SendMessage error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}

	// Keep the returned snapshot consistent with the store's last-write-wins
	// rule without a second round trip.
	if conv.LastMessageAt == nil || !conv.LastMessageAt.After(msg.CreatedAt) {
		conv.LastMessage = msg.Content
		conv.LastMessageSenderID = &msg.SenderID
		conv.LastMessageAt = &msg.CreatedAt
	}

	return msg, conv, nil
}

func (s *chatService) ListMessages(conversationID uuid.UUID, userID uint, limit int, beforeAt *time.Time, beforeID *uuid.UUID) (*models.MessagePage, error) {
	if _, err := s.ConversationForUser(conversationID, userID); err != nil {
		return nil, err
	}

	// The cursor is the pair; an id on its own cannot position the page.
	if beforeID != nil && beforeAt == nil {
		return nil, apiError.New("before_id requires before", http.StatusBadRequest)
	}

	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	if limit > maxMessagePageSize {
		limit = maxMessagePageSize
	}

	// Fetch one extra row to learn whether an older page exists.
	messages, err := s.chatRepo.GetMessages(conversationID, limit+1, beforeAt, beforeID)
	if err != nil {
		log.Printf("ListMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	// The repository returns newest first; pages read oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	page := &models.MessagePage{
		Messages: messages,
		HasMore:  hasMore,
	}
	if hasMore && len(messages) > 0 {
		oldest := messages[0]
		page.NextBefore = &oldest.CreatedAt
		page.NextBeforeID = &oldest.ID
	}
	return page, nil
}

func (s *chatService) MarkConversationRead(conversationID uuid.UUID, readerID uint) (int64, time.Time, *models.Conversation, error) {
	conv, err := s.ConversationForUser(conversationID, readerID)
	if err != nil {
		return 0, time.Time{}, nil, err
	}

	readAt := time.Now().UTC()
	count, err := s.chatRepo.MarkMessagesRead(conversationID, readerID, readAt)
	if err != nil {
		log.Printf("MarkConversationRead error: %v", err)
		return 0, time.Time{}, nil, apiError.ErrInternalServerError
	}
	return count, readAt, conv, nil
}

func (s *chatService) DeleteMessage(messageID uuid.UUID, requesterID uint) error {
	msg, err := s.chatRepo.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("DeleteMessage error: %v", err)
		return apiError.ErrInternalServerError
	}
	if msg.SenderID != requesterID {
		return apiError.New("only the sender can delete a message", http.StatusForbidden)
	}

	if err := s.chatRepo.DeleteMessage(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("DeleteMessage error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
