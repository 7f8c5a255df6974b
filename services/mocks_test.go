package services_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Anjali11s/prolance/models"
)

// MockChatRepository is a testify mock of db.ChatRepository.
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) GetOrCreateConversation(userA, userB, projectID uint) (*models.Conversation, error) {
	args := m.Called(userA, userB, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatRepository) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatRepository) GetConversationsForUser(userID uint) ([]models.Conversation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockChatRepository) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockChatRepository) GetMessages(conversationID uuid.UUID, limit int, beforeAt *time.Time, beforeID *uuid.UUID) ([]models.Message, error) {
	args := m.Called(conversationID, limit, beforeAt, beforeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockChatRepository) GetMessageByID(id uuid.UUID) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockChatRepository) MarkMessagesRead(conversationID uuid.UUID, readerID uint, readAt time.Time) (int64, error) {
	args := m.Called(conversationID, readerID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) DeleteMessage(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockChatRepository) CountUnreadForUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) CountUnreadInConversation(conversationID uuid.UUID, userID uint) (int64, error) {
	args := m.Called(conversationID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuthRepository is a testify mock of db.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) CreateUser(user *models.User) (*models.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthRepository) IsEmailExist(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockAuthRepository) FindUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthRepository) FindUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthRepository) FindUsersByIDs(ids []uint) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockAuthRepository) UpdateUserOnlineStatus(userID uint, online bool) error {
	args := m.Called(userID, online)
	return args.Error(0)
}

func (m *MockAuthRepository) UpdateDeviceToken(userID uint, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}

// MockApplicationRepository is a testify mock of db.ApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) CreateApplication(app *models.Application) (*models.Application, error) {
	args := m.Called(app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) CountPendingForClient(clientID uint) (int64, error) {
	args := m.Called(clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) RecentPendingForClient(clientID uint, limit int) ([]models.Application, error) {
	args := m.Called(clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}
