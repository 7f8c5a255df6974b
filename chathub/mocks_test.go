package chathub_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Anjali11s/prolance/chathub"
	"github.com/Anjali11s/prolance/models"
)

// MockChatService is a testify mock of the chat domain slice the hub depends on.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) ConversationForUser(conversationID uuid.UUID, userID uint) (*models.Conversation, error) {
	args := m.Called(conversationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatService) SendMessage(conversationID uuid.UUID, senderID uint, content string) (*models.Message, *models.Conversation, error) {
	args := m.Called(conversationID, senderID, content)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Message), args.Get(1).(*models.Conversation), args.Error(2)
}

func (m *MockChatService) MarkConversationRead(conversationID uuid.UUID, readerID uint) (int64, time.Time, *models.Conversation, error) {
	args := m.Called(conversationID, readerID)
	if args.Get(2) == nil {
		return 0, time.Time{}, nil, args.Error(3)
	}
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Get(2).(*models.Conversation), args.Error(3)
}

// MockStatusStore records online flag updates.
type MockStatusStore struct {
	mock.Mock
}

func (m *MockStatusStore) UpdateUserOnlineStatus(userID uint, online bool) error {
	args := m.Called(userID, online)
	return args.Error(0)
}

// MockPusher records offline push attempts.
type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) PushNewMessage(userID uint, msg *models.Message) {
	m.Called(userID, msg)
}

// fakeClient is a test double for one live connection. Events land in a
// buffered channel so tests can assert on delivery order.
type fakeClient struct {
	userID uint
	recv   chan chathub.ServerEvent
	full   bool
}

func newFakeClient(userID uint) *fakeClient {
	return &fakeClient{
		userID: userID,
		recv:   make(chan chathub.ServerEvent, 16),
	}
}

func (c *fakeClient) UserID() uint { return c.userID }

func (c *fakeClient) Deliver(event chathub.ServerEvent) bool {
	if c.full {
		return false
	}
	select {
	case c.recv <- event:
		return true
	default:
		return false
	}
}

func (c *fakeClient) Run()   {}
func (c *fakeClient) Close() {}

// drain returns every event delivered so far.
func (c *fakeClient) drain() []chathub.ServerEvent {
	var events []chathub.ServerEvent
	for {
		select {
		case e := <-c.recv:
			events = append(events, e)
		default:
			return events
		}
	}
}
