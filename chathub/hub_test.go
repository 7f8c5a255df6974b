package chathub_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Anjali11s/prolance/chathub"
	"github.com/Anjali11s/prolance/models"
)

func testConversation(userA, userB uint) *models.Conversation {
	p1, p2 := models.NormalizeParticipants(userA, userB)
	return &models.Conversation{
		ID:               uuid.New(),
		ParticipantOneID: p1,
		ParticipantTwoID: p2,
	}
}

func TestHub_Run_OnlineStatusTransitions(t *testing.T) {
	chatMock := new(MockChatService)
	statusMock := new(MockStatusStore)
	statusMock.On("UpdateUserOnlineStatus", uint(1), true).Return(nil)
	statusMock.On("UpdateUserOnlineStatus", uint(1), false).Return(nil)

	hub := chathub.NewHub(chatMock, statusMock)
	go hub.Run()

	first := newFakeClient(1)
	second := newFakeClient(1)

	hub.RegisterCh <- first
	hub.RegisterCh <- second
	time.Sleep(100 * time.Millisecond)

	// Only the first connection flips the flag.
	statusMock.AssertNumberOfCalls(t, "UpdateUserOnlineStatus", 1)
	assert.True(t, hub.Registry().IsOnline(1))

	hub.UnregisterCh <- first
	time.Sleep(100 * time.Millisecond)
	statusMock.AssertNumberOfCalls(t, "UpdateUserOnlineStatus", 1)
	assert.True(t, hub.Registry().IsOnline(1))

	hub.UnregisterCh <- second
	time.Sleep(100 * time.Millisecond)
	statusMock.AssertCalled(t, "UpdateUserOnlineStatus", uint(1), false)
	assert.False(t, hub.Registry().IsOnline(1))
}

func TestHub_SendMessage_FansOutToAllConnectionsOfBothParties(t *testing.T) {
	conv := testConversation(1, 2)
	msg := &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: 1, Content: "hello"}

	chatMock := new(MockChatService)
	chatMock.On("SendMessage", conv.ID, uint(1), "hello").Return(msg, conv, nil)

	hub := chathub.NewHub(chatMock, nil)

	senderPhone := newFakeClient(1)
	senderLaptop := newFakeClient(1)
	recipient := newFakeClient(2)
	bystander := newFakeClient(3)
	for _, c := range []*fakeClient{senderPhone, senderLaptop, recipient, bystander} {
		hub.Registry().Register(c)
	}

	got, err := hub.SendMessage(1, conv.ID, "hello")
	assert.NoError(t, err)
	assert.Equal(t, msg, got)

	// Every connection of both participants gets new-message then
	// conversation-updated, subscribed or not.
	for _, c := range []*fakeClient{senderPhone, senderLaptop, recipient} {
		events := c.drain()
		if assert.Len(t, events, 2) {
			assert.Equal(t, chathub.EventNewMessage, events[0].Event)
			assert.Equal(t, chathub.EventConversationUpdated, events[1].Event)
		}
	}
	assert.Empty(t, bystander.drain())
}

func TestHub_SendMessage_PushesWhenRecipientOffline(t *testing.T) {
	conv := testConversation(1, 2)
	msg := &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: 1, Content: "hello"}

	chatMock := new(MockChatService)
	chatMock.On("SendMessage", conv.ID, uint(1), "hello").Return(msg, conv, nil)

	pusherMock := new(MockPusher)
	pusherMock.On("PushNewMessage", uint(2), msg).Return()

	hub := chathub.NewHub(chatMock, nil)
	hub.SetPusher(pusherMock)
	hub.Registry().Register(newFakeClient(1))

	_, err := hub.SendMessage(1, conv.ID, "hello")
	assert.NoError(t, err)

	pusherMock.AssertCalled(t, "PushNewMessage", uint(2), msg)
}

func TestHub_SendMessage_NoPushWhenRecipientOnline(t *testing.T) {
	conv := testConversation(1, 2)
	msg := &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: 1, Content: "hello"}

	chatMock := new(MockChatService)
	chatMock.On("SendMessage", conv.ID, uint(1), "hello").Return(msg, conv, nil)

	pusherMock := new(MockPusher)

	hub := chathub.NewHub(chatMock, nil)
	hub.SetPusher(pusherMock)
	hub.Registry().Register(newFakeClient(1))
	hub.Registry().Register(newFakeClient(2))

	_, err := hub.SendMessage(1, conv.ID, "hello")
	assert.NoError(t, err)

	pusherMock.AssertNotCalled(t, "PushNewMessage", mock.Anything, mock.Anything)
}

func TestHub_SendMessage_SlowPushDoesNotStallConversation(t *testing.T) {
	conv := testConversation(1, 2)
	msg := &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: 1}

	chatMock := new(MockChatService)
	chatMock.On("SendMessage", conv.ID, uint(1), mock.AnythingOfType("string")).Return(msg, conv, nil)

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	pusherMock := new(MockPusher)
	pusherMock.On("PushNewMessage", uint(2), msg).Run(func(mock.Arguments) {
		entered <- struct{}{}
		<-release
	}).Return()

	hub := chathub.NewHub(chatMock, nil)
	hub.SetPusher(pusherMock)
	hub.Registry().Register(newFakeClient(1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := hub.SendMessage(1, conv.ID, "first")
		assert.NoError(t, err)
	}()
	<-entered

	// While the first send is stuck inside the push call, a second send in the
	// same conversation must still go through.
	hub.Registry().Register(newFakeClient(2))
	_, err := hub.SendMessage(1, conv.ID, "second")
	assert.NoError(t, err)

	close(release)
	<-done
}

func TestHub_SendMessage_OrderMatchesPersistedOrder(t *testing.T) {
	conv := testConversation(1, 2)
	contents := []string{"one", "two", "three", "four"}

	var persistMu sync.Mutex
	var persisted []string

	chatMock := new(MockChatService)
	for _, content := range contents {
		content := content
		chatMock.On("SendMessage", conv.ID, uint(1), content).
			Run(func(args mock.Arguments) {
				persistMu.Lock()
				persisted = append(persisted, args.String(2))
				persistMu.Unlock()
			}).
			Return(&models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: 1, Content: content}, conv, nil)
	}

	hub := chathub.NewHub(chatMock, nil)
	recipient := newFakeClient(2)
	hub.Registry().Register(recipient)

	var wg sync.WaitGroup
	for _, content := range contents {
		wg.Add(1)
		go func(content string) {
			defer wg.Done()
			_, err := hub.SendMessage(1, conv.ID, content)
			assert.NoError(t, err)
		}(content)
	}
	wg.Wait()

	// Delivery order must be the persisted order, not just the same count:
	// the per-conversation lock holds from persistence through fan-out.
	var delivered []string
	events := recipient.drain()
	for _, e := range events {
		if e.Event == chathub.EventNewMessage {
			delivered = append(delivered, e.Data.(chathub.NewMessageData).Message.Content)
		}
	}
	assert.Len(t, events, 2*len(contents))
	assert.Equal(t, persisted, delivered)
}

func TestHub_Typing_OnlyReachesSubscribedRecipientConnections(t *testing.T) {
	conv := testConversation(1, 2)

	chatMock := new(MockChatService)
	chatMock.On("ConversationForUser", conv.ID, uint(1)).Return(conv, nil)

	hub := chathub.NewHub(chatMock, nil)

	sender := newFakeClient(1)
	subscribed := newFakeClient(2)
	unsubscribed := newFakeClient(2)
	for _, c := range []*fakeClient{sender, subscribed, unsubscribed} {
		hub.Registry().Register(c)
	}
	hub.Registry().Subscribe(sender, conv.ID)
	hub.Registry().Subscribe(subscribed, conv.ID)

	err := hub.Typing(1, conv.ID, true)
	assert.NoError(t, err)

	events := subscribed.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, chathub.EventUserTyping, events[0].Event)
		data := events[0].Data.(chathub.UserTypingData)
		assert.Equal(t, uint(1), data.UserID)
		assert.True(t, data.IsTyping)
	}

	// Never echoed to the sender, even on their subscribed connection.
	assert.Empty(t, sender.drain())
	assert.Empty(t, unsubscribed.drain())
}

func TestHub_MarkRead_SendsReceiptToOtherParticipant(t *testing.T) {
	conv := testConversation(1, 2)
	readAt := time.Now().UTC()

	chatMock := new(MockChatService)
	chatMock.On("MarkConversationRead", conv.ID, uint(2)).Return(int64(3), readAt, conv, nil)

	hub := chathub.NewHub(chatMock, nil)
	reader := newFakeClient(2)
	other := newFakeClient(1)
	hub.Registry().Register(reader)
	hub.Registry().Register(other)

	count, err := hub.MarkRead(2, conv.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	events := other.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, chathub.EventMessagesRead, events[0].Event)
		data := events[0].Data.(chathub.MessagesReadData)
		assert.Equal(t, conv.ID, data.ConversationID)
		assert.Equal(t, uint(2), data.ReaderID)
		assert.Equal(t, readAt, data.ReadAt)
	}
	assert.Empty(t, reader.drain())
}

func TestHub_MarkRead_NoReceiptWhenNothingChanged(t *testing.T) {
	conv := testConversation(1, 2)

	chatMock := new(MockChatService)
	chatMock.On("MarkConversationRead", conv.ID, uint(2)).Return(int64(0), time.Now(), conv, nil)

	hub := chathub.NewHub(chatMock, nil)
	other := newFakeClient(1)
	hub.Registry().Register(other)

	count, err := hub.MarkRead(2, conv.ID)
	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, other.drain())
}

func TestHub_Dispatch_ErrorGoesToOriginOnly(t *testing.T) {
	conv := testConversation(1, 2)

	chatMock := new(MockChatService)
	chatMock.On("SendMessage", conv.ID, uint(1), "hi").
		Return(nil, nil, assert.AnError)

	hub := chathub.NewHub(chatMock, nil)
	origin := newFakeClient(1)
	recipient := newFakeClient(2)
	hub.Registry().Register(origin)
	hub.Registry().Register(recipient)

	payload, _ := json.Marshal(chathub.SendMessagePayload{ConversationID: conv.ID, Content: "hi"})
	hub.Dispatch(origin, chathub.ClientFrame{Event: chathub.EventSendMessage, Data: payload})

	events := origin.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, chathub.EventError, events[0].Event)
		data := events[0].Data.(chathub.ErrorData)
		assert.Equal(t, chathub.EventSendMessage, data.Event)
	}
	assert.Empty(t, recipient.drain())
}

func TestHub_Dispatch_MalformedPayload(t *testing.T) {
	hub := chathub.NewHub(new(MockChatService), nil)
	origin := newFakeClient(1)
	hub.Registry().Register(origin)

	hub.Dispatch(origin, chathub.ClientFrame{Event: chathub.EventSendMessage, Data: []byte("{")})

	events := origin.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, chathub.EventError, events[0].Event)
	}
}

func TestHub_Dispatch_UnknownEvent(t *testing.T) {
	hub := chathub.NewHub(new(MockChatService), nil)
	origin := newFakeClient(1)
	hub.Registry().Register(origin)

	hub.Dispatch(origin, chathub.ClientFrame{Event: "no-such-event"})

	events := origin.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, chathub.EventError, events[0].Event)
		data := events[0].Data.(chathub.ErrorData)
		assert.Equal(t, "unknown event", data.Message)
	}
}

func TestHub_Join_RefusesNonParticipant(t *testing.T) {
	conversationID := uuid.New()

	chatMock := new(MockChatService)
	chatMock.On("ConversationForUser", conversationID, uint(3)).Return(nil, assert.AnError)

	hub := chathub.NewHub(chatMock, nil)
	outsider := newFakeClient(3)
	hub.Registry().Register(outsider)

	hub.Join(outsider, conversationID)

	assert.False(t, hub.Registry().IsSubscribed(outsider, conversationID))
	// Refusal is silent.
	assert.Empty(t, outsider.drain())
}
