package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/Anjali11s/prolance/models"
	"github.com/google/uuid"
)

// ChatService is the slice of the chat domain the hub needs. The concrete
// implementation lives in the services package; tests substitute a mock.
type ChatService interface {
	ConversationForUser(conversationID uuid.UUID, userID uint) (*models.Conversation, error)
	SendMessage(conversationID uuid.UUID, senderID uint, content string) (*models.Message, *models.Conversation, error)
	MarkConversationRead(conversationID uuid.UUID, readerID uint) (int64, time.Time, *models.Conversation, error)
}

// StatusStore persists the user's online flag as connections come and go.
type StatusStore interface {
	UpdateUserOnlineStatus(userID uint, online bool) error
}

// Pusher delivers an out-of-band notification when the recipient has no live
// connection. Best-effort; failures are logged and never fail the send.
type Pusher interface {
	PushNewMessage(userID uint, msg *models.Message)
}

// Hub routes events between live connections and the chat service. Register
// and unregister flow through channels consumed by Run; message operations run
// on the calling goroutine under a per-conversation lock so that delivery
// order always matches persisted order, for the websocket path and the REST
// path alike.
type Hub struct {
	RegisterCh   chan Client
	UnregisterCh chan Client

	registry *Registry
	chat     ChatService
	status   StatusStore
	pusher   Pusher
	bridge   *Bridge

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewHub(chat ChatService, status StatusStore) *Hub {
	return &Hub{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		registry:     NewRegistry(),
		chat:         chat,
		status:       status,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// SetPusher wires optional offline device push.
func (h *Hub) SetPusher(p Pusher) {
	h.pusher = p
}

// SetBridge wires the optional cross-instance redis bridge.
func (h *Hub) SetBridge(b *Bridge) {
	h.bridge = b
}

// Registry exposes presence state to handlers (online checks, profile views).
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Run consumes connection lifecycle events. Call it once from main.
func (h *Hub) Run() {
	if h.bridge != nil {
		h.bridge.Listen(h.deliverLocal)
	}

	for {
		select {
		case client := <-h.RegisterCh:
			cameOnline := h.registry.Register(client)
			if cameOnline && h.status != nil {
				if err := h.status.UpdateUserOnlineStatus(client.UserID(), true); err != nil {
					log.Printf("failed to set user %d online: %v", client.UserID(), err)
				}
			}
		case client := <-h.UnregisterCh:
			wentOffline := h.registry.Unregister(client)
			client.Close()
			if wentOffline && h.status != nil {
				if err := h.status.UpdateUserOnlineStatus(client.UserID(), false); err != nil {
					log.Printf("failed to set user %d offline: %v", client.UserID(), err)
				}
			}
		}
	}
}

// Dispatch routes one inbound frame from a connection. Validation and
// authorization failures are answered on the originating connection only.
func (h *Hub) Dispatch(c Client, frame ClientFrame) {
	switch frame.Event {
	case EventJoinConversation:
		var p JoinConversationPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			h.sendError(c, frame.Event, "malformed payload")
			return
		}
		h.Join(c, p.ConversationID)
	case EventLeaveConversation:
		var p JoinConversationPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			h.sendError(c, frame.Event, "malformed payload")
			return
		}
		h.registry.Unsubscribe(c, p.ConversationID)
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			h.sendError(c, frame.Event, "malformed payload")
			return
		}
		if _, err := h.SendMessage(c.UserID(), p.ConversationID, p.Content); err != nil {
			h.sendError(c, frame.Event, err.Error())
		}
	case EventTyping:
		var p TypingPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			h.sendError(c, frame.Event, "malformed payload")
			return
		}
		if err := h.Typing(c.UserID(), p.ConversationID, p.IsTyping); err != nil {
			h.sendError(c, frame.Event, err.Error())
		}
	case EventMarkRead:
		var p MarkReadPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			h.sendError(c, frame.Event, "malformed payload")
			return
		}
		if _, err := h.MarkRead(c.UserID(), p.ConversationID); err != nil {
			h.sendError(c, frame.Event, err.Error())
		}
	default:
		h.sendError(c, frame.Event, "unknown event")
	}
}

// Join subscribes the connection to a conversation after verifying the owner
// is a participant. Non-participants are ignored silently.
func (h *Hub) Join(c Client, conversationID uuid.UUID) {
	if _, err := h.chat.ConversationForUser(conversationID, c.UserID()); err != nil {
		log.Printf("join refused for user %d on conversation %s: %v", c.UserID(), conversationID, err)
		return
	}
	h.registry.Subscribe(c, conversationID)
}

// SendMessage persists a message and fans the result out to every live
// connection of both participants. The per-conversation lock holds through the
// fan-out so concurrent sends cannot deliver out of their persisted order. The
// offline device push runs after the lock is released; a slow FCM call must not
// stall the conversation.
func (h *Hub) SendMessage(senderID uint, conversationID uuid.UUID, content string) (*models.Message, error) {
	lock := h.conversationLock(conversationID)
	lock.Lock()

	msg, conv, err := h.chat.SendMessage(conversationID, senderID, content)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	recipientID := conv.OtherParticipant(senderID)
	targets := []uint{senderID, recipientID}
	h.emitToUsers(targets, ServerEvent{Event: EventNewMessage, Data: NewMessageData{Message: msg}})
	h.emitToUsers(targets, ServerEvent{Event: EventConversationUpdated, Data: ConversationUpdatedData{Conversation: conv}})
	lock.Unlock()

	if h.pusher != nil && !h.registry.IsOnline(recipientID) {
		h.pusher.PushNewMessage(recipientID, msg)
	}

	return msg, nil
}

// Typing relays a transient typing signal to the other participant's
// connections. Never echoed back to the sender's own connections, never
// persisted.
func (h *Hub) Typing(senderID uint, conversationID uuid.UUID, isTyping bool) error {
	conv, err := h.chat.ConversationForUser(conversationID, senderID)
	if err != nil {
		return err
	}

	// Only sessions that joined the conversation care about typing state.
	h.emitToSubscribed([]uint{conv.OtherParticipant(senderID)}, conversationID, ServerEvent{
		Event: EventUserTyping,
		Data: UserTypingData{
			ConversationID: conversationID,
			UserID:         senderID,
			IsTyping:       isTyping,
		},
	})
	return nil
}

// MarkRead flips unread messages for the reader and, when anything changed,
// sends the read receipt to the other participant's connections.
func (h *Hub) MarkRead(readerID uint, conversationID uuid.UUID) (int64, error) {
	count, readAt, conv, err := h.chat.MarkConversationRead(conversationID, readerID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	h.emitToUsers([]uint{conv.OtherParticipant(readerID)}, ServerEvent{
		Event: EventMessagesRead,
		Data: MessagesReadData{
			ConversationID: conversationID,
			ReaderID:       readerID,
			ReadAt:         readAt,
		},
	})
	return count, nil
}

// EmitToUser pushes an arbitrary event to every live connection of a user.
// Used by collaborators outside the chat core (contract updates and the like).
func (h *Hub) EmitToUser(userID uint, event string, data interface{}) {
	h.emitToUsers([]uint{userID}, ServerEvent{Event: event, Data: data})
}

func (h *Hub) emitToUsers(userIDs []uint, event ServerEvent) {
	h.deliverLocal(userIDs, nil, event)
	if h.bridge != nil {
		h.bridge.Publish(userIDs, nil, event)
	}
}

func (h *Hub) emitToSubscribed(userIDs []uint, conversationID uuid.UUID, event ServerEvent) {
	h.deliverLocal(userIDs, &conversationID, event)
	if h.bridge != nil {
		h.bridge.Publish(userIDs, &conversationID, event)
	}
}

func (h *Hub) deliverLocal(userIDs []uint, subscribedTo *uuid.UUID, event ServerEvent) {
	for _, userID := range userIDs {
		for _, client := range h.registry.ConnectionsFor(userID) {
			if subscribedTo != nil && !h.registry.IsSubscribed(client, *subscribedTo) {
				continue
			}
			if !client.Deliver(event) {
				// Slow consumer: drop the connection instead of stalling.
				log.Printf("dropping slow connection of user %d", userID)
				c := client
				go func() { h.UnregisterCh <- c }()
			}
		}
	}
}

func (h *Hub) sendError(c Client, event, message string) {
	c.Deliver(ServerEvent{Event: EventError, Data: ErrorData{Event: event, Message: message}})
}

func (h *Hub) conversationLock(conversationID uuid.UUID) *sync.Mutex {
	h.locksMu.Lock()
	defer h.locksMu.Unlock()

	lock, ok := h.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[conversationID] = lock
	}
	return lock
}
