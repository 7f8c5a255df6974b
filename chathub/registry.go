package chathub

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the in-memory presence/session state: which connections each
// user currently holds and which conversations each connection is subscribed
// to. It holds nothing durable; reconnecting clients re-register after a
// restart.
type Registry struct {
	mu            sync.RWMutex
	connections   map[uint]map[Client]struct{}
	subscriptions map[Client]map[uuid.UUID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		connections:   make(map[uint]map[Client]struct{}),
		subscriptions: make(map[Client]map[uuid.UUID]struct{}),
	}
}

// Register adds a connection to its owner's set. Returns true when this is the
// user's first live connection (the user came online).
func (r *Registry) Register(c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.connections[c.UserID()]
	if !ok {
		set = make(map[Client]struct{})
		r.connections[c.UserID()] = set
	}
	set[c] = struct{}{}
	return len(set) == 1
}

// Unregister removes a connection and its subscriptions. Returns true when it
// was the user's last live connection (the user went offline).
func (r *Registry) Unregister(c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscriptions, c)

	set, ok := r.connections[c.UserID()]
	if !ok {
		return false
	}
	if _, ok := set[c]; !ok {
		return false
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.connections, c.UserID())
		return true
	}
	return false
}

// ConnectionsFor returns a snapshot of a user's live connections, possibly
// empty.
func (r *Registry) ConnectionsFor(userID uint) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.connections[userID]
	clients := make([]Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// IsOnline reports whether the user has at least one live connection.
func (r *Registry) IsOnline(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections[userID]) > 0
}

// Subscribe records that a connection wants events for a conversation.
func (r *Registry) Subscribe(c Client, conversationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.subscriptions[c]
	if !ok {
		subs = make(map[uuid.UUID]struct{})
		r.subscriptions[c] = subs
	}
	subs[conversationID] = struct{}{}
}

// Unsubscribe drops a connection's interest in a conversation.
func (r *Registry) Unsubscribe(c Client, conversationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subs, ok := r.subscriptions[c]; ok {
		delete(subs, conversationID)
	}
}

// IsSubscribed reports whether the connection has joined the conversation.
func (r *Registry) IsSubscribed(c Client, conversationID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs, ok := r.subscriptions[c]
	if !ok {
		return false
	}
	_, ok = subs[conversationID]
	return ok
}
