package chathub

// Client is one live connection of a user. It abstracts the underlying
// transport so the hub can be exercised in tests without a network stack.
type Client interface {
	// UserID returns the authenticated owner of the connection.
	UserID() uint

	// Deliver queues an event for the connection without blocking. It reports
	// false when the connection's buffer is full, in which case the hub drops
	// the connection rather than stalling fan-out for everyone else.
	Deliver(event ServerEvent) bool

	// Run starts the connection's read and write pumps.
	Run()

	// Close shuts the connection down and releases its resources.
	Close()
}
