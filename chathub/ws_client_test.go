package chathub_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anjali11s/prolance/chathub"
)

func TestWebSocketClient_DeliverAfterClose(t *testing.T) {
	c := chathub.NewWebSocketClient(nil, 1, nil)
	c.Close()

	assert.NotPanics(t, func() {
		assert.False(t, c.Deliver(chathub.ServerEvent{Event: chathub.EventNewMessage}))
	})
}

func TestWebSocketClient_CloseIsIdempotent(t *testing.T) {
	c := chathub.NewWebSocketClient(nil, 1, nil)

	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

// A disconnect racing an in-flight fan-out must never crash the process.
func TestWebSocketClient_ConcurrentDeliverAndClose(t *testing.T) {
	c := chathub.NewWebSocketClient(nil, 1, nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() {
				c.Deliver(chathub.ServerEvent{Event: chathub.EventNewMessage})
			})
		}()
	}
	c.Close()
	wg.Wait()
}

func TestWebSocketClient_DeliverBeforeClose(t *testing.T) {
	c := chathub.NewWebSocketClient(nil, 1, nil)
	assert.True(t, c.Deliver(chathub.ServerEvent{Event: chathub.EventNewMessage}))
}
