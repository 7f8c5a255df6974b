package chathub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bridgeChannel = "realtime:events"

// Bridge relays fan-out events between server instances over redis pub/sub so
// a user's connections on another instance still receive them. Single-instance
// deployments run without one.
type Bridge struct {
	rdb        *redis.Client
	instanceID string
}

type bridgeEnvelope struct {
	Origin        string      `json:"origin"`
	TargetUserIDs []uint      `json:"target_user_ids"`
	SubscribedTo  *uuid.UUID  `json:"subscribed_to,omitempty"`
	Event         ServerEvent `json:"event"`
}

func NewBridge(rdb *redis.Client) *Bridge {
	return &Bridge{
		rdb:        rdb,
		instanceID: uuid.NewString(),
	}
}

// Publish broadcasts an event envelope to every instance, this one included;
// the listener filters out its own messages by origin.
func (b *Bridge) Publish(targetUserIDs []uint, subscribedTo *uuid.UUID, event ServerEvent) {
	envelope := bridgeEnvelope{
		Origin:        b.instanceID,
		TargetUserIDs: targetUserIDs,
		SubscribedTo:  subscribedTo,
		Event:         event,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("error encoding bridge envelope: %v", err)
		return
	}

	if err := b.rdb.Publish(context.Background(), bridgeChannel, payload).Err(); err != nil {
		log.Printf("error publishing bridge envelope: %v", err)
	}
}

// Listen delivers envelopes from other instances to local connections via
// deliver. It runs until the subscription's channel closes.
func (b *Bridge) Listen(deliver func(userIDs []uint, subscribedTo *uuid.UUID, event ServerEvent)) {
	go func() {
		ctx := context.Background()
		pubsub := b.rdb.Subscribe(ctx, bridgeChannel)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for msg := range ch {
			var envelope bridgeEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				log.Printf("error decoding bridge envelope: %v", err)
				continue
			}
			if envelope.Origin == b.instanceID {
				continue
			}
			deliver(envelope.TargetUserIDs, envelope.SubscribedTo, envelope.Event)
		}
	}()
}
