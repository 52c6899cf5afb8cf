package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types published on proposal and lead state changes.
const (
	EventProposalSubmitted = "proposal_submitted"
	EventProposalAccepted  = "proposal_accepted"
	EventProposalRejected  = "proposal_rejected"
	EventLeadsExpired      = "leads_expired"
)

const eventChannel = "leadhive:events"

// Event is the payload handed to downstream consumers (mailers, websocket
// bridges). Delivery itself lives outside this service.
type Event struct {
	Type       string    `json:"type"`
	LeadID     string    `json:"lead_id,omitempty"`
	ProposalID string    `json:"proposal_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	Count      int64     `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier is a fire-and-forget sink for state-change events. Failures are
// never allowed to roll back the state transition that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// RedisNotifier publishes events on a Redis pub/sub channel.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Notify(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[notify] marshal event %s: %v", event.Type, err)
		return
	}

	if err := n.client.Publish(ctx, eventChannel, data).Err(); err != nil {
		log.Printf("[notify] publish event %s: %v", event.Type, err)
	}
}

// NopNotifier discards events. Used in tests and when Redis is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, event Event) {}
