package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisNotifier_PublishesEvent(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "leadhive:events")
	defer sub.Close()
	_, err = sub.Receive(ctx) // wait for subscription confirmation
	require.NoError(t, err)

	n := NewRedisNotifier(client)
	n.Notify(ctx, Event{
		Type:       EventProposalAccepted,
		LeadID:     "lead-1",
		ProposalID: "prop-1",
		ActorID:    "requester-1",
	})

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, EventProposalAccepted, got.Type)
		assert.Equal(t, "prop-1", got.ProposalID)
		assert.False(t, got.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}

func TestRedisNotifier_FailureDoesNotPanic(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mr.Close() // connection now refused

	n := NewRedisNotifier(client)
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), Event{Type: EventProposalSubmitted})
	})
}
