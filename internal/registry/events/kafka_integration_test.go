//go:build integration

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"cnft/pkg/domain"
	"cnft/pkg/testutil/containers"
)

func TestKafkaPublisher(t *testing.T) {
	ctx := context.Background()
	kafka := containers.NewKafkaContainer(t)
	t.Cleanup(func() { _ = kafka.Container.Terminate(ctx) })

	const topic = "cnft.registry.events.test"
	publisher, err := NewKafka(ctx, kafka.Brokers, topic)
	require.NoError(t, err)
	t.Cleanup(publisher.Close)

	alice := domain.Address{0x11}
	bob := domain.Address{0x22}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	published := []Event{
		NewMint(alice, 0, at),
		NewTransfer(alice, bob, 0, at.Add(time.Minute)),
		NewGranted(0, bob, at.Add(2*time.Minute)),
	}
	for _, e := range published {
		require.NoError(t, publisher.Publish(ctx, e))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(kafka.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var got []Event
	for len(got) < len(published) {
		fetches := consumer.PollFetches(fetchCtx)
		require.NoError(t, fetches.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			var e Event
			require.NoError(t, json.Unmarshal(r.Value, &e))
			assert.Equal(t, e.TokenID.String(), string(r.Key))
			got = append(got, e)
		})
	}

	require.Len(t, got, 3)
	// Same-key records preserve publish order.
	assert.Equal(t, KindConfidentialMint, got[0].Kind)
	assert.Equal(t, KindConfidentialTransfer, got[1].Kind)
	assert.Equal(t, KindViewPermissionGranted, got[2].Kind)
	require.NotNil(t, got[1].From)
	assert.Equal(t, alice, *got[1].From)
}
