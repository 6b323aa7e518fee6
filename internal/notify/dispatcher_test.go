package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuhq/pos-admin/internal/cache"
	"github.com/menuhq/pos-admin/internal/metrics"
	"github.com/menuhq/pos-admin/internal/ws"
)

type recordingHub struct {
	outlet uuid.UUID
	events []ws.Event
	full   bool
}

func (h *recordingHub) BroadcastToOutlet(outletID uuid.UUID, event ws.Event) bool {
	if h.full {
		return false
	}
	h.outlet = outletID
	h.events = append(h.events, event)
	return true
}

type failingInvalidator struct{}

func (failingInvalidator) Invalidate(context.Context, uuid.UUID) error {
	return errors.New("redis down")
}

func fixedNow() time.Time { return time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC) }

func TestDispatcher_FansOutToEverySink(t *testing.T) {
	mr := miniredis.RunT(t)
	snapshots := cache.NewSnapshotCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	oid, itemID := uuid.New(), uuid.New()
	_, err := snapshots.Set(context.Background(), oid, 0, map[string]string{"k": "v"})
	require.NoError(t, err)

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != oid.String() {
			return errors.New("message must be keyed by outlet")
		}
		if msg.Topic != "menu.changes" {
			return errors.New("wrong topic " + msg.Topic)
		}
		return nil
	})

	hub := &recordingHub{}
	m := metrics.New()
	d := NewDispatcher(snapshots, hub, NewKafkaPublisherWithProducer(producer, "menu.changes"), m)
	d.now = fixedNow

	d.MenuChanged(context.Background(), oid, "item", "updated", itemID)

	assert.False(t, mr.Exists(cache.Key(oid)), "snapshot must be invalidated")
	gen, err := mr.Get(cache.GenerationKey(oid))
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	require.Len(t, hub.events, 1)
	assert.Equal(t, oid, hub.outlet)
	assert.Equal(t, ws.EventMenuChanged, hub.events[0].Type)

	var change Change
	require.NoError(t, json.Unmarshal(hub.events[0].Payload, &change))
	assert.Equal(t, Change{OutletID: oid, Entity: "item", Action: "updated", EntityID: itemID, At: fixedNow()}, change)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.MenuChanges.WithLabelValues("item", "updated")))
	require.NoError(t, producer.Close())
}

func TestDispatcher_SinkFailuresAreCountedNotFatal(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	m := metrics.New()
	hub := &recordingHub{full: true}
	d := NewDispatcher(failingInvalidator{}, hub, NewKafkaPublisherWithProducer(producer, "t"), m)

	d.MenuChanged(context.Background(), uuid.New(), "event", "deleted", uuid.New())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.NotifyFailures.WithLabelValues("cache")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.NotifyFailures.WithLabelValues("ws")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.NotifyFailures.WithLabelValues("kafka")))
	require.NoError(t, producer.Close())
}

func TestDispatcher_NilSinks(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, nil)
	assert.NotPanics(t, func() {
		d.MenuChanged(context.Background(), uuid.New(), "tax", "created", uuid.New())
	})
}
