// Package notify fans menu configuration changes out to the snapshot cache,
// connected terminals and the Kafka change topic.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/menuhq/pos-admin/internal/metrics"
	"github.com/menuhq/pos-admin/internal/ws"
)

// Invalidator drops an outlet's cached catalog. Satisfied by *cache.SnapshotCache.
type Invalidator interface {
	Invalidate(ctx context.Context, outletID uuid.UUID) error
}

// Broadcaster pushes to terminals. Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastToOutlet(outletID uuid.UUID, event ws.Event) bool
}

// Publisher sends to a message bus. Satisfied by *KafkaPublisher.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Change is the payload sent on every sink.
type Change struct {
	OutletID uuid.UUID `json:"outlet_id"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID uuid.UUID `json:"entity_id"`
	At       time.Time `json:"at"`
}

// Dispatcher implements handler.Notifier. Any sink may be nil.
type Dispatcher struct {
	cache     Invalidator
	hub       Broadcaster
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewDispatcher(cache Invalidator, hub Broadcaster, publisher Publisher, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		cache:     cache,
		hub:       hub,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// MenuChanged runs every sink in order. Sink failures are logged and counted;
// the write that caused the change has already committed.
func (d *Dispatcher) MenuChanged(ctx context.Context, outletID uuid.UUID, entity, action string, entityID uuid.UUID) {
	if d.metrics != nil {
		d.metrics.MenuChanges.WithLabelValues(entity, action).Inc()
	}

	if d.cache != nil {
		if err := d.cache.Invalidate(ctx, outletID); err != nil {
			d.fail("cache", outletID, err)
		}
	}

	change := Change{
		OutletID: outletID,
		Entity:   entity,
		Action:   action,
		EntityID: entityID,
		At:       d.now().UTC(),
	}
	payload, err := json.Marshal(change)
	if err != nil {
		d.fail("encode", outletID, err)
		return
	}

	if d.hub != nil {
		if !d.hub.BroadcastToOutlet(outletID, ws.Event{Type: ws.EventMenuChanged, Payload: payload}) {
			d.fail("ws", outletID, nil)
		}
	}

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, outletID.String(), payload); err != nil {
			d.fail("kafka", outletID, err)
		}
	}
}

func (d *Dispatcher) fail(sink string, outletID uuid.UUID, err error) {
	if d.metrics != nil {
		d.metrics.NotifyFailures.WithLabelValues(sink).Inc()
	}
	log.Warn().Err(err).Str("sink", sink).Str("outlet_id", outletID.String()).Msg("menu change notification failed")
}
