// Package events records an append-only audit trail of exchange state
// changes. The journal is never read back to feed clients.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=journal.go -destination=mock_recorder.go -package=events

// Type names a recorded state change
type Type string

const (
	BidUpserted        Type = "bid.upserted"
	BidNegotiated      Type = "bid.negotiated"
	BidRemoved         Type = "bid.removed"
	BidExpired         Type = "bid.expired"
	ListingCreated     Type = "listing.created"
	ListingRemoved     Type = "listing.removed"
	ContractCreated    Type = "contract.created"
	ContractConfirmed  Type = "contract.confirmed"
	ContractNegotiated Type = "contract.negotiated"
)

// Event is one journal entry
type Event struct {
	Type      Type           `json:"type"`
	EntityID  string         `json:"entity_id"`
	ListingID string         `json:"listing_id,omitempty"`
	ActorID   string         `json:"actor_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}

// Recorder appends events to the journal
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// NopRecorder drops every event. Used when no Redis URL is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) error { return nil }

// DefaultStream is the Redis stream key used when none is configured
const DefaultStream = "freight:events"

// RedisRecorder appends events to a capped Redis stream
type RedisRecorder struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

// NewRedisRecorder returns a recorder writing to stream, trimming it to
// roughly maxLen entries (0 disables trimming).
func NewRedisRecorder(rdb *redis.Client, stream string, maxLen int64) *RedisRecorder {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisRecorder{rdb: rdb, stream: stream, maxLen: maxLen}
}

// Record performs one XADD
func (r *RedisRecorder) Record(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("journal: marshal %s: %w", event.Type, err)
	}

	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"type":      string(event.Type),
			"entity_id": event.EntityID,
			"payload":   string(payload),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	if err := r.rdb.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("journal: xadd %s: %w", event.Type, err)
	}
	return nil
}
