// Package realtime keeps the process-local set of live client connections
// and fans events out to them.
package realtime

import (
	"errors"
	"sync"

	"freight-exchange/utils"
)

//go:generate mockgen -source=registry.go -destination=mock_broadcaster.go -package=realtime

var (
	ErrConnClosed   = errors.New("connection closed")
	ErrSlowConsumer = errors.New("connection send queue full")
)

// Conn is one live client connection. Send must not block.
type Conn interface {
	Send(msg Envelope) error
	Close()
}

// Broadcaster addresses events to live sessions. All methods are
// fire-and-forget: delivery failures are logged, never returned.
type Broadcaster interface {
	BroadcastAll(msg Envelope)
	BroadcastExcept(identity, sessionID string, msg Envelope)
	BroadcastToIdentity(identity string, msg Envelope)
}

// Registry maps identity -> session -> connection
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]Conn
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[string]Conn),
	}
}

// Register stores conn for (identity, sessionID). A connection already held
// for the same pair is replaced and closed.
func (r *Registry) Register(identity, sessionID string, conn Conn) {
	r.mu.Lock()
	bucket, ok := r.sessions[identity]
	if !ok {
		bucket = make(map[string]Conn)
		r.sessions[identity] = bucket
	}
	previous := bucket[sessionID]
	bucket[sessionID] = conn
	r.mu.Unlock()

	if previous != nil && previous != conn {
		previous.Close()
	}

	utils.Debug("realtime: session registered", map[string]any{
		"identity":   identity,
		"session_id": sessionID,
		"replaced":   previous != nil,
	})
}

// Unregister removes whatever is registered for (identity, sessionID)
func (r *Registry) Unregister(identity, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(identity, sessionID, nil)
}

// UnregisterConn removes the registration only if it still points at conn.
// A socket closing after its session reconnected must not evict the new one.
func (r *Registry) UnregisterConn(identity, sessionID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(identity, sessionID, conn)
}

func (r *Registry) removeLocked(identity, sessionID string, expected Conn) {
	bucket, ok := r.sessions[identity]
	if !ok {
		return
	}
	current, ok := bucket[sessionID]
	if !ok || (expected != nil && current != expected) {
		return
	}
	delete(bucket, sessionID)
	if len(bucket) == 0 {
		delete(r.sessions, identity)
	}
}

// SessionCount returns the number of live sessions for identity
func (r *Registry) SessionCount(identity string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[identity])
}

// Len returns the total number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, bucket := range r.sessions {
		n += len(bucket)
	}
	return n
}

// BroadcastAll delivers msg to every live session
func (r *Registry) BroadcastAll(msg Envelope) {
	r.deliver(r.collect(func(string, string) bool { return true }), msg)
}

// BroadcastExcept delivers msg to every live session but (identity, sessionID)
func (r *Registry) BroadcastExcept(identity, sessionID string, msg Envelope) {
	r.deliver(r.collect(func(id, session string) bool {
		return id != identity || session != sessionID
	}), msg)
}

// BroadcastToIdentity delivers msg to every session of identity
func (r *Registry) BroadcastToIdentity(identity string, msg Envelope) {
	r.mu.RLock()
	targets := make([]target, 0, len(r.sessions[identity]))
	for session, conn := range r.sessions[identity] {
		targets = append(targets, target{identity: identity, session: session, conn: conn})
	}
	r.mu.RUnlock()

	r.deliver(targets, msg)
}

type target struct {
	identity string
	session  string
	conn     Conn
}

// collect snapshots matching connections so delivery runs without the lock
func (r *Registry) collect(match func(identity, session string) bool) []target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var targets []target
	for identity, bucket := range r.sessions {
		for session, conn := range bucket {
			if match(identity, session) {
				targets = append(targets, target{identity: identity, session: session, conn: conn})
			}
		}
	}
	return targets
}

func (r *Registry) deliver(targets []target, msg Envelope) {
	for _, t := range targets {
		if err := t.conn.Send(msg); err != nil {
			utils.Warn("realtime: delivery failed", map[string]any{
				"identity":   t.identity,
				"session_id": t.session,
				"kind":       msg.Kind,
				"error":      err.Error(),
			})
		}
	}
}
