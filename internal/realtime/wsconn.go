package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	defaultQueueSize    = 64
	defaultWriteTimeout = 5 * time.Second
)

// WSConn adapts a websocket to Conn. Send only enqueues; Run owns the socket
// and performs the writes.
type WSConn struct {
	conn         *websocket.Conn
	send         chan Envelope
	done         chan struct{}
	closeOnce    sync.Once
	writeTimeout time.Duration
}

// NewWSConn wraps conn with a bounded outbound queue
func NewWSConn(conn *websocket.Conn, queueSize int, writeTimeout time.Duration) *WSConn {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &WSConn{
		conn:         conn,
		send:         make(chan Envelope, queueSize),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// Send enqueues msg. It fails fast when the connection is closed or its queue is full.
func (c *WSConn) Send(msg Envelope) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSlowConsumer
	}
}

// Close stops Run and closes the socket. Safe to call more than once.
// The send channel is left open so concurrent senders never panic.
func (c *WSConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Done is closed once the connection is shutting down
func (c *WSConn) Done() <-chan struct{} {
	return c.done
}

// Run pumps queued envelopes to the socket until ctx ends, the peer goes
// away, a write fails, or Close is called. Inbound frames are read and
// discarded; the read loop only exists to observe the close handshake.
func (c *WSConn) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.Close()

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := c.conn.Read(ctx); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.Close(websocket.StatusGoingAway, "server shutting down")
			return ctx.Err()
		case <-c.done:
			_ = c.conn.Close(websocket.StatusNormalClosure, "closed")
			return nil
		case err := <-readErr:
			_ = c.conn.Close(websocket.StatusNormalClosure, "closed")
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway ||
				errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case msg := <-c.send:
			writeCtx, cancelWrite := context.WithTimeout(ctx, c.writeTimeout)
			err := wsjson.Write(writeCtx, c.conn, msg)
			cancelWrite()
			if err != nil {
				_ = c.conn.Close(websocket.StatusInternalError, "write failed")
				return err
			}
		}
	}
}
