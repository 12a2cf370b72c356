package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/require"
)

func TestWSConn_DeliversQueuedEnvelopes(t *testing.T) {
	registered := make(chan *WSConn, 1)
	finished := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			finished <- err
			return
		}
		conn := NewWSConn(c, 4, time.Second)
		registered <- conn
		finished <- conn.Run(r.Context())
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.CloseNow()

	conn := <-registered
	require.NoError(t, conn.Send(NewLikeUpdate("listing-1", true)))

	var got struct {
		Kind    Kind `json:"kind"`
		Payload struct {
			ListingID string `json:"listing_id"`
			Liked     bool   `json:"liked"`
		} `json:"payload"`
	}
	require.NoError(t, wsjson.Read(ctx, client, &got))
	require.Equal(t, KindLikeUpdate, got.Kind)
	require.Equal(t, "listing-1", got.Payload.ListingID)
	require.True(t, got.Payload.Liked)

	conn.Close()

	// reading lets the client answer the close handshake
	_, _, err = client.Read(ctx)
	require.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))

	select {
	case err := <-finished:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("Run did not return after Close")
	}

	require.ErrorIs(t, conn.Send(NewLikeUpdate("listing-1", false)), ErrConnClosed)
}

func TestWSConn_SendNeverBlocks(t *testing.T) {
	t.Parallel()

	// no Run loop drains the queue, so the second send overflows
	conn := NewWSConn(nil, 1, time.Second)

	require.NoError(t, conn.Send(NewLikeUpdate("l1", true)))
	require.ErrorIs(t, conn.Send(NewLikeUpdate("l1", false)), ErrSlowConsumer)

	conn.Close()
	conn.Close()
	require.ErrorIs(t, conn.Send(NewLikeUpdate("l1", false)), ErrConnClosed)

	select {
	case <-conn.Done():
	default:
		t.Fatal("Done should be closed")
	}
}
