package chat

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"roveri/internal/models"
)

const writeTimeout = 5 * time.Second

// LiveChannel wraps one room-scoped websocket. It belongs to exactly
// one controller epoch; once Close runs, its reader stops and its
// callbacks go quiet.
type LiveChannel struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// Dial opens the room's channel.
func Dial(ctx context.Context, url string) (*LiveChannel, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &LiveChannel{conn: conn}, nil
}

// Listen starts the reader goroutine. Every decoded frame goes to
// onFrame; the first read error stops the loop and reaches onErr unless
// the channel was closed deliberately.
func (ch *LiveChannel) Listen(onFrame func(models.InboundFrame), onErr func(error)) {
	go func() {
		for {
			var frame models.InboundFrame
			if err := ch.conn.ReadJSON(&frame); err != nil {
				ch.mu.Lock()
				closed := ch.closed
				ch.mu.Unlock()
				if !closed && onErr != nil {
					onErr(err)
				}
				return
			}
			onFrame(frame)
		}
	}()
}

// Send writes one outbound frame. An error means the channel never
// accepted the send, so the caller may fall back to REST.
func (ch *LiveChannel) Send(frame models.OutboundFrame) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return models.ErrChannelClosed
	}
	_ = ch.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return ch.conn.WriteJSON(frame)
}

// Close tears the socket down. Idempotent; teardown errors are
// deliberately swallowed.
func (ch *LiveChannel) Close() {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return
	}
	ch.closed = true
	ch.mu.Unlock()
	_ = ch.conn.Close()
}
