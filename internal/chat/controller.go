// Package chat owns the lifecycle of the active chat room: one live
// channel at a time, a deduplicated append-only message log, and
// deterministic teardown on room switches.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"roveri/internal/api"
	"roveri/internal/models"
	"roveri/internal/utils"
)

// Controller maintains, for exactly one active room, a live and
// deduplicated message log. The channel reference and the log are owned
// exclusively here; the UI only ever sees snapshots.
type Controller struct {
	api *api.Client
	log *utils.RemoteLogger

	mu       sync.Mutex
	rooms    []models.Room
	active   *models.Room
	messages []models.Message
	channel  *LiveChannel
	epoch    uint64
	onChange func()
}

func NewController(client *api.Client, log *utils.RemoteLogger) *Controller {
	return &Controller{
		api: client,
		log: log,
	}
}

// SetOnChange registers the UI redraw hook. Called outside the lock.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ListRooms fetches and caches the room list. The active channel is
// untouched.
func (c *Controller) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := c.api.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.rooms = rooms
	c.mu.Unlock()
	c.notify()
	return rooms, nil
}

func (c *Controller) Rooms() []models.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// RoomByID looks a room up in the cached list. The cached copy carries
// the denormalized label fields some create responses omit.
func (c *Controller) RoomByID(id int64) (*models.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rooms {
		if c.rooms[i].ID == id {
			room := c.rooms[i]
			return &room, nil
		}
	}
	return nil, models.ErrRoomNotFound
}

func (c *Controller) ActiveRoom() *models.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Messages returns a snapshot of the active room's log.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// SetActiveRoom is the core transition. The old channel is fully torn
// down before the new room is set: the epoch bump disables every
// completion handler still in flight for the previous room, so a late
// event or history result can never land in the new room's log.
func (c *Controller) SetActiveRoom(ctx context.Context, room *models.Room) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	old := c.channel
	c.channel = nil
	c.active = room
	if room == nil {
		c.messages = nil
	}
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}
	c.notify()
	if room == nil {
		return
	}

	ch, err := Dial(ctx, c.api.WebsocketURL(room.ID))
	if err != nil {
		// Room stays active with whatever log it has; the user can
		// switch away or retry.
		c.log.Logf("[chat] failed to open channel for room %d: %v", room.ID, err)
		return
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		ch.Close()
		return
	}
	c.channel = ch
	c.mu.Unlock()

	ch.Listen(
		func(frame models.InboundFrame) { c.handleEvent(epoch, frame) },
		func(err error) { c.log.Logf("[chat] channel error in room %d: %v", room.ID, err) },
	)

	// History hydration runs concurrently with live delivery: it
	// replaces the log wholesale, after which live events merge in.
	go c.hydrate(ctx, epoch, room.ID)
}

// hydrate fetches history and replaces the log, unless the room changed
// underneath it. A failed fetch leaves the log alone.
func (c *Controller) hydrate(ctx context.Context, epoch uint64, roomID int64) {
	msgs, err := c.api.RoomMessages(ctx, roomID)
	if err != nil {
		c.log.Logf("[chat] failed to load history for room %d: %v", roomID, err)
		return
	}
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.messages = msgs
	c.mu.Unlock()
	c.notify()
}

// handleEvent merges one live event into the log. Control frames (the
// save ack echoed to the sender, or error markers) are dropped; so is
// any event whose server id is already present, since the same message
// may arrive once via REST echo and once via the channel.
func (c *Controller) handleEvent(epoch uint64, frame models.InboundFrame) {
	if frame.Control() {
		return
	}
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	appended := c.appendLocked(frame.Message)
	c.mu.Unlock()
	if appended {
		c.notify()
	}
}

// appendLocked appends unless the id is a duplicate. Caller holds mu.
func (c *Controller) appendLocked(msg models.Message) bool {
	if msg.ID != 0 {
		for _, existing := range c.messages {
			if existing.ID == msg.ID {
				return false
			}
		}
	}
	if msg.LocalKey == "" {
		msg.LocalKey = uuid.NewString()
	}
	c.messages = append(c.messages, msg)
	return true
}

// SendMessage transmits over the live channel when it is open, falling
// back to a direct REST create otherwise. Exactly one path runs per
// call. Empty input or no active room is a silent no-op reported as not
// sent; a non-nil error means the message went nowhere and the UI
// should say so. Callers must only clear the draft when sent is true.
func (c *Controller) SendMessage(ctx context.Context, content string) (sent bool, err error) {
	content = strings.TrimSpace(content)

	c.mu.Lock()
	room := c.active
	ch := c.channel
	epoch := c.epoch
	c.mu.Unlock()

	if content == "" || room == nil {
		return false, nil
	}

	if ch != nil {
		err := ch.Send(models.OutboundFrame{Type: models.FrameTypeMessage, Content: content})
		if err == nil {
			// The echo arrives via the live channel.
			return true, nil
		}
		c.log.Logf("[chat] live send failed, falling back to REST: %v", err)
	}

	msg, err := c.api.CreateMessage(ctx, room.ID, content)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	appended := false
	if epoch == c.epoch {
		appended = c.appendLocked(*msg)
	}
	c.mu.Unlock()
	if appended {
		c.notify()
	}
	return true, nil
}

// Close tears down the active channel exactly like switching to no room.
func (c *Controller) Close() {
	c.SetActiveRoom(context.Background(), nil)
}
