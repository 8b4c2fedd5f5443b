package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"roveri/internal/api"
	"roveri/internal/models"
	"roveri/internal/utils"
)

// chatBackend fakes the room REST endpoints and the per-room websocket
// so controller behavior can be driven from the server side.
type chatBackend struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu          sync.Mutex
	history     map[int64][]models.Message
	historyGate map[int64]chan struct{}
	conns       map[int64][]*websocket.Conn
	wsDisabled  map[int64]bool
	nextID      int64

	posts int32
}

func newChatBackend(t *testing.T) *chatBackend {
	b := &chatBackend{
		t:           t,
		history:     map[int64][]models.Message{},
		historyGate: map[int64]chan struct{}{},
		conns:       map[int64][]*websocket.Conn{},
		wsDisabled:  map[int64]bool{},
		nextID:      100,
		upgrader:    websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chat/rooms/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Room{{ID: 1, PetName: "Rex"}, {ID: 2, PetName: "Mia"}})
	})
	mux.HandleFunc("GET /api/chat/rooms/{id}/messages/", b.handleHistory)
	mux.HandleFunc("POST /api/chat/rooms/{id}/messages/", b.handleCreate)
	mux.HandleFunc("/ws/chat/{id}/", b.handleWS)

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *chatBackend) roomID(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	require.NoError(b.t, err)
	return id
}

func (b *chatBackend) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := b.roomID(r)
	b.mu.Lock()
	gate := b.historyGate[id]
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	b.mu.Lock()
	msgs := append([]models.Message(nil), b.history[id]...)
	b.mu.Unlock()
	json.NewEncoder(w).Encode(msgs)
}

func (b *chatBackend) handleCreate(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&b.posts, 1)
	id := b.roomID(r)
	var in struct {
		Content string `json:"content"`
	}
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&in))
	b.mu.Lock()
	b.nextID++
	msg := models.Message{ID: b.nextID, Room: id, Content: in.Content, SenderUsername: "me"}
	b.history[id] = append(b.history[id], msg)
	b.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (b *chatBackend) handleWS(w http.ResponseWriter, r *http.Request) {
	id := b.roomID(r)
	b.mu.Lock()
	disabled := b.wsDisabled[id]
	b.mu.Unlock()
	if disabled {
		http.Error(w, "no websocket here", http.StatusBadRequest)
		return
	}
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.mu.Lock()
	b.conns[id] = append(b.conns[id], conn)
	b.mu.Unlock()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// push broadcasts a frame to every socket open for the room. Write
// errors are ignored: a torn-down peer is a valid target here.
func (b *chatBackend) push(roomID int64, frame any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, conn := range b.conns[roomID] {
		_ = conn.WriteJSON(frame)
	}
}

func (b *chatBackend) connCount(roomID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns[roomID])
}

func newTestController(t *testing.T, backend *chatBackend) *Controller {
	t.Helper()
	log, err := utils.NewRemoteLogger(0)
	require.NoError(t, err)
	client, err := api.NewClient(backend.srv.URL+"/api/", tokenStub{}, log)
	require.NoError(t, err)
	return NewController(client, log)
}

type tokenStub struct{}

func (tokenStub) LoadTokens() (string, string, error) { return "", "", nil }
func (tokenStub) SaveTokens(string, string) error     { return nil }
func (tokenStub) ClearTokens() error                  { return nil }

func waitForMessages(t *testing.T, c *Controller, want int) []models.Message {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(c.Messages()) == want
	}, 2*time.Second, 10*time.Millisecond, "expected %d messages, have %d", want, len(c.Messages()))
	return c.Messages()
}

func TestLiveEventDeduplication(t *testing.T) {
	backend := newChatBackend(t)
	backend.mu.Lock()
	backend.history[1] = []models.Message{{ID: 1, Room: 1, Content: "seed"}}
	backend.mu.Unlock()

	c := newTestController(t, backend)
	defer c.Close()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	// Hydration replaces the log wholesale; push only after it landed.
	waitForMessages(t, c, 1)

	frame := models.InboundFrame{Message: models.Message{ID: 7, Content: "hello", SenderUsername: "ana"}}
	backend.push(1, frame)
	backend.push(1, frame)

	msgs := waitForMessages(t, c, 2)
	require.Equal(t, int64(7), msgs[1].ID)

	// A different id still appends.
	backend.push(1, models.InboundFrame{Message: models.Message{ID: 8, Content: "again"}})
	waitForMessages(t, c, 3)
}

func TestControlFramesNeverEnterLog(t *testing.T) {
	backend := newChatBackend(t)
	backend.mu.Lock()
	backend.history[1] = []models.Message{{ID: 1, Room: 1, Content: "seed"}}
	backend.mu.Unlock()

	c := newTestController(t, backend)
	defer c.Close()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	waitForMessages(t, c, 1)

	saved := true
	backend.push(1, models.InboundFrame{Saved: &saved, Message: models.Message{ID: 5}})
	backend.push(1, map[string]string{"error": "Could not save message"})
	backend.push(1, models.InboundFrame{Message: models.Message{ID: 6, Content: "real"}})

	msgs := waitForMessages(t, c, 2)
	require.Equal(t, "real", msgs[1].Content, "only the real message landed")
}

func TestLateHistoryDoesNotMutateNextRoom(t *testing.T) {
	backend := newChatBackend(t)
	c := newTestController(t, backend)
	defer c.Close()

	gate := make(chan struct{})
	backend.mu.Lock()
	backend.historyGate[1] = gate
	backend.history[1] = []models.Message{{ID: 10, Room: 1, Content: "from room A"}}
	backend.history[2] = []models.Message{{ID: 20, Room: 2, Content: "from room B"}}
	backend.mu.Unlock()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	require.Eventually(t, func() bool { return backend.connCount(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	// Switch before room A's history resolves.
	c.SetActiveRoom(context.Background(), &models.Room{ID: 2})
	msgs := waitForMessages(t, c, 1)
	require.Equal(t, int64(20), msgs[0].ID)

	// Room A's fetch resolves late; it must be discarded.
	close(gate)
	time.Sleep(100 * time.Millisecond)
	msgs = c.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, int64(20), msgs[0].ID, "stale history never reached room B's log")
}

func TestSendMessageNoops(t *testing.T) {
	backend := newChatBackend(t)
	c := newTestController(t, backend)
	defer c.Close()

	// No active room. Not sent, so the caller keeps the draft.
	sent, err := c.SendMessage(context.Background(), "hello")
	require.NoError(t, err)
	require.False(t, sent)
	require.Empty(t, c.Messages())

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	require.Eventually(t, func() bool { return backend.connCount(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	// Whitespace-only content.
	sent, err = c.SendMessage(context.Background(), "   ")
	require.NoError(t, err)
	require.False(t, sent)
	time.Sleep(50 * time.Millisecond)
	require.Empty(t, c.Messages())
	require.EqualValues(t, 0, atomic.LoadInt32(&backend.posts), "nothing was posted")
}

func TestSendFallsBackToRESTWhenChannelUnavailable(t *testing.T) {
	backend := newChatBackend(t)
	backend.mu.Lock()
	backend.wsDisabled[1] = true
	backend.mu.Unlock()

	c := newTestController(t, backend)
	defer c.Close()

	// Channel never opens; the room is still usable through REST.
	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	sent, err := c.SendMessage(context.Background(), "fallback hi")
	require.NoError(t, err)
	require.True(t, sent, "accepted sends report so, clearing the draft")

	msgs := waitForMessages(t, c, 1)
	require.Equal(t, "fallback hi", msgs[0].Content)
	require.NotZero(t, msgs[0].ID, "REST response appended directly")
	require.EqualValues(t, 1, atomic.LoadInt32(&backend.posts))
}

func TestRESTEchoNotDuplicatedAgainstExistingLog(t *testing.T) {
	backend := newChatBackend(t)
	backend.mu.Lock()
	backend.wsDisabled[1] = true
	backend.mu.Unlock()

	c := newTestController(t, backend)
	defer c.Close()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	sent, err := c.SendMessage(context.Background(), "first")
	require.NoError(t, err)
	require.True(t, sent)
	msgs := waitForMessages(t, c, 1)
	createdID := msgs[0].ID

	// Feed the same id in again, as a live event would.
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()
	c.handleEvent(epoch, models.InboundFrame{Message: models.Message{ID: createdID, Content: "first"}})
	require.Len(t, c.Messages(), 1, "same server id never appears twice")
}

func TestRoomSwitchTearsDownOldChannel(t *testing.T) {
	backend := newChatBackend(t)
	c := newTestController(t, backend)
	defer c.Close()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	require.Eventually(t, func() bool { return backend.connCount(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	c.SetActiveRoom(context.Background(), &models.Room{ID: 2})
	require.Eventually(t, func() bool { return backend.connCount(2) == 1 }, 2*time.Second, 10*time.Millisecond)

	// Events pushed on room 1's (closed) channel never land in room 2's log.
	backend.push(1, models.InboundFrame{Message: models.Message{ID: 99, Content: "ghost"}})
	time.Sleep(100 * time.Millisecond)
	for _, m := range c.Messages() {
		require.NotEqual(t, int64(99), m.ID)
	}
}

func TestSetActiveRoomNilClearsLog(t *testing.T) {
	backend := newChatBackend(t)
	backend.mu.Lock()
	backend.history[1] = []models.Message{{ID: 1, Content: "old"}}
	backend.mu.Unlock()

	c := newTestController(t, backend)
	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	waitForMessages(t, c, 1)

	c.SetActiveRoom(context.Background(), nil)
	require.Empty(t, c.Messages())
	require.Nil(t, c.ActiveRoom())
}

func TestFailedHistoryFetchLeavesLogUntouched(t *testing.T) {
	backend := newChatBackend(t)
	backend.mu.Lock()
	backend.history[1] = []models.Message{{ID: 1, Content: "kept"}}
	backend.mu.Unlock()

	c := newTestController(t, backend)
	defer c.Close()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	waitForMessages(t, c, 1)

	// Re-activate the same room while history now fails.
	backend.srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	time.Sleep(100 * time.Millisecond)
	// The dial failed, so hydration never ran and the log kept its
	// previous entries.
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "kept", msgs[0].Content)
}

func TestListRoomsDoesNotTouchChannel(t *testing.T) {
	backend := newChatBackend(t)
	c := newTestController(t, backend)
	defer c.Close()

	c.SetActiveRoom(context.Background(), &models.Room{ID: 1})
	require.Eventually(t, func() bool { return backend.connCount(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	rooms, err := c.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, 1, backend.connCount(1), "channel untouched by a room list refresh")

	got, err := c.RoomByID(2)
	require.NoError(t, err)
	require.Equal(t, "Mia", got.PetName)

	_, err = c.RoomByID(99)
	require.ErrorIs(t, err, models.ErrRoomNotFound)
}
