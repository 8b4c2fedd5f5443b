package api

import (
	"context"
	"fmt"
	"net/http"

	"roveri/internal/models"
)

// ListRooms fetches the caller's chat rooms.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	return getList[models.Room](ctx, c, "chat/rooms/")
}

// RoomMessages fetches a room's full message history, oldest first.
func (c *Client) RoomMessages(ctx context.Context, roomID int64) ([]models.Message, error) {
	return getList[models.Message](ctx, c, fmt.Sprintf("chat/rooms/%d/messages/", roomID))
}

// CreateMessage posts a message directly to the room's collection. This
// is the fallback path when the live channel cannot take the send; the
// created message comes back for direct append (no live echo will
// arrive for it on a channel that never accepted the send).
func (c *Client) CreateMessage(ctx context.Context, roomID int64, content string) (*models.Message, error) {
	payload := map[string]string{"content": content}
	var out models.Message
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("chat/rooms/%d/messages/", roomID), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenRoom asks the backend for the room tied to a pet conversation,
// creating it if needed. Used by the pet detail screen's adopt action.
func (c *Client) OpenRoom(ctx context.Context, petID int64) (*models.Room, error) {
	payload := map[string]int64{"pet_id": petID}
	var out models.Room
	if err := c.sendJSON(ctx, http.MethodPost, "chat/rooms/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
