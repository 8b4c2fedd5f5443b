package api

import (
	"context"
	"fmt"
	"net/http"

	"roveri/internal/models"
)

// Admin user actions understood by the backend.
const (
	AdminBlock   = "block"
	AdminUnblock = "unblock"
	AdminDelete  = "delete"
)

// ListUsers fetches every account. Staff only; others get a 403.
func (c *Client) ListUsers(ctx context.Context) ([]models.Identity, error) {
	return getList[models.Identity](ctx, c, "accounts/admin/users/")
}

// UserAction applies block/unblock/delete to an account.
func (c *Client) UserAction(ctx context.Context, userID int64, action string) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("accounts/admin/users/%d/%s/", userID, action), nil, nil)
}
