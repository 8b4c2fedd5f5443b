package models

import "roveri/internal/utils"

var (
	ErrRoomNotFound     = utils.ChatError("room not found")
	ErrChannelClosed    = utils.ChatError("live channel is closed")
	ErrNotAuthenticated = utils.AuthError("not authenticated")
)
