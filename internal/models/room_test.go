package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomLabel(t *testing.T) {
	tests := []struct {
		name string
		room Room
		want string
	}{
		{"pet with owner", Room{PetName: "Rex", PetOwnerUsername: "joana"}, "Rex - joana"},
		{"owner falls back to user1", Room{PetName: "Rex", User1Username: "joana"}, "Rex - joana"},
		{"owner falls back to user2", Room{PetName: "Rex", User2Username: "miguel"}, "Rex - miguel"},
		{"no usernames at all", Room{PetName: "Rex"}, "Rex - Unknown"},
		{"plain name", Room{ID: 4, Name: "general"}, "general"},
		{"nothing but an id", Room{ID: 4}, "Room 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.room.Label())
		})
	}
}

func TestInboundFrameControl(t *testing.T) {
	var frame InboundFrame
	require.NoError(t, json.Unmarshal([]byte(`{"saved":true,"id":12}`), &frame))
	require.True(t, frame.Control())

	frame = InboundFrame{}
	require.NoError(t, json.Unmarshal([]byte(`{"error":"Could not save message"}`), &frame))
	require.True(t, frame.Control())

	frame = InboundFrame{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"room":1,"sender_username":"ana","content":"hi"}`), &frame))
	require.False(t, frame.Control())
	require.Equal(t, "hi", frame.Content)
}
