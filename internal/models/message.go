package models

// Message is one chat log entry. ID is server-assigned and may be zero
// for optimistic local echoes; LocalKey keeps those renderable and
// uniquely keyed until (if ever) a server id shows up.
type Message struct {
	ID             int64  `json:"id,omitempty"`
	Room           int64  `json:"room,omitempty"`
	Sender         int64  `json:"sender,omitempty"`
	SenderUsername string `json:"sender_username,omitempty"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp,omitempty"`

	LocalKey string `json:"-"`
}

// OutboundFrame is what the client writes to the live channel.
type OutboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

const FrameTypeMessage = "message"

// InboundFrame is anything the live channel delivers: either a chat
// message or a control frame (the save acknowledgement the server sends
// back to the origin sender, or an error marker).
type InboundFrame struct {
	Message
	Saved *bool  `json:"saved,omitempty"`
	Error string `json:"error,omitempty"`
}

// Control reports whether the frame is an ack/error marker rather than
// a chat message. Control frames never enter the message log.
func (f *InboundFrame) Control() bool {
	return f.Saved != nil || f.Error != ""
}
