package route

import (
	"time"

	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// Canonical outbound event names. The room-list update uses one spelling
// on every path; clients listen for exactly these strings.
const (
	EventMessage  = "message"
	EventUserList = "userList"
	EventRoomList = "roomList"
	EventActivity = "activity"
)

// timeLayout is the hour:minute:second stamp attached to chat messages.
const timeLayout = "15:04:05"

// ChatMessage is a chat line fanned out to a room, system notices
// included. Time is stamped at broadcast decision, not at send.
type ChatMessage struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Text string `json:"text"`
	Time string `json:"time"`
}

func NewChatMessage(name, text string, at time.Time) ChatMessage {
	return ChatMessage{
		Type: EventMessage,
		Name: name,
		Text: text,
		Time: at.Format(timeLayout),
	}
}

// UserList carries a room's full occupant set after any join or leave
// affecting that room.
type UserList struct {
	Type  string           `json:"type"`
	Users []domain.Session `json:"users"`
}

// RoomList carries the set of active rooms, sent to every connection
// after that set changes.
type RoomList struct {
	Type  string            `json:"type"`
	Rooms []domain.RoomName `json:"rooms"`
}

// TypingNotice is the ephemeral typing indicator. Expiry is a client
// display concern; the server only relays it.
type TypingNotice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}
