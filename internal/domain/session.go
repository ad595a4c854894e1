// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const (
	MaxNameLen = 36
	MaxRoomLen = 36
)

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
	ErrRoomEmpty   = errors.New("room empty")
	ErrRoomTooLong = errors.New("room too long")
)

type (
	SessionID string
	RoomName  string
)

// Session is the server-side record of one live connection: its identity,
// display name, and current room. An empty Room means the connection is
// not joined to any room yet.
type Session struct {
	ID   SessionID `json:"id"`
	Name string    `json:"name"`
	Room RoomName  `json:"room,omitempty"`
}

// Bound reports whether the session currently occupies a room.
func (s Session) Bound() bool {
	return s.Room != ""
}

// ValidateBinding checks a name/room pair before it may be applied to a
// session. Adapters reject bad input up front, but the router checks again
// so a malformed binding can never be created.
func ValidateBinding(name string, room RoomName) error {
	if len(name) == 0 {
		return ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	if len(room) == 0 {
		return ErrRoomEmpty
	}
	if len(room) > MaxRoomLen {
		return ErrRoomTooLong
	}
	return nil
}
