package core

import "github.com/JasonCastel/ChatIRC/internal/domain"

// Frame is a raw wire payload (JSON-encoded event envelope).
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Broadcaster delivers one outbound event to a computed set of recipient
// connections. Calls return once the frame is handed to each transport's
// send queue; there is no delivery acknowledgment in this protocol.
// Implementations must snapshot the recipient set at call time and must
// never be invoked while the registry lock is held.
type Broadcaster interface {
	ToCaller(id domain.SessionID, v any)
	ToRoom(room domain.RoomName, v any)
	ToRoomExceptCaller(room domain.RoomName, id domain.SessionID, v any)
	ToAll(v any)
}
