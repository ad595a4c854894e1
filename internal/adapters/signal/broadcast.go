package signal

import (
	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// The four delivery scopes of the protocol. Recipient sets are snapshotted
// from the registry at call time, after the triggering mutation committed,
// so a broadcast never reaches a fully disconnected session and never
// misses one that joined in the same transition. Delivery is best-effort:
// a full send buffer drops the frame for that connection only.

func (ctl *ChatWSController) ToCaller(id domain.SessionID, v any) {
	frame, ok := encode(v)
	if !ok {
		return
	}
	if conn, ok := ctl.Registry.ConnOf(id); ok {
		_ = conn.TrySend(frame)
	}
}

func (ctl *ChatWSController) ToRoom(room domain.RoomName, v any) {
	frame, ok := encode(v)
	if !ok {
		return
	}
	for _, snap := range ctl.Registry.OccupantsOf(room) {
		_ = snap.Conn.TrySend(frame)
	}
}

func (ctl *ChatWSController) ToRoomExceptCaller(room domain.RoomName, id domain.SessionID, v any) {
	frame, ok := encode(v)
	if !ok {
		return
	}
	for _, snap := range ctl.Registry.OccupantsOf(room) {
		if snap.Session.ID == id {
			continue
		}
		_ = snap.Conn.TrySend(frame)
	}
}

func (ctl *ChatWSController) ToAll(v any) {
	frame, ok := encode(v)
	if !ok {
		return
	}
	for _, snap := range ctl.Registry.Snapshot() {
		_ = snap.Conn.TrySend(frame)
	}
}
