package route

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/app"
	"github.com/JasonCastel/ChatIRC/internal/domain"
)

type enterRoomRequest struct {
	Name string `validate:"required,max=36"`
	Room string `validate:"required,max=36"`
}

// EnterRoom moves the session into a room, leaving its previous room
// first if it had one. Rejoining the same room still fires the full
// leave/join notice pair; the protocol does not special-case a no-op
// rejoin. A rejected request changes no state and broadcasts nothing.
func (rt *Router) EnterRoom(id domain.SessionID, name string, room domain.RoomName) error {
	if err := rt.validate.Struct(enterRoomRequest{Name: name, Room: string(room)}); err != nil {
		log.Warn().Err(err).Str("module", "route").Str("sid", string(id)).Msg("invalid enterRoom request")
		return err
	}

	prev, ok := rt.Registry.Get(id)
	if !ok {
		log.Warn().Str("module", "route").Str("sid", string(id)).Msg("enterRoom for unknown session")
		return app.ErrUnknownSession
	}
	sess, err := rt.Registry.Bind(id, name, room)
	if err != nil {
		return err
	}
	log.Info().Str("module", "route").Str("sid", string(id)).
		Str("room", string(room)).Str("prev", string(prev.Room)).Msg("enter room")

	// The leave notice and refreshed occupant list address the old room's
	// remaining occupants. The mover is excluded explicitly: after a
	// same-room rejoin they are an occupant again, and must not see
	// their own leave.
	if prev.Bound() {
		rt.Send.ToRoomExceptCaller(prev.Room, id, rt.systemMessage(fmt.Sprintf("%s has left the room", name)))
		rt.Send.ToRoomExceptCaller(prev.Room, id, rt.userList(prev.Room))
	}

	rt.Send.ToCaller(id, rt.systemMessage(fmt.Sprintf("You have joined %s", sess.Room)))
	rt.Send.ToRoomExceptCaller(sess.Room, id, rt.systemMessage(fmt.Sprintf("%s has joined the room", name)))
	rt.Send.ToRoom(sess.Room, rt.userList(sess.Room))
	rt.Send.ToAll(rt.roomList())
	return nil
}
