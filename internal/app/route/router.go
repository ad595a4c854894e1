// Package route is the protocol state machine: it validates inbound
// client events against session state, mutates the registry, and decides
// which outbound notifications must fire. One method per inbound event,
// so every transition is testable in isolation.
package route

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/app"
	"github.com/JasonCastel/ChatIRC/internal/core"
	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// AdminName is the pseudo-sender of server-generated notices.
const AdminName = "Admin"

const welcomeText = "Welcome to ChatIRC!"

type Router struct {
	Registry *app.Registry
	Rooms    *app.Directory
	Send     core.Broadcaster

	// Now is the clock used to stamp chat messages. Tests override it.
	Now func() time.Time

	validate *validator.Validate
}

func NewRouter(reg *app.Registry, rooms *app.Directory, send core.Broadcaster) *Router {
	return &Router{
		Registry: reg,
		Rooms:    rooms,
		Send:     send,
		Now:      time.Now,
		validate: validator.New(),
	}
}

// Connect registers an unbound session for a fresh connection and greets
// it. Only the new connection sees the welcome.
func (rt *Router) Connect(id domain.SessionID, conn core.SignalConnection, cancel context.CancelFunc) error {
	if err := rt.Registry.Register(id, conn, cancel); err != nil {
		log.Warn().Err(err).Str("module", "route").Str("sid", string(id)).Msg("connect rejected")
		return err
	}
	rt.Send.ToCaller(id, rt.systemMessage(welcomeText))
	return nil
}

// Disconnect removes the session and, if it occupied a room, tells the
// remaining occupants and refreshes the room directory everywhere.
// A second call for the same id does nothing.
func (rt *Router) Disconnect(id domain.SessionID) {
	sess, ok := rt.Registry.Unregister(id)
	if !ok {
		log.Debug().Str("module", "route").Str("sid", string(id)).Msg("disconnect for unknown session")
		return
	}
	if !sess.Bound() {
		return
	}
	rt.Send.ToRoom(sess.Room, rt.systemMessage(fmt.Sprintf("%s has left the room", sess.Name)))
	rt.Send.ToRoom(sess.Room, rt.userList(sess.Room))
	rt.Send.ToAll(rt.roomList())
}

func (rt *Router) chatMessage(name, text string) ChatMessage {
	return NewChatMessage(name, text, rt.Now())
}

func (rt *Router) systemMessage(text string) ChatMessage {
	return rt.chatMessage(AdminName, text)
}

func (rt *Router) userList(room domain.RoomName) UserList {
	return UserList{Type: EventUserList, Users: rt.Rooms.OccupantsOf(room)}
}

func (rt *Router) roomList() RoomList {
	return RoomList{Type: EventRoomList, Rooms: rt.Rooms.ActiveRooms()}
}
