package route

import (
	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// Message relays a chat line to every occupant of the sender's room,
// the sender included. Arriving while unbound is a normal race between
// a leave and an in-flight event, so it is dropped without noise.
func (rt *Router) Message(id domain.SessionID, name, text string) {
	sess, ok := rt.Registry.Get(id)
	if !ok {
		log.Warn().Str("module", "route").Str("sid", string(id)).Msg("message from unknown session")
		return
	}
	if !sess.Bound() {
		log.Debug().Str("module", "route").Str("sid", string(id)).Msg("message while unbound, dropped")
		return
	}
	rt.Send.ToRoom(sess.Room, rt.chatMessage(name, text))
}

// Activity relays a typing notice to the sender's room, minus the sender.
func (rt *Router) Activity(id domain.SessionID, name string) {
	sess, ok := rt.Registry.Get(id)
	if !ok {
		log.Warn().Str("module", "route").Str("sid", string(id)).Msg("activity from unknown session")
		return
	}
	if !sess.Bound() {
		log.Debug().Str("module", "route").Str("sid", string(id)).Msg("activity while unbound, dropped")
		return
	}
	rt.Send.ToRoomExceptCaller(sess.Room, id, TypingNotice{Type: EventActivity, Name: name})
}
