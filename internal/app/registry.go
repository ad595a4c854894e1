package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/core"
	"github.com/JasonCastel/ChatIRC/internal/domain"
)

var (
	// ErrDuplicateSession means Register was called twice for one id.
	// A correct transport never does this; the check is a guard.
	ErrDuplicateSession = errors.New("duplicate session")
	// ErrUnknownSession means an event referenced a connection id that is
	// not registered. Non-fatal: the caller logs and drops the event.
	ErrUnknownSession = errors.New("unknown session")
)

type sessionEntry struct {
	Session domain.Session
	Conn    core.SignalConnection
	Cancel  context.CancelFunc
}

// ConnSnap pairs a session copy with its transport endpoint, taken under
// the registry lock so fan-out can run without holding it.
type ConnSnap struct {
	Session domain.Session
	Conn    core.SignalConnection
}

// Registry is the single source of truth mapping a live connection id to
// its display name and current room. All mutation goes through here and
// nothing here broadcasts; notification decisions belong to the router.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.SessionID]*sessionEntry)}
}

// Register creates an unbound session for a new connection id.
func (r *Registry) Register(id domain.SessionID, conn core.SignalConnection, cancel context.CancelFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		return ErrDuplicateSession
	}
	r.sessions[id] = &sessionEntry{
		Session: domain.Session{ID: id},
		Conn:    conn,
		Cancel:  cancel,
	}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("registered session")
	return nil
}

// Bind sets the name and room for an existing session, overwriting any
// previous binding, and returns the updated session.
func (r *Registry) Bind(id domain.SessionID, name string, room domain.RoomName) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, ErrUnknownSession
	}
	entry.Session.Name = name
	entry.Session.Room = room
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("room", string(room)).Msg("bound session")
	return entry.Session, nil
}

// Unregister removes the session entirely and returns it as it existed
// just before removal, so the caller can still notify its former room.
// A second call for the same id is a no-op reporting false.
func (r *Registry) Unregister(id domain.SessionID) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("unregistered session")
	return entry.Session, true
}

// Get returns a copy of the current session, or false if absent.
func (r *Registry) Get(id domain.SessionID) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.sessions[id]; ok {
		return entry.Session, true
	}
	return domain.Session{}, false
}

// ConnOf returns the transport endpoint for a session id.
func (r *Registry) ConnOf(id domain.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.sessions[id]; ok {
		return entry.Conn, true
	}
	return nil, false
}

// OccupantsOf returns a snapshot of every session currently bound to the
// room, in unspecified order.
func (r *Registry) OccupantsOf(room domain.RoomName) []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.sessions))
	for _, entry := range r.sessions {
		if entry.Session.Room == room && room != "" {
			out = append(out, ConnSnap{Session: entry.Session, Conn: entry.Conn})
		}
	}
	return out
}

// ActiveRooms returns the distinct set of room names held by any session.
func (r *Registry) ActiveRooms() []domain.RoomName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[domain.RoomName]struct{})
	out := make([]domain.RoomName, 0, len(r.sessions))
	for _, entry := range r.sessions {
		room := entry.Session.Room
		if room == "" {
			continue
		}
		if _, ok := seen[room]; ok {
			continue
		}
		seen[room] = struct{}{}
		out = append(out, room)
	}
	return out
}

// Snapshot returns every connected session regardless of room.
func (r *Registry) Snapshot() []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.sessions))
	for _, entry := range r.sessions {
		out = append(out, ConnSnap{Session: entry.Session, Conn: entry.Conn})
	}
	return out
}

// Cancel fires the per-connection cancel func, tearing down the pumps.
func (r *Registry) Cancel(id domain.SessionID) bool {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if entry.Cancel != nil {
		entry.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("canceled session")
	return true
}
