package app

import (
	"sort"

	"github.com/JasonCastel/ChatIRC/internal/domain"
)

// Directory is the read side of the registry: which rooms are live and
// who occupies each. It holds no state of its own; every call recomputes
// from the registry's current contents.
type Directory struct {
	reg *Registry
}

func NewDirectory(reg *Registry) *Directory {
	return &Directory{reg: reg}
}

// OccupantsOf returns session copies for every occupant of the room,
// without transport fields.
func (d *Directory) OccupantsOf(room domain.RoomName) []domain.Session {
	snaps := d.reg.OccupantsOf(room)
	out := make([]domain.Session, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snap.Session)
	}
	return out
}

// ActiveRooms returns every room with at least one occupant, sorted so
// that roomList payloads are stable.
func (d *Directory) ActiveRooms() []domain.RoomName {
	rooms := d.reg.ActiveRooms()
	sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })
	return rooms
}

// RoomInfo is a read-only view for the REST listing.
type RoomInfo struct {
	Name          domain.RoomName `json:"name"`
	OccupantCount int             `json:"occupant_count"`
}

// List returns active rooms with occupant counts, sorted by name.
func (d *Directory) List() []RoomInfo {
	rooms := d.ActiveRooms()
	out := make([]RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, RoomInfo{Name: room, OccupantCount: len(d.reg.OccupantsOf(room))})
	}
	return out
}
