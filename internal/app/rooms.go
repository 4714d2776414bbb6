package app

import (
	"cmp"
	"slices"

	"github.com/dkeye/Lobby/internal/domain"
	"github.com/samber/lo"
)

// Rooms are never stored. A room is listed while at least one joined
// connection has it as its room; rooms keeps a member count per name so
// the listing does not have to scan every record.

// RoomMembers returns the display names in room, in join order.
func (r *Registry) RoomMembers(room domain.RoomName) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.FilterMap(r.orderedLocked(), func(e *presenceEntry, _ int) (string, bool) {
		return e.presence.Username, e.presence.Room == room
	})
}

// ActiveRooms returns every room with at least one member, sorted.
func (r *Registry) ActiveRooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := lo.Map(lo.Keys(r.rooms), func(name domain.RoomName, _ int) string {
		return string(name)
	})
	slices.Sort(rooms)
	return rooms
}

// DisplayNames returns the name of every joined connection, in join order.
func (r *Registry) DisplayNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.orderedLocked(), func(e *presenceEntry, _ int) string {
		return e.presence.Username
	})
}

func (r *Registry) MemberCount(room domain.RoomName) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[room]
}

func (r *Registry) orderedLocked() []*presenceEntry {
	entries := lo.Values(r.users)
	slices.SortFunc(entries, func(a, b *presenceEntry) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return entries
}
