package app

import (
	"context"
	"sync"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Signal core.SignalConnection
	Cancel context.CancelFunc
}

type presenceEntry struct {
	presence domain.Presence
	seq      uint64
}

// Registry is the single source of truth for live connections and for who
// is online in which room. Sessions hold every live transport connection,
// users hold the presence record of the joined ones. A users key always has
// a matching sessions key.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	users    map[core.SessionID]*presenceEntry
	rooms    map[domain.RoomName]int
	seq      uint64
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		users:    make(map[core.SessionID]*presenceEntry),
		rooms:    make(map[domain.RoomName]int),
	}
}

// BindSignal registers a live transport connection.
func (r *Registry) BindSignal(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Signal: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("connections", len(r.sessions)).Msg("bound signal")
}

// Unbind drops the connection and its presence record. The removed
// presence is returned so callers know which room to refresh.
func (r *Registry) Unbind(sid core.SessionID) (domain.Presence, bool) {
	r.mu.Lock()
	delete(r.sessions, sid)
	n := len(r.sessions)
	r.mu.Unlock()

	p, ok := r.Remove(sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("connections", n).Msg("unbind session")
	return p, ok
}

func (r *Registry) IsBound(sid core.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[sid]
	return ok
}

func (r *Registry) Signal(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Signal, true
	}
	return nil, false
}

// Connections returns the number of live transport connections.
func (r *Registry) Connections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Upsert inserts or replaces the presence record of sid. It returns the
// record it replaced, if any.
func (r *Registry) Upsert(sid core.SessionID, username string, room domain.RoomName) (domain.Presence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, replaced := r.removeLocked(sid)
	r.seq++
	r.users[sid] = &presenceEntry{
		presence: domain.Presence{Username: username, Room: room},
		seq:      r.seq,
	}
	r.rooms[room]++
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", username).Str("room", string(room)).Msg("upsert presence")
	return prev, replaced
}

// Rename changes the display name in place and keeps the room. It is a
// no-op for an unknown sid.
func (r *Registry) Rename(sid core.SessionID, username string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.users[sid]
	if !ok {
		return "", false
	}
	old := e.presence.Username
	e.presence.Username = username
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("old", old).Str("username", username).Msg("updated username")
	return old, true
}

// Remove drops the presence record of sid and returns it.
func (r *Registry) Remove(sid core.SessionID) (domain.Presence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(sid)
}

func (r *Registry) removeLocked(sid core.SessionID) (domain.Presence, bool) {
	e, ok := r.users[sid]
	if !ok {
		return domain.Presence{}, false
	}
	delete(r.users, sid)
	if r.rooms[e.presence.Room] <= 1 {
		delete(r.rooms, e.presence.Room)
	} else {
		r.rooms[e.presence.Room]--
	}
	return e.presence, true
}

// Get looks up the presence of sid. Absent means the connection has not
// joined yet or is gone.
func (r *Registry) Get(sid core.SessionID) (domain.Presence, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.users[sid]; ok {
		return e.presence, true
	}
	return domain.Presence{}, false
}

// SessionSnap pairs a connection id with its transport endpoint.
type SessionSnap struct {
	SID    core.SessionID
	Signal core.SignalConnection
}

// AllSignals snapshots every live connection, joined or not.
func (r *Registry) AllSignals() []SessionSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SessionSnap, 0, len(r.sessions))
	for sid, e := range r.sessions {
		out = append(out, SessionSnap{SID: sid, Signal: e.Signal})
	}
	return out
}

// SignalsOfRoom snapshots the connections whose presence is in room.
func (r *Registry) SignalsOfRoom(room domain.RoomName) []SessionSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SessionSnap, 0, r.rooms[room])
	for sid, u := range r.users {
		if u.presence.Room != room {
			continue
		}
		if e, ok := r.sessions[sid]; ok {
			out = append(out, SessionSnap{SID: sid, Signal: e.Signal})
		}
	}
	return out
}

// Cancel stops the connection's pumps. The transport then reports the
// disconnect through the usual path.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
