package orch

import (
	"fmt"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/protocol"
	"github.com/rs/zerolog/log"
)

func joinedText(username string) string { return username + " has joined the room." }
func leftText(username string) string   { return username + " has left the room." }

// Join records the presence of sid in a room. Joining again moves the
// connection; the old room is told it left.
func (o *Orchestrator) Join(sid core.SessionID, ev protocol.JoinEvent) error {
	username, err := domain.NormalizeUsername(ev.Username)
	if err != nil {
		return fmt.Errorf("%w: join: %w", protocol.ErrMalformedEvent, err)
	}
	room, err := domain.NewRoomName(ev.Room)
	if err != nil {
		return fmt.Errorf("%w: join: %w", protocol.ErrMalformedEvent, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.Registry.IsBound(sid) {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("join from unknown connection")
		return nil
	}

	prev, replaced := o.Registry.Upsert(sid, username, room)
	if replaced && prev.Room != room {
		o.toRoom(prev.Room, protocol.NewSystemMessage(leftText(prev.Username)))
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(prev.Room)).Msg("moved out of room")
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Str("username", username).Msg("joined")

	o.toRoom(room, protocol.NewSystemMessage(joinedText(username)))
	o.refresh(sid, room)
	return nil
}

func (o *Orchestrator) GetUsers(sid core.SessionID, ev protocol.GetUsersEvent) error {
	room, err := domain.NewRoomName(ev.Room)
	if err != nil {
		return fmt.Errorf("%w: get_users: %w", protocol.ErrMalformedEvent, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unicast(sid, protocol.NewUserList(string(room), o.Registry.RoomMembers(room)))
	return nil
}

func (o *Orchestrator) GetRooms(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unicast(sid, protocol.NewRoomList(o.Registry.ActiveRooms()))
}

func (o *Orchestrator) GetGlobalUsers(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unicast(sid, protocol.NewGlobalUserList(o.Registry.DisplayNames()))
}
