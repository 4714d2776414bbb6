package orch

import (
	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Callers hold o.mu.

func (o *Orchestrator) unicast(sid core.SessionID, v any) core.PublishResult {
	conn, ok := o.Registry.Signal(sid)
	if !ok {
		return core.PublishResult{}
	}
	return o.publish(core.ScopeUnicast, []app.SessionSnap{{SID: sid, Signal: conn}}, v)
}

func (o *Orchestrator) toRoom(room domain.RoomName, v any) core.PublishResult {
	return o.publish(core.ScopeRoom, o.Registry.SignalsOfRoom(room), v)
}

func (o *Orchestrator) toAll(v any) core.PublishResult {
	return o.publish(core.ScopeGlobal, o.Registry.AllSignals(), v)
}

// publish encodes v once and offers it to every target. A failed delivery
// only affects that target.
func (o *Orchestrator) publish(scope core.Scope, targets []app.SessionSnap, v any) core.PublishResult {
	res := core.PublishResult{}
	if len(targets) == 0 {
		return res
	}
	frame, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("scope", scope.String()).Msg("encode event")
		return res
	}

	for _, t := range targets {
		if err := t.Signal.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "orch").Str("sid", string(t.SID)).Str("scope", scope.String()).Msg("delivery failed")
			res.Dropped = append(res.Dropped, t.SID)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "orch").Str("scope", scope.String()).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")

	o.applyPolicy(res)
	return res
}

func (o *Orchestrator) applyPolicy(res core.PublishResult) {
	if o.Policy == nil {
		return
	}
	for _, sid := range res.Dropped {
		switch o.Policy.OnBackPressure(sid) {
		case app.KickMember:
			o.Registry.Cancel(sid)
		case app.NoAction:
		}
	}
}

// refresh sends the room member list back to the connection that changed
// presence (none when empty) and the room list to everyone.
func (o *Orchestrator) refresh(sid core.SessionID, room domain.RoomName) {
	if sid != "" {
		o.unicast(sid, protocol.NewUserList(string(room), o.Registry.RoomMembers(room)))
	}
	o.toAll(protocol.NewRoomList(o.Registry.ActiveRooms()))
}
