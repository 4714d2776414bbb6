// Package orch routes inbound events to registry mutations and fans the
// resulting events out to the right connections.
//
// Every handler holds the orchestrator lock for its whole
// read-mutate-broadcast sequence, so handlers are atomic with respect to
// each other and observers never see a half-applied change. Delivery only
// enqueues frames and never blocks while the lock is held.
package orch

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/protocol"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Policy   app.Policy

	mu sync.Mutex
}

func New(reg *app.Registry, policy app.Policy) *Orchestrator {
	return &Orchestrator{Registry: reg, Policy: policy}
}

// Connect registers a freshly upgraded transport connection. It is in the
// Unjoined state until it sends a join.
func (o *Orchestrator) Connect(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.BindSignal(sid, conn, cancel)
}

// Dispatch runs the handler of one decoded inbound event.
func (o *Orchestrator) Dispatch(sid core.SessionID, ev protocol.Event) error {
	switch ev := ev.(type) {
	case protocol.JoinEvent:
		return o.Join(sid, ev)
	case protocol.SendMessageEvent:
		o.SendMessage(sid, ev)
	case protocol.GetUsersEvent:
		return o.GetUsers(sid, ev)
	case protocol.GetRoomsEvent:
		o.GetRooms(sid)
	case protocol.GetGlobalUsersEvent:
		o.GetGlobalUsers(sid)
	default:
		return fmt.Errorf("%w: unhandled type %T", protocol.ErrMalformedEvent, ev)
	}
	return nil
}

// OnDisconnect is raised by the transport when a connection drops. The
// connection is terminal afterwards: its id is never joined again.
func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.Registry.Unbind(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("disconnect before join")
		return
	}
	log.Info().
		Str("module", "orch").
		Str("sid", string(sid)).
		Str("room", string(p.Room)).
		Str("username", p.Username).
		Int("remaining", o.Registry.MemberCount(p.Room)).
		Msg("left")
	o.toRoom(p.Room, protocol.NewSystemMessage(leftText(p.Username)))
	o.refresh("", p.Room)
}
