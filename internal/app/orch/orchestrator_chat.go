package orch

import (
	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/protocol"
	"github.com/rs/zerolog/log"
)

const (
	ShrugText      = `¯\_(ツ)_/¯`
	AnnouncePrefix = "📢 ANNOUNCEMENT: "

	nickUsage  = "Usage: /nick <name> (1-36 characters)"
	prankUsage = "Usage: /prank <name> <message>"
)

func renamedText(old, name string) string { return old + " is now known as " + name }
func unknownText(word string) string      { return "Unknown command: " + word }

// SendMessage relays chat text to the sender's room, or runs it as a
// command when it starts with the sigil. Messages from connections that
// have not joined are ignored.
func (o *Orchestrator) SendMessage(sid core.SessionID, ev protocol.SendMessageEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.Registry.Get(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("message from unjoined connection")
		return
	}

	cmd, isCmd := app.ParseCommand(ev.Message)
	if !isCmd {
		o.toRoom(p.Room, protocol.NewChatMessage(p.Username, ev.Message))
		return
	}
	log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("command", cmd.Name).Msg("command")

	switch cmd.Name {
	case app.CmdNick:
		o.nick(sid, p, cmd)
	case app.CmdAnnounce:
		if cmd.Rest == "" {
			return
		}
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("username", p.Username).Msg("announcement")
		o.toAll(protocol.NewSystemMessage(AnnouncePrefix + cmd.Rest))
	case app.CmdShrug:
		o.toRoom(p.Room, protocol.NewChatMessage(p.Username, ShrugText))
	case app.CmdPrank:
		o.prank(sid, p, cmd)
	default:
		o.unicast(sid, protocol.NewSystemMessage(unknownText(cmd.Word)))
	}
}

// nick without an argument is dropped on purpose.
func (o *Orchestrator) nick(sid core.SessionID, p domain.Presence, cmd app.Command) {
	arg, ok := cmd.Arg(0)
	if !ok {
		return
	}
	name, err := domain.NormalizeUsername(arg)
	if err != nil {
		o.unicast(sid, protocol.NewSystemMessage(nickUsage))
		return
	}
	old, ok := o.Registry.Rename(sid, name)
	if !ok {
		return
	}
	o.toRoom(p.Room, protocol.NewSystemMessage(renamedText(old, name)))
	o.refresh(sid, p.Room)
}

func (o *Orchestrator) prank(sid core.SessionID, p domain.Presence, cmd app.Command) {
	if len(cmd.Args) < 2 {
		o.unicast(sid, protocol.NewSystemMessage(prankUsage))
		return
	}
	spoofed, err := domain.NormalizeUsername(cmd.Args[0])
	if err != nil {
		o.unicast(sid, protocol.NewSystemMessage(prankUsage))
		return
	}
	text := cmd.Args[1]
	log.Info().
		Str("module", "orch").
		Str("sid", string(sid)).
		Str("real_sender", p.Username).
		Str("spoofed", spoofed).
		Str("room", string(p.Room)).
		Msg("prank")
	o.toRoom(p.Room, protocol.NewPrankMessage(spoofed, text, p.Username))
}
