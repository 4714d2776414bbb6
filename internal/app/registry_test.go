package app

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type nopSignal struct{}

func (nopSignal) TrySend(core.Frame) error { return nil }
func (nopSignal) Close()                   {}

func TestRegistry_JoinSingleRoom(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	// Given alice joined room1
	reg.BindSignal("conn1", nopSignal{}, nil)
	_, replaced := reg.Upsert("conn1", "alice", "room1")

	// Then room1 is the only room and alice its only member
	req.False(replaced)
	req.Equal([]string{"room1"}, reg.ActiveRooms())
	req.Equal([]string{"alice"}, reg.RoomMembers("room1"))
	req.Equal([]string{"alice"}, reg.DisplayNames())
}

func TestRegistry_UpsertReplacesPriorRecord(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	reg.Upsert("conn1", "alice", "room1")
	prev, replaced := reg.Upsert("conn1", "alice", "room2")

	req.True(replaced)
	req.Equal(domain.Presence{Username: "alice", Room: "room1"}, prev)
	req.Equal([]string{"room2"}, reg.ActiveRooms())
	req.Empty(reg.RoomMembers("room1"))
	req.Equal(0, reg.MemberCount("room1"))
	req.Equal(1, reg.MemberCount("room2"))
}

func TestRegistry_RenameKeepsRoom(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Upsert("conn1", "alice", "room1")
	reg.Upsert("conn2", "bob", "room1")

	old, ok := reg.Rename("conn1", "alicia")

	req.True(ok)
	req.Equal("alice", old)
	p, ok := reg.Get("conn1")
	req.True(ok)
	req.Equal(domain.Presence{Username: "alicia", Room: "room1"}, p)
	req.Equal([]string{"alicia", "bob"}, reg.RoomMembers("room1"))
}

func TestRegistry_RenameUnknownIsNoop(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	_, ok := reg.Rename("ghost", "casper")

	req.False(ok)
	req.Empty(reg.DisplayNames())
}

func TestRegistry_RemoveLastMemberDropsRoom(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Upsert("conn1", "alice", "room1")
	reg.Upsert("conn2", "bob", "room2")

	p, ok := reg.Remove("conn1")

	req.True(ok)
	req.Equal(domain.Presence{Username: "alice", Room: "room1"}, p)
	_, ok = reg.Get("conn1")
	req.False(ok)
	req.Equal([]string{"room2"}, reg.ActiveRooms())
	req.NotContains(reg.DisplayNames(), "alice")

	_, ok = reg.Remove("conn1")
	req.False(ok)
}

func TestRegistry_UnbindDropsSessionAndPresence(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	canceled := false
	reg.BindSignal("conn1", nopSignal{}, func() { canceled = true })
	reg.BindSignal("conn2", nopSignal{}, func() {})
	reg.Upsert("conn1", "alice", "room1")
	reg.Upsert("conn2", "bob", "room1")
	req.Equal(2, reg.MemberCount("room1"))

	req.True(reg.Cancel("conn1"))
	req.True(canceled)

	p, ok := reg.Unbind("conn1")
	req.True(ok)
	req.Equal(domain.RoomName("room1"), p.Room)
	req.False(reg.IsBound("conn1"))
	_, ok = reg.Get("conn1")
	req.False(ok)
	req.Equal(1, reg.Connections())
	req.Equal(1, reg.MemberCount("room1"))
	req.Equal([]string{"bob"}, reg.RoomMembers("room1"))
	req.False(reg.Cancel("conn1"))

	_, ok = reg.Unbind("conn2")
	req.True(ok)
	req.Equal(0, reg.Connections())
	req.Equal(0, reg.MemberCount("room1"))
	req.Empty(reg.ActiveRooms())
	req.Empty(reg.AllSignals())
}

func TestRegistry_SignalScopes(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.BindSignal("conn1", nopSignal{}, nil)
	reg.BindSignal("conn2", nopSignal{}, nil)
	reg.BindSignal("conn3", nopSignal{}, nil)
	reg.Upsert("conn1", "alice", "room1")
	reg.Upsert("conn2", "bob", "room2")

	sids := func(snaps []SessionSnap) []core.SessionID {
		out := lo.Map(snaps, func(s SessionSnap, _ int) core.SessionID { return s.SID })
		slices.Sort(out)
		return out
	}

	req.Equal([]core.SessionID{"conn1"}, sids(reg.SignalsOfRoom("room1")))
	req.Equal([]core.SessionID{"conn1", "conn2", "conn3"}, sids(reg.AllSignals()))
	req.Empty(reg.SignalsOfRoom("room3"))
}

func TestRegistry_ActiveRoomsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Upsert("c1", "a", "zeta")
	reg.Upsert("c2", "b", "alpha")
	reg.Upsert("c3", "c", "mid")
	reg.Upsert("c4", "d", "alpha")

	require.Equal(t, []string{"alpha", "mid", "zeta"}, reg.ActiveRooms())
	require.Equal(t, reg.ActiveRooms(), reg.ActiveRooms())
}

// The room listing always equals the distinct rooms of the live records,
// whatever the sequence of joins, renames and removals.
func TestRegistry_ActiveRoomsMatchLiveRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rooms := []domain.RoomName{"r1", "r2", "r3", "r4"}

	for round := 0; round < 50; round++ {
		reg := NewRegistry()
		model := map[core.SessionID]domain.Presence{}

		for step := 0; step < 200; step++ {
			sid := core.SessionID(fmt.Sprintf("c%d", rng.Intn(12)))
			switch rng.Intn(3) {
			case 0:
				p := domain.Presence{Username: fmt.Sprintf("u%d", rng.Intn(100)), Room: rooms[rng.Intn(len(rooms))]}
				reg.Upsert(sid, p.Username, p.Room)
				model[sid] = p
			case 1:
				name := fmt.Sprintf("n%d", rng.Intn(100))
				if _, ok := reg.Rename(sid, name); ok {
					p := model[sid]
					p.Username = name
					model[sid] = p
				}
			case 2:
				reg.Remove(sid)
				delete(model, sid)
			}

			want := lo.Uniq(lo.Map(lo.Values(model), func(p domain.Presence, _ int) string { return string(p.Room) }))
			slices.Sort(want)
			got := reg.ActiveRooms()
			if len(want) == 0 {
				require.Empty(t, got)
			} else {
				require.Equal(t, want, got)
			}
			for sid, p := range model {
				got, ok := reg.Get(sid)
				require.True(t, ok)
				require.Equal(t, p, got)
			}
			require.Len(t, reg.DisplayNames(), len(model))
		}
	}
}
