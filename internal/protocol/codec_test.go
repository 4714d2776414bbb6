package protocol

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestDecode_TypedEvents(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Event
	}{
		{"join", `{"type":"join","username":"alice","room":"room1"}`, JoinEvent{Username: "alice", Room: "room1"}},
		{"send", `{"type":"send_message","message":"/nick alicia"}`, SendMessageEvent{Message: "/nick alicia"}},
		{"get users", `{"type":"get_users","room":"room1"}`, GetUsersEvent{Room: "room1"}},
		{"get rooms", `{"type":"get_rooms"}`, GetRoomsEvent{}},
		{"global users", `{"type":"get_global_users"}`, GetGlobalUsersEvent{}},
		{"ping", `{"type":"ping"}`, PingEvent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			require.Equal(t, tt.want, ev)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `hello`},
		{"missing type", `{"username":"alice"}`},
		{"unknown type", `{"type":"teleport"}`},
		{"join without username", `{"type":"join","room":"room1"}`},
		{"join without room", `{"type":"join","username":"alice"}`},
		{"join wrong field type", `{"type":"join","username":42,"room":"room1"}`},
		{"empty message", `{"type":"send_message","message":""}`},
		{"get users without room", `{"type":"get_users"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode([]byte(tt.raw))
			require.ErrorIs(t, err, ErrMalformedEvent)
			require.Nil(t, ev)
		})
	}
}

func TestEncode_PrankMessage(t *testing.T) {
	req := require.New(t)

	frame, err := Encode(NewPrankMessage("bob", "hello", "alice"))
	req.NoError(err)

	var got map[string]any
	req.NoError(json.Unmarshal(frame, &got))
	req.Equal("receive_message", got["type"])
	req.Equal("bob", got["username"])
	req.Equal("hello", got["message"])
	req.Equal(true, got["prank"])
	req.Equal("alice", got["real_sender"])
	req.NotContains(got, "system")
}

func TestEncode_EmptyListsAreArrays(t *testing.T) {
	frame, err := Encode(NewRoomList(nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"room_list","rooms":[]}`, string(frame))
}
