// Package protocol defines the closed set of events exchanged over the
// websocket and the codec that validates them at the boundary.
package protocol

type Type string

const (
	TypeJoin           Type = "join"
	TypeSendMessage    Type = "send_message"
	TypeGetUsers       Type = "get_users"
	TypeGetRooms       Type = "get_rooms"
	TypeGetGlobalUsers Type = "get_global_users"
	TypePing           Type = "ping"

	TypeReceiveMessage Type = "receive_message"
	TypeUserList       Type = "user_list"
	TypeRoomList       Type = "room_list"
	TypeGlobalUserList Type = "global_user_list"
	TypePong           Type = "pong"
)

// Event is an inbound event sent by a client.
type Event interface {
	EventType() Type
}

type JoinEvent struct {
	Username string `json:"username" validate:"required"`
	Room     string `json:"room" validate:"required"`
}

type SendMessageEvent struct {
	Message string `json:"message" validate:"required"`
}

type GetUsersEvent struct {
	Room string `json:"room" validate:"required"`
}

type GetRoomsEvent struct{}

type GetGlobalUsersEvent struct{}

type PingEvent struct{}

func (JoinEvent) EventType() Type           { return TypeJoin }
func (SendMessageEvent) EventType() Type    { return TypeSendMessage }
func (GetUsersEvent) EventType() Type       { return TypeGetUsers }
func (GetRoomsEvent) EventType() Type       { return TypeGetRooms }
func (GetGlobalUsersEvent) EventType() Type { return TypeGetGlobalUsers }
func (PingEvent) EventType() Type           { return TypePing }

// ReceiveMessage carries chat text. System messages have no username.
// A prank message shows the spoofed name in Username and keeps the real
// author in RealSender.
type ReceiveMessage struct {
	Type       Type   `json:"type"`
	Username   string `json:"username,omitempty"`
	Message    string `json:"message"`
	System     bool   `json:"system,omitempty"`
	Prank      bool   `json:"prank,omitempty"`
	RealSender string `json:"real_sender,omitempty"`
}

type UserList struct {
	Type  Type     `json:"type"`
	Room  string   `json:"room"`
	Users []string `json:"users"`
}

type RoomList struct {
	Type  Type     `json:"type"`
	Rooms []string `json:"rooms"`
}

type GlobalUserList struct {
	Type  Type     `json:"type"`
	Users []string `json:"users"`
}

type Pong struct {
	Type Type `json:"type"`
}

func NewChatMessage(username, message string) ReceiveMessage {
	return ReceiveMessage{Type: TypeReceiveMessage, Username: username, Message: message}
}

func NewSystemMessage(message string) ReceiveMessage {
	return ReceiveMessage{Type: TypeReceiveMessage, Message: message, System: true}
}

func NewPrankMessage(spoofed, message, realSender string) ReceiveMessage {
	return ReceiveMessage{
		Type:       TypeReceiveMessage,
		Username:   spoofed,
		Message:    message,
		Prank:      true,
		RealSender: realSender,
	}
}

func NewUserList(room string, users []string) UserList {
	return UserList{Type: TypeUserList, Room: room, Users: nonNil(users)}
}

func NewRoomList(rooms []string) RoomList {
	return RoomList{Type: TypeRoomList, Rooms: nonNil(rooms)}
}

func NewGlobalUserList(users []string) GlobalUserList {
	return GlobalUserList{Type: TypeGlobalUserList, Users: nonNil(users)}
}

func NewPong() Pong { return Pong{Type: TypePong} }

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
