package domain

// Presence is the "who is online, in what room" record of one joined
// connection. A connection is in exactly one room at a time.
type Presence struct {
	Username string   `json:"username"`
	Room     RoomName `json:"room"`
}
