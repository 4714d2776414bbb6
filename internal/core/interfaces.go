package core

//go:generate mockgen -destination=mocks/signal_mock.go -package=mocks . SignalConnection

// Frame is an encoded outbound event.
type Frame []byte

// SessionID identifies one live transport connection. It is never reused.
type SessionID string

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend enqueues f without blocking. A full or closed queue is an error.
	TrySend(Frame) error
	Close()
}

// Scope selects the connections an event is delivered to.
type Scope int

const (
	ScopeUnicast Scope = iota
	ScopeRoom
	ScopeGlobal
)

func (s Scope) String() string {
	switch s {
	case ScopeUnicast:
		return "unicast"
	case ScopeRoom:
		return "room"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []SessionID
}
