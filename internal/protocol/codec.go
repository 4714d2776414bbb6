package protocol

import (
	"errors"
	"fmt"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// ErrMalformedEvent marks an inbound frame that is not valid JSON, has an
// unknown type or misses a required field. Such events are dropped.
var ErrMalformedEvent = errors.New("malformed event")

var validate = validator.New(validator.WithRequiredStructEnabled())

type envelope struct {
	Type Type `json:"type"`
}

// Decode parses one inbound frame into its typed event.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch env.Type {
	case TypeJoin:
		return decodeInto[JoinEvent](data)
	case TypeSendMessage:
		return decodeInto[SendMessageEvent](data)
	case TypeGetUsers:
		return decodeInto[GetUsersEvent](data)
	case TypeGetRooms:
		return GetRoomsEvent{}, nil
	case TypeGetGlobalUsers:
		return GetGlobalUsersEvent{}, nil
	case TypePing:
		return PingEvent{}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, env.Type)
	}
}

func decodeInto[T Event](data []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEvent, ev.EventType(), err)
	}
	if err := validate.Struct(ev); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEvent, ev.EventType(), err)
	}
	return ev, nil
}

// Encode serializes an outbound event into a frame.
func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return core.Frame(b), nil
}
