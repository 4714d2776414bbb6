package app

import (
	"errors"
	"fmt"

	"github.com/dkeye/Lobby/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a connection whose send queue rejected a
// frame.
type Policy interface {
	OnBackPressure(sid core.SessionID) BackpressureAction
}

// SimplePolicy kicks every slow connection.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.SessionID) BackpressureAction {
	return KickMember
}

// TolerantPolicy never kicks; dropped frames are simply lost.
type TolerantPolicy struct{}

func (TolerantPolicy) OnBackPressure(core.SessionID) BackpressureAction {
	return NoAction
}

const (
	PolicyKick     = "kick"
	PolicyTolerant = "tolerant"
)

var ErrUnknownPolicy = errors.New("unknown backpressure policy")

// NewPolicy returns the policy configured under name.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case PolicyKick, "":
		return SimplePolicy{}, nil
	case PolicyTolerant:
		return TolerantPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
