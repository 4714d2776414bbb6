package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	req := require.New(t)

	name, err := NormalizeUsername("  alice ")
	req.NoError(err)
	req.Equal("alice", name)

	_, err = NormalizeUsername("   ")
	req.ErrorIs(err, ErrUsernameEmpty)

	_, err = NormalizeUsername(strings.Repeat("x", MaxUsernameLen+1))
	req.ErrorIs(err, ErrUsernameTooLong)

	name, err = NormalizeUsername(strings.Repeat("x", MaxUsernameLen))
	req.NoError(err)
	req.Len(name, MaxUsernameLen)

	name, err = NormalizeUsername(strings.Repeat("ж", MaxUsernameLen))
	req.NoError(err)
	req.Equal(MaxUsernameLen, utf8.RuneCountInString(name))

	_, err = NormalizeUsername(strings.Repeat("ж", MaxUsernameLen+1))
	req.ErrorIs(err, ErrUsernameTooLong)
}

func TestNewRoomName(t *testing.T) {
	req := require.New(t)

	room, err := NewRoomName(" room1 ")
	req.NoError(err)
	req.Equal(RoomName("room1"), room)

	_, err = NewRoomName("")
	req.ErrorIs(err, ErrRoomNameEmpty)

	_, err = NewRoomName(strings.Repeat("r", MaxRoomNameLen+1))
	req.ErrorIs(err, ErrRoomNameTooLong)
}
