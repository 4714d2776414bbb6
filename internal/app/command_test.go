package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		isCmd bool
		want  Command
	}{
		{name: "plain text", text: "hello there", isCmd: false},
		{name: "slash inside text", text: "and/or", isCmd: false},
		{
			name:  "nick",
			text:  "/nick alicia",
			isCmd: true,
			want:  Command{Word: "/nick", Name: "nick", Args: []string{"alicia"}, Rest: "alicia"},
		},
		{
			name:  "case insensitive word",
			text:  "  /NiCk   alicia  ",
			isCmd: true,
			want:  Command{Word: "/NiCk", Name: "nick", Args: []string{"alicia"}, Rest: "alicia"},
		},
		{
			name:  "no args",
			text:  "/shrug",
			isCmd: true,
			want:  Command{Word: "/shrug", Name: "shrug"},
		},
		{
			name:  "third token keeps whitespace",
			text:  "/prank bob hello  there friend",
			isCmd: true,
			want: Command{
				Word: "/prank",
				Name: "prank",
				Args: []string{"bob", "hello  there friend"},
				Rest: "bob hello  there friend",
			},
		},
		{
			name:  "announce rest",
			text:  "/announce server restarting",
			isCmd: true,
			want: Command{
				Word: "/announce",
				Name: "announce",
				Args: []string{"server", "restarting"},
				Rest: "server restarting",
			},
		},
		{
			name:  "bare sigil",
			text:  "/",
			isCmd: true,
			want:  Command{Word: "/", Name: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCommand(tt.text)
			require.Equal(t, tt.isCmd, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCommand_Arg(t *testing.T) {
	req := require.New(t)
	cmd, ok := ParseCommand("/prank bob")
	req.True(ok)

	name, ok := cmd.Arg(0)
	req.True(ok)
	req.Equal("bob", name)

	_, ok = cmd.Arg(1)
	req.False(ok)
}
