package app

import (
	"strings"
	"unicode"
)

const CommandSigil = "/"

const (
	CmdNick     = "nick"
	CmdAnnounce = "announce"
	CmdShrug    = "shrug"
	CmdPrank    = "prank"
)

// Command is a chat message that starts with the sigil. The text is split
// into at most three tokens: the command word, the first argument, and the
// remainder, which keeps its inner whitespace.
type Command struct {
	Word string   // as typed, sigil included
	Name string   // lower-cased, sigil stripped
	Args []string // at most two
	Rest string   // everything after the command word
}

func (c Command) Arg(i int) (string, bool) {
	if i < len(c.Args) {
		return c.Args[i], true
	}
	return "", false
}

// ParseCommand reports whether text is a command and splits it.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, CommandSigil) {
		return Command{}, false
	}

	word, rest := cutSpace(text)
	cmd := Command{
		Word: word,
		Name: strings.ToLower(strings.TrimPrefix(word, CommandSigil)),
		Rest: rest,
	}
	if rest != "" {
		first, remainder := cutSpace(rest)
		cmd.Args = append(cmd.Args, first)
		if remainder != "" {
			cmd.Args = append(cmd.Args, remainder)
		}
	}
	return cmd, true
}

func cutSpace(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
