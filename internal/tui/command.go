package tui

import (
	"slices"
	"strings"
)

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

var commandAliases = map[string]string{
	"q":             "quit",
	"quit":          "quit",
	"h":             "help",
	"help":          "help",
	"courses":       "courses",
	"co":            "courses",
	"chats":         "chats",
	"ch":            "chats",
	"notifications": "notifications",
	"no":            "notifications",
	"mentors":       "mentors",
	"me":            "mentors",
	"faq":           "faq",
	"profile":       "profile",
	"pr":            "profile",
	"rename":        "rename",
	"signout":       "signout",
	"logout":        "signout",
	"refresh":       "refresh",
}

// ParseCommand parses a command string (without the leading ':'). Known
// aliases resolve to their canonical name.
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if canonical, ok := commandAliases[cmd.Name]; ok {
		cmd.Name = canonical
	}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// CommandNames returns the canonical command names, sorted.
func CommandNames() []string {
	seen := make(map[string]bool, len(commandAliases))
	var names []string
	for _, name := range commandAliases {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
