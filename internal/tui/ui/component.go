package ui

import "github.com/elearn-app/elearn/internal/rpc"

// MenuHint is a key listed in the header menu.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool // screen number keys, drawn in their own color
}

// Component is a page of the application.
type Component interface {
	Name() string
	Hints() []MenuHint
}

// ListComponent is a page showing a list synced by the daemon.
type ListComponent interface {
	Component
	// Meta describes the latest response; false before the first one.
	Meta() (rpc.ListMeta, bool)
	// Scope names the visible subset, such as the course tab, or "".
	Scope() string
}
