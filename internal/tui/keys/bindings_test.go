package keys

import (
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewBindingShadowsGlobal(t *testing.T) {
	r := NewRegistry()
	var got string
	r.AddGlobal("refresh", &Action{Key: tcell.KeyRune, Rune: 'r', Handler: func() { got = "global" }})
	r.AddView("courses", "reload", &Action{Key: tcell.KeyRune, Rune: 'r', Handler: func() { got = "view" }})

	if !r.HandleEvent("courses", runeEvent('r')) || got != "view" {
		t.Errorf("courses: handled by %q, want view", got)
	}
	if !r.HandleEvent("chats", runeEvent('r')) || got != "global" {
		t.Errorf("chats: handled by %q, want global", got)
	}
	if r.HandleEvent("chats", runeEvent('x')) {
		t.Error("unbound key reported as handled")
	}
}

func TestSpecialKeys(t *testing.T) {
	r := NewRegistry()
	called := false
	r.AddView("courses", "tab", &Action{Key: tcell.KeyTab, Handler: func() { called = true }})

	if !r.HandleEvent("courses", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)) || !called {
		t.Error("Tab not dispatched")
	}
}

func TestHintsOrderAndVisibility(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal("quit", &Action{Description: "q:quit", Visible: true})
	r.AddGlobal("hidden", &Action{Description: "x:hidden"})
	r.AddView("courses", "tab", &Action{Description: "Tab:next", Visible: true})
	r.AddView("courses", "open", &Action{Description: "Enter:open", Visible: true})

	want := []string{"Tab:next", "Enter:open", "q:quit"}
	if got := r.Hints("courses"); !slices.Equal(got, want) {
		t.Errorf("Hints() = %v, want %v", got, want)
	}
}

func TestAddReplacesByName(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal("help", &Action{Description: "?:help", Visible: true})
	r.AddGlobal("help", &Action{Description: "?:help me", Visible: true})
	if got := r.Hints(""); !slices.Equal(got, []string{"?:help me"}) {
		t.Errorf("Hints() = %v", got)
	}
}
