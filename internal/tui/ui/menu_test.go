package ui

import (
	"strings"
	"testing"
)

func TestMenuColumns(t *testing.T) {
	m := NewMenu(DefaultTheme())
	hints := []MenuHint{
		{Key: "a", Description: "One"},
		{Key: "b", Description: "Two"},
		{Key: "c", Description: "Three"},
		{Key: "d", Description: "Four"},
		{Key: "e", Description: "Five"},
		{Key: "f", Description: "Six"},
		{Key: "g", Description: "Seven"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
	m.Update(hints)
	lines := strings.Split(strings.TrimRight(m.GetText(true), "\n"), "\n")
	if len(lines) != menuRows {
		t.Fatalf("got %d rows, want %d: %q", len(lines), menuRows, lines)
	}
	if lines[0] != "<a> One     <g> Seven" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != "<b> Two     <1-6> Screens" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "<c> Three" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestMenuShortList(t *testing.T) {
	m := NewMenu(DefaultTheme())
	m.Update([]MenuHint{{Key: "r", Description: "Refresh"}})
	if got := strings.TrimRight(m.GetText(true), "\n"); got != "<r> Refresh" {
		t.Errorf("menu = %q", got)
	}
	m.Update(nil)
	if got := m.GetText(true); got != "" {
		t.Errorf("empty menu = %q", got)
	}
}
