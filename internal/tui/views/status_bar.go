package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar displays the session state and unread counters.
type StatusBar struct {
	*tview.TextView
	session       string
	state         string
	unreadChats   int
	unreadNotices int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv}
}

// SetSession updates the session name display.
func (sb *StatusBar) SetSession(name string) {
	sb.session = name
	sb.render()
}

// SetState updates the session state display.
func (sb *StatusBar) SetState(state string) {
	sb.state = state
	sb.render()
}

// SetUnread updates the unread counters.
func (sb *StatusBar) SetUnread(chats, notifications int) {
	sb.unreadChats = chats
	sb.unreadNotices = notifications
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	state := sb.state
	switch state {
	case "READY":
		state = "[green]" + state + "[-]"
	case "OFFLINE", "AUTH_EXPIRED", "ERROR":
		state = "[red]" + state + "[-]"
	}

	clock := time.Now().Format("15:04")
	_, _ = fmt.Fprintf(sb, "[::b]%s[-:-:-] | %s | chats %d | alerts %d | %s ",
		sb.session, state, sb.unreadChats, sb.unreadNotices, clock)
}
