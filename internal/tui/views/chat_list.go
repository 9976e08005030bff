package views

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// ChatList shows conversations, newest first.
type ChatList struct {
	*tview.Table
	theme  *ui.Theme
	resp   *rpc.ListChatsResponse
	filter string
}

// NewChatList creates a new chat table.
func NewChatList(theme *ui.Theme) *ChatList {
	return &ChatList{
		Table: newTable(theme, " Chats "),
		theme: theme,
	}
}

// Name implements Component.
func (cl *ChatList) Name() string { return "Chats" }

// Hints implements Component.
func (cl *ChatList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "r", Description: "Refresh"},
		{Key: "/", Description: "Filter"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
}

// Meta implements ui.ListComponent.
func (cl *ChatList) Meta() (rpc.ListMeta, bool) {
	if cl.resp == nil {
		return rpc.ListMeta{}, false
	}
	return cl.resp.ListMeta, true
}

// Scope implements ui.ListComponent. A filter narrows the list.
func (cl *ChatList) Scope() string {
	if cl.filter == "" {
		return ""
	}
	return "/" + cl.filter
}

// Update refreshes the chat list with new data.
func (cl *ChatList) Update(resp *rpc.ListChatsResponse) {
	cl.resp = resp
	cl.render()
}

// SetFilter sets the active filter text and re-renders.
func (cl *ChatList) SetFilter(filter string) {
	cl.filter = filter
	cl.render()
}

// ClearFilter clears the active filter.
func (cl *ChatList) ClearFilter() {
	cl.filter = ""
	cl.render()
}

// Visible returns the chats matching the filter.
func (cl *ChatList) Visible() []rpc.ChatSummary {
	if cl.resp == nil {
		return nil
	}
	if cl.filter == "" {
		return cl.resp.Chats
	}
	var out []rpc.ChatSummary
	for _, c := range cl.resp.Chats {
		if containsFold(c.With, cl.filter) || containsFold(c.LastMessage, cl.filter) {
			out = append(out, c)
		}
	}
	return out
}

func (cl *ChatList) render() {
	cl.Clear()
	setHeader(cl.Table, cl.theme, []column{
		{text: " WITH", exp: 1},
		{text: " LAST MESSAGE", exp: 2},
		{text: " TIME", right: true},
	})

	chats := cl.Visible()
	for i, c := range chats {
		row := i + 1
		name := c.With
		color := cl.theme.FgColor
		if c.Unread > 0 {
			name = fmt.Sprintf("(%d) %s", c.Unread, name)
			color = cl.theme.UnreadColor
		}
		cl.SetCell(row, 0, textCell(name, color, 1).SetReference(c.ID))
		cl.SetCell(row, 1, textCell(c.LastMessage, cl.theme.FgColor, 2))
		cl.SetCell(row, 2, tview.NewTableCell(c.TimeText).SetTextColor(cl.theme.FgColor).SetAlign(tview.AlignRight))
	}

	if len(chats) == 0 && cl.resp != nil {
		switch {
		case cl.resp.Empty:
			emptyRow(cl.Table, cl.theme, "No chats yet")
		case cl.filter != "":
			emptyRow(cl.Table, cl.theme, "No chats match "+tview.Escape(cl.filter))
		}
	}

	unread := 0
	if cl.resp != nil {
		unread = cl.resp.TotalUnread
	}
	title := fmt.Sprintf(" Chats (%d) unread: %d ", len(chats), unread)
	if cl.filter != "" {
		title = fmt.Sprintf(" Chats (%d) filter: %s ", len(chats), cl.filter)
	}
	if cl.resp != nil {
		title += staleSuffix(cl.resp.ListMeta)
	}
	cl.SetTitle(title)
}

// SelectedChat returns the id of the currently selected chat.
func (cl *ChatList) SelectedChat() string {
	return rowID(cl.Table)
}
