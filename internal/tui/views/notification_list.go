package views

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// NotificationList shows notifications with unread ones highlighted.
type NotificationList struct {
	*tview.Table
	theme *ui.Theme
	resp  *rpc.ListNotificationsResponse
}

// NewNotificationList creates a new notification table.
func NewNotificationList(theme *ui.Theme) *NotificationList {
	return &NotificationList{
		Table: newTable(theme, " Notifications "),
		theme: theme,
	}
}

// Name implements Component.
func (nl *NotificationList) Name() string { return "Notifications" }

// Hints implements Component.
func (nl *NotificationList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Mark read"},
		{Key: "r", Description: "Refresh"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
}

// Meta implements ui.ListComponent.
func (nl *NotificationList) Meta() (rpc.ListMeta, bool) {
	if nl.resp == nil {
		return rpc.ListMeta{}, false
	}
	return nl.resp.ListMeta, true
}

// Scope implements ui.ListComponent.
func (nl *NotificationList) Scope() string { return "" }

// Update refreshes the table with new data. The selection is kept so
// marking items read in a row does not jump back to the top.
func (nl *NotificationList) Update(resp *rpc.ListNotificationsResponse) {
	row, _ := nl.GetSelection()
	nl.resp = resp
	nl.render()
	if row > 0 && row < nl.GetRowCount() {
		nl.Select(row, 0)
	}
}

func (nl *NotificationList) render() {
	nl.Clear()
	setHeader(nl.Table, nl.theme, []column{
		{text: "  "},
		{text: " TITLE", exp: 1},
		{text: " MESSAGE", exp: 3},
		{text: " WHEN", right: true},
	})
	if nl.resp == nil {
		return
	}

	for i, n := range nl.resp.Notifications {
		row := i + 1
		mark, color := " ", nl.theme.MutedColor
		if !n.Read {
			mark, color = "●", nl.theme.UnreadColor
		}
		nl.SetCell(row, 0, tview.NewTableCell(" "+mark).SetTextColor(color).SetReference(n.ID))
		nl.SetCell(row, 1, textCell(n.Title, color, 1))
		nl.SetCell(row, 2, textCell(n.Message, nl.theme.FgColor, 3))
		nl.SetCell(row, 3, tview.NewTableCell(n.TimeText).SetTextColor(nl.theme.FgColor).SetAlign(tview.AlignRight))
	}
	if nl.resp.Empty {
		emptyRow(nl.Table, nl.theme, "No notifications yet")
	}
	nl.SetTitle(fmt.Sprintf(" Notifications (%d) unread: %d %s", len(nl.resp.Notifications), nl.resp.Unread, staleSuffix(nl.resp.ListMeta)))
}

// SelectedNotification returns the currently selected notification.
func (nl *NotificationList) SelectedNotification() (rpc.NotificationView, bool) {
	if nl.resp == nil {
		return rpc.NotificationView{}, false
	}
	id := rowID(nl.Table)
	for _, n := range nl.resp.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return rpc.NotificationView{}, false
}
