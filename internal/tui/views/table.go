package views

import (
	"strings"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type column struct {
	text  string
	exp   int
	right bool
}

func newTable(theme *ui.Theme, title string) *tview.Table {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(title)
	table.SetTitleColor(theme.TitleColor)
	return table
}

func setHeader(table *tview.Table, theme *ui.Theme, cols []column) {
	for i, c := range cols {
		cell := tview.NewTableCell(c.text).
			SetSelectable(false).
			SetTextColor(theme.TableHeaderFg).
			SetBackgroundColor(theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(c.exp)
		if c.right {
			cell.SetAlign(tview.AlignRight)
		}
		table.SetCell(0, i, cell)
	}
}

// emptyRow puts a non-selectable message where the first item would be.
func emptyRow(table *tview.Table, theme *ui.Theme, text string) {
	table.SetCell(1, 0, tview.NewTableCell(" "+text).
		SetSelectable(false).
		SetTextColor(theme.MutedColor).
		SetExpansion(1))
}

func textCell(s string, color tcell.Color, exp int) *tview.TableCell {
	return tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(s))).
		SetExpansion(exp).
		SetTextColor(color)
}

// rowID returns the id stored in the first cell of the selected row.
func rowID(table *tview.Table) string {
	row, _ := table.GetSelection()
	if row < 1 {
		return ""
	}
	cell := table.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	id, _ := cell.GetReference().(string)
	return id
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// staleSuffix describes a list the daemon could not refresh.
func staleSuffix(m rpc.ListMeta) string {
	if !m.Stale() {
		return ""
	}
	return " (offline: " + m.ErrorKind + ")"
}
