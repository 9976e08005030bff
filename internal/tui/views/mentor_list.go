package views

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// MentorList shows the mentors a user can start a chat with.
type MentorList struct {
	*tview.Table
	theme *ui.Theme
	resp  *rpc.ListMentorsResponse
}

// NewMentorList creates a new mentor table.
func NewMentorList(theme *ui.Theme) *MentorList {
	return &MentorList{
		Table: newTable(theme, " Mentors "),
		theme: theme,
	}
}

// Name implements Component.
func (ml *MentorList) Name() string { return "Mentors" }

// Hints implements Component.
func (ml *MentorList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Start chat"},
		{Key: "r", Description: "Refresh"},
		{Key: ":", Description: "Command"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
}

// Meta implements ui.ListComponent.
func (ml *MentorList) Meta() (rpc.ListMeta, bool) {
	if ml.resp == nil {
		return rpc.ListMeta{}, false
	}
	return ml.resp.ListMeta, true
}

// Scope implements ui.ListComponent.
func (ml *MentorList) Scope() string { return "" }

// Update refreshes the table with new data.
func (ml *MentorList) Update(resp *rpc.ListMentorsResponse) {
	ml.resp = resp
	ml.Clear()
	setHeader(ml.Table, ml.theme, []column{
		{text: " NAME", exp: 1},
		{text: " EXPERTISE", exp: 2},
	})
	if resp == nil {
		return
	}
	for i, m := range resp.Mentors {
		ml.SetCell(i+1, 0, textCell(m.Name, ml.theme.FgColor, 1).SetReference(m.ID))
		ml.SetCell(i+1, 1, textCell(m.Expertise, ml.theme.FgColor, 2))
	}
	if resp.Empty {
		emptyRow(ml.Table, ml.theme, "No mentors yet")
	}
	ml.SetTitle(fmt.Sprintf(" Mentors (%d) %s", len(resp.Mentors), staleSuffix(resp.ListMeta)))
}

// SelectedMentor returns the id of the currently selected mentor.
func (ml *MentorList) SelectedMentor() string {
	return rowID(ml.Table)
}
