package views

import (
	"fmt"
	"strings"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// CourseTab selects which course list is shown.
type CourseTab int

const (
	TabAll CourseTab = iota
	TabIncomplete
	TabComplete
)

func (t CourseTab) String() string {
	switch t {
	case TabIncomplete:
		return "In progress"
	case TabComplete:
		return "Complete"
	default:
		return "All"
	}
}

// CourseList shows the catalogue and the two progress tabs.
type CourseList struct {
	*tview.Table
	theme  *ui.Theme
	resp   *rpc.ListCoursesResponse
	tab    CourseTab
	filter string
}

// NewCourseList creates a new course table.
func NewCourseList(theme *ui.Theme) *CourseList {
	return &CourseList{
		Table: newTable(theme, " Courses "),
		theme: theme,
	}
}

// Name implements Component.
func (cl *CourseList) Name() string { return "Courses" }

// Hints implements Component.
func (cl *CourseList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Details"},
		{Key: "Tab", Description: "Next tab"},
		{Key: "r", Description: "Refresh"},
		{Key: "/", Description: "Filter"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
}

// Meta implements ui.ListComponent.
func (cl *CourseList) Meta() (rpc.ListMeta, bool) {
	if cl.resp == nil {
		return rpc.ListMeta{}, false
	}
	return cl.resp.ListMeta, true
}

// Scope implements ui.ListComponent. It names the tab and any filter.
func (cl *CourseList) Scope() string {
	if cl.filter == "" {
		return cl.tab.String()
	}
	return cl.tab.String() + " /" + cl.filter
}

// Update refreshes the table with new data.
func (cl *CourseList) Update(resp *rpc.ListCoursesResponse) {
	cl.resp = resp
	cl.render()
}

// NextTab cycles All, In progress, Complete.
func (cl *CourseList) NextTab() {
	cl.tab = (cl.tab + 1) % 3
	cl.render()
}

// Tab returns the active tab.
func (cl *CourseList) Tab() CourseTab { return cl.tab }

// SetFilter sets the active filter text and re-renders.
func (cl *CourseList) SetFilter(filter string) {
	cl.filter = filter
	cl.render()
}

// ClearFilter clears the active filter.
func (cl *CourseList) ClearFilter() {
	cl.filter = ""
	cl.render()
}

// Visible returns the courses of the active tab that match the filter.
func (cl *CourseList) Visible() []rpc.CourseView {
	if cl.resp == nil {
		return nil
	}
	var src []rpc.CourseView
	switch cl.tab {
	case TabIncomplete:
		src = cl.resp.Incomplete
	case TabComplete:
		src = cl.resp.Complete
	default:
		src = cl.resp.All
	}
	if cl.filter == "" {
		return src
	}
	var out []rpc.CourseView
	for _, c := range src {
		if containsFold(c.Name, cl.filter) || containsFold(c.Level, cl.filter) {
			out = append(out, c)
		}
	}
	return out
}

func (cl *CourseList) render() {
	cl.Clear()
	setHeader(cl.Table, cl.theme, []column{
		{text: " NAME", exp: 3},
		{text: " LEVEL", exp: 1},
		{text: " PROGRESS", right: true},
		{text: " PRICE", right: true},
	})

	courses := cl.Visible()
	for i, c := range courses {
		row := i + 1
		color := cl.theme.FgColor
		progress := "-"
		switch {
		case c.Complete:
			color = cl.theme.CompleteColor
			progress = "done"
		case c.Started:
			progress = fmt.Sprintf("%.0f%%", c.Progress*100)
		}
		cl.SetCell(row, 0, textCell(c.Name, color, 3).SetReference(c.ID))
		cl.SetCell(row, 1, textCell(c.Level, color, 1))
		cl.SetCell(row, 2, tview.NewTableCell(progress).SetTextColor(color).SetAlign(tview.AlignRight))
		cl.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf(" %.2f", c.Price)).SetTextColor(color).SetAlign(tview.AlignRight))
	}

	if len(courses) == 0 && cl.resp != nil {
		switch {
		case cl.resp.Empty:
			emptyRow(cl.Table, cl.theme, "No courses yet")
		case cl.filter != "":
			emptyRow(cl.Table, cl.theme, "No courses match "+tview.Escape(cl.filter))
		case len(cl.resp.All) > 0:
			emptyRow(cl.Table, cl.theme, "No "+strings.ToLower(cl.tab.String())+" courses")
		}
	}

	title := fmt.Sprintf(" Courses: %s (%d) ", cl.tab, len(courses))
	if cl.filter != "" {
		title = fmt.Sprintf(" Courses: %s (%d) filter: %s ", cl.tab, len(courses), cl.filter)
	}
	if cl.resp != nil {
		title += staleSuffix(cl.resp.ListMeta)
	}
	cl.SetTitle(title)
}

// SelectedCourse returns the currently selected course, if any.
func (cl *CourseList) SelectedCourse() (rpc.CourseView, bool) {
	id := rowID(cl.Table)
	for _, c := range cl.Visible() {
		if c.ID == id {
			return c, true
		}
	}
	return rpc.CourseView{}, false
}
