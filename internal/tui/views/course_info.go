package views

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// CourseInfo displays detailed information about a course.
type CourseInfo struct {
	*tview.TextView
	theme  *ui.Theme
	course rpc.CourseView
}

// NewCourseInfo creates a new course info view.
func NewCourseInfo(theme *ui.Theme) *CourseInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Course Details ")
	tv.SetTitleColor(theme.TitleColor)

	return &CourseInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (ci *CourseInfo) Name() string { return "Details" }

// Hints implements Component.
func (ci *CourseInfo) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: "c", Description: "Certificate"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
	}
}

// Course returns the course being shown.
func (ci *CourseInfo) Course() rpc.CourseView { return ci.course }

// Update renders course details.
func (ci *CourseInfo) Update(c rpc.CourseView) {
	ci.course = c
	ci.Clear()

	fg := colorHex(ci.theme.FgColor)
	ct := colorHex(ci.theme.CounterColor)

	progress := "not started"
	switch {
	case c.Complete:
		progress = "complete"
	case c.Started:
		progress = fmt.Sprintf("%.0f%%", c.Progress*100)
	}
	level := c.Level
	if level == "" {
		level = "-"
	}

	wished := "no"
	if c.Wishlisted {
		wished = "yes"
	}
	text := fmt.Sprintf(
		"\n [%s::b]Name:[-:-:-]     [%s]%s[-]\n"+
			" [%s::b]ID:[-:-:-]       [%s]%s[-]\n"+
			" [%s::b]Level:[-:-:-]    [%s]%s[-]\n"+
			" [%s::b]Price:[-:-:-]    [%s]%.2f[-]\n"+
			" [%s::b]Progress:[-:-:-] [%s]%s[-]\n"+
			" [%s::b]Wishlist:[-:-:-] [%s]%s[-]\n\n"+
			" %s",
		fg, ct, tview.Escape(c.Name),
		fg, ct, c.ID,
		fg, ct, tview.Escape(level),
		fg, ct, c.Price,
		fg, ct, progress,
		fg, ct, wished,
		tview.Escape(c.Description),
	)

	_, _ = fmt.Fprint(ci, text)
	ci.SetTitle(fmt.Sprintf(" %s ", tview.Escape(sanitizeForTerminal(c.Name))))
	ci.ScrollToBeginning()
}

func colorHex(c interface{ Hex() int32 }) string {
	return fmt.Sprintf("#%06x", c.Hex())
}
