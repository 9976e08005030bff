package views

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render() {
	kc := colorHex(hv.theme.MenuKeyColor)
	key := func(k string) string { return fmt.Sprintf("[%s]%s[-:-:-]", kc, k) }

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  %s      Command mode          %s    Cancel / Go back
  %s      Filter mode           %s      Help
  %s      Quit                  %s Quit immediately
  %s    Switch screen         %s      Refresh current screen

  [::b]Screens[-:-:-]

  %s Courses   %s Chats   %s Notifications
  %s Mentors   %s FAQ     %s Profile

  [::b]Courses[-:-:-]

  %s    Cycle All / In progress / Complete
  %s  Course details        %s      Certificate (from details)

  [::b]Notifications and Mentors[-:-:-]

  %s  Mark notification read / start a chat with the mentor

  [::b]Commands (: mode)[-:-:-]

  %s        Rename the signed-in user
  %s               Sign out and forget the tokens
  %s / %s / %s / %s / %s / %s
  %s / %s                Show this help
  %s / %s                Quit application
`,
		key(":"), key("Esc"),
		key("/"), key("?"),
		key("q"), key("Ctrl-C"),
		key("1-6"), key("r"),
		key("1"), key("2"), key("3"),
		key("4"), key("5"), key("6"),
		key("Tab"),
		key("Enter"), key("c"),
		key("Enter"),
		key(":rename [name]"),
		key(":signout"),
		key(":courses"), key(":chats"), key(":notifications"), key(":mentors"), key(":faq"), key(":profile"),
		key(":help"), key(":h"),
		key(":quit"), key(":q"),
	)

	_, _ = fmt.Fprint(hv, help)
}
