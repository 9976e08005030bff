package views

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// FAQView displays the FAQ page.
type FAQView struct {
	*tview.TextView
	theme *ui.Theme
	resp  *rpc.FAQResponse
}

// NewFAQView creates a new FAQ view.
func NewFAQView(theme *ui.Theme) *FAQView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" FAQ ")
	tv.SetTitleColor(theme.TitleColor)

	return &FAQView{TextView: tv, theme: theme}
}

// Name implements Component.
func (fv *FAQView) Name() string { return "FAQ" }

// Hints implements Component.
func (fv *FAQView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "r", Description: "Refresh"},
		{Key: ":", Description: "Command"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
}

// Meta implements ui.ListComponent.
func (fv *FAQView) Meta() (rpc.ListMeta, bool) {
	if fv.resp == nil {
		return rpc.ListMeta{}, false
	}
	return fv.resp.ListMeta, true
}

// Scope implements ui.ListComponent.
func (fv *FAQView) Scope() string { return "" }

// Update renders the questions and answers.
func (fv *FAQView) Update(resp *rpc.FAQResponse) {
	fv.resp = resp
	fv.Clear()
	if resp == nil {
		return
	}
	if resp.Empty {
		_, _ = fmt.Fprint(fv, "\n No questions yet.")
	}
	q := colorHex(fv.theme.CounterColor)
	for _, item := range resp.Items {
		_, _ = fmt.Fprintf(fv, "\n [%s::b]%s[-:-:-]\n %s\n", q, tview.Escape(item.Question), tview.Escape(item.Answer))
	}
	fv.SetTitle(fmt.Sprintf(" FAQ (%d) %s", len(resp.Items), staleSuffix(resp.ListMeta)))
	fv.ScrollToBeginning()
}
