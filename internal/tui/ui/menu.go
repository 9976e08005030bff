package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/tview"
)

// menuRows is how many hints fit in one column of the header.
const menuRows = 6

// Menu lists the key hints of the active page in columns.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update lays the hints out top to bottom, then left to right.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	_, _ = fmt.Fprint(m, m.layout(hints))
}

func (m *Menu) layout(hints []MenuHint) string {
	if len(hints) == 0 {
		return ""
	}
	cols := (len(hints) + menuRows - 1) / menuRows
	rows := min(len(hints), menuRows)

	widths := make([]int, cols)
	for i, h := range hints {
		if w := hintWidth(h); w > widths[i/menuRows] {
			widths[i/menuRows] = w
		}
	}

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := c*menuRows + r
			if i >= len(hints) {
				break
			}
			h := hints[i]
			kc := keyColor
			if h.Numeric {
				kc = numColor
			}
			fmt.Fprintf(&b, "[%s::b]<%s>[-:-:-] %s", kc, tview.Escape(h.Key), tview.Escape(h.Description))
			if c < cols-1 && i+menuRows < len(hints) {
				b.WriteString(strings.Repeat(" ", widths[c]-hintWidth(h)+3))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// hintWidth is the on-screen width of "<key> description".
func hintWidth(h MenuHint) int {
	return utf8.RuneCountInString(h.Key) + utf8.RuneCountInString(h.Description) + 3
}
