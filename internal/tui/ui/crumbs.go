package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumb is one page of the navigation trail.
type Crumb struct {
	Name  string
	Scope string
	// Offline holds the error kind of a list the daemon could not refresh.
	Offline string
}

// Trail builds the crumbs for a page stack, bottom first.
func Trail(stack []Component) []Crumb {
	trail := make([]Crumb, 0, len(stack))
	for _, c := range stack {
		crumb := Crumb{Name: c.Name()}
		if lc, ok := c.(ListComponent); ok {
			crumb.Scope = lc.Scope()
			if meta, ok := lc.Meta(); ok && meta.Stale() {
				crumb.Offline = meta.ErrorKind
			}
		}
		trail = append(trail, crumb)
	}
	return trail
}

// Crumbs is the breadcrumb bar of the footer.
type Crumbs struct {
	*tview.TextView
	theme *Theme
}

// NewCrumbs creates a new breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the trail. Only the active crumb shows its offline marker.
func (c *Crumbs) Update(trail []Crumb) {
	c.Clear()
	if len(trail) == 0 {
		return
	}

	parts := make([]string, 0, len(trail))
	for i, crumb := range trail {
		label := tview.Escape(crumb.Name)
		if crumb.Scope != "" {
			label += ": " + tview.Escape(crumb.Scope)
		}
		if i < len(trail)-1 {
			parts = append(parts, fmt.Sprintf("[%s:%s:] %s [-:-:-]",
				colorName(c.theme.CrumbInactiveFg), colorName(c.theme.CrumbInactiveBg), label))
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:b] %s [-:-:-]",
			colorName(c.theme.CrumbActiveFg), colorName(c.theme.CrumbActiveBg), label))
		if crumb.Offline != "" {
			parts[len(parts)-1] += fmt.Sprintf(" [%s]offline: %s[-]", colorName(c.theme.FlashWarnColor), tview.Escape(crumb.Offline))
		}
	}
	_, _ = fmt.Fprint(c, strings.Join(parts, " "))
}

// colorName returns the tview tag for a color.
func colorName(c tcell.Color) string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

var colorNames = func() map[tcell.Color]string {
	m := make(map[tcell.Color]string, len(tcell.ColorNames))
	for name, c := range tcell.ColorNames {
		// Several names share a color; keep the shortest for stable output.
		if prev, ok := m[c]; !ok || len(name) < len(prev) || (len(name) == len(prev) && name < prev) {
			m[c] = name
		}
	}
	return m
}()
