package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages keeps the navigation stack over tview.Pages.
type Pages struct {
	*tview.Pages
	stack    []string
	onChange func(stack []string)
	onFocus  func(name string)
}

// NewPages creates an empty page stack.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// SetOnFocus sets a callback that fires when a page comes to the front,
// whether pushed, uncovered by Pop, or shown by Reset. Screens reload
// their data from it.
func (p *Pages) SetOnFocus(fn func(name string)) {
	p.onFocus = fn
}

// Push shows name on top of the stack. Pushing the page already on top
// only refocuses it.
func (p *Pages) Push(name string) {
	if cur := p.Current(); cur == name {
		p.focus(name)
		return
	} else if cur != "" {
		p.HidePage(cur)
	}
	p.stack = append(p.stack, name)
	p.show(name)
	p.notify()
	p.focus(name)
}

// Pop removes the top page and returns its name. The last page is never
// popped, so "" means there was nothing to go back to.
func (p *Pages) Pop() string {
	if len(p.stack) < 2 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	current := p.Current()
	p.show(current)
	p.notify()
	p.focus(current)
	return top
}

// Current returns the name of the top page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the page stack, bottom first.
func (p *Pages) Stack() []string {
	return slices.Clone(p.stack)
}

// Depth returns the number of pages on the stack.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset replaces the stack with name alone.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		p.HidePage(n)
	}
	p.stack = []string{name}
	p.show(name)
	p.notify()
	p.focus(name)
}

func (p *Pages) show(name string) {
	p.ShowPage(name)
	p.SendToFront(name)
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}

func (p *Pages) focus(name string) {
	if p.onFocus != nil {
		p.onFocus(name)
	}
}
