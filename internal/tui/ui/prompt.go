package ui

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode is what the prompt's text is used for.
type PromptMode int

const (
	// PromptCommand jumps to a screen or runs an action by name.
	PromptCommand PromptMode = iota
	// PromptFilter narrows the current list while typing.
	PromptFilter
	// PromptRename edits the user's display name.
	PromptRename
)

const historySize = 20

// Prompt is the input bar under the header.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	scope    string
	commands []string
	history  []string
	histPos  int
	onSubmit func(mode PromptMode, text string)
	onChange func(mode PromptMode, text string)
	onCancel func()
}

// NewPrompt creates a prompt that completes the given command names.
func NewPrompt(theme *Theme, commands []string) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{
		InputField: input,
		theme:      theme,
		commands:   slices.Sorted(slices.Values(commands)),
	}

	input.SetAutocompleteFunc(p.complete)
	input.SetChangedFunc(func(text string) {
		if p.mode == PromptFilter && p.onChange != nil {
			p.onChange(p.mode, text)
		}
	})
	input.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if p.mode != PromptCommand {
			return ev
		}
		switch ev.Key() {
		case tcell.KeyUp:
			p.recall(-1)
			return nil
		case tcell.KeyDown:
			p.recall(1)
			return nil
		}
		return ev
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			p.Submit(p.GetText())
		case tcell.KeyEscape:
			p.SetText("")
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})

	return p
}

// SetOnSubmit sets the callback for Enter.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnChange sets the callback for every edit in filter mode.
func (p *Prompt) SetOnChange(fn func(mode PromptMode, text string)) {
	p.onChange = fn
}

// SetOnCancel sets the callback for Escape.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate shows the prompt in mode. Scope names what a filter or rename
// applies to and is shown in the title.
func (p *Prompt) Activate(mode PromptMode, scope string) {
	p.mode = mode
	p.scope = scope
	p.histPos = len(p.history)
	p.SetText("")
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
		p.SetTitle(" Command ")
	case PromptFilter:
		p.SetLabel("/")
		p.SetTitle(titled(" Filter ", scope))
	case PromptRename:
		p.SetLabel("> ")
		p.SetTitle(titled(" Rename ", scope))
	}
}

func titled(title, scope string) string {
	if scope == "" {
		return title
	}
	return title + "(" + scope + ") "
}

// Mode returns the current mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}

// Scope returns the scope given to Activate.
func (p *Prompt) Scope() string {
	return p.scope
}

// Submit handles text as if it was typed and confirmed. Empty commands and
// names are ignored; an empty filter clears the filter.
func (p *Prompt) Submit(text string) {
	text = strings.TrimSpace(text)
	if text == "" && p.mode != PromptFilter {
		p.SetText("")
		return
	}
	if p.mode == PromptCommand {
		p.remember(text)
	}
	if p.onSubmit != nil {
		p.onSubmit(p.mode, text)
	}
	p.SetText("")
}

// History returns the submitted commands, oldest first.
func (p *Prompt) History() []string {
	return slices.Clone(p.history)
}

func (p *Prompt) remember(cmd string) {
	if n := len(p.history); n > 0 && p.history[n-1] == cmd {
		p.histPos = n
		return
	}
	p.history = append(p.history, cmd)
	if len(p.history) > historySize {
		p.history = p.history[len(p.history)-historySize:]
	}
	p.histPos = len(p.history)
}

// recall moves through the history; past the newest entry the field is empty.
func (p *Prompt) recall(delta int) {
	pos := p.histPos + delta
	if pos < 0 || pos > len(p.history) {
		return
	}
	p.histPos = pos
	if pos == len(p.history) {
		p.SetText("")
		return
	}
	p.SetText(p.history[pos])
}

// complete lists the command names starting with text.
func (p *Prompt) complete(text string) []string {
	if p.mode != PromptCommand || text == "" {
		return nil
	}
	var out []string
	for _, c := range p.commands {
		if strings.HasPrefix(c, text) && c != text {
			out = append(out, c)
		}
	}
	return out
}
