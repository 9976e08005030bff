package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/rivo/tview"
)

// FlashLevel is the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

var flashTTL = map[FlashLevel]time.Duration{
	FlashInfo: 5 * time.Second,
	FlashWarn: 8 * time.Second,
	FlashErr:  10 * time.Second,
}

// FlashMessage is a transient line in the footer.
type FlashMessage struct {
	Text  string
	Level FlashLevel
	// Kind is the error kind of a failed list refresh, if any.
	Kind    string
	Expires time.Time
}

// FlashModel holds the current flash message. Failed list refreshes are
// reported once per list and error kind until the list recovers, so a
// periodic refresh against an unreachable backend does not flash forever.
type FlashModel struct {
	mu      sync.RWMutex
	current FlashMessage
	failing map[string]string // list -> last reported kind
	now     func() time.Time
	watchCh chan FlashMessage
}

// NewFlashModel creates a new flash model.
func NewFlashModel() *FlashModel {
	return &FlashModel{
		failing: make(map[string]string),
		now:     time.Now,
		watchCh: make(chan FlashMessage, 8),
	}
}

// Info flashes an informational message.
func (f *FlashModel) Info(msg string) { f.set(FlashMessage{Text: msg, Level: FlashInfo}) }

// Warn flashes a warning.
func (f *FlashModel) Warn(msg string) { f.set(FlashMessage{Text: msg, Level: FlashWarn}) }

// Err flashes an error.
func (f *FlashModel) Err(err error) { f.set(FlashMessage{Text: err.Error(), Level: FlashErr}) }

// ListFailed reports that a list kept its stale items because the refresh
// failed with the given kind. Repeats of the same kind are dropped.
func (f *FlashModel) ListFailed(list, kind string) {
	f.mu.Lock()
	if f.failing[list] == kind {
		f.mu.Unlock()
		return
	}
	f.failing[list] = kind
	f.mu.Unlock()

	f.set(FlashMessage{
		Text:  fmt.Sprintf("%s could not be refreshed; showing the last synced list", list),
		Level: FlashWarn,
		Kind:  kind,
	})
}

// ListRecovered records a successful refresh of list.
func (f *FlashModel) ListRecovered(list string) {
	f.mu.Lock()
	delete(f.failing, list)
	f.mu.Unlock()
}

func (f *FlashModel) set(m FlashMessage) {
	f.mu.Lock()
	m.Expires = f.now().Add(flashTTL[m.Level])
	f.current = m
	f.mu.Unlock()
	select {
	case f.watchCh <- m:
	default:
	}
}

// GetMessage returns the current message, or nil once it has expired.
func (f *FlashModel) GetMessage() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current.Text == "" || f.now().After(f.current.Expires) {
		return nil
	}
	m := f.current
	return &m
}

// Watch returns a channel that receives every new message.
func (f *FlashModel) Watch() <-chan FlashMessage {
	return f.watchCh
}

// FlashBar displays the current flash message.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates a new flash bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders msg, or clears the bar when msg is nil.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}

	color := colorName(fb.theme.FlashInfoColor)
	switch msg.Level {
	case FlashWarn:
		color = colorName(fb.theme.FlashWarnColor)
	case FlashErr:
		color = colorName(fb.theme.FlashErrColor)
	}
	_, _ = fmt.Fprintf(fb, " [%s]%s[-]", color, tview.Escape(msg.Text))
	if msg.Kind != "" {
		_, _ = fmt.Fprintf(fb, " [%s](%s)[-]", colorName(fb.theme.MutedColor), tview.Escape(msg.Kind))
	}
}
