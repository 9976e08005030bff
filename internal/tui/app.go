package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/client"
	"github.com/elearn-app/elearn/internal/tui/keys"
	"github.com/elearn-app/elearn/internal/tui/model"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/elearn-app/elearn/internal/tui/views"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// Page names.
const (
	pageCourses       = "courses"
	pageCourse        = "course"
	pageCertificate   = "certificate"
	pageChats         = "chats"
	pageNotifications = "notifications"
	pageMentors       = "mentors"
	pageFAQ           = "faq"
	pageProfile       = "profile"
	pageHelp          = "help"
)

// screens are reachable with the number keys, in this order.
var screens = []string{pageCourses, pageChats, pageNotifications, pageMentors, pageFAQ, pageProfile}

const (
	callTimeout     = 15 * time.Second
	refreshInterval = 60 * time.Second
	watchRetry      = 2 * time.Second
)

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	pages    *ui.Pages
	vm       *model.ViewModel
	registry *keys.Registry
	flash    *ui.FlashModel

	main        *tview.Flex
	sessionInfo *ui.SessionInfo
	menu        *ui.Menu
	crumbs      *ui.Crumbs
	flashBar    *ui.FlashBar
	prompt      *ui.Prompt
	statusBar   *views.StatusBar

	courses       *views.CourseList
	courseInfo    *views.CourseInfo
	certificate   *views.CertificateView
	chats         *views.ChatList
	notifications *views.NotificationList
	mentors       *views.MentorList
	faq           *views.FAQView
	profile       *views.ProfileView
	help          *views.HelpView
	components    map[string]ui.Component

	sessionName string
	lastState   string
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, sessionName string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:           tview.NewApplication(),
		theme:         theme,
		pages:         ui.NewPages(),
		vm:            model.NewViewModel(c),
		registry:      keys.NewRegistry(),
		flash:         ui.NewFlashModel(),
		sessionInfo:   ui.NewSessionInfo(theme),
		menu:          ui.NewMenu(theme),
		crumbs:        ui.NewCrumbs(theme),
		flashBar:      ui.NewFlashBar(theme),
		prompt:        ui.NewPrompt(theme, CommandNames()),
		statusBar:     views.NewStatusBar(),
		courses:       views.NewCourseList(theme),
		courseInfo:    views.NewCourseInfo(theme),
		certificate:   views.NewCertificateView(theme),
		chats:         views.NewChatList(theme),
		notifications: views.NewNotificationList(theme),
		mentors:       views.NewMentorList(theme),
		faq:           views.NewFAQView(theme),
		profile:       views.NewProfileView(theme),
		help:          views.NewHelpView(theme),
		sessionName:   sessionName,
		ctx:           ctx,
		cancel:        cancel,
	}
	a.components = map[string]ui.Component{
		pageCourses:       a.courses,
		pageCourse:        a.courseInfo,
		pageCertificate:   a.certificate,
		pageChats:         a.chats,
		pageNotifications: a.notifications,
		pageMentors:       a.mentors,
		pageFAQ:           a.faq,
		pageProfile:       a.profile,
		pageHelp:          a.help,
	}

	a.statusBar.SetSession(sessionName)
	a.setupBindings()
	a.setupPrompt()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "q:quit", Visible: true,
		Handler: func() { a.Stop() },
	})
	a.registry.AddGlobal("help", &keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "?:help", Visible: true,
		Handler: func() { a.push(pageHelp) },
	})
	a.registry.AddGlobal("refresh", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "r:refresh", Visible: true,
		Handler: func() { a.load(a.pages.Current(), false) },
	})

	a.registry.AddView(pageCourses, "tab", &keys.Action{
		Key: tcell.KeyTab, Description: "Tab:next tab",
		Handler: func() {
			a.courses.NextTab()
			a.updateCrumbs()
		},
	})
	a.registry.AddView(pageCourses, "open", &keys.Action{
		Key: tcell.KeyEnter, Description: "Enter:details",
		Handler: func() {
			if c, ok := a.courses.SelectedCourse(); ok {
				a.courseInfo.Update(c)
				a.push(pageCourse)
			}
		},
	})
	a.registry.AddView(pageCourse, "certificate", &keys.Action{
		Rune: 'c', Key: tcell.KeyRune, Description: "c:certificate",
		Handler: func() { a.openCertificate(a.courseInfo.Course()) },
	})
	a.registry.AddView(pageNotifications, "read", &keys.Action{
		Key: tcell.KeyEnter, Description: "Enter:mark read",
		Handler: func() { a.markRead() },
	})
	a.registry.AddView(pageProfile, "rename", &keys.Action{
		Rune: 'e', Key: tcell.KeyRune, Description: "e:rename",
		Handler: func() { a.showPrompt(ui.PromptRename) },
	})
	a.registry.AddView(pageMentors, "chat", &keys.Action{
		Key: tcell.KeyEnter, Description: "Enter:start chat",
		Handler: func() { a.startChat() },
	})
}

func (a *App) setupPrompt() {
	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.applyFilter(text)
		case ui.PromptRename:
			a.rename(text)
		}
	})
	a.prompt.SetOnChange(func(_ ui.PromptMode, text string) { a.applyFilter(text) })
	a.prompt.SetOnCancel(func() {
		if a.prompt.Mode() == ui.PromptFilter {
			a.applyFilter("")
		}
		a.hidePrompt()
	})
}

func (a *App) setupLayout() {
	for name, c := range a.components {
		a.pages.AddPage(name, c.(tview.Primitive), true, false)
	}
	a.pages.SetOnChange(a.onStackChange)
	a.pages.SetOnFocus(func(page string) { a.load(page, true) })

	header := tview.NewFlex().
		AddItem(a.sessionInfo, 0, 2, false).
		AddItem(a.menu, 0, 3, false).
		AddItem(ui.NewLogo(a.theme), 24, 0, false)

	footer := tview.NewFlex().
		AddItem(a.crumbs, 0, 1, false).
		AddItem(a.statusBar, 0, 1, false)

	a.main = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(footer, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false)

	a.app.SetRoot(a.main, true)
	a.app.SetInputCapture(a.captureKey)
	a.pages.Reset(pageCourses)
}

func (a *App) captureKey(event *tcell.EventKey) *tcell.EventKey {
	// Let the prompt handle all keys while it is open.
	if a.prompt.HasFocus() {
		return event
	}

	current := a.pages.Current()
	if event.Key() == tcell.KeyEscape {
		if a.pages.Depth() > 1 {
			a.pages.Pop()
			return nil
		}
		a.applyFilter("")
		return nil
	}

	if event.Key() == tcell.KeyRune {
		switch r := event.Rune(); {
		case r == ':':
			a.showPrompt(ui.PromptCommand)
			return nil
		case r == '/':
			a.showPrompt(ui.PromptFilter)
			return nil
		case r >= '1' && int(r-'1') < len(screens):
			a.switchTo(screens[r-'1'])
			return nil
		}
	}

	if a.registry.HandleEvent(current, event) {
		return nil
	}
	return event
}

func (a *App) onStackChange(stack []string) {
	a.updateCrumbs()
	if len(stack) == 0 {
		return
	}
	top := a.components[stack[len(stack)-1]]
	a.menu.Update(top.Hints())
	a.app.SetFocus(top.(tview.Primitive))
}

func (a *App) updateCrumbs() {
	stack := a.pages.Stack()
	comps := make([]ui.Component, 0, len(stack))
	for _, p := range stack {
		comps = append(comps, a.components[p])
	}
	a.crumbs.Update(ui.Trail(comps))
}

// switchTo replaces the page stack with a top-level screen. Focusing the
// screen shows the cached list; a fresh sync follows.
func (a *App) switchTo(page string) {
	a.pages.Reset(page)
	a.load(page, false)
}

func (a *App) push(page string) {
	a.pages.Push(page)
}

func (a *App) showPrompt(mode ui.PromptMode) {
	var scope string
	switch mode {
	case ui.PromptFilter:
		if lc, ok := a.components[a.pages.Current()].(ui.ListComponent); ok {
			scope = lc.Name()
		}
	case ui.PromptRename:
		if profile, _, _ := a.vm.Profile(); profile != nil && profile.User != nil {
			scope = profile.User.Name
		}
	}
	a.prompt.Activate(mode, scope)
	a.main.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.main.ResizeItem(a.prompt, 0, 0)
	if c, ok := a.components[a.pages.Current()]; ok {
		a.app.SetFocus(c.(tview.Primitive))
	}
}

func (a *App) applyFilter(text string) {
	switch a.pages.Current() {
	case pageCourses:
		a.courses.SetFilter(text)
	case pageChats:
		a.chats.SetFilter(text)
	}
	a.updateCrumbs()
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "quit":
		a.Stop()
	case "help":
		a.push(pageHelp)
	case "refresh":
		a.load(a.pages.Current(), false)
	case pageCourses, pageChats, pageNotifications, pageMentors, pageFAQ, pageProfile:
		a.switchTo(cmd.Name)
	case "rename":
		if cmd.Args == "" {
			a.showPrompt(ui.PromptRename)
			return
		}
		a.rename(cmd.Args)
	case "signout":
		a.do("Sign out", func(ctx context.Context) error {
			if err := a.vm.SignOut(ctx); err != nil {
				return err
			}
			a.app.QueueUpdateDraw(func() {
				a.courses.Update(nil)
				a.chats.Update(nil)
				a.notifications.Update(nil)
				a.profile.Update(nil, nil, nil)
			})
			return nil
		})
	default:
		a.flash.Warn(fmt.Sprintf("unknown command: %s", cmd.Name))
	}
}

func (a *App) rename(name string) {
	a.do("Rename", func(ctx context.Context) error {
		if err := a.vm.Rename(ctx, name); err != nil {
			return err
		}
		a.flash.Info("Name updated")
		return nil
	})
}

// do runs a daemon call off the UI goroutine and flashes its failure.
func (a *App) do(label string, f func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, callTimeout)
		defer cancel()
		if err := f(ctx); err != nil && a.ctx.Err() == nil {
			a.flash.Err(fmt.Errorf("%s: %s", label, describe(err)))
		}
	}()
}

// load refreshes a screen's data; results arrive through the view model.
func (a *App) load(page string, cached bool) {
	var f func(context.Context, bool) error
	switch page {
	case pageCourses, pageCourse:
		f = a.vm.LoadCourses
	case pageChats:
		f = a.vm.LoadChats
	case pageNotifications:
		f = a.vm.LoadNotifications
	case pageMentors:
		f = a.vm.LoadMentors
	case pageFAQ:
		f = a.vm.LoadFAQ
	case pageProfile:
		f = a.vm.LoadProfile
	default:
		return
	}
	a.do("Refresh", func(ctx context.Context) error { return f(ctx, cached) })
}

func (a *App) markRead() {
	n, ok := a.notifications.SelectedNotification()
	if !ok || n.Read {
		return
	}
	a.do("Mark read", func(ctx context.Context) error {
		resp, err := a.vm.MarkRead(ctx, n.ID)
		if err != nil {
			return err
		}
		if !resp.Acknowledged {
			a.flash.Warn(fmt.Sprintf("Marked read locally; backend did not confirm (%s)", resp.ErrorKind))
		}
		return nil
	})
}

func (a *App) startChat() {
	mentorID := a.mentors.SelectedMentor()
	if mentorID == "" {
		return
	}
	a.do("Start chat", func(ctx context.Context) error {
		if _, err := a.vm.StartChat(ctx, mentorID); err != nil {
			return err
		}
		a.flash.Info("Chat started")
		a.app.QueueUpdateDraw(func() { a.switchTo(pageChats) })
		return nil
	})
}

func (a *App) openCertificate(c rpc.CourseView) {
	if c.ID == "" {
		return
	}
	a.certificate.ShowMessage("Fetching certificate...")
	a.push(pageCertificate)
	a.do("Certificate", func(ctx context.Context) error {
		url, err := a.vm.Certificate(ctx, c.ID)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.certificate.ShowMessage("No certificate available: " + describe(err))
				return
			}
			a.certificate.ShowCertificate(c.Name, url)
		})
		return err
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	go a.refreshLoop()
	go a.watchLoop()
	go a.flashLoop()
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, callTimeout)
		defer cancel()
		if err := a.vm.LoadStatus(ctx); err != nil {
			a.flash.Err(fmt.Errorf("status: %s", describe(err)))
		}
		for _, page := range []string{pageCourses, pageChats, pageNotifications} {
			a.load(page, false)
		}
	}()

	return a.app.Run()
}

// refreshLoop applies view model updates to the widgets and periodically
// re-syncs the visible screen.
func (a *App) refreshLoop() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case s := <-a.vm.RefreshCh():
			a.app.QueueUpdateDraw(func() { a.render(s) })
		case <-ticker.C:
			a.load(a.pages.Current(), false)
			a.app.QueueUpdateDraw(func() { a.render(model.ScreenStatus) })
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) render(s model.Screen) {
	switch s {
	case model.ScreenStatus:
		a.renderStatus()
	case model.ScreenCourses:
		a.courses.Update(a.vm.Courses())
		a.reportList(a.courses)
	case model.ScreenChats:
		a.chats.Update(a.vm.Chats())
		a.reportList(a.chats)
		a.renderStatus()
	case model.ScreenNotifications:
		a.notifications.Update(a.vm.Notifications())
		a.reportList(a.notifications)
		a.renderStatus()
	case model.ScreenMentors:
		a.mentors.Update(a.vm.Mentors())
		a.reportList(a.mentors)
	case model.ScreenFAQ:
		a.faq.Update(a.vm.FAQ())
		a.reportList(a.faq)
	case model.ScreenProfile:
		a.profile.Update(a.vm.Profile())
	}
	a.updateCrumbs()
}

// reportList flashes a list that fell back to its stale items, once per
// error kind.
func (a *App) reportList(lc ui.ListComponent) {
	meta, ok := lc.Meta()
	if !ok {
		return
	}
	if meta.Stale() {
		a.flash.ListFailed(lc.Name(), meta.ErrorKind)
		return
	}
	a.flash.ListRecovered(lc.Name())
}

func (a *App) renderStatus() {
	data := &ui.SessionData{Session: a.sessionName}
	var unreadChats, unreadNotes int
	if chats := a.vm.Chats(); chats != nil {
		unreadChats = chats.TotalUnread
	}
	if notes := a.vm.Notifications(); notes != nil {
		unreadNotes = notes.Unread
	}
	if courses := a.vm.Courses(); courses != nil {
		data.Courses = len(courses.All)
	}
	data.UnreadChats, data.UnreadNotifications = unreadChats, unreadNotes

	st := a.vm.Status()
	if st != nil {
		data.Status = st.State
		data.Account = st.Account
		if st.User != nil {
			data.Account = st.User.Name
		}
		data.Uptime = time.Duration(st.UptimeMs) * time.Millisecond
		a.statusBar.SetState(st.State)
		a.announce(st.State)
	}
	a.sessionInfo.Update(data)
	a.statusBar.SetUnread(unreadChats, unreadNotes)
}

// announce flashes state changes the user has to act on.
func (a *App) announce(state string) {
	if state == a.lastState {
		return
	}
	prev := a.lastState
	a.lastState = state
	switch state {
	case "SIGNED_OUT":
		a.flash.Warn("Signed out. Store tokens with: elearnctl signin <access> <refresh>")
	case "AUTH_EXPIRED":
		a.flash.Warn("Session expired. Sign in again with elearnctl signin")
	case "OFFLINE":
		a.flash.Warn("Backend unreachable; showing the last synced data")
	case "READY":
		if prev != "" && prev != "READY" {
			a.flash.Info("Connected")
			for _, page := range []string{pageCourses, pageChats, pageNotifications} {
				a.load(page, false)
			}
		}
	}
}

// watchLoop keeps an event stream open to the daemon, reconnecting after
// failures.
func (a *App) watchLoop() {
	for {
		err := a.vm.Watch(a.ctx)
		if a.ctx.Err() != nil {
			return
		}
		if err != nil {
			a.flash.Warn("Lost daemon event stream: " + describe(err))
		}
		select {
		case <-time.After(watchRetry):
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) flashLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.flash.Watch():
		case <-ticker.C:
		case <-a.ctx.Done():
			return
		}
		msg := a.flash.GetMessage()
		a.app.QueueUpdateDraw(func() { a.flashBar.Update(msg) })
	}
}

// describe turns a daemon error into a short message.
func describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	st, ok := grpcstatus.FromError(err)
	if !ok {
		return err.Error()
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return "not signed in or session expired"
	case codes.Unavailable:
		return "backend unreachable"
	default:
		return st.Message()
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
