package views

import (
	"strings"
	"testing"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
)

func coursesFixture() *rpc.ListCoursesResponse {
	c1 := rpc.CourseView{ID: "c1", Name: "Go Basics", Level: "Beginner", Started: true, Progress: 1, Complete: true}
	c2 := rpc.CourseView{ID: "c2", Name: "SQL", Level: "Intermediate", Started: true, Progress: 0.5}
	c3 := rpc.CourseView{ID: "c3", Name: "Rust", Level: "Advanced"}
	return &rpc.ListCoursesResponse{
		All:        []rpc.CourseView{c1, c2, c3},
		Complete:   []rpc.CourseView{c1},
		Incomplete: []rpc.CourseView{c2},
	}
}

func ids(courses []rpc.CourseView) string {
	var out []string
	for _, c := range courses {
		out = append(out, c.ID)
	}
	return strings.Join(out, ",")
}

func TestCourseListTabs(t *testing.T) {
	cl := NewCourseList(ui.DefaultTheme())
	cl.Update(coursesFixture())

	want := []struct {
		tab CourseTab
		ids string
	}{
		{TabAll, "c1,c2,c3"},
		{TabIncomplete, "c2"},
		{TabComplete, "c1"},
		{TabAll, "c1,c2,c3"},
	}
	for i, w := range want {
		if i > 0 {
			cl.NextTab()
		}
		if cl.Tab() != w.tab {
			t.Fatalf("step %d: tab = %s, want %s", i, cl.Tab(), w.tab)
		}
		if got := ids(cl.Visible()); got != w.ids {
			t.Errorf("tab %s: visible = %q, want %q", w.tab, got, w.ids)
		}
		if rows := cl.GetRowCount(); rows != len(cl.Visible())+1 {
			t.Errorf("tab %s: rows = %d, want header plus %d", w.tab, rows, len(cl.Visible()))
		}
	}
}

func TestCourseListFilterAndSelection(t *testing.T) {
	cl := NewCourseList(ui.DefaultTheme())
	cl.Update(coursesFixture())

	cl.SetFilter("advanced")
	if got := ids(cl.Visible()); got != "c3" {
		t.Fatalf("filtered = %q, want c3", got)
	}
	cl.Select(1, 0)
	c, ok := cl.SelectedCourse()
	if !ok || c.ID != "c3" {
		t.Errorf("SelectedCourse() = %+v, %v", c, ok)
	}
	if !strings.Contains(cl.GetTitle(), "filter: advanced") {
		t.Errorf("title = %q", cl.GetTitle())
	}

	cl.ClearFilter()
	if len(cl.Visible()) != 3 {
		t.Errorf("visible after clear = %d", len(cl.Visible()))
	}
}

func TestCourseListProgressColumn(t *testing.T) {
	cl := NewCourseList(ui.DefaultTheme())
	cl.Update(coursesFixture())

	want := []string{"done", "50%", "-"}
	for i, w := range want {
		if got := cl.GetCell(i+1, 2).Text; got != w {
			t.Errorf("row %d progress = %q, want %q", i+1, got, w)
		}
	}
}

func TestCourseListTitleShowsOffline(t *testing.T) {
	cl := NewCourseList(ui.DefaultTheme())
	resp := coursesFixture()
	resp.ErrorKind = "network_unreachable"
	cl.Update(resp)
	if !strings.Contains(cl.GetTitle(), "offline: network_unreachable") {
		t.Errorf("title = %q", cl.GetTitle())
	}
}

func TestChatListUnreadAndFilter(t *testing.T) {
	cl := NewChatList(ui.DefaultTheme())
	cl.Update(&rpc.ListChatsResponse{
		Chats: []rpc.ChatSummary{
			{ID: "a", With: "Grace", LastMessage: "see you\nsoon", Unread: 2, TimeText: "3:04 PM"},
			{ID: "b", With: "Linus", LastMessage: "patch merged", TimeText: "Yesterday"},
		},
		TotalUnread: 2,
	})

	if got := cl.GetCell(1, 0).Text; got != " (2) Grace" {
		t.Errorf("name cell = %q", got)
	}
	if got := cl.GetCell(1, 1).Text; got != " see you soon" {
		t.Errorf("message cell = %q", got)
	}
	if !strings.Contains(cl.GetTitle(), "unread: 2") {
		t.Errorf("title = %q", cl.GetTitle())
	}

	cl.SetFilter("patch")
	cl.Select(1, 0)
	if got := cl.SelectedChat(); got != "b" {
		t.Errorf("SelectedChat() = %q, want b", got)
	}
}

func TestNotificationListKeepsSelection(t *testing.T) {
	nl := NewNotificationList(ui.DefaultTheme())
	resp := &rpc.ListNotificationsResponse{
		Notifications: []rpc.NotificationView{
			{ID: "n1", Title: "Welcome"},
			{ID: "n2", Title: "New reply"},
		},
		Unread: 2,
	}
	nl.Update(resp)
	nl.Select(2, 0)

	resp.Notifications[1].Read = true
	resp.Unread = 1
	nl.Update(resp)

	n, ok := nl.SelectedNotification()
	if !ok || n.ID != "n2" || !n.Read {
		t.Errorf("SelectedNotification() = %+v, %v", n, ok)
	}
	if got := nl.GetCell(2, 0).Text; got != "  " {
		t.Errorf("read marker = %q, want blank", got)
	}
	if got := nl.GetCell(1, 0).Text; got != " ●" {
		t.Errorf("unread marker = %q", got)
	}
}

func TestMentorListSelection(t *testing.T) {
	ml := NewMentorList(ui.DefaultTheme())
	ml.Update(&rpc.ListMentorsResponse{Mentors: []rpc.MentorView{{ID: "m1", Name: "Grace"}}})
	ml.Select(1, 0)
	if got := ml.SelectedMentor(); got != "m1" {
		t.Errorf("SelectedMentor() = %q, want m1", got)
	}
	ml.Select(0, 0)
	if got := ml.SelectedMentor(); got != "" {
		t.Errorf("header selected mentor = %q, want empty", got)
	}
}

func TestEmptyListsShowPlaceholder(t *testing.T) {
	empty := rpc.ListMeta{Empty: true}
	theme := ui.DefaultTheme()

	cl := NewCourseList(theme)
	cl.Update(&rpc.ListCoursesResponse{ListMeta: empty})
	chats := NewChatList(theme)
	chats.Update(&rpc.ListChatsResponse{ListMeta: empty})
	nl := NewNotificationList(theme)
	nl.Update(&rpc.ListNotificationsResponse{ListMeta: empty})
	ml := NewMentorList(theme)
	ml.Update(&rpc.ListMentorsResponse{ListMeta: empty})

	tests := []struct {
		name  string
		cell  string
		title string
		sel   bool
	}{
		{"courses", cl.GetCell(1, 0).Text, cl.GetTitle(), cl.GetCell(1, 0).NotSelectable},
		{"chats", chats.GetCell(1, 0).Text, chats.GetTitle(), chats.GetCell(1, 0).NotSelectable},
		{"notifications", nl.GetCell(1, 0).Text, nl.GetTitle(), nl.GetCell(1, 0).NotSelectable},
		{"mentors", ml.GetCell(1, 0).Text, ml.GetTitle(), ml.GetCell(1, 0).NotSelectable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.cell, " No ") || !strings.HasSuffix(tt.cell, " yet") {
				t.Errorf("placeholder = %q", tt.cell)
			}
			if !tt.sel {
				t.Error("placeholder row is selectable")
			}
			if strings.Contains(tt.title, "offline") {
				t.Errorf("title = %q, want no offline marker", tt.title)
			}
		})
	}

	if _, ok := cl.SelectedCourse(); ok {
		t.Error("placeholder selected as a course")
	}
	if _, ok := nl.SelectedNotification(); ok {
		t.Error("placeholder selected as a notification")
	}
}

func TestCourseTabWithoutCoursesShowsPlaceholder(t *testing.T) {
	cl := NewCourseList(ui.DefaultTheme())
	resp := coursesFixture()
	resp.Complete = nil
	cl.Update(resp)
	cl.NextTab()
	cl.NextTab()

	if got := cl.GetCell(1, 0).Text; got != " No complete courses" {
		t.Errorf("placeholder = %q", got)
	}
	cl.SetFilter("cobol")
	if got := cl.GetCell(1, 0).Text; got != " No courses match cobol" {
		t.Errorf("filter placeholder = %q", got)
	}
}

func TestUnfetchedListHasNoPlaceholder(t *testing.T) {
	ml := NewMentorList(ui.DefaultTheme())
	ml.Update(&rpc.ListMentorsResponse{ListMeta: rpc.ListMeta{ErrorKind: "network_unreachable"}})
	if rows := ml.GetRowCount(); rows != 1 {
		t.Errorf("rows = %d, want header only", rows)
	}
	if !strings.Contains(ml.GetTitle(), "offline: network_unreachable") {
		t.Errorf("title = %q", ml.GetTitle())
	}
}

func TestListViewsReportMetaAndScope(t *testing.T) {
	theme := ui.DefaultTheme()
	cl := NewCourseList(theme)
	chats := NewChatList(theme)
	faq := NewFAQView(theme)
	lists := []ui.ListComponent{cl, chats, NewNotificationList(theme), NewMentorList(theme), faq}
	for _, lc := range lists {
		if _, ok := lc.Meta(); ok {
			t.Errorf("%s: Meta() ok before the first response", lc.Name())
		}
	}

	resp := coursesFixture()
	resp.ListMeta = rpc.ListMeta{ErrorKind: "network"}
	cl.Update(resp)
	if meta, ok := cl.Meta(); !ok || !meta.Stale() {
		t.Errorf("course Meta() = %+v, %v", meta, ok)
	}
	if got := cl.Scope(); got != "All" {
		t.Errorf("course Scope() = %q", got)
	}
	cl.NextTab()
	cl.SetFilter("sql")
	if got := cl.Scope(); got != "In progress /sql" {
		t.Errorf("filtered course Scope() = %q", got)
	}

	chats.SetFilter("ada")
	if got := chats.Scope(); got != "/ada" {
		t.Errorf("chat Scope() = %q", got)
	}

	faq.Update(&rpc.FAQResponse{ListMeta: rpc.ListMeta{Empty: true}})
	if meta, ok := faq.Meta(); !ok || meta.Stale() {
		t.Errorf("faq Meta() = %+v, %v", meta, ok)
	}
}

func TestRenderQR(t *testing.T) {
	out := renderQR("https://certs.example.com/c1.pdf")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 10 {
		t.Fatalf("QR has %d lines", len(lines))
	}
	width := len([]rune(lines[0]))
	for i, l := range lines {
		if len([]rune(l)) != width {
			t.Fatalf("line %d width %d, want %d", i, len([]rune(l)), width)
		}
		if !strings.HasPrefix(l, "  ") {
			t.Fatalf("line %d not indented", i)
		}
	}
	if !strings.ContainsRune(out, '\u2588') {
		t.Error("QR has no full blocks")
	}
}

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\U0001F44D\U0001F3FB", "\U0001F44D"},
		{"a\u200db", "ab"},
		{"\u2764\ufe0f", "\u2764"},
		{"two\nlines\ttab", "two lines tab"},
	}
	for _, tt := range tests {
		if got := sanitizeForTerminal(tt.in); got != tt.want {
			t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
