package resolve

import (
	"testing"
	"time"

	"github.com/elearn-app/elearn/internal/backend"
)

func msg(readBy ...string) backend.Message {
	return backend.Message{Content: "hi", ReadBy: readBy}
}

func TestUnread(t *testing.T) {
	conv := backend.Conversation{
		ID: "k1",
		Messages: []backend.Message{
			msg("m1"),
			msg("m1", "u1"),
			msg(),
			msg("u1"),
		},
	}
	if got := Unread(conv, "u1"); got != 2 {
		t.Errorf("Unread(u1) = %d, want 2", got)
	}
	if got := Unread(conv, "m1"); got != 2 {
		t.Errorf("Unread(m1) = %d, want 2", got)
	}
	if got := Unread(backend.Conversation{}, "u1"); got != 0 {
		t.Errorf("Unread(empty) = %d, want 0", got)
	}
}

func TestUnreadDropsToZeroWhenAllRead(t *testing.T) {
	conv := backend.Conversation{Messages: []backend.Message{msg(), msg("x"), msg("y", "z")}}
	for i := range conv.Messages {
		conv.Messages[i].ReadBy = append(conv.Messages[i].ReadBy, "u1")
	}
	if got := Unread(conv, "u1"); got != 0 {
		t.Errorf("Unread = %d, want 0", got)
	}
}

func TestOtherParticipant(t *testing.T) {
	conv := backend.Conversation{Participants: []backend.Participant{
		{ID: "u1", Name: "Me"},
		{ID: "m1", Name: "Ada"},
		{ID: "m2", Name: "Bob"},
	}}
	p, ok := OtherParticipant(conv, "u1")
	if !ok || p.ID != "m1" {
		t.Errorf("OtherParticipant = %+v, %v", p, ok)
	}
	if _, ok := OtherParticipant(backend.Conversation{Participants: []backend.Participant{{ID: "u1"}}}, "u1"); ok {
		t.Error("OtherParticipant should be absent for a self-only conversation")
	}
}

func chapters(done ...bool) []backend.Chapter {
	out := make([]backend.Chapter, len(done))
	for i, d := range done {
		out[i] = backend.Chapter{ChapterID: string(rune('a' + i)), IsCompleted: d}
	}
	return out
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		name      string
		cache     ProgressCache
		records   []backend.ProgressRecord
		wantDone  bool
		wantKnown bool
	}{
		{"cache 1 wins over records", ProgressCache{"c1": 1}, []backend.ProgressRecord{{CourseID: "c1", Chapters: chapters(false)}}, true, true},
		{"cache partial", ProgressCache{"c1": 0.5}, []backend.ProgressRecord{{CourseID: "c1", Chapters: chapters(true)}}, false, true},
		{"cache zero", ProgressCache{"c1": 0}, nil, false, true},
		{"records all done", nil, []backend.ProgressRecord{{CourseID: "c1", Chapters: chapters(true, true)}}, true, true},
		{"records one pending", nil, []backend.ProgressRecord{{CourseID: "c1", Chapters: chapters(true, false)}}, false, true},
		{"record without chapters", nil, []backend.ProgressRecord{{CourseID: "c1"}}, false, false},
		{"other course only", ProgressCache{"c2": 1}, []backend.ProgressRecord{{CourseID: "c2", Chapters: chapters(true)}}, false, false},
		{"nothing", nil, nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, known := Completion("c1", tt.cache, tt.records)
			if done != tt.wantDone || known != tt.wantKnown {
				t.Errorf("Completion = (%v, %v), want (%v, %v)", done, known, tt.wantDone, tt.wantKnown)
			}
		})
	}
}

func TestBuildProgressCacheAgreesWithRecords(t *testing.T) {
	records := []backend.ProgressRecord{
		{CourseID: "a", Chapters: chapters(true, true, true)},
		{CourseID: "b", Chapters: chapters(true, false, true)},
		{CourseID: "c", Chapters: chapters(false)},
		{CourseID: "d"},
	}
	cache := BuildProgressCache(records)
	if _, ok := cache["d"]; ok {
		t.Error("record without chapters should not be cached")
	}
	if cache["a"] != 1 || cache["c"] != 0 {
		t.Errorf("cache = %v", cache)
	}
	for _, r := range records {
		fromCache, k1 := Completion(r.CourseID, cache, nil)
		fromRecords, k2 := Completion(r.CourseID, nil, records)
		if fromCache != fromRecords || k1 != k2 {
			t.Errorf("%s: cache says (%v,%v), records say (%v,%v)", r.CourseID, fromCache, k1, fromRecords, k2)
		}
	}
}

func TestPartitionCoursesHidesNotStarted(t *testing.T) {
	courses := []backend.Course{{ID: "c1", Name: "Go"}, {ID: "c2", Name: "SQL"}}
	cache := ProgressCache{"c1": 1}

	complete, incomplete := PartitionCourses(courses, cache, nil)
	if len(complete) != 1 || complete[0].ID != "c1" {
		t.Errorf("complete = %+v, want [c1]", complete)
	}
	if incomplete == nil || len(incomplete) != 0 {
		t.Errorf("incomplete = %+v, want []", incomplete)
	}
}

func TestPartitionCoursesKeepsOrder(t *testing.T) {
	courses := []backend.Course{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	records := []backend.ProgressRecord{
		{CourseID: "d", Chapters: chapters(false)},
		{CourseID: "b", Chapters: chapters(true)},
		{CourseID: "a", Chapters: chapters(true, false)},
	}
	complete, incomplete := PartitionCourses(courses, BuildProgressCache(records), records)
	if len(complete) != 1 || complete[0].ID != "b" {
		t.Errorf("complete = %+v", complete)
	}
	if len(incomplete) != 2 || incomplete[0].ID != "a" || incomplete[1].ID != "d" {
		t.Errorf("incomplete = %+v", incomplete)
	}
}

func TestTimeText(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	f := Formatter{Location: time.UTC}

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"2 hours", 2 * time.Hour, "1:00 PM"},
		{"just under a day", 24*time.Hour - time.Second, "3:00 PM"},
		{"exactly a day", 24 * time.Hour, Yesterday},
		{"30 hours", 30 * time.Hour, Yesterday},
		{"exactly two days", 48 * time.Hour, "Mar 8, 2026"},
		{"72 hours", 72 * time.Hour, "Mar 7, 2026"},
		{"future", -time.Hour, "4:00 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.TimeText(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("TimeText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeTextCustomLayouts(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	f := Formatter{ClockLayout: "15:04", DateLayout: "2006-01-02", Location: time.UTC}
	if got := f.TimeText(now.Add(-2*time.Hour), now); got != "13:00" {
		t.Errorf("clock = %q", got)
	}
	if got := f.TimeText(now.Add(-72*time.Hour), now); got != "2026-03-07" {
		t.Errorf("date = %q", got)
	}
}

func TestSortByRecencyIsStable(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	convs := []backend.Conversation{
		{ID: "old", UpdatedAt: t0},
		{ID: "tie1", UpdatedAt: t0.Add(time.Hour)},
		{ID: "new", UpdatedAt: t0.Add(2 * time.Hour)},
		{ID: "tie2", UpdatedAt: t0.Add(time.Hour)},
	}
	SortByRecency(convs)
	want := []string{"new", "tie1", "tie2", "old"}
	for i, id := range want {
		if convs[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(convs), want)
		}
	}
}

func ids(convs []backend.Conversation) []string {
	out := make([]string, len(convs))
	for i, c := range convs {
		out[i] = c.ID
	}
	return out
}

func TestChatViews(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	convs := []backend.Conversation{
		{
			ID:           "k1",
			Participants: []backend.Participant{{ID: "u1"}, {ID: "m1", Name: "Ada"}},
			Messages: []backend.Message{
				{Content: "first", CreatedAt: now.Add(-30 * time.Hour), ReadBy: []string{"u1"}},
				{Content: "second", CreatedAt: now.Add(-26 * time.Hour)},
			},
			UpdatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID:           "k2",
			Participants: []backend.Participant{{ID: "m2", Name: "Bob"}, {ID: "u1"}},
			Messages:     []backend.Message{{Content: "yo", CreatedAt: now.Add(-time.Hour)}},
			UpdatedAt:    now.Add(-time.Hour),
		},
	}
	views := ChatViews(convs, "u1", now, Formatter{Location: time.UTC})
	if len(views) != 2 || views[0].ID != "k2" {
		t.Fatalf("views = %+v", views)
	}
	if views[0].Other.Name != "Bob" || views[0].TimeText != "2:00 PM" || views[0].Unread != 1 {
		t.Errorf("k2 view = %+v", views[0])
	}
	if views[1].LastMessage != "second" || views[1].TimeText != Yesterday || views[1].Unread != 1 {
		t.Errorf("k1 view = %+v", views[1])
	}
	if TotalUnread(views) != 2 {
		t.Errorf("TotalUnread = %d", TotalUnread(views))
	}
	if convs[0].ID != "k1" {
		t.Error("ChatViews must not reorder its input")
	}
}

func TestUnreadNotifications(t *testing.T) {
	ns := []backend.Notification{{Status: backend.StatusUnread}, {Status: backend.StatusRead}, {Status: backend.StatusUnread}}
	if got := UnreadNotifications(ns); got != 2 {
		t.Errorf("UnreadNotifications = %d", got)
	}
}
