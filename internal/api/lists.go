package api

import (
	"time"

	"github.com/elearn-app/elearn/internal/appstate"
	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/listsync"
	"github.com/elearn-app/elearn/internal/resolve"
)

// List names used in events, logs and checkpoints.
const (
	ListCourses       = "courses"
	ListProgress      = "progress"
	ListChats         = "chats"
	ListNotifications = "notifications"
	ListMentors       = "mentors"
	ListFAQ           = "faq"
	ListWishlist      = "wishlist"
	ListCart          = "cart"
)

// Lists holds one synchronizer per remote collection.
type Lists struct {
	Courses       *listsync.Synchronizer[backend.Course, backend.Course]
	Progress      *listsync.Synchronizer[backend.ProgressRecord, backend.ProgressRecord]
	Chats         *listsync.Synchronizer[backend.Conversation, resolve.ChatView]
	Notifications *listsync.Synchronizer[backend.Notification, backend.Notification]
	Mentors       *listsync.Synchronizer[backend.Mentor, backend.Mentor]
	FAQ           *listsync.Synchronizer[backend.FAQItem, backend.FAQItem]
	Wishlist      *listsync.Synchronizer[backend.WishlistItem, backend.WishlistItem]
	Cart          *listsync.Synchronizer[backend.CartItem, backend.CartItem]
}

// NewLists creates the synchronizers. opts is shared; each list gets its
// own Name. Conversations are resolved against the user held in state.
func NewLists(api *backend.API, state *appstate.State, f resolve.Formatter, opts listsync.Options) *Lists {
	named := func(name string) listsync.Options {
		o := opts
		o.Name = name
		return o
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	chatView := func(c backend.Conversation) (resolve.ChatView, bool) {
		u, _ := state.User()
		v := resolve.NewChatView(c, u.ID, now(), f)
		return v, v.Other.ID != ""
	}

	return &Lists{
		Courses:       listsync.New(api.Courses, listsync.Identity[backend.Course], named(ListCourses)),
		Progress:      listsync.New(api.Progress, listsync.Identity[backend.ProgressRecord], named(ListProgress)),
		Chats:         listsync.New(api.Chats, chatView, named(ListChats)),
		Notifications: listsync.New(api.Notifications, listsync.Identity[backend.Notification], named(ListNotifications)),
		Mentors:       listsync.New(api.Mentors, listsync.Identity[backend.Mentor], named(ListMentors)),
		FAQ:           listsync.New(api.FAQ, listsync.Identity[backend.FAQItem], named(ListFAQ)),
		Wishlist:      listsync.New(api.Wishlist, listsync.Identity[backend.WishlistItem], named(ListWishlist)),
		Cart:          listsync.New(api.Cart, listsync.Identity[backend.CartItem], named(ListCart)),
	}
}

// Reset forgets every list (sign-out).
func (l *Lists) Reset() {
	l.Courses.Reset()
	l.Progress.Reset()
	l.Chats.Reset()
	l.Notifications.Reset()
	l.Mentors.Reset()
	l.FAQ.Reset()
	l.Wishlist.Reset()
	l.Cart.Reset()
}
