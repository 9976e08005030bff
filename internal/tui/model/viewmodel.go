package model

import (
	"context"
	"strings"
	"sync"

	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/client"
)

// Screen identifies a cached daemon response.
type Screen int

const (
	ScreenStatus Screen = iota
	ScreenCourses
	ScreenChats
	ScreenNotifications
	ScreenMentors
	ScreenFAQ
	ScreenProfile
)

// ViewModel caches daemon responses and signals UI refreshes.
type ViewModel struct {
	mu sync.RWMutex

	client        *client.Client
	status        *rpc.StatusResponse
	courses       *rpc.ListCoursesResponse
	chats         *rpc.ListChatsResponse
	notifications *rpc.ListNotificationsResponse
	mentors       *rpc.ListMentorsResponse
	faq           *rpc.FAQResponse
	profile       *rpc.ProfileResponse
	wishlist      *rpc.ListWishlistResponse
	cart          *rpc.CartResponse

	refreshCh chan Screen
}

// NewViewModel creates a new view model connected to the daemon client.
func NewViewModel(c *client.Client) *ViewModel {
	return &ViewModel{
		client:    c,
		refreshCh: make(chan Screen, 16),
	}
}

// RefreshCh returns the channel that signals which screen changed.
func (vm *ViewModel) RefreshCh() <-chan Screen {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh(s Screen) {
	select {
	case vm.refreshCh <- s:
	default:
	}
}

// LoadStatus fetches the session status.
func (vm *ViewModel) LoadStatus(ctx context.Context) error {
	resp, err := vm.client.Session.GetStatus(ctx, &rpc.Empty{})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.status = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenStatus)
	return nil
}

// LoadCourses fetches the catalogue and its progress tabs. With cached set
// the daemon answers from memory.
func (vm *ViewModel) LoadCourses(ctx context.Context, cached bool) error {
	resp, err := vm.client.Course.ListCourses(ctx, &rpc.ListRequest{Cached: cached})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.courses = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenCourses)
	return nil
}

// LoadChats fetches the chat list.
func (vm *ViewModel) LoadChats(ctx context.Context, cached bool) error {
	resp, err := vm.client.Chat.ListChats(ctx, &rpc.ListRequest{Cached: cached})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.chats = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenChats)
	return nil
}

// LoadNotifications fetches the notification list.
func (vm *ViewModel) LoadNotifications(ctx context.Context, cached bool) error {
	resp, err := vm.client.Notification.ListNotifications(ctx, &rpc.ListRequest{Cached: cached})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.notifications = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenNotifications)
	return nil
}

// LoadMentors fetches the mentor list.
func (vm *ViewModel) LoadMentors(ctx context.Context, cached bool) error {
	resp, err := vm.client.Content.ListMentors(ctx, &rpc.ListRequest{Cached: cached})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.mentors = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenMentors)
	return nil
}

// LoadFAQ fetches the FAQ.
func (vm *ViewModel) LoadFAQ(ctx context.Context, cached bool) error {
	resp, err := vm.client.Content.GetFAQ(ctx, &rpc.ListRequest{Cached: cached})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.faq = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenFAQ)
	return nil
}

// LoadProfile fetches the profile, the wishlist and the cart.
func (vm *ViewModel) LoadProfile(ctx context.Context, cached bool) error {
	req := &rpc.ListRequest{Cached: cached}
	profile, err := vm.client.Profile.GetProfile(ctx, req)
	if err != nil {
		return err
	}
	wishlist, err := vm.client.Profile.ListWishlist(ctx, req)
	if err != nil {
		return err
	}
	cart, err := vm.client.Profile.GetCart(ctx, req)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.profile, vm.wishlist, vm.cart = profile, wishlist, cart
	vm.mu.Unlock()
	vm.signalRefresh(ScreenProfile)
	return nil
}

// MarkRead marks a notification read and refreshes the cached list so the
// change shows immediately.
func (vm *ViewModel) MarkRead(ctx context.Context, id string) (*rpc.MarkReadResponse, error) {
	resp, err := vm.client.Notification.MarkRead(ctx, &rpc.MarkReadRequest{ID: id})
	if err != nil {
		return nil, err
	}
	if err := vm.LoadNotifications(ctx, true); err != nil {
		return resp, err
	}
	return resp, nil
}

// StartChat opens a conversation with a mentor and returns its id.
func (vm *ViewModel) StartChat(ctx context.Context, mentorID string) (string, error) {
	resp, err := vm.client.Chat.StartChat(ctx, &rpc.StartChatRequest{MentorID: mentorID})
	if err != nil {
		return "", err
	}
	return resp.ChatID, nil
}

// Rename changes the user's display name.
func (vm *ViewModel) Rename(ctx context.Context, name string) error {
	resp, err := vm.client.Profile.UpdateName(ctx, &rpc.UpdateNameRequest{Name: name})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.profile = resp
	vm.mu.Unlock()
	vm.signalRefresh(ScreenProfile)
	return nil
}

// Certificate fetches the certificate URL of a course.
func (vm *ViewModel) Certificate(ctx context.Context, courseID string) (string, error) {
	resp, err := vm.client.Course.GetCertificate(ctx, &rpc.GetCertificateRequest{CourseID: courseID})
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// SignOut forgets the signed-in user and drops every cached screen.
func (vm *ViewModel) SignOut(ctx context.Context) error {
	if _, err := vm.client.Session.SignOut(ctx, &rpc.Empty{}); err != nil {
		return err
	}
	vm.mu.Lock()
	vm.courses, vm.chats, vm.notifications = nil, nil, nil
	vm.profile, vm.wishlist, vm.cart = nil, nil, nil
	vm.mu.Unlock()
	return vm.LoadStatus(ctx)
}

// Watch streams daemon events until ctx is done, reloading the screens
// they affect from the daemon's memory.
func (vm *ViewModel) Watch(ctx context.Context) error {
	stream, err := vm.client.Session.WatchEvents(ctx, &rpc.WatchEventsRequest{})
	if err != nil {
		return err
	}
	for {
		evt, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		vm.apply(ctx, evt)
	}
}

func (vm *ViewModel) apply(ctx context.Context, evt *rpc.EventMessage) {
	switch {
	case strings.HasPrefix(evt.Kind, "session."):
		_ = vm.LoadStatus(ctx)
	case evt.Kind == bus.KindNotificationRead:
		_ = vm.LoadNotifications(ctx, true)
	case evt.Kind == bus.KindProfileUpdated:
		_ = vm.LoadProfile(ctx, true)
	case evt.Kind == bus.KindListSynced || evt.Kind == bus.KindListSyncFailed:
		_ = vm.LoadStatus(ctx)
	}
}

// Status returns the cached session status.
func (vm *ViewModel) Status() *rpc.StatusResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.status
}

// Courses returns the cached course lists.
func (vm *ViewModel) Courses() *rpc.ListCoursesResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.courses
}

// Chats returns the cached chat list.
func (vm *ViewModel) Chats() *rpc.ListChatsResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.chats
}

// Notifications returns the cached notification list.
func (vm *ViewModel) Notifications() *rpc.ListNotificationsResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.notifications
}

// Mentors returns the cached mentor list.
func (vm *ViewModel) Mentors() *rpc.ListMentorsResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.mentors
}

// FAQ returns the cached FAQ.
func (vm *ViewModel) FAQ() *rpc.FAQResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.faq
}

// Profile returns the cached profile, wishlist and cart.
func (vm *ViewModel) Profile() (*rpc.ProfileResponse, *rpc.ListWishlistResponse, *rpc.CartResponse) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.profile, vm.wishlist, vm.cart
}
