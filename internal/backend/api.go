package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/elearn-app/elearn/internal/credentials"
)

// Doer performs one backend request. *httpapi.Client implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, body any, creds *credentials.Credentials, out any) error
}

// CredentialSource supplies the tokens attached to each request.
// *credentials.Accessor implements it.
type CredentialSource interface {
	Get() (credentials.Credentials, bool)
}

// API exposes one method per backend endpoint. Credentials are read before
// every call; when none are stored the request goes out anonymous.
type API struct {
	http  Doer
	creds CredentialSource
}

// New creates an API over the given client and credential source.
func New(http Doer, creds CredentialSource) *API {
	return &API{http: http, creds: creds}
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var creds *credentials.Credentials
	if a.creds != nil {
		if c, ok := a.creds.Get(); ok {
			creds = &c
		}
	}
	return a.http.Do(ctx, method, path, body, creds, out)
}

// Courses returns the course catalogue.
func (a *API) Courses(ctx context.Context) ([]Course, error) {
	var resp coursesResponse
	if err := a.do(ctx, http.MethodGet, "/get-courses", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// Progress returns the user's per-chapter progress records.
func (a *API) Progress(ctx context.Context) ([]ProgressRecord, error) {
	var resp progressResponse
	if err := a.do(ctx, http.MethodGet, "/user/progress", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Response.Progress, nil
}

// Chats returns the user's private conversations.
func (a *API) Chats(ctx context.Context) ([]Conversation, error) {
	var resp chatsResponse
	if err := a.do(ctx, http.MethodGet, "/chat/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.PrivateChats, nil
}

// StartPrivateChat opens (or reopens) a conversation with a mentor and
// returns its id.
func (a *API) StartPrivateChat(ctx context.Context, mentorID string) (string, error) {
	var resp startChatResponse
	body := map[string]string{"mentorId": mentorID}
	if err := a.do(ctx, http.MethodPost, "/chat/private", body, &resp); err != nil {
		return "", err
	}
	return resp.Chat.ID, nil
}

// Notifications returns the user's notifications.
func (a *API) Notifications(ctx context.Context) ([]Notification, error) {
	var resp notificationsResponse
	if err := a.do(ctx, http.MethodGet, "/user-notifications", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// MarkNotificationRead acknowledges a notification.
func (a *API) MarkNotificationRead(ctx context.Context, id string) error {
	body := map[string]string{"status": StatusRead}
	return a.do(ctx, http.MethodPut, "/update-notification/"+url.PathEscape(id), body, nil)
}

// Mentors returns every mentor.
func (a *API) Mentors(ctx context.Context) ([]Mentor, error) {
	var resp mentorsResponse
	if err := a.do(ctx, http.MethodGet, "/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Mentors, nil
}

// FAQ returns the FAQ layout.
func (a *API) FAQ(ctx context.Context) ([]FAQItem, error) {
	var resp faqResponse
	if err := a.do(ctx, http.MethodGet, "/get-layout/FAQ", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Layout.FAQ, nil
}

// Me returns the signed-in user.
func (a *API) Me(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := a.do(ctx, http.MethodGet, "/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Wishlist returns the user's wishlist.
func (a *API) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var resp wishlistResponse
	if err := a.do(ctx, http.MethodGet, "/wishlist", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Wishlist, nil
}

// Cart returns the items in the user's cart.
func (a *API) Cart(ctx context.Context) ([]CartItem, error) {
	var resp cartResponse
	if err := a.do(ctx, http.MethodGet, "/get-cart", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// UpdateUserInfo renames the user and returns the updated profile.
func (a *API) UpdateUserInfo(ctx context.Context, name string) (*User, error) {
	var resp userResponse
	body := map[string]string{"name": name}
	if err := a.do(ctx, http.MethodPut, "/update-user-info", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// AddAnswer posts an answer to a course question.
func (a *API) AddAnswer(ctx context.Context, ans Answer) error {
	return a.do(ctx, http.MethodPut, "/add-answer", ans, nil)
}

// Certificate fetches the completion certificate of a course.
func (a *API) Certificate(ctx context.Context, courseID string) (*Certificate, error) {
	var resp certificateResponse
	body := map[string]string{"courseId": courseID}
	if err := a.do(ctx, http.MethodPost, "/user/get-certificate", body, &resp); err != nil {
		return nil, err
	}
	return resp.Certificate, nil
}
