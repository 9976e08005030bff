package rpc

import "time"

// Empty is the request or response of calls that carry nothing.
type Empty struct{}

// ListRequest is the request of every list call. Cached returns the last
// synchronized list without contacting the backend.
type ListRequest struct {
	Cached bool `json:"cached,omitempty"`
}

// ListMeta describes how fresh a returned list is. A list call never fails
// because the backend could not be reached; it returns the last good list
// and sets ErrorKind.
type ListMeta struct {
	ErrorKind string    `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
	SyncedAt  time.Time `json:"synced_at,omitzero"`
	Empty     bool      `json:"empty,omitempty"`
}

// Stale reports whether the list could not be refreshed.
func (m ListMeta) Stale() bool { return m.ErrorKind != "" }

// ListState is the persisted outcome of a list's latest syncs.
type ListState struct {
	List          string    `json:"list"`
	LastSuccessAt time.Time `json:"last_success_at,omitzero"`
	LastCount     int       `json:"last_count"`
	LastFailureAt time.Time `json:"last_failure_at,omitzero"`
	LastErrorKind string    `json:"last_error_kind,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// StatusResponse describes the daemon and its session.
type StatusResponse struct {
	Session    string      `json:"session"`
	State      string      `json:"state"`
	Since      time.Time   `json:"since"`
	UptimeMs   int64       `json:"uptime_ms"`
	SignedIn   bool        `json:"signed_in"`
	Account    string      `json:"account,omitempty"`
	User       *UserView   `json:"user,omitempty"`
	APIBaseURL string      `json:"api_base_url"`
	Lists      []ListState `json:"lists,omitempty"`
}

// SignInRequest stores a token pair issued by the backend. Email is an
// optional label for the account.
type SignInRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email,omitempty"`
}

// SignInResponse reports the state reached after signing in.
type SignInResponse struct {
	State     string    `json:"state"`
	User      *UserView `json:"user,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
}

// SignOutResponse reports the state reached after signing out.
type SignOutResponse struct {
	State string `json:"state"`
}

// WatchEventsRequest selects events by kind prefix; empty means all.
type WatchEventsRequest struct {
	Namespace string `json:"namespace,omitempty"`
}

// EventMessage is a daemon event.
type EventMessage struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	List      string    `json:"list,omitempty"`
	Count     int       `json:"count,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	ItemID    string    `json:"item_id,omitempty"`
}

// CourseView is a course with the user's progress.
type CourseView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Level       string  `json:"level,omitempty"`
	Price       float64 `json:"price,omitempty"`
	// Progress is the completion ratio; meaningful only when Started.
	Progress float64 `json:"progress"`
	Started  bool    `json:"started"`
	Complete bool    `json:"complete"`
	// Wishlisted is known once the wishlist has been fetched.
	Wishlisted bool `json:"wishlisted,omitempty"`
}

// ListCoursesResponse holds the catalogue and the two progress tabs.
type ListCoursesResponse struct {
	All        []CourseView `json:"all"`
	Complete   []CourseView `json:"complete"`
	Incomplete []CourseView `json:"incomplete"`
	ListMeta
	// Progress describes the progress list, synced alongside the courses.
	Progress ListMeta `json:"progress_meta"`
}

// AddAnswerRequest answers a course question.
type AddAnswerRequest struct {
	CourseID   string `json:"course_id"`
	ContentID  string `json:"content_id"`
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// GetCertificateRequest selects a course.
type GetCertificateRequest struct {
	CourseID string `json:"course_id"`
}

// CertificateResponse is a course certificate.
type CertificateResponse struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	URL      string `json:"url"`
}

// ChatSummary is one row of the chat list.
type ChatSummary struct {
	ID          string    `json:"id"`
	WithID      string    `json:"with_id"`
	With        string    `json:"with"`
	LastMessage string    `json:"last_message,omitempty"`
	LastAt      time.Time `json:"last_at,omitzero"`
	TimeText    string    `json:"time_text,omitempty"`
	Unread      int       `json:"unread"`
}

// ListChatsResponse is the chat list, newest first.
type ListChatsResponse struct {
	Chats       []ChatSummary `json:"chats"`
	TotalUnread int           `json:"total_unread"`
	ListMeta
}

// StartChatRequest opens a conversation with a mentor.
type StartChatRequest struct {
	MentorID string `json:"mentor_id"`
}

// StartChatResponse carries the conversation id.
type StartChatResponse struct {
	ChatID string `json:"chat_id"`
}

// NotificationView is one notification.
type NotificationView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	TimeText  string    `json:"time_text,omitempty"`
}

// ListNotificationsResponse is the notification list.
type ListNotificationsResponse struct {
	Notifications []NotificationView `json:"notifications"`
	Unread        int                `json:"unread"`
	ListMeta
}

// MarkReadRequest selects a notification.
type MarkReadRequest struct {
	ID string `json:"id"`
}

// MarkReadResponse reports whether the backend acknowledged the read. The
// notification shows as read either way.
type MarkReadResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	ErrorKind    string `json:"error_kind,omitempty"`
	Error        string `json:"error,omitempty"`
}

// UserView is the signed-in user.
type UserView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Courses   int    `json:"courses"`
}

// ProfileResponse is the profile screen.
type ProfileResponse struct {
	User *UserView `json:"user,omitempty"`
	ListMeta
}

// UpdateNameRequest renames the user.
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// WishlistItem is one wishlist entry.
type WishlistItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ListWishlistResponse is the wishlist.
type ListWishlistResponse struct {
	Items []WishlistItem `json:"items"`
	ListMeta
}

// CartItem is one cart entry.
type CartItem struct {
	ID       string  `json:"id"`
	CourseID string  `json:"course_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// CartResponse is the cart. FromSnapshot is set when the backend could not
// be reached and the items come from the last saved copy.
type CartResponse struct {
	Items        []CartItem `json:"items"`
	Total        float64    `json:"total"`
	FromSnapshot bool       `json:"from_snapshot,omitempty"`
	SnapshotAt   time.Time  `json:"snapshot_at,omitzero"`
	ListMeta
}

// MentorView is one mentor.
type MentorView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Expertise string `json:"expertise,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ListMentorsResponse is the mentor list.
type ListMentorsResponse struct {
	Mentors []MentorView `json:"mentors"`
	ListMeta
}

// FAQItem is one question and answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQResponse is the FAQ page.
type FAQResponse struct {
	Items []FAQItem `json:"items"`
	ListMeta
}
