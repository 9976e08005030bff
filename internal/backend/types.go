// Package backend describes the e-learning REST API: the records it returns,
// the envelopes they arrive in, and one typed call per endpoint.
package backend

import "time"

// Image is an uploaded asset reference.
type Image struct {
	URL string `json:"url"`
}

// Course is an entry of GET /get-courses.
type Course struct {
	ID          string  `json:"_id" validate:"required"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Level       string  `json:"level,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Thumbnail   *Image  `json:"thumbnail,omitempty"`
}

// Chapter is one unit of a progress record.
type Chapter struct {
	ChapterID   string `json:"chapterId"`
	IsCompleted bool   `json:"isCompleted"`
}

// ProgressRecord is the per-chapter progress of the user in one course.
type ProgressRecord struct {
	CourseID string    `json:"courseId" validate:"required"`
	Chapters []Chapter `json:"chapters"`
}

// Participant is a member of a conversation.
type Participant struct {
	ID     string `json:"_id" validate:"required"`
	Name   string `json:"name"`
	Avatar *Image `json:"avatar,omitempty"`
}

// Message is one entry of a conversation.
type Message struct {
	Content   string    `json:"content"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
	ReadBy    []string  `json:"readBy"`
}

// Conversation is a private chat as returned by GET /chat/all.
type Conversation struct {
	ID           string        `json:"_id" validate:"required"`
	Participants []Participant `json:"participants" validate:"dive"`
	Messages     []Message     `json:"messages"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Notification statuses. A notification only ever moves unread -> read.
const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

// Notification is an entry of GET /user-notifications.
type Notification struct {
	ID        string    `json:"_id" validate:"required"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status" validate:"oneof=read unread"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Read reports whether the notification has been read.
func (n Notification) Read() bool { return n.Status == StatusRead }

// Mentor is an entry of GET /all.
type Mentor struct {
	ID        string `json:"_id" validate:"required"`
	Name      string `json:"name"`
	Avatar    *Image `json:"avatar,omitempty"`
	Expertise string `json:"expertise,omitempty"`
}

// FAQItem is one question of the FAQ layout.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CourseRef is an enrolment of the user.
type CourseRef struct {
	CourseID string `json:"courseId"`
}

// User is the signed-in user as returned by GET /me.
type User struct {
	ID      string      `json:"_id" validate:"required"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Avatar  *Image      `json:"avatar,omitempty"`
	Role    string      `json:"role"`
	Courses []CourseRef `json:"courses"`
}

// WishlistItem is an entry of GET /wishlist.
type WishlistItem struct {
	ID    string  `json:"_id" validate:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItem is an entry of GET /get-cart.
type CartItem struct {
	ID       string  `json:"_id" validate:"required"`
	CourseID string  `json:"courseId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// Certificate is the completion certificate of a course.
type Certificate struct {
	ID       string `json:"_id"`
	CourseID string `json:"courseId"`
	URL      string `json:"url" validate:"required"`
}

// Answer is the body of PUT /add-answer.
type Answer struct {
	Answer     string `json:"answer"`
	CourseID   string `json:"courseId"`
	ContentID  string `json:"contentId"`
	QuestionID string `json:"questionId"`
}
