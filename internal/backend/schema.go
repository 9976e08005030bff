package backend

// Response envelopes. Each is validated by the HTTP client after decoding,
// so a missing collection is a malformed response while an empty one is not.

type coursesResponse struct {
	Courses []Course `json:"courses" validate:"required,dive"`
}

type progressResponse struct {
	Response *struct {
		Progress []ProgressRecord `json:"progress" validate:"required,dive"`
	} `json:"response" validate:"required"`
}

type chatsResponse struct {
	Success      bool           `json:"success"`
	PrivateChats []Conversation `json:"privateChats" validate:"required,dive"`
}

type startChatResponse struct {
	Success bool `json:"success"`
	Chat    *struct {
		ID string `json:"_id" validate:"required"`
	} `json:"chat" validate:"required"`
}

type notificationsResponse struct {
	Notifications []Notification `json:"notifications" validate:"required,dive"`
}

type mentorsResponse struct {
	Success bool     `json:"success"`
	Mentors []Mentor `json:"mentors" validate:"required,dive"`
}

type faqResponse struct {
	Layout *struct {
		FAQ []FAQItem `json:"faq" validate:"required"`
	} `json:"layout" validate:"required"`
}

type userResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user" validate:"required"`
}

type wishlistResponse struct {
	Success  bool           `json:"success"`
	Wishlist []WishlistItem `json:"wishlist" validate:"required,dive"`
}

type cartResponse struct {
	Success bool       `json:"success"`
	Cart    []CartItem `json:"cart" validate:"required,dive"`
}

type certificateResponse struct {
	Success     bool         `json:"success"`
	Certificate *Certificate `json:"certificate" validate:"required"`
}
