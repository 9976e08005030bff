package api

import (
	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/rpc"
)

func imageURL(img *backend.Image) string {
	if img == nil {
		return ""
	}
	return img.URL
}

func userView(u backend.User) *rpc.UserView {
	return &rpc.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: imageURL(u.Avatar),
		Courses:   len(u.Courses),
	}
}

func courseView(c backend.Course) rpc.CourseView {
	return rpc.CourseView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Level:       c.Level,
		Price:       c.Price,
	}
}

func mentorView(m backend.Mentor) rpc.MentorView {
	return rpc.MentorView{ID: m.ID, Name: m.Name, Expertise: m.Expertise, AvatarURL: imageURL(m.Avatar)}
}

func wishlistItem(w backend.WishlistItem) rpc.WishlistItem {
	return rpc.WishlistItem{ID: w.ID, Name: w.Name, Price: w.Price}
}

func cartItem(c backend.CartItem) rpc.CartItem {
	return rpc.CartItem{ID: c.ID, CourseID: c.CourseID, Name: c.Name, Price: c.Price}
}
