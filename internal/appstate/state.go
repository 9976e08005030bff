// Package appstate holds the process-wide client state shared by every
// screen: the signed-in user, wishlist, progress cache and cart. It starts
// empty when the daemon starts and is cleared on sign-out.
//
// Every Reset starts a new epoch. Writers read Epoch before the backend call
// that produced the value and pass it to the setter; a value fetched for a
// user who has since signed out is dropped.
package appstate

import (
	"slices"
	"sync"

	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/resolve"
)

// State is safe for concurrent use. Getters return copies.
type State struct {
	mu       sync.RWMutex
	epoch    uint64
	user     *backend.User
	wishlist []backend.WishlistItem
	progress resolve.ProgressCache
	cart     []backend.CartItem
}

// New returns an empty state.
func New() *State {
	return &State{}
}

// Epoch identifies the current sign-in period.
func (s *State) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// User returns the signed-in user, if known.
func (s *State) User() (backend.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return backend.User{}, false
	}
	return *s.user, true
}

// SetUser replaces the signed-in user. It reports false and changes
// nothing when epoch is no longer current.
func (s *State) SetUser(epoch uint64, u backend.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.user = &u
	return true
}

// Wishlist returns the wishlist.
func (s *State) Wishlist() []backend.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.wishlist)
}

// InWishlist reports whether the wishlist holds the course.
func (s *State) InWishlist(courseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.wishlist, func(w backend.WishlistItem) bool { return w.ID == courseID })
}

// SetWishlist replaces the wishlist.
func (s *State) SetWishlist(epoch uint64, items []backend.WishlistItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.wishlist = slices.Clone(items)
	return true
}

// Progress returns the progress cache, or nil before the first progress sync.
func (s *State) Progress() resolve.ProgressCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.progress == nil {
		return nil
	}
	out := make(resolve.ProgressCache, len(s.progress))
	for k, v := range s.progress {
		out[k] = v
	}
	return out
}

// SetProgress replaces the progress cache.
func (s *State) SetProgress(epoch uint64, p resolve.ProgressCache) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.progress = p
	return true
}

// Cart returns the cart items, or nil when the cart was never fetched.
func (s *State) Cart() []backend.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cart)
}

// SetCart replaces the cart items.
func (s *State) SetCart(epoch uint64, items []backend.CartItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	if items == nil {
		items = []backend.CartItem{}
	}
	s.cart = slices.Clone(items)
	return true
}

// Reset clears everything and starts a new epoch.
func (s *State) Reset() {
	s.mu.Lock()
	s.epoch++
	s.user = nil
	s.wishlist = nil
	s.progress = nil
	s.cart = nil
	s.mu.Unlock()
}
