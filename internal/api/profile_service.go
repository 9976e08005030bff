package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/validate"
	"go.uber.org/zap"
)

// ProfileService implements the ProfileService gRPC service.
type ProfileService struct {
	rpc.UnimplementedProfileServer
	Deps
}

// NewProfileService creates a new profile service.
func NewProfileService(d Deps) *ProfileService {
	return &ProfileService{Deps: d.withDefaults()}
}

// GetProfile returns the signed-in user, refreshed from GET /me unless
// Cached. When the refresh fails the last known user is returned.
func (s *ProfileService) GetProfile(ctx context.Context, req *rpc.ListRequest) (*rpc.ProfileResponse, error) {
	resp := &rpc.ProfileResponse{}
	if !req.Cached {
		epoch := s.State.Epoch()
		u, err := s.API.Me(ctx)
		s.Machine.Observe(err)
		if err == nil {
			s.State.SetUser(epoch, *u)
		}
		resp.ListMeta = errMeta(err)
	}
	if u, ok := s.State.User(); ok {
		resp.User = userView(u)
	}
	return resp, nil
}

func (s *ProfileService) UpdateName(ctx context.Context, req *rpc.UpdateNameRequest) (*rpc.ProfileResponse, error) {
	name, err := validate.Name(req.Name)
	if err != nil {
		return nil, toStatus("update name", err)
	}
	epoch := s.State.Epoch()
	u, err := s.API.UpdateUserInfo(ctx, name)
	s.Machine.Observe(err)
	if err != nil {
		return nil, toStatus("update name", err)
	}
	s.State.SetUser(epoch, *u)
	s.Bus.Emit(bus.KindProfileUpdated, bus.ProfileUpdated{UserID: u.ID, Name: u.Name})
	s.Logger.Info("profile name updated", zap.String("user_id", u.ID))
	return &rpc.ProfileResponse{User: userView(*u)}, nil
}

// ListWishlist serves the wishlist held in state. The course list marks
// wishlisted courses from the same copy.
func (s *ProfileService) ListWishlist(ctx context.Context, req *rpc.ListRequest) (*rpc.ListWishlistResponse, error) {
	if !req.Cached {
		epoch := s.State.Epoch()
		if items, err := s.Lists.Wishlist.Sync(ctx); err == nil {
			s.State.SetWishlist(epoch, items)
		}
	}
	items := s.State.Wishlist()
	resp := &rpc.ListWishlistResponse{Items: make([]rpc.WishlistItem, 0, len(items)), ListMeta: metaOf(s.Lists.Wishlist.Snapshot())}
	for _, w := range items {
		resp.Items = append(resp.Items, wishlistItem(w))
	}
	return resp, nil
}

// GetCart returns the cart. Every successful fetch is saved; when the
// backend cannot be reached and nothing was fetched since the daemon
// started, the saved copy is served.
func (s *ProfileService) GetCart(ctx context.Context, req *rpc.ListRequest) (*rpc.CartResponse, error) {
	if !req.Cached {
		epoch := s.State.Epoch()
		if items, err := s.Lists.Cart.Sync(ctx); err == nil && s.State.SetCart(epoch, items) {
			s.saveCart(items)
		}
	}
	snap := s.Lists.Cart.Snapshot()
	resp := &rpc.CartResponse{ListMeta: metaOf(snap)}
	items := s.State.Cart()
	if items == nil {
		if saved, ok := s.loadCart(); ok {
			items = saved.items
			resp.FromSnapshot = true
			resp.SnapshotAt = saved.at
			resp.Empty = len(items) == 0
		}
	}
	resp.Items = make([]rpc.CartItem, 0, len(items))
	for _, c := range items {
		resp.Items = append(resp.Items, cartItem(c))
		resp.Total += c.Price
	}
	return resp, nil
}

func (s *ProfileService) saveCart(items []backend.CartItem) {
	if s.DB == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err == nil {
		err = s.DB.SaveCartSnapshot(payload, len(items))
	}
	if err != nil {
		s.Logger.Warn("save cart snapshot", zap.Error(err))
	}
}

type savedCart struct {
	items []backend.CartItem
	at    time.Time
}

func (s *ProfileService) loadCart() (savedCart, bool) {
	if s.DB == nil {
		return savedCart{}, false
	}
	snap, err := s.DB.LoadCartSnapshot()
	if err != nil || snap == nil {
		if err != nil {
			s.Logger.Warn("load cart snapshot", zap.Error(err))
		}
		return savedCart{}, false
	}
	var items []backend.CartItem
	if err := json.Unmarshal(snap.Payload, &items); err != nil {
		s.Logger.Warn("decode cart snapshot", zap.Error(err))
		return savedCart{}, false
	}
	return savedCart{items: items, at: snap.SavedAt}, true
}
