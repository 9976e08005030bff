package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// ProfileView shows the signed-in user with their wishlist and cart.
type ProfileView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewProfileView creates a new profile view.
func NewProfileView(theme *ui.Theme) *ProfileView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Profile ")
	tv.SetTitleColor(theme.TitleColor)

	return &ProfileView{TextView: tv, theme: theme}
}

// Name implements Component.
func (pv *ProfileView) Name() string { return "Profile" }

// Hints implements Component.
func (pv *ProfileView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "r", Description: "Refresh"},
		{Key: "e", Description: "Rename"},
		{Key: ":signout", Description: "Sign out"},
		{Key: "1-6", Description: "Screens", Numeric: true},
	}
}

// Update renders the profile sections.
func (pv *ProfileView) Update(profile *rpc.ProfileResponse, wishlist *rpc.ListWishlistResponse, cart *rpc.CartResponse) {
	pv.Clear()
	fg := colorHex(pv.theme.FgColor)
	ct := colorHex(pv.theme.CounterColor)
	title := colorHex(pv.theme.TitleColor)

	var b strings.Builder
	if profile == nil || profile.User == nil {
		b.WriteString("\n Not signed in. Use elearnctl signin to store a token pair.\n")
	} else {
		u := profile.User
		fmt.Fprintf(&b, "\n [%s::b]Name:[-:-:-]    [%s]%s[-]\n", fg, ct, tview.Escape(u.Name))
		fmt.Fprintf(&b, " [%s::b]Email:[-:-:-]   [%s]%s[-]\n", fg, ct, tview.Escape(u.Email))
		fmt.Fprintf(&b, " [%s::b]Role:[-:-:-]    [%s]%s[-]\n", fg, ct, tview.Escape(u.Role))
		fmt.Fprintf(&b, " [%s::b]Courses:[-:-:-] [%s]%d[-]\n", fg, ct, u.Courses)
		b.WriteString(staleLine(profile.ListMeta))
	}

	fmt.Fprintf(&b, "\n [%s::b]Wishlist[-:-:-]\n", title)
	if wishlist != nil {
		if len(wishlist.Items) == 0 {
			b.WriteString("   (empty)\n")
		}
		for _, w := range wishlist.Items {
			fmt.Fprintf(&b, "   %-40s %8.2f\n", tview.Escape(sanitizeForTerminal(w.Name)), w.Price)
		}
		b.WriteString(staleLine(wishlist.ListMeta))
	}

	fmt.Fprintf(&b, "\n [%s::b]Cart[-:-:-]\n", title)
	if cart != nil {
		if cart.FromSnapshot {
			fmt.Fprintf(&b, "   [::d]saved copy from %s[-:-:-]\n", cart.SnapshotAt.Local().Format(time.DateTime))
		}
		if len(cart.Items) == 0 {
			b.WriteString("   (empty)\n")
		}
		for _, it := range cart.Items {
			fmt.Fprintf(&b, "   %-40s %8.2f\n", tview.Escape(sanitizeForTerminal(it.Name)), it.Price)
		}
		fmt.Fprintf(&b, "   [::b]%-40s %8.2f[-:-:-]\n", "Total", cart.Total)
		b.WriteString(staleLine(cart.ListMeta))
	}

	_, _ = fmt.Fprint(pv, b.String())
}

func staleLine(m rpc.ListMeta) string {
	if !m.Stale() {
		return ""
	}
	return fmt.Sprintf("   [::d]not refreshed: %s[-:-:-]\n", m.ErrorKind)
}
