package views

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/elearn-app/elearn/internal/tui/ui"
	"github.com/rivo/tview"
)

// CertificateView displays a course certificate link as a QR code.
type CertificateView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewCertificateView creates a new certificate view.
func NewCertificateView(theme *ui.Theme) *CertificateView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Certificate ")
	tv.SetTitleColor(theme.TitleColor)

	return &CertificateView{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (cv *CertificateView) Name() string { return "Certificate" }

// Hints implements Component.
func (cv *CertificateView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// ShowCertificate renders the certificate URL and a scannable QR code of it.
func (cv *CertificateView) ShowCertificate(course, url string) {
	cv.Clear()
	_, _ = fmt.Fprintf(cv, "\n  [::b]%s[-:-:-]\n\n%s\n  %s\n  [::d]Scan to open the certificate on your phone.",
		tview.Escape(course), renderQR(url), tview.Escape(url))
}

// ShowMessage displays a status message.
func (cv *CertificateView) ShowMessage(msg string) {
	cv.Clear()
	_, _ = fmt.Fprintf(cv, "\n\n%s", tview.Escape(msg))
}

// renderQR converts a string to a compact QR code using Unicode half-block
// characters. Two bitmap rows become one terminal line.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "  (QR generation failed: " + err.Error() + ")"
	}
	qr.DisableBorder = false

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		sb.WriteString("  ")
		for x := 0; x < cols; x++ {
			top := bitmap[y][x] // true = black module
			bot := false
			if y+1 < rows {
				bot = bitmap[y+1][x]
			}
			switch {
			case top && bot:
				sb.WriteRune('\u2588') // █
			case top && !bot:
				sb.WriteRune('\u2580') // ▀
			case !top && bot:
				sb.WriteRune('\u2584') // ▄
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
