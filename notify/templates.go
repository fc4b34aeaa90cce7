package notify

import (
	"fmt"
	"html"
	"strings"

	orderpkg "github.com/cornellb28/orderbbs-app/order"
)

// ConfirmationSubject is the subject line for order confirmation email.
const ConfirmationSubject = "Your Bowl & Broth order is confirmed ✅"

// OrderConfirmationHTML renders the confirmation email body. siteURL is the
// public origin used to build the receipt link.
func OrderConfirmationHTML(o *orderpkg.Summary, siteURL string) string {
	receiptURL := fmt.Sprintf("%s/order/%s?t=%s", strings.TrimRight(siteURL, "/"), o.ID, o.PublicToken)

	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items,
			`<li style="margin:6px 0;"><strong>%d×</strong> %s — $%.2f</li>`,
			it.Qty, html.EscapeString(it.ProductName), float64(it.LineTotalCents)/100)
	}

	return fmt.Sprintf(`
  <div style="font-family: ui-sans-serif, system-ui, -apple-system; line-height:1.5;">
    <h2 style="margin:0 0 10px;">Order Confirmed ✅</h2>
    <p style="margin:0 0 14px; color:#444;">Order ID: <strong>%s</strong></p>

    <div style="padding:12px 14px; border:1px solid #eee; border-radius:10px; margin:14px 0;">
      <h3 style="margin:0 0 8px;">Pickup Details</h3>
      <p style="margin:0; color:#333;">
        <strong>%s</strong><br/>
        %s · %s–%s<br/>
        %s<br/>
        <span style="color:#666;">%s</span>
      </p>
    </div>

    <h3 style="margin:18px 0 8px;">Items</h3>
    <ul style="padding-left:18px; margin:0 0 12px;">%s</ul>

    <p style="margin:0; font-weight:700;">Total: $%.2f</p>
    <a href="%s"
       style="display:inline-block;margin-top:14px;padding:10px 14px;border-radius:10px;
              background:#111;color:#fff;text-decoration:none;font-weight:700;">View Receipt</a>

    <p style="margin:18px 0 0; color:#666; font-size:14px;">
      Thanks for supporting Bowl &amp; Broth Society. See you at pickup!
    </p>
  </div>`,
		o.ID,
		html.EscapeString(o.Event.Title),
		o.Event.PickupDate, o.Event.PickupStart, o.Event.PickupEnd,
		html.EscapeString(o.Event.LocationName),
		html.EscapeString(o.Event.LocationAddress),
		items.String(),
		float64(o.TotalCents)/100,
		receiptURL)
}
