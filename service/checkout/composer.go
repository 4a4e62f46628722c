package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"mixtape.GO/core/price"
	"mixtape.GO/service/cart"
)

const separator = "--------------------------------"

// Template holds the fixed lines around the item list.
type Template struct {
	Greeting string
	Closing  string
}

// Compose renders the order summary in cart order.
func Compose(entries []cart.Entry, subtotal float64, tpl Template) string {
	var b strings.Builder
	b.WriteString(tpl.Greeting)
	b.WriteString("\n\n")
	b.WriteString(separator)
	b.WriteString("\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "• %d x ", e.Quantity)
		if e.HasVariant() {
			fmt.Fprintf(&b, "[%s] ", e.Variant)
		}
		fmt.Fprintf(&b, "%s - %s\n", e.Title, price.Format(e.UnitPrice))
	}
	b.WriteString(separator)
	b.WriteString("\n")
	fmt.Fprintf(&b, "TOTAL: %s\n\n", price.Format(subtotal))
	b.WriteString(tpl.Closing)
	return b.String()
}

// HandoffURL builds the pre-addressed chat link carrying message as its text.
func HandoffURL(base, phone, message string) string {
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(phone) + "?text=" + EncodeURIComponent(message)
}

var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes everything except A-Z a-z 0-9 and -_.!~*'()
// Spaces become %20.
func EncodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}
