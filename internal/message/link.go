package message

import (
	"net/url"
	"strings"
)

// DefaultLinkBase is the wa.me deep-link prefix.
const DefaultLinkBase = "https://wa.me/"

// ShareLink composes a WhatsApp deep link for the given recipient and
// message body. The body is query-encoded; the phone number keeps only
// digits, as wa.me rejects formatting characters. Opening the link is
// left to the browser, one-way, no response read back.
func ShareLink(base, phone, text string) string {
	if base == "" {
		base = DefaultLinkBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + digitsOnly(phone) + "?text=" + url.QueryEscape(text)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
