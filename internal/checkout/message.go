package checkout

import (
	"fmt"
	"net/url"
	"strings"
)

// FormatMessage renders the deterministic WhatsApp order text: greeting, one
// line per item with its line total, the grand total, and the closing
// question. Amounts are rounded to two decimals.
func FormatMessage(items []LineItem, totals Totals, currencySymbol string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (Qty: %d) - %s%s",
			item.Name, item.Quantity, currencySymbol, item.Total().StringFixed(2)))
	}

	return fmt.Sprintf(
		"Hi! I'm interested in purchasing these items from your store:\n\n%s\n\nTotal: %s%s\n\nCan we proceed with the order?",
		strings.Join(lines, "\n"), currencySymbol, totals.Total.StringFixed(2))
}

// BuildURL produces the wa.me deep link for the phone number. An empty phone
// yields ok=false; the caller is expected to try a fallback contact first.
func BuildURL(phone, message string) (string, bool) {
	if strings.TrimSpace(phone) == "" {
		return "", false
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", strings.TrimSpace(phone), url.QueryEscape(message)), true
}
