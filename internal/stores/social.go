package stores

import (
	"net/url"
	"strings"

	"github.com/loopstackhq/loopstack-backend/pkg/types"
)

// formatSocialLinks normalizes raw link rows into display-ready entries.
// Entries with a blank title or URL are dropped.
func formatSocialLinks(links types.SocialLinkList) []SocialLinkDTO {
	out := make([]SocialLinkDTO, 0, len(links))
	for _, link := range links {
		title := strings.TrimSpace(link.Title)
		if title == "" || strings.TrimSpace(link.URL) == "" {
			continue
		}

		formatted := normalizeURL(link.URL)
		domain := extractDomain(formatted)
		icon, color := classifyLink(title, domain, formatted)

		out = append(out, SocialLinkDTO{
			ID:          len(out) + 1,
			Title:       title,
			URL:         formatted,
			Domain:      domain,
			OriginalURL: link.URL,
			Icon:        icon,
			Color:       color,
		})
	}
	return out
}

// normalizeURL defaults bare links to https.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "mailto:") {
		return raw
	}
	return "https://" + raw
}

func extractDomain(formatted string) string {
	u, err := url.Parse(formatted)
	if err != nil || u.Hostname() == "" {
		return "Invalid URL"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func classifyLink(title, domain, formatted string) (icon, color string) {
	lowerTitle := strings.ToLower(title)
	lowerDomain := strings.ToLower(domain)

	switch {
	case strings.Contains(lowerDomain, "instagram") || strings.Contains(lowerTitle, "instagram"):
		return "Instagram", "from-pink-400 to-purple-600"
	case strings.Contains(lowerDomain, "twitter") || strings.Contains(lowerTitle, "twitter") || strings.Contains(lowerDomain, "x.com"):
		return "Twitter", "from-sky-400 to-blue-500"
	case strings.Contains(lowerDomain, "youtube") || strings.Contains(lowerTitle, "youtube"):
		return "Youtube", "from-red-400 to-red-600"
	case strings.Contains(lowerDomain, "facebook") || strings.Contains(lowerTitle, "facebook"):
		return "Facebook", "from-blue-500 to-blue-700"
	case strings.Contains(lowerDomain, "linkedin") || strings.Contains(lowerTitle, "linkedin"):
		return "Linkedin", "from-blue-600 to-blue-800"
	case strings.Contains(lowerTitle, "mail") || strings.HasPrefix(formatted, "mailto:"):
		return "Mail", "from-green-400 to-emerald-600"
	case strings.Contains(lowerTitle, "support") || strings.Contains(lowerTitle, "donate") || strings.Contains(lowerTitle, "coffee"):
		return "Heart", "from-orange-400 to-red-500"
	default:
		return "Globe", "from-gray-400 to-gray-600"
	}
}
