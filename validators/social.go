package validators

import (
	"regexp"
	"strings"
)

// ValidateFacebookURL accepts facebook.com and fb.com links.
func ValidateFacebookURL(url string) bool {
	url = strings.ToLower(strings.TrimSpace(url))
	return strings.Contains(url, "facebook.com") || strings.Contains(url, "fb.com")
}

// ValidateInstagramURL accepts instagram.com and instagr.am links.
func ValidateInstagramURL(url string) bool {
	url = strings.ToLower(strings.TrimSpace(url))
	return strings.Contains(url, "instagram.com") || strings.Contains(url, "instagr.am")
}

// ValidateYouTubeURL accepts channel links only. Individual video links
// (watch URLs and youtu.be shortlinks) are rejected.
func ValidateYouTubeURL(url string) bool {
	url = strings.ToLower(strings.TrimSpace(url))
	if strings.Contains(url, "youtube.com/watch") || strings.Contains(url, "youtu.be/") {
		return false
	}
	return strings.Contains(url, "youtube.com")
}

// otherSocialDomains is the fixed set accepted in the "other" bucket.
var otherSocialDomains = []string{
	"twitter.com", "linkedin.com", "tiktok.com",
	"snapchat.com", "youtube.com", "telegram.me",
}

// ValidateOtherSocialURL accepts links to the supported extra platforms.
func ValidateOtherSocialURL(url string) bool {
	url = strings.ToLower(url)
	for _, domain := range otherSocialDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

var schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)

// NormalizeSocialURL produces the comparison key used for duplicate
// detection: lowercase, scheme and www. stripped, no trailing slash, no
// query string.
func NormalizeSocialURL(url string) string {
	url = strings.ToLower(strings.TrimSpace(url))
	url = schemePrefix.ReplaceAllString(url, "")
	url = strings.TrimRight(url, "/")
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	return url
}

// CleanSocialURL prepares a user-submitted link for storage: query string
// dropped, scheme added when missing.
func CleanSocialURL(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	return strings.Replace(url, "m.facebook.com", "www.facebook.com", 1)
}

// ExtractUsername derives a short display handle from a stored link for the
// social hub summary.
func ExtractUsername(url string) string {
	if strings.Contains(strings.ToLower(url), "youtube.com") || strings.Contains(strings.ToLower(url), "youtu.be") {
		return ExtractYouTubeHandle(url)
	}
	cleaned := schemePrefix.ReplaceAllString(strings.ToLower(url), "")
	if i := strings.Index(cleaned, "?"); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.TrimRight(cleaned, "/")
	if i := strings.LastIndex(cleaned, "/"); i >= 0 && i+1 < len(cleaned) {
		return "@" + cleaned[i+1:]
	}
	return url
}

// ExtractYouTubeHandle derives a channel handle from the supported YouTube
// channel URL shapes.
func ExtractYouTubeHandle(url string) string {
	u := strings.ToLower(strings.TrimSpace(url))
	if i := strings.Index(u, "?"); i >= 0 {
		u = u[:i]
	}

	segment := func(marker string) string {
		rest := u[strings.Index(u, marker)+len(marker):]
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i]
		}
		return rest
	}

	switch {
	case strings.Contains(u, "/channel/"):
		return "channel: " + segment("/channel/")
	case strings.Contains(u, "/c/"):
		return "@" + segment("/c/")
	case strings.Contains(u, "/user/"):
		return "@" + segment("/user/")
	case strings.Contains(u, "/@"):
		return "@" + segment("/@")
	}
	if len(u) > 30 {
		return u[:30] + "..."
	}
	return u
}

// InferPlatform maps an "other" bucket URL to its platform tag for the link
// row, defaulting to Other.
func InferPlatform(url string) string {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "twitter.com"):
		return "Twitter"
	case strings.Contains(u, "linkedin.com"):
		return "LinkedIn"
	case strings.Contains(u, "tiktok.com"):
		return "TikTok"
	case strings.Contains(u, "snapchat.com"):
		return "Snapchat"
	case strings.Contains(u, "youtube.com"):
		return "YouTube"
	case strings.Contains(u, "telegram.me"):
		return "Telegram"
	}
	return "Other"
}
