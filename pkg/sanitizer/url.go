package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizePhotoRef cleans a stored photo reference. References are either
// absolute URLs (externally hosted images) or bare filenames served from
// /uploads/. Anything that parses as neither normalizes to "".
func NormalizePhotoRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := url.Parse(ref)
		if err != nil || u.Host == "" {
			return ""
		}
		u.Fragment = ""
		return u.String()
	}

	// Bare filename: reject anything that could escape the uploads dir.
	if strings.ContainsAny(ref, "/\\") || strings.Contains(ref, "..") {
		return ""
	}
	return ref
}
