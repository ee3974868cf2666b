package utils

import "net/url"

// DetectPaidMarker inspects a landing URL for the post-checkout `paid=1`
// marker. It returns whether the marker was present and the URL with the
// marker (and the session id echo) stripped, ready to be shown without a
// reload. Malformed input or a missing marker reads as "no marker present",
// never as an error.
func DetectPaidMarker(rawURL string) (bool, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, rawURL
	}
	q := u.Query()
	if q.Get("paid") != "1" {
		return false, rawURL
	}
	q.Del("paid")
	q.Del("session_id")
	u.RawQuery = q.Encode()
	return true, u.String()
}
