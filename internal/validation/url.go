package validation

import (
	"errors"
	"net/url"
)

// ValidateURL checks well-formedness only: an absolute http(s) URL with a
// host. Reachability is never checked.
func ValidateURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}

	if len(raw) > 500 {
		return errors.New("url is too long (max 500 characters)")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("invalid url")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("url must start with http:// or https://")
	}

	if u.Host == "" {
		return errors.New("url must include a host")
	}

	return nil
}
