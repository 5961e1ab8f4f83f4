// Package validate checks user-supplied URLs before any download work
// starts. Failures carry user-facing messages.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// URL reports whether s is a well-formed http(s) URL with a host.
func URL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("URL cannot be empty")
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL format: %v", err)
	}
	if parsed.Scheme == "" {
		return errors.New("invalid URL format: missing protocol (http:// or https://)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL protocol: %s (only http and https are supported)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("invalid URL format: missing domain name")
	}
	if err := v.Var(s, "required,url"); err != nil {
		return errors.New("invalid URL format")
	}
	return nil
}
