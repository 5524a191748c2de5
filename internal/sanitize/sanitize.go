// Package sanitize scrubs user-supplied profile text before storage. Profile
// fields are plain text; any HTML a client smuggles in is stripped, not
// escaped, so downstream consumers never have to guess the encoding.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton strict bluemonday policy. Strict means every tag is
// removed; initialized once for thread-safe reuse across requests.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Plain strips all HTML from s and returns trimmed plain text. bluemonday
// entity-escapes what it keeps, so the result is unescaped back into the
// literal characters the user typed.
func Plain(s string) string {
	stripped := getPolicy().Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
