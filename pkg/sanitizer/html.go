// Package sanitizer cleans untrusted HTML with bluemonday policies.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	ugcPolicy    *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Rendered markdown: formatting, headings, tables, images and links.
		ugcPolicy = bluemonday.UGCPolicy()
		ugcPolicy.RequireNoFollowOnLinks(true)
		ugcPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	})
}

// Text strips every tag and returns plain text.
// Use for short user input such as names and comment bodies.
func Text(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// HTML keeps formatting suitable for user-generated content and strips
// scripts, event handlers and javascript: URLs.
func HTML(s string) string {
	initPolicies()
	return ugcPolicy.Sanitize(s)
}

// HTMLBytes is HTML for byte slices.
func HTMLBytes(b []byte) []byte {
	initPolicies()
	return ugcPolicy.SanitizeBytes(b)
}
