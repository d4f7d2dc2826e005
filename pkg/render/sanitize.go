package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy

	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func plainTextPolicy() *bluemonday.Policy {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return plainPolicy
}

func noticePolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		markupPolicy = p
	})
	return markupPolicy
}

// PlainText strips every tag from s and decodes entities. Server supplied
// strings such as error messages pass through here before text output.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy().Sanitize(s)))
}

// SafeHTML keeps the user-generated-content subset of s (links, emphasis,
// lists) and drops everything else.
func SafeHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return noticePolicy().Sanitize(s)
}
