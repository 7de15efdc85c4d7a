// Package htmlsanitize cleans CMS-authored rich text (resource summaries)
// before it is rendered into our pages.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// summaryPolicy allows the inline formatting and simple block structure the
// CMS rich-text field produces. Links must be http(s) or mailto, open in a new
// tab, and carry rel="nofollow noopener".
func summaryPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "s", "sub", "sup",
			"ul", "ol", "li", "blockquote", "code", "pre")
		p.AllowAttrs("href").OnElements("a")
		p.AllowURLSchemes("http", "https", "mailto")
		p.RequireParseableURLs(true)
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// Sanitize returns s with everything outside the summary policy removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return summaryPolicy().Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for direct use in html/template.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no markup at all.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
