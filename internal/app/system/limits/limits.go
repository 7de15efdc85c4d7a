// internal/app/system/limits/limits.go
package limits

// Request size limits for the browse forms.
const (
	// MaxFormSize is the maximum body size of a browse action post.
	MaxFormSize = 16 << 10 // 16 KB

	// MaxSearchLen is the longest search text, in runes, sent to the API.
	MaxSearchLen = 200
)

// ClampSearch cuts s to at most MaxSearchLen runes.
func ClampSearch(s string) string {
	n := 0
	for i := range s {
		if n == MaxSearchLen {
			return s[:i]
		}
		n++
	}
	return s
}
