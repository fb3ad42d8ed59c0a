package util

import "strings"

const (
	// SeeMorePadding is how many zero-width spaces push a message body below
	// the overlay's collapsed preview, leaving only the headline visible.
	SeeMorePadding = 500
	ZeroWidthSpace = "​"
)

// ApplySeeMorePadding keeps the headline visible in the collapsed preview
// and hides the body behind the overlay's expand control.
func ApplySeeMorePadding(text, headline string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	message := strings.TrimSpace(headline)

	var builder strings.Builder
	builder.Grow(len(text) + SeeMorePadding + len(message) + 2)

	if message != "" {
		builder.WriteString(message)
	}
	builder.WriteString(strings.Repeat(ZeroWidthSpace, SeeMorePadding))
	if !strings.HasPrefix(text, "\n") {
		builder.WriteByte('\n')
	}
	builder.WriteString(text)

	return builder.String()
}

// StripLeadingHeader removes a duplicated header from the first line.
func StripLeadingHeader(text, header string) string {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(header) == "" {
		return text
	}

	candidates := []string{
		header + "\r\n\r\n",
		header + "\n\n",
		header + "\r\n",
		header + "\n",
		header,
	}

	for _, candidate := range candidates {
		if strings.HasPrefix(text, candidate) {
			return strings.TrimPrefix(text, candidate)
		}
	}
	return text
}

// TruncateRunes clamps s to at most n runes, appending an ellipsis when
// anything was cut. CJK text makes byte slicing unsafe here.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
