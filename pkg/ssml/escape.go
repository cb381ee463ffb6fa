package ssml

import "strings"

// textEscaper replaces the markup-reserved characters in a single pass, so an
// entity produced for one character is never rewritten by another rule. The
// result is the same as replacing & first and then ", < and >.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeText makes text safe to embed as character data.
// Existing entities are treated as literal text: "&lt;" becomes "&amp;lt;".
func EscapeText(text string) string {
	return textEscaper.Replace(text)
}
