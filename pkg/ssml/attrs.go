package ssml

import "strings"

// QuoteMode controls how attribute values are written.
type QuoteMode int

const (
	// QuoteCompatible quotes the attributes of break strength, say-as and
	// audio and leaves the others bare, matching established output.
	QuoteCompatible QuoteMode = iota
	// QuoteStrict quotes every attribute value.
	QuoteStrict
)

func (m QuoteMode) String() string {
	if m == QuoteStrict {
		return "strict"
	}
	return "compatible"
}

type attr struct {
	name   string
	value  string
	quoted bool
}

func quoted(name, value string) attr { return attr{name: name, value: value, quoted: true} }

func bare(name, value string) attr { return attr{name: name, value: value} }

// writeAttrs writes the attributes with a value, in order, each with a single
// leading space. Empty values are skipped.
func writeAttrs(sb *strings.Builder, mode QuoteMode, attrs []attr) {
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteByte('=')
		if a.quoted || mode == QuoteStrict {
			sb.WriteByte('"')
			sb.WriteString(a.value)
			sb.WriteByte('"')
		} else {
			sb.WriteString(a.value)
		}
	}
}
