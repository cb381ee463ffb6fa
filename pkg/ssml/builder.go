package ssml

import "strings"

// Builder renders SSML fragments. A Builder has no mutable state and is safe
// for concurrent use.
type Builder struct {
	quote QuoteMode
}

// Option configures a Builder.
type Option func(*Builder)

// WithQuoteMode sets how attribute values are quoted.
func WithQuoteMode(mode QuoteMode) Option {
	return func(b *Builder) { b.quote = mode }
}

// WithStrictQuoting quotes every attribute value.
func WithStrictQuoting() Option {
	return WithQuoteMode(QuoteStrict)
}

// NewBuilder creates a Builder. Without options it uses QuoteCompatible.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{quote: QuoteCompatible}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Default is the Builder behind the package-level functions.
var Default = NewBuilder()

// QuoteMode returns the quoting mode of b.
func (b *Builder) QuoteMode() QuoteMode { return b.quote }

// element writes <name attrs>escaped text</name>.
func (b *Builder) element(name string, attrs []attr, text string) string {
	var sb strings.Builder
	sb.Grow(2*len(name) + len(text) + 5 + 16*len(attrs))
	sb.WriteByte('<')
	sb.WriteString(name)
	writeAttrs(&sb, b.quote, attrs)
	sb.WriteByte('>')
	sb.WriteString(EscapeText(text))
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteByte('>')
	return sb.String()
}

// empty writes the self-closing form <name attrs/>.
func (b *Builder) empty(name string, attrs []attr) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	writeAttrs(&sb, b.quote, attrs)
	sb.WriteString("/>")
	return sb.String()
}

// Speak wraps escaped text in <speak>.
func (b *Builder) Speak(req SpeakRequest) (string, error) {
	return b.element("speak", nil, req.Text), nil
}

// Break renders a self-closing break. A time ending in a digit gets the ms
// unit appended; strength is written only when set.
func (b *Builder) Break(req BreakRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.empty("break", []attr{
		bare("time", withDefaultUnit(req.Time)),
		quoted("strength", string(req.Strength)),
	}), nil
}

func withDefaultUnit(t string) string {
	if last := t[len(t)-1]; last >= '0' && last <= '9' {
		return t + "ms"
	}
	return t
}

// SayAs renders say-as with format and detail written only when set.
func (b *Builder) SayAs(req SayAsRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("say-as", []attr{
		quoted("interpret-as", string(req.InterpretAs)),
		quoted("format", string(req.Format)),
		quoted("detail", string(req.Detail)),
	}, req.Text), nil
}

// Audio renders an audio element with a nested desc. The description is
// written as given; the fallback text is escaped and follows the desc.
func (b *Builder) Audio(req AudioRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<audio")
	writeAttrs(&sb, b.quote, []attr{
		quoted("src", req.Src),
		quoted("clipBegin", req.ClipBegin),
		quoted("clipEnd", req.ClipEnd),
		quoted("speed", req.Speed),
		quoted("repeatCount", req.RepeatCount),
		quoted("repeatDur", req.RepeatDur),
		quoted("soundLevel", req.SoundLevel),
	})
	sb.WriteString("><desc>")
	sb.WriteString(req.Desc)
	sb.WriteString("</desc>")
	sb.WriteString(EscapeText(req.Text))
	sb.WriteString("</audio>")
	return sb.String(), nil
}

// Paragraph wraps escaped text in <p>.
func (b *Builder) Paragraph(req ParagraphRequest) (string, error) {
	return b.element("p", nil, req.Text), nil
}

// Sentence wraps escaped text in <s>.
func (b *Builder) Sentence(req SentenceRequest) (string, error) {
	return b.element("s", nil, req.Text), nil
}

func (b *Builder) Sub(req SubRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("sub", []attr{bare("alias", req.Alias)}, req.Text), nil
}

// Mark renders a self-closing mark with no content.
func (b *Builder) Mark(req MarkRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.empty("mark", []attr{bare("name", req.Name)}), nil
}

func (b *Builder) Prosody(req ProsodyRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("prosody", []attr{
		bare("rate", req.Rate),
		bare("pitch", req.Pitch),
	}, req.Text), nil
}

func (b *Builder) Emphasis(req EmphasisRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("emphasis", []attr{bare("level", string(req.Level))}, req.Text), nil
}

func (b *Builder) Phoneme(req PhonemeRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("phoneme", []attr{
		bare("alphabet", req.Alphabet),
		bare("ph", req.Ph),
	}, req.Text), nil
}

func (b *Builder) Voice(req VoiceRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("voice", []attr{
		bare("language", req.Language),
		bare("gender", string(req.Gender)),
	}, req.Text), nil
}

// Lang renders a lang element carrying xml:lang.
func (b *Builder) Lang(req LangRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return b.element("lang", []attr{bare("xml:lang", req.Language)}, req.Text), nil
}

// Package-level builders using Default.

func Speak(req SpeakRequest) (string, error)         { return Default.Speak(req) }
func Break(req BreakRequest) (string, error)         { return Default.Break(req) }
func SayAs(req SayAsRequest) (string, error)         { return Default.SayAs(req) }
func Audio(req AudioRequest) (string, error)         { return Default.Audio(req) }
func Paragraph(req ParagraphRequest) (string, error) { return Default.Paragraph(req) }
func Sentence(req SentenceRequest) (string, error)   { return Default.Sentence(req) }
func Sub(req SubRequest) (string, error)             { return Default.Sub(req) }
func Mark(req MarkRequest) (string, error)           { return Default.Mark(req) }
func Prosody(req ProsodyRequest) (string, error)     { return Default.Prosody(req) }
func Emphasis(req EmphasisRequest) (string, error)   { return Default.Emphasis(req) }
func Phoneme(req PhonemeRequest) (string, error)     { return Default.Phoneme(req) }
func Voice(req VoiceRequest) (string, error)         { return Default.Voice(req) }
func Lang(req LangRequest) (string, error)           { return Default.Lang(req) }
