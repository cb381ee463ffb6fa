package ssml

import (
	"maps"
	"slices"
)

// Tag names an SSML element.
type Tag string

const (
	TagSpeak     Tag = "speak"
	TagBreak     Tag = "break"
	TagSayAs     Tag = "say-as"
	TagAudio     Tag = "audio"
	TagParagraph Tag = "p"
	TagSentence  Tag = "s"
	TagSub       Tag = "sub"
	TagMark      Tag = "mark"
	TagProsody   Tag = "prosody"
	TagEmphasis  Tag = "emphasis"
	TagPhoneme   Tag = "phoneme"
	TagVoice     Tag = "voice"
	TagLang      Tag = "lang"
)

// Fragment is a request for a single element expressed as data. Params use
// the request field names (text, time, interpretAs, clipBegin, ...).
type Fragment struct {
	Tag    Tag               `json:"tag"              yaml:"tag"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

type params map[string]string

type tagSpec struct {
	params []string
	render func(b *Builder, p params) (string, error)
}

var tagOrder = []Tag{
	TagSpeak, TagBreak, TagSayAs, TagAudio, TagParagraph, TagSentence, TagSub,
	TagMark, TagProsody, TagEmphasis, TagPhoneme, TagVoice, TagLang,
}

var tagSpecs = map[Tag]tagSpec{
	TagSpeak: {
		params: []string{"text"},
		render: func(b *Builder, p params) (string, error) {
			return b.Speak(SpeakRequest{Text: p["text"]})
		},
	},
	TagBreak: {
		params: []string{"time", "strength"},
		render: func(b *Builder, p params) (string, error) {
			return b.Break(BreakRequest{Time: p["time"], Strength: Strength(p["strength"])})
		},
	},
	TagSayAs: {
		params: []string{"text", "interpretAs", "format", "detail"},
		render: func(b *Builder, p params) (string, error) {
			return b.SayAs(SayAsRequest{
				Text:        p["text"],
				InterpretAs: InterpretAs(p["interpretAs"]),
				Format:      SayAsFormat(p["format"]),
				Detail:      SayAsDetail(p["detail"]),
			})
		},
	},
	TagAudio: {
		params: []string{"text", "src", "desc", "clipBegin", "clipEnd", "speed", "repeatCount", "repeatDur", "soundLevel"},
		render: func(b *Builder, p params) (string, error) {
			return b.Audio(AudioRequest{
				Text:        p["text"],
				Src:         p["src"],
				Desc:        p["desc"],
				ClipBegin:   p["clipBegin"],
				ClipEnd:     p["clipEnd"],
				Speed:       p["speed"],
				RepeatCount: p["repeatCount"],
				RepeatDur:   p["repeatDur"],
				SoundLevel:  p["soundLevel"],
			})
		},
	},
	TagParagraph: {
		params: []string{"text"},
		render: func(b *Builder, p params) (string, error) {
			return b.Paragraph(ParagraphRequest{Text: p["text"]})
		},
	},
	TagSentence: {
		params: []string{"text"},
		render: func(b *Builder, p params) (string, error) {
			return b.Sentence(SentenceRequest{Text: p["text"]})
		},
	},
	TagSub: {
		params: []string{"text", "alias"},
		render: func(b *Builder, p params) (string, error) {
			return b.Sub(SubRequest{Text: p["text"], Alias: p["alias"]})
		},
	},
	TagMark: {
		params: []string{"name"},
		render: func(b *Builder, p params) (string, error) {
			return b.Mark(MarkRequest{Name: p["name"]})
		},
	},
	TagProsody: {
		params: []string{"text", "rate", "pitch"},
		render: func(b *Builder, p params) (string, error) {
			return b.Prosody(ProsodyRequest{Text: p["text"], Rate: p["rate"], Pitch: p["pitch"]})
		},
	},
	TagEmphasis: {
		params: []string{"text", "level"},
		render: func(b *Builder, p params) (string, error) {
			return b.Emphasis(EmphasisRequest{Text: p["text"], Level: EmphasisLevel(p["level"])})
		},
	},
	TagPhoneme: {
		params: []string{"text", "alphabet", "ph"},
		render: func(b *Builder, p params) (string, error) {
			return b.Phoneme(PhonemeRequest{Text: p["text"], Alphabet: p["alphabet"], Ph: p["ph"]})
		},
	},
	TagVoice: {
		params: []string{"text", "language", "gender"},
		render: func(b *Builder, p params) (string, error) {
			return b.Voice(VoiceRequest{Text: p["text"], Language: p["language"], Gender: Gender(p["gender"])})
		},
	},
	TagLang: {
		params: []string{"text", "language"},
		render: func(b *Builder, p params) (string, error) {
			return b.Lang(LangRequest{Text: p["text"], Language: p["language"]})
		},
	},
}

// Tags returns every supported tag in a stable order.
func Tags() []Tag {
	return slices.Clone(tagOrder)
}

// Valid reports whether t has a builder.
func (t Tag) Valid() bool {
	_, ok := tagSpecs[t]
	return ok
}

// ParamNames returns the parameters accepted by t.
func ParamNames(t Tag) ([]string, bool) {
	spec, ok := tagSpecs[t]
	if !ok {
		return nil, false
	}
	return slices.Clone(spec.params), true
}

// Render dispatches f to the builder for its tag. Unknown tags and
// parameters are rejected before anything is formatted.
func (b *Builder) Render(f Fragment) (string, error) {
	spec, ok := tagSpecs[f.Tag]
	if !ok {
		return "", &FieldError{Tag: f.Tag, Err: ErrUnknownTag}
	}
	for _, key := range slices.Sorted(maps.Keys(f.Params)) {
		if !slices.Contains(spec.params, key) {
			return "", &FieldError{Tag: f.Tag, Field: key, Err: ErrUnknownParam}
		}
	}
	return spec.render(b, f.Params)
}

// Render dispatches f using Default.
func Render(f Fragment) (string, error) {
	return Default.Render(f)
}
