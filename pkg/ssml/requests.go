package ssml

// SpeakRequest wraps text in the root speak element.
type SpeakRequest struct {
	Text string `json:"text" yaml:"text"`
}

// Validate accepts any text, including empty text.
func (r SpeakRequest) Validate() error { return nil }

// BreakRequest describes a pause. A Time ending in a digit is read as
// milliseconds.
type BreakRequest struct {
	Time     string   `json:"time"               yaml:"time"`
	Strength Strength `json:"strength,omitempty" yaml:"strength,omitempty"`
}

func (r BreakRequest) Validate() error {
	if err := requireField(TagBreak, "time", r.Time); err != nil {
		return err
	}
	return optionalEnum(TagBreak, "strength", r.Strength)
}

// SayAsRequest tells the synthesizer how to read Text.
type SayAsRequest struct {
	Text        string      `json:"text"             yaml:"text"`
	InterpretAs InterpretAs `json:"interpretAs"      yaml:"interpretAs"`
	Format      SayAsFormat `json:"format,omitempty" yaml:"format,omitempty"`
	Detail      SayAsDetail `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (r SayAsRequest) Validate() error {
	if err := requireEnum(TagSayAs, "interpretAs", r.InterpretAs); err != nil {
		return err
	}
	if err := optionalEnum(TagSayAs, "format", r.Format); err != nil {
		return err
	}
	return optionalEnum(TagSayAs, "detail", r.Detail)
}

// AudioRequest embeds a recording. Text is spoken when the audio cannot be
// played. Desc is written as given, without escaping.
type AudioRequest struct {
	Text        string `json:"text"                  yaml:"text"`
	Src         string `json:"src"                   yaml:"src"`
	Desc        string `json:"desc"                  yaml:"desc"`
	ClipBegin   string `json:"clipBegin,omitempty"   yaml:"clipBegin,omitempty"`
	ClipEnd     string `json:"clipEnd,omitempty"     yaml:"clipEnd,omitempty"`
	Speed       string `json:"speed,omitempty"       yaml:"speed,omitempty"`
	RepeatCount string `json:"repeatCount,omitempty" yaml:"repeatCount,omitempty"`
	RepeatDur   string `json:"repeatDur,omitempty"   yaml:"repeatDur,omitempty"`
	SoundLevel  string `json:"soundLevel,omitempty"  yaml:"soundLevel,omitempty"`
}

func (r AudioRequest) Validate() error {
	if err := requireField(TagAudio, "src", r.Src); err != nil {
		return err
	}
	return requireField(TagAudio, "desc", r.Desc)
}

// ParagraphRequest wraps text in a p element.
type ParagraphRequest struct {
	Text string `json:"text" yaml:"text"`
}

func (r ParagraphRequest) Validate() error { return nil }

// SentenceRequest wraps text in an s element.
type SentenceRequest struct {
	Text string `json:"text" yaml:"text"`
}

func (r SentenceRequest) Validate() error { return nil }

// SubRequest speaks Alias in place of Text.
type SubRequest struct {
	Text  string `json:"text"  yaml:"text"`
	Alias string `json:"alias" yaml:"alias"`
}

func (r SubRequest) Validate() error {
	return requireField(TagSub, "alias", r.Alias)
}

// MarkRequest places a named marker in the output.
type MarkRequest struct {
	Name string `json:"name" yaml:"name"`
}

func (r MarkRequest) Validate() error {
	return requireField(TagMark, "name", r.Name)
}

type ProsodyRequest struct {
	Text  string `json:"text"  yaml:"text"`
	Rate  string `json:"rate"  yaml:"rate"`
	Pitch string `json:"pitch" yaml:"pitch"`
}

func (r ProsodyRequest) Validate() error {
	if err := requireField(TagProsody, "rate", r.Rate); err != nil {
		return err
	}
	return requireField(TagProsody, "pitch", r.Pitch)
}

type EmphasisRequest struct {
	Text  string        `json:"text"  yaml:"text"`
	Level EmphasisLevel `json:"level" yaml:"level"`
}

func (r EmphasisRequest) Validate() error {
	return requireEnum(TagEmphasis, "level", r.Level)
}

// PhonemeRequest gives a phonetic pronunciation Ph in the named Alphabet
// (ipa, x-sampa) for Text.
type PhonemeRequest struct {
	Text     string `json:"text"     yaml:"text"`
	Alphabet string `json:"alphabet" yaml:"alphabet"`
	Ph       string `json:"ph"       yaml:"ph"`
}

func (r PhonemeRequest) Validate() error {
	if err := requireField(TagPhoneme, "alphabet", r.Alphabet); err != nil {
		return err
	}
	return requireField(TagPhoneme, "ph", r.Ph)
}

type VoiceRequest struct {
	Text     string `json:"text"     yaml:"text"`
	Language string `json:"language" yaml:"language"`
	Gender   Gender `json:"gender"   yaml:"gender"`
}

func (r VoiceRequest) Validate() error {
	if err := requireField(TagVoice, "language", r.Language); err != nil {
		return err
	}
	return requireEnum(TagVoice, "gender", r.Gender)
}

// LangRequest marks Text as spoken in Language (a BCP 47 tag).
type LangRequest struct {
	Text     string `json:"text"     yaml:"text"`
	Language string `json:"language" yaml:"language"`
}

func (r LangRequest) Validate() error {
	return requireField(TagLang, "language", r.Language)
}
