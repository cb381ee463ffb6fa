package ssml

import "slices"

// Strength is the relative pause strength of a break.
type Strength string

const (
	StrengthXWeak   Strength = "x-weak"
	StrengthWeak    Strength = "weak"
	StrengthMedium  Strength = "medium"
	StrengthStrong  Strength = "strong"
	StrengthXStrong Strength = "x-strong"
)

var strengths = []Strength{StrengthXWeak, StrengthWeak, StrengthMedium, StrengthStrong, StrengthXStrong}

// Valid reports whether s is a known strength.
func (s Strength) Valid() bool { return slices.Contains(strengths, s) }

// InterpretAs tells the synthesizer how to read say-as content.
type InterpretAs string

const (
	InterpretCurrency   InterpretAs = "currency"
	InterpretTelephone  InterpretAs = "telephone"
	InterpretVerbatim   InterpretAs = "verbatim"
	InterpretSpellOut   InterpretAs = "spell-out"
	InterpretDate       InterpretAs = "date"
	InterpretCharacters InterpretAs = "characters"
	InterpretCardinal   InterpretAs = "cardinal"
	InterpretOrdinal    InterpretAs = "ordinal"
	InterpretFraction   InterpretAs = "fraction"
	InterpretExpletive  InterpretAs = "expletive"
	InterpretBleep      InterpretAs = "bleep"
	InterpretUnit       InterpretAs = "unit"
	InterpretTime       InterpretAs = "time"
	InterpretDuration   InterpretAs = "duration"
)

var interpretations = []InterpretAs{
	InterpretCurrency, InterpretTelephone, InterpretVerbatim, InterpretSpellOut,
	InterpretDate, InterpretCharacters, InterpretCardinal, InterpretOrdinal,
	InterpretFraction, InterpretExpletive, InterpretBleep, InterpretUnit,
	InterpretTime, InterpretDuration,
}

// Valid reports whether i is a known interpretation.
func (i InterpretAs) Valid() bool { return slices.Contains(interpretations, i) }

// SayAsFormat refines date, time and duration interpretations.
// The format is not checked against the interpretation it is paired with.
type SayAsFormat string

const (
	FormatDayMonth     SayAsFormat = "dm"
	FormatDayMonthYear SayAsFormat = "dmy"
	FormatYYYYMMDD     SayAsFormat = "yyyymmdd"
	FormatHMS12        SayAsFormat = "hms12"
	FormatHoursMinutes SayAsFormat = "h:m"
)

var formats = []SayAsFormat{FormatDayMonth, FormatDayMonthYear, FormatYYYYMMDD, FormatHMS12, FormatHoursMinutes}

// Valid reports whether f is a known format.
func (f SayAsFormat) Valid() bool { return slices.Contains(formats, f) }

// SayAsDetail selects the verbosity of a say-as reading.
type SayAsDetail string

const (
	Detail1 SayAsDetail = "1"
	Detail2 SayAsDetail = "2"
)

// Valid reports whether d is a known detail level.
func (d SayAsDetail) Valid() bool { return d == Detail1 || d == Detail2 }

// EmphasisLevel is the stress applied by an emphasis element.
type EmphasisLevel string

const (
	EmphasisStrong   EmphasisLevel = "strong"
	EmphasisModerate EmphasisLevel = "moderate"
	EmphasisNone     EmphasisLevel = "none"
	EmphasisReduced  EmphasisLevel = "reduced"
)

var emphasisLevels = []EmphasisLevel{EmphasisStrong, EmphasisModerate, EmphasisNone, EmphasisReduced}

// Valid reports whether l is a known emphasis level.
func (l EmphasisLevel) Valid() bool { return slices.Contains(emphasisLevels, l) }

// Gender selects a voice gender.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale || g == GenderNeutral }

// ParseStrength converts s to a Strength, rejecting unknown values.
func ParseStrength(s string) (Strength, error) {
	return parseEnum(TagBreak, "strength", Strength(s))
}

// ParseInterpretAs converts s to an InterpretAs, rejecting unknown values.
func ParseInterpretAs(s string) (InterpretAs, error) {
	return parseEnum(TagSayAs, "interpretAs", InterpretAs(s))
}

// ParseSayAsFormat converts s to a SayAsFormat, rejecting unknown values.
func ParseSayAsFormat(s string) (SayAsFormat, error) {
	return parseEnum(TagSayAs, "format", SayAsFormat(s))
}

// ParseSayAsDetail converts s to a SayAsDetail, rejecting unknown values.
func ParseSayAsDetail(s string) (SayAsDetail, error) {
	return parseEnum(TagSayAs, "detail", SayAsDetail(s))
}

// ParseEmphasisLevel converts s to an EmphasisLevel, rejecting unknown values.
func ParseEmphasisLevel(s string) (EmphasisLevel, error) {
	return parseEnum(TagEmphasis, "level", EmphasisLevel(s))
}

// ParseGender converts s to a Gender, rejecting unknown values.
func ParseGender(s string) (Gender, error) {
	return parseEnum(TagVoice, "gender", Gender(s))
}

type enum interface {
	~string
	Valid() bool
}

func parseEnum[E enum](tag Tag, field string, v E) (E, error) {
	if !v.Valid() {
		var zero E
		return zero, invalidEnum(tag, field, string(v))
	}
	return v, nil
}
