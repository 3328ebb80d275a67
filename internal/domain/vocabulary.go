package domain

import (
	"strings"
	"unicode"
)

// Tone is the voice the description should be written in.
type Tone string

// Supported tones.
const (
	ToneFormal       Tone = "Formal"
	ToneInformal     Tone = "Informal"
	ToneFunEnergetic Tone = "Fun & Energetic"
)

// Tones lists the supported tones in display order.
var Tones = []Tone{ToneFormal, ToneInformal, ToneFunEnergetic}

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	for _, known := range Tones {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTone maps a label such as "formal", "Fun & Energetic" or "FunEnergetic"
// to its canonical Tone. Unrecognised input is returned trimmed but otherwise
// unchanged so that validation can report it.
func ParseTone(label string) Tone {
	key := foldKey(label)
	for _, known := range Tones {
		if foldKey(string(known)) == key {
			return known
		}
	}
	return Tone(strings.TrimSpace(label))
}

// Length is the requested description length.
type Length string

// Supported lengths.
const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Lengths lists the supported lengths in display order.
var Lengths = []Length{LengthShort, LengthMedium, LengthLong}

var lengthLabels = map[Length]string{
	LengthShort:  "Short (1-2 sentences)",
	LengthMedium: "Medium (3-5 sentences)",
	LengthLong:   "Long (6+ sentences)",
}

// approximate word counts handed to the model
var lengthWordTargets = map[Length]int{
	LengthShort:  50,
	LengthMedium: 150,
	LengthLong:   300,
}

// Valid reports whether l is one of the supported lengths.
func (l Length) Valid() bool {
	_, ok := lengthWordTargets[l]
	return ok
}

// Label returns the form label, e.g. "Short (1-2 sentences)".
func (l Length) Label() string {
	return lengthLabels[l]
}

// WordTarget returns the approximate number of words for l, or 0 if l is unknown.
func (l Length) WordTarget() int {
	return lengthWordTargets[l]
}

// ParseLength accepts either a bare value ("short") or a form label
// ("Short (1-2 sentences)") and returns the first word lowercased.
func ParseLength(label string) Length {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return Length(strings.ToLower(fields[0]))
}

// Audience is a target customer segment from a fixed vocabulary.
type Audience string

// Audiences is the fixed audience vocabulary in display order.
var Audiences = []Audience{
	"Teens",
	"Adults",
	"Seniors",
	"Music Lovers",
	"Fitness Enthusiasts",
	"Tech Savvy",
	"Busy Professionals",
	"Travelers",
	"Casual Users",
}

// Valid reports whether a is in the audience vocabulary.
func (a Audience) Valid() bool {
	return audienceIndex(a) >= 0
}

// ParseAudience maps a label to its canonical spelling, ignoring case and spacing.
// Unknown labels come back trimmed.
func ParseAudience(label string) Audience {
	key := foldKey(label)
	for _, known := range Audiences {
		if foldKey(string(known)) == key {
			return known
		}
	}
	return Audience(strings.TrimSpace(label))
}

// NormalizeAudience canonicalises labels, drops blanks and duplicates, and orders
// known audiences by vocabulary position. Unknown audiences follow in input order.
func NormalizeAudience(labels []string) []Audience {
	seen := make(map[Audience]bool, len(labels))
	known := make([]bool, len(Audiences))
	var unknown []Audience

	for _, label := range labels {
		a := ParseAudience(label)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		if i := audienceIndex(a); i >= 0 {
			known[i] = true
		} else {
			unknown = append(unknown, a)
		}
	}

	out := make([]Audience, 0, len(seen))
	for i, ok := range known {
		if ok {
			out = append(out, Audiences[i])
		}
	}
	return append(out, unknown...)
}

func audienceIndex(a Audience) int {
	for i, known := range Audiences {
		if a == known {
			return i
		}
	}
	return -1
}

// ParseList splits comma-separated free text into trimmed, non-empty items,
// preserving order.
func ParseList(text string) []string {
	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// foldKey lowercases s and keeps only letters and digits, so "Fun & Energetic",
// "fun-energetic" and "FunEnergetic" compare equal.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
