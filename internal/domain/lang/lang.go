// Package lang classifies short query strings into the three content
// languages served by the catalog: Urdu script, Romanized Urdu, and English.
package lang

import (
	"strings"
	"unicode"
)

// Lang is a content language tag.
type Lang string

const (
	// Urdu is Urdu in Arabic script.
	Urdu Lang = "ur"
	// Roman is Urdu transliterated into Latin script.
	Roman Lang = "ro"
	// English is the English translation.
	English Lang = "en"
)

// romanVocab is a fixed set of common Romanized-Urdu function words and
// vocabulary. A whole-word, case-insensitive hit on any of these classifies
// the query as Roman.
var romanVocab = map[string]struct{}{
	"hai": {}, "hain": {}, "tha": {}, "thi": {},
	"ka": {}, "ki": {}, "ke": {}, "ko": {}, "se": {}, "mein": {},
	"aur": {}, "par": {}, "nahi": {}, "kya": {}, "kyun": {},
	"hum": {}, "tum": {}, "mera": {}, "tera": {}, "apna": {},
	"dil": {}, "ishq": {}, "mohabbat": {}, "gham": {}, "khushi": {},
	"zindagi": {}, "duniya": {}, "raat": {}, "chand": {}, "yaad": {},
	"shayari": {}, "ghazal": {}, "nazm": {}, "sher": {},
}

// Detect classifies text. Rules apply in order, first match wins:
// any Arabic-script rune means Urdu, a whole-word Romanized-Urdu vocabulary
// hit means Roman, everything else (including empty input) is English.
func Detect(text string) Lang {
	for _, r := range text {
		if unicode.In(r, unicode.Arabic) {
			return Urdu
		}
	}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, unicode.IsPunct)
		if _, ok := romanVocab[word]; ok {
			return Roman
		}
	}
	return English
}

// priorities maps a detected language to the variant preference order used
// when picking the best field of a record: the detected language's own field
// first, then the remaining two in a fixed order.
var priorities = map[Lang][3]Lang{
	Urdu:    {Urdu, Roman, English},
	Roman:   {Roman, English, Urdu},
	English: {English, Roman, Urdu},
}

// Priority returns the variant preference order for a detected language.
// Unknown tags fall back to the English order.
func Priority(detected Lang) [3]Lang {
	if p, ok := priorities[detected]; ok {
		return p
	}
	return priorities[English]
}
