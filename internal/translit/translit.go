// Package translit converts Devanagari Pāḷi navigation paths to Roman script
// and formats them as breadcrumb titles.
package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	virama = '्'
	zwj    = '\u200d'
	zwnj   = '\u200c'
)

var consonants = map[rune]string{
	'क': "k", 'ख': "kh", 'ग': "g", 'घ': "gh", 'ङ': "ṅ",
	'च': "c", 'छ': "ch", 'ज': "j", 'झ': "jh", 'ञ': "ñ",
	'ट': "ṭ", 'ठ': "ṭh", 'ड': "ḍ", 'ढ': "ḍh", 'ण': "ṇ",
	'त': "t", 'थ': "th", 'द': "d", 'ध': "dh", 'न': "n",
	'प': "p", 'फ': "ph", 'ब': "b", 'भ': "bh", 'म': "m",
	'य': "y", 'र': "r", 'ल': "l", 'ळ': "ḷ", 'व': "v",
	'श': "ś", 'ष': "ṣ", 'स': "s", 'ह': "h",
}

var vowels = map[rune]string{
	'अ': "a", 'आ': "ā", 'इ': "i", 'ई': "ī", 'उ': "u", 'ऊ': "ū", 'ए': "e", 'ओ': "o",
}

var vowelSigns = map[rune]string{
	'ा': "ā", 'ि': "i", 'ी': "ī", 'ु': "u", 'ू': "ū", 'े': "e", 'ो': "o",
}

var others = map[rune]string{
	'ं': "ṃ", 'ँ': "ṃ", '॰': "·", '।': ".", '॥': "..",
	'०': "0", '१': "1", '२': "2", '३': "3", '४': "4",
	'५': "5", '६': "6", '७': "7", '८': "8", '९': "9",
}

// ToRoman transliterates Devanagari text to Roman Pāḷi. Consonants carry an
// inherent "a" unless followed by a vowel sign or virama. Joiners are
// dropped and runes outside the table pass through unchanged.
func ToRoman(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if c, ok := consonants[r]; ok {
			b.WriteString(c)
			next := rune(0)
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			switch {
			case next == virama:
				i++
			case vowelSigns[next] != "":
				b.WriteString(vowelSigns[next])
				i++
			default:
				b.WriteByte('a')
			}
			continue
		}
		if v, ok := vowels[r]; ok {
			b.WriteString(v)
			continue
		}
		if v, ok := vowelSigns[r]; ok {
			// Stray vowel sign without a consonant.
			b.WriteString(v)
			continue
		}
		if o, ok := others[r]; ok {
			b.WriteString(o)
			continue
		}
		if r == zwj || r == zwnj || r == virama {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

var lower = cases.Lower(language.Und)

// Title formats a romanized navigation path as a breadcrumb: segments are
// joined by " > ", each space-separated word is capitalized, and
// abbreviation marks collapse ("su· pi·" becomes "Su.Pi.").
func Title(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "/", " > ")
	s = strings.ReplaceAll(s, `"`, ` " `)

	words := strings.Split(lower.String(s), " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}

	s = strings.Join(words, " ")
	s = strings.ReplaceAll(s, ` " `, `"`)
	s = strings.ReplaceAll(s, "· ", ".")
	s = strings.ReplaceAll(s, ".>", ". >")
	return s
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// NavTitle romanizes a Devanagari navigation path and formats it as a title.
func NavTitle(path string) string {
	return Title(ToRoman(path))
}
