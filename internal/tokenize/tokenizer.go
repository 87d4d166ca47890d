package tokenize

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
)

var (
	nonAlnum      = regexp.MustCompile(`[^a-zA-Zа-яА-ЯёЁ0-9]+`)
	digitsOnly    = regexp.MustCompile(`^\d+$`)
	cyrillicStart = regexp.MustCompile(`^[а-яА-ЯёЁ]`)
	latinStart    = regexp.MustCompile(`^[a-zA-Z]`)
)

// TextToTokens normalizes free text into a token sequence: lowercase, strip
// everything but Latin/Cyrillic letters and digits, split on whitespace and
// stem every word with the stemmer for its script. Numbers and tokens in an
// unrecognized script pass through unchanged.
func TextToTokens(text string) []string {
	cleaned := nonAlnum.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(cleaned)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		switch {
		case digitsOnly.MatchString(word):
			tokens = append(tokens, word)
		case cyrillicStart.MatchString(word):
			tokens = append(tokens, russian.Stem(word, true))
		case latinStart.MatchString(word):
			tokens = append(tokens, english.Stem(word, true))
		default:
			tokens = append(tokens, word)
		}
	}

	return tokens
}
