package engine

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// tokenPattern splits words from sentence-terminal punctuation, using a
// negative lookbehind/lookahead so a decimal point inside a number (3.14)
// is not treated as a sentence boundary the way a bare ".", "?", or "!"
// is — a job plain regexp's RE2 engine cannot express, which is why this
// tokenizer reaches for regexp2 instead of the standard library.
var tokenPattern = regexp2.MustCompile(`[A-Za-z']+|(?<!\d)[.?!](?!\d)`, regexp2.None)

// Tokenize lowercases and splits text into words and sentence terminators.
func Tokenize(text string) []string {
	var tokens []string
	m, _ := tokenPattern.FindStringMatch(text)
	for m != nil {
		tokens = append(tokens, strings.ToLower(m.String()))
		m, _ = tokenPattern.FindNextMatch(m)
	}
	return tokens
}
