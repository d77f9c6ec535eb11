package planner

import (
	"strings"
	"unicode"
)

// fillerPrefixes are throat-clearing openers stripped before delivery. The
// comparison is case-insensitive against the start of the line.
var fillerPrefixes = []string{
	"sure,",
	"sure!",
	"okay,",
	"ok,",
	"alright,",
	"well,",
	"so,",
	"here's one:",
	"here is one:",
	"here goes:",
	"how about this:",
	"let me try:",
}

// sanitize reduces raw oracle output to at most two finished sentences with
// no leading filler.
func sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	text = stripLeadingFiller(text)
	text = reduceToTwoSentences(text)
	return text
}

func stripLeadingFiller(text string) string {
	lowered := strings.ToLower(text)
	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return strings.TrimSpace(text[len(prefix):])
		}
	}
	return text
}

// reduceToTwoSentences splits on terminal punctuation, keeps the first two
// sentences, and guarantees the result ends with punctuation.
func reduceToTwoSentences(text string) string {
	if text == "" {
		return ""
	}

	sentences := splitSentences(text)
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}

	out := strings.Join(sentences, " ")
	if out == "" {
		return ""
	}
	if last, _ := lastRune(out); !isTerminal(last) {
		out += "."
	}
	return out
}

func splitSentences(text string) []string {
	sentences := []string{}
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if isTerminal(r) {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func lastRune(s string) (rune, bool) {
	var last rune
	found := false
	for _, r := range s {
		last = r
		found = true
	}
	return last, found
}

// containsBannedPhrase reports whether the text contains any banned phrase,
// case-insensitively, and which one.
func containsBannedPhrase(text string, bannedPhrases []string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, phrase := range bannedPhrases {
		trimmed := strings.TrimSpace(strings.ToLower(phrase))
		if trimmed == "" {
			continue
		}
		if strings.Contains(lowered, trimmed) {
			return phrase, true
		}
	}
	return "", false
}

// hasLetters reports whether anything speakable survived sanitization.
func hasLetters(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
