package robot

import (
	"sort"
	"strings"
	"unicode"
)

// Wake matches wake phrases at word boundaries, case-insensitively.
type Wake struct {
	phrases []string
}

func NewWake(phrases []string) Wake {
	var clean []string
	for _, p := range phrases {
		if p = normalize(p); p != "" {
			clean = append(clean, p)
		}
	}
	// Longest first so "doctor ferpy" wins over "doctor".
	sort.SliceStable(clean, func(i, j int) bool { return len(clean[i]) > len(clean[j]) })
	return Wake{phrases: clean}
}

// Strip reports whether text contains a wake phrase and returns the text
// with the first occurrence removed.
func (w Wake) Strip(text string) (string, bool) {
	words := strings.Fields(text)
	norm := make([]string, len(words))
	for i, word := range words {
		norm[i] = normalize(word)
	}

	for _, phrase := range w.phrases {
		pw := strings.Fields(phrase)
		for i := 0; i+len(pw) <= len(norm); i++ {
			if equalWords(norm[i:i+len(pw)], pw) {
				rest := append(append([]string{}, words[:i]...), words[i+len(pw):]...)
				return strings.TrimLeftFunc(strings.Join(rest, " "), isSep), true
			}
		}
	}
	return text, false
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimFunc(s, isSep)
}

func isSep(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r)
}
