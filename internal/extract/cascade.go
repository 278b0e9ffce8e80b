package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Pattern isolates the fragment of an answer that holds the value of
// interest. Match reports false when the phrasing is not present.
type Pattern struct {
	Name  string
	Match func(text string) (string, bool)
}

// Cascade is an ordered list of patterns. The first pattern that matches
// wins; later patterns are never consulted once one matches.
type Cascade struct {
	Name     string
	Prepare  func(text string) string
	Patterns []Pattern
}

// Hit is the fragment isolated by a cascade and the pattern that found it.
type Hit struct {
	Pattern  string
	Fragment string
}

// Find runs the cascade over text.
func (c Cascade) Find(text string) (Hit, bool) {
	if c.Prepare != nil {
		text = c.Prepare(text)
	}
	for _, pattern := range c.Patterns {
		if fragment, ok := pattern.Match(text); ok {
			return Hit{Pattern: pattern.Name, Fragment: fragment}, true
		}
	}
	return Hit{}, false
}

// Regexp builds a pattern returning the first capture group of expr, or the
// whole match when expr has no groups.
func Regexp(name, expr string) Pattern {
	re := regexp.MustCompile(expr)
	return Pattern{
		Name: name,
		Match: func(text string) (string, bool) {
			match := re.FindStringSubmatch(text)
			if match == nil {
				return "", false
			}
			if len(match) > 1 {
				return match[1], true
			}
			return match[0], true
		},
	}
}

// Stop finds where a lead-in fragment ends; it returns -1 when absent.
type Stop func(rest string) int

// LeadIn builds a pattern that matches lead and returns the text after it,
// cut at the earliest stop. Without any stop the fragment runs to the end.
func LeadIn(name, lead string, stops ...Stop) Pattern {
	re := regexp.MustCompile(lead)
	return Pattern{
		Name: name,
		Match: func(text string) (string, bool) {
			loc := re.FindStringIndex(text)
			if loc == nil {
				return "", false
			}
			rest := text[loc[1]:]
			end := len(rest)
			for _, stop := range stops {
				if idx := stop(rest); idx >= 0 && idx < end {
					end = idx
				}
			}
			return rest[:end], true
		},
	}
}

// StopAt stops before the first case-insensitive occurrence of word.
func StopAt(word string) Stop {
	word = asciiLower(word)
	return func(rest string) int {
		return strings.Index(asciiLower(rest), word)
	}
}

// StopAtSentence stops before the first case-insensitive occurrence of word
// that is followed by a period on the same line.
func StopAtSentence(word string) Stop {
	word = asciiLower(word)
	return func(rest string) int {
		lower := asciiLower(rest)
		offset := 0
		for {
			idx := strings.Index(lower[offset:], word)
			if idx == -1 {
				return -1
			}
			start := offset + idx
			tail := lower[start+len(word):]
			if line, _, _ := strings.Cut(tail, "\n"); strings.Contains(line, ".") {
				return start
			}
			offset = start + 1
		}
	}
}

// asciiLower lowercases ASCII letters only so byte offsets are preserved.
func asciiLower(value string) string {
	buf := []byte(value)
	for i, b := range buf {
		if b >= 'A' && b <= 'Z' {
			buf[i] = b + ('a' - 'A')
		}
	}
	return string(buf)
}

// StripSpace removes every whitespace rune.
func StripSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// dropNewlines removes line breaks the generator inserts mid-phrase.
func dropNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "")
}
