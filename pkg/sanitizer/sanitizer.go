package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

const MaxGuestNameLength = 200

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		if r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
}

func truncate(max int) Strategy {
	return func(s string) string {
		runes := []rune(s)
		if len(runes) <= max {
			return s
		}
		return strings.TrimSpace(string(runes[:max]))
	}
}

// SanitizeGuestName drops control characters, collapses whitespace and caps the length.
// Case and punctuation are preserved.
func SanitizeGuestName(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
		truncate(MaxGuestNameLength),
	}
	return p.Apply(input)
}
