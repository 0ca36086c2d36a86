package text

import (
	"strings"
	"unicode/utf8"
)

// WrapMode specifies how text is wrapped when it exceeds the maximum width.
type WrapMode uint8

const (
	// WrapWordChar breaks at word boundaries first,
	// then falls back to character boundaries for long words.
	// This is the default and most common mode.
	WrapWordChar WrapMode = iota

	// WrapNone disables text wrapping; text may exceed the maximum width.
	WrapNone

	// WrapWord breaks at word boundaries only.
	// Long words that exceed the maximum width will overflow.
	WrapWord
)

const unknownStr = "Unknown"

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "None"
	case WrapWord:
		return "Word"
	case WrapWordChar:
		return "WordChar"
	default:
		return unknownStr
	}
}

// Wrap splits s into lines no wider than maxWidth using greedy word
// wrapping, measured with m at the given size and weight.
//
// Words are separated by whitespace, which is normalized to single spaces.
// A word wider than maxWidth on its own is split mid-word at the longest
// prefix that fits; no hyphen is added. At least one rune goes on every
// line, so a line may overflow only when maxWidth is narrower than a single
// glyph.
//
// Non-empty input yields at least one line. A maxWidth of zero or less
// disables wrapping.
func Wrap(s string, maxWidth, size float64, bold bool, m Measurer) []string {
	return WrapWithMode(s, maxWidth, size, bold, m, WrapWordChar)
}

// WrapWithMode is Wrap with an explicit wrap mode.
func WrapWithMode(s string, maxWidth, size float64, bold bool, m Measurer, mode WrapMode) []string {
	words := strings.Fields(Normalize(s))
	if len(words) == 0 {
		return nil
	}
	if mode == WrapNone || maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	fits := func(t string) bool {
		return m.Measure(t, size, bold) <= maxWidth
	}

	var lines []string
	current := ""
	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if fits(test) {
			current = test
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if mode == WrapWord || fits(word) {
			current = word
			continue
		}

		for word != "" && !fits(word) {
			n := fitPrefix(word, fits)
			lines = append(lines, word[:n])
			word = word[n:]
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// fitPrefix returns the byte length of the longest rune prefix of word that
// fits, but never less than one rune.
func fitPrefix(word string, fits func(string) bool) int {
	_, n := utf8.DecodeRuneInString(word)
	for n < len(word) {
		_, size := utf8.DecodeRuneInString(word[n:])
		if !fits(word[:n+size]) {
			break
		}
		n += size
	}
	return n
}
