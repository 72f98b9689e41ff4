package patch

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Model output frequently substitutes typographic punctuation for the
// ASCII characters actually present in source files. Canonicalization
// folds the common look-alikes so an exact comparison still succeeds.
var asciiFolds = map[rune]rune{
	// dashes
	'‐': '-', // hyphen
	'‑': '-', // non-breaking hyphen
	'‒': '-', // figure dash
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-', // horizontal bar
	'−': '-', // minus sign
	// double quotes
	'“': '"',
	'”': '"',
	'„': '"',
	'«': '"',
	'»': '"',
	// single quotes
	'‘': '\'',
	'’': '\'',
	'‚': '\'',
	'′': '\'',
	// spaces
	' ': ' ', // no-break space
	' ': ' ', // en space
	' ': ' ', // em space
	' ': ' ', // thin space
	' ': ' ', // narrow no-break space
	'　': ' ', // ideographic space
	'​': ' ', // zero width space
}

// canonicalize NFC-normalizes s and folds punctuation look-alikes to
// ASCII. The result is only used for comparison, never emitted.
func canonicalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if repl, ok := asciiFolds[r]; ok {
			return repl
		}
		return r
	}, s)
}

func canonicalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = canonicalize(l)
	}
	return out
}

// unescapeTabs converts literal backslash-t escape text to real tab
// characters. Returns the input unchanged when no escape is present.
func unescapeTabs(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

// unescapeNewlines converts literal backslash-n escape text to real
// newlines.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
