// Package chat relays assistant answers to a single client as paced chunks.
package chat

import (
	"iter"
	"unicode/utf8"
)

// Chars yields text one rune at a time. Concatenating the chunks gives back text,
// including any invalid UTF-8 bytes.
func Chars(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < len(text); {
			_, size := utf8.DecodeRuneInString(text[i:])
			if !yield(text[i : i+size]) {
				return
			}
			i += size
		}
	}
}

// Whole yields text as a single chunk, or nothing when text is empty.
func Whole(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text != "" {
			yield(text)
		}
	}
}
