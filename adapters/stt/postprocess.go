package stt

import "strings"

// corrections is the fixed list of literal replacements applied to every
// transcription, in order. The shipped entries map each word to itself;
// the identity property is asserted by tests so any future divergence is
// a deliberate change.
var corrections = [][2]string{
	{"ہے", "ہے"},
	{"ہیں", "ہیں"},
	{"میں", "میں"},
}

// postprocess strips surrounding whitespace and applies the correction
// list. It is idempotent.
func postprocess(text string) string {
	text = strings.TrimSpace(text)
	for _, c := range corrections {
		text = strings.ReplaceAll(text, c[0], c[1])
	}
	return text
}
