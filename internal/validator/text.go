// Package validator holds the text counting and validation policy shared
// by the chat quota and the video/voice generation paths.
package validator

import "unicode"

// MaxGenerationChars is the cap on countable characters for one video or
// voice generation request.
const MaxGenerationChars = 15

// isEmoji reports whether the codepoint falls in a recognized emoji range.
// Emoji never count against any budget.
func isEmoji(r rune) bool {
	return (r >= 0x1F300 && r <= 0x1FAFF) ||
		(r >= 0x2600 && r <= 0x27BF) ||
		(r >= 0xFE00 && r <= 0xFE0F) ||
		(r >= 0x1F1E6 && r <= 0x1F1FF)
}

// isHangul reports whether the codepoint belongs to one of the Hangul
// Unicode blocks (syllables or jamo).
func isHangul(r rune) bool {
	return unicode.Is(unicode.Hangul, r)
}

// CountChars counts codepoints excluding whitespace. This is the chat
// quota counter: byte length and separators never matter.
func CountChars(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		n++
	}
	return n
}

// CountHangul counts only Hangul codepoints, excluding whitespace and
// emoji. Non-Hangul codepoints are skipped, not rejected.
func CountHangul(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) || isEmoji(r) {
			continue
		}
		if isHangul(r) {
			n++
		}
	}
	return n
}

// ValidGenerationText reports whether text is acceptable for a video or
// voice generation request: between 1 and limit Hangul characters after
// the whitespace/emoji exclusions.
func ValidGenerationText(text string, limit int) bool {
	n := CountHangul(text)
	return n >= 1 && n <= limit
}
