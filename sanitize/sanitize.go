// Package sanitize implements the input safety filter applied before the
// support pipeline runs: regex-based PII masking (email, phone, resident
// registration number, card number) followed by profanity masking, plus the
// block decision for inputs with excessive profanity.
//
// The PII rules form an ordered chain; each rule substitutes every
// non-overlapping match in the output of the previous rule with a fixed
// placeholder token. Profanity is masked with asterisks of equal width so
// that character positions are preserved.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// Stats counts detected occurrences per category for a single input.
// Keys: "email", "phone", "rrn", "card", "profanity". A category is present
// only when at least one occurrence was found.
type Stats map[string]int

// Rule is one PII masking rule. Rules run in the order they appear in Rules;
// each rule sees the previous rule's output.
type Rule struct {
	Category    string
	Pattern     *regexp.Regexp
	Placeholder string
}

// Rules is the default PII rule chain: email → phone → RRN → card.
// Phone covers Korean mobile/landline formats with an optional +82 prefix.
var Rules = []Rule{
	{"email", regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), "<EMAIL>"},
	{"phone", regexp.MustCompile(`(?:\+?82[-\s]?)?0\d{1,2}[-\s]?\d{3,4}[-\s]?\d{4}`), "<PHONE>"},
	{"rrn", regexp.MustCompile(`\b\d{6}-\d{7}\b`), "<RRN>"},
	{"card", regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`), "<CARD>"},
}

// Profanities is the fixed term list scanned case-insensitively.
var Profanities = []string{
	"씨발",
	"씨빨",
	"병신",
	"지랄",
	"fuck",
	"shit",
	"bitch",
}

// BlockThreshold is the profanity occurrence count at which an input is
// blocked outright instead of masked.
const BlockThreshold = 3

// BlockMessage is shown to the user when an input is blocked.
const BlockMessage = "부적절한 표현이 다수 감지되어 요청이 차단되었습니다."

// Sanitize masks PII and profanity in text and returns the masked text with
// per-category occurrence counts.
func Sanitize(text string) (string, Stats) {
	stats := Stats{}
	masked := text
	for _, rule := range Rules {
		n := 0
		masked = rule.Pattern.ReplaceAllStringFunc(masked, func(string) string {
			n++
			return rule.Placeholder
		})
		if n > 0 {
			stats[rule.Category] = n
		}
	}
	masked, prof := maskProfanity(masked)
	if prof > 0 {
		stats["profanity"] = prof
	}
	return masked, stats
}

// Moderate sanitizes text and decides whether to block it. PII alone never
// blocks; only profanity volume does. When blocked the returned message is
// BlockMessage and the masked text is discarded; otherwise it is the
// sanitized text.
func Moderate(text string) (blocked bool, message string, stats Stats) {
	masked, stats := Sanitize(text)
	if stats["profanity"] >= BlockThreshold {
		return true, BlockMessage, stats
	}
	return false, masked, stats
}

// maskProfanity replaces every case-insensitive occurrence of a profanity
// term with asterisks of equal rune length. Matching is positional over a
// lowercased shadow of the text; the replacement is written into the
// original-case text at the same positions, which is only sound because the
// replacement width equals the match width.
func maskProfanity(text string) (string, int) {
	masked := []rune(text)
	lowered := make([]rune, len(masked))
	for i, r := range masked {
		lowered[i] = unicode.ToLower(r)
	}

	count := 0
	for _, bad := range Profanities {
		term := []rune(strings.ToLower(bad))
		idx := 0
		for {
			pos := indexRunes(lowered[idx:], term)
			if pos < 0 {
				break
			}
			pos += idx
			for i := pos; i < pos+len(term); i++ {
				masked[i] = '*'
				lowered[i] = '*'
			}
			idx = pos + len(term)
			count++
		}
	}
	return string(masked), count
}

// indexRunes returns the index of the first occurrence of sub in s, or -1.
func indexRunes(s, sub []rune) int {
	if len(sub) == 0 || len(sub) > len(s) {
		return -1
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
