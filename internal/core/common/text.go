package common

import "strings"

// SimilarityRatio returns a normalized edit-similarity measure in [0,1] for
// two strings, case-insensitive. It counts the total length of common
// substrings found by recursive longest-common-substring matching over twice
// the combined length (Ratcliff/Obershelp, the measure difflib popularized).
func SimilarityRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := matchLen(a, b)
	return float64(2*matched) / float64(len(a)+len(b))
}

func matchLen(a, b string) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchLen(a[:ai], b[:bi])
	total += matchLen(a[ai+size:], b[bi+size:])
	return total
}

func longestCommonSubstring(a, b string) (ai, bi, size int) {
	// prev[j] is the match length ending at a[i-1], b[j-1] from the previous row.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}

// ContextWindow returns the lowercased words within window words on each side
// of the first occurrence of phrase in text. If phrase is not found, the
// whole text is returned lowercased.
func ContextWindow(phrase, text string, window int) string {
	words := strings.Fields(text)
	phraseWords := strings.Fields(phrase)
	if len(phraseWords) == 0 || len(words) == 0 {
		return strings.ToLower(text)
	}

	for i := 0; i+len(phraseWords) <= len(words); i++ {
		if equalFoldJoined(words[i:i+len(phraseWords)], phrase) {
			start := i - window
			if start < 0 {
				start = 0
			}
			end := i + len(phraseWords) + window
			if end > len(words) {
				end = len(words)
			}
			return strings.ToLower(strings.Join(words[start:end], " "))
		}
	}
	return strings.ToLower(text)
}

func equalFoldJoined(words []string, phrase string) bool {
	return strings.EqualFold(strings.Join(words, " "), phrase)
}

// ContainsWord reports whether the space-separated context contains the word,
// matching whole words only so that "in" does not match "intelligence".
func ContainsWord(context, word string) bool {
	for _, w := range strings.Fields(context) {
		if strings.Trim(w, ".,;:!?'\"()") == word {
			return true
		}
	}
	return false
}
