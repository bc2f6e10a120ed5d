package editor

import "unicode/utf8"

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// runeSlice returns s[from:to] counted in runes.
func runeSlice(s string, from, to int) string {
	r := []rune(s)
	from = max(0, min(from, len(r)))
	to = max(from, min(to, len(r)))
	return string(r[from:to])
}

func runeSplit(s string, at int) (string, string) {
	r := []rune(s)
	at = max(0, min(at, len(r)))
	return string(r[:at]), string(r[at:])
}
