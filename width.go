package vterm

import "github.com/unilibs/uniwidth"

// runeWidth returns the East-Asian display width of r: 2 for wide
// characters (CJK ideographs, fullwidth forms, many emoji), 1 for narrow.
// spec.md §4.2 treats any non-wide rune as width 1 ("0 not currently
// produced; narrow=1, wide=2").
func runeWidth(r rune) int {
	w := uniwidth.RuneWidth(r)
	if w == 2 {
		return 2
	}
	return 1
}

func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// stringWidth returns the total display width of s (sum of rune widths):
// the number of columns s spans when each codepoint advances by its
// runeWidth, as the preedit overlay in render.go does.
func stringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}
