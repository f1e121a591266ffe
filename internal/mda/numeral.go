package mda

import (
	"fmt"
	"unicode/utf8"
)

// numeralClass is the character class of single Chinese numerals one through ten.
const numeralClass = `[一二三四五六七八九十]`

var numeralValues = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
}

var numeralGlyphs = [...]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}

// maxEncoded is the largest section number Encode renders.
const maxEncoded = 12

// Decode maps a single Chinese numeral character to its value (1-10).
func Decode(r rune) (int, error) {
	if n, ok := numeralValues[r]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNumeral, r)
}

// Encode renders 1-12 as Chinese numerals. Values above ten are written as
// 十 followed by the units digit.
func Encode(n int) (string, error) {
	switch {
	case n >= 1 && n <= 10:
		return numeralGlyphs[n], nil
	case n > 10 && n <= maxEncoded:
		return numeralGlyphs[10] + numeralGlyphs[n-10], nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownNumeral, n)
}

// nextNumeral returns the numeral of the section after run. Only single
// character runs decode; 十一 and friends are codec misses.
func nextNumeral(run string) (string, error) {
	r, size := utf8.DecodeRuneInString(run)
	if size == 0 || size != len(run) {
		return "", fmt.Errorf("%w: %q", ErrUnknownNumeral, run)
	}
	n, err := Decode(r)
	if err != nil {
		return "", err
	}
	return Encode(n + 1)
}
