package mda

import "unicode/utf8"

// Window sizes below are counted in characters, not bytes, so the helpers
// here translate between the two.

// byteOffset converts a character offset into a byte offset of s, clamped to len(s).
func byteOffset(s string, chars int) int {
	return forward(s, 0, chars)
}

// back moves n characters backwards from byte index i, stopping at 0.
func back(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// forward moves n characters forwards from byte index i, stopping at len(s).
func forward(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
