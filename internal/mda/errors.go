package mda

import "errors"

// Failures reported by the extraction strategies. Extract treats all of them
// the same way: the strategy failed and the next one (if any) is tried.
var (
	// ErrPatternNotFound means a keyword, TOC entry, or header could not be located.
	ErrPatternNotFound = errors.New("mda: pattern not found")

	// ErrNoNextSection means the MD&A entry is the last one in the TOC, so
	// there is no header to bound the section with.
	ErrNoNextSection = errors.New("mda: no section follows md&a in toc")

	// ErrUnknownNumeral means a section numeral is outside the numeral table.
	ErrUnknownNumeral = errors.New("mda: unknown section numeral")

	// ErrOrdering means every candidate end header sits before the start header.
	ErrOrdering = errors.New("mda: section end precedes start")

	// ErrInvalidPattern means a caller-supplied keywords pattern is unusable.
	ErrInvalidPattern = errors.New("mda: invalid keywords pattern")
)
