// Package mda locates the Management Discussion & Analysis section in the
// text of Chinese annual reports.
//
// Two heuristics are tried in order: the table of contents is parsed to find
// the MD&A entry and the entry after it, and failing that, keyword matches
// near section numerals are used to infer the header style. Both use the
// next section's header as the end delimiter.
package mda

import (
	"fmt"
)

// Strategy names the heuristic that produced a Result.
type Strategy string

const (
	StrategyTOC     Strategy = "toc"
	StrategyKeyword Strategy = "keyword"
	StrategyNone    Strategy = "none"
)

// Result is the outcome of ExtractDetailed.
type Result struct {
	Text     string
	Strategy Strategy
	// Err is the failure of the last strategy tried when Text is empty.
	Err error
}

// Found reports whether MD&A text was extracted.
func (r Result) Found() bool {
	return r.Text != ""
}

// Extract returns the MD&A section of text, or "" when neither strategy
// finds it. An empty keywords pattern selects DefaultKeywords.
func Extract(text, keywords string) string {
	return ExtractDetailed(text, keywords).Text
}

// ExtractDetailed is Extract with the strategy that succeeded and, on
// failure, the reason the last strategy gave up.
func ExtractDetailed(text, keywords string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Strategy: StrategyNone, Err: fmt.Errorf("mda: extraction panicked: %v", r)}
		}
	}()

	strategies := []struct {
		name Strategy
		run  func(string, string) (string, error)
	}{
		{StrategyTOC, ExtractViaTOC},
		{StrategyKeyword, ExtractViaKeywords},
	}

	var lastErr error
	for _, s := range strategies {
		out, err := s.run(text, keywords)
		if err == nil && out == "" {
			err = fmt.Errorf("%w: empty section", ErrPatternNotFound)
		}
		if err != nil {
			lastErr = err
			continue
		}
		return Result{Text: out, Strategy: s.name}
	}
	return Result{Strategy: StrategyNone, Err: lastErr}
}
