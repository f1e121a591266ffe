package mda

import (
	"fmt"
	"regexp"
	"strings"
)

// numeralWindow is how many characters on each side of a keyword match
// start are searched for a section numeral.
const numeralWindow = 10

var (
	numeralRun = regexp.MustCompile(numeralClass + `+`)
	hanRun     = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+`)

	defaultHeaderRe = headerPattern(DefaultKeywords)
)

// headerPattern matches a section header line: newline, optional 第, numeral,
// optional 节/章, one to five separator characters, then a keyword.
func headerPattern(keywords string) *regexp.Regexp {
	return regexp.MustCompile(`\n第*` + numeralClass + `+[节章]*[,，:：、. \t]{1,5}(?:` + keywords + `)`)
}

// ExtractViaKeywords locates the MD&A header from keyword occurrences near
// section numerals and cuts the document at the next section's header, or
// at the end of the document when that header never appears.
func ExtractViaKeywords(text, keywords string) (string, error) {
	re, err := compileKeywords(keywords)
	if err != nil {
		return "", err
	}
	return extractByNumeral(text, re)
}

func extractByNumeral(text string, re *regexp.Regexp) (string, error) {
	numeral, err := sectionNumeral(text, re)
	if err != nil {
		return "", err
	}

	hp := defaultHeaderRe
	if re != defaultKeywordsRe {
		hp = headerPattern(re.String())
	}
	matches := hp.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no section header for numeral %q", ErrPatternNotFound, numeral)
	}
	// The last header wins: earlier ones tend to be references in the preface.
	header := strings.TrimPrefix(matches[len(matches)-1], "\n")
	sep := hanRun.ReplaceAllString(header, "")

	next, err := nextNumeral(numeral)
	if err != nil {
		return "", err
	}
	nextHeader := "\n" + next + sep

	rest := text[strings.LastIndex(text, header)+len(header):]
	// Without a next header the section runs to the end of the document.
	if end := strings.Index(rest, nextHeader); end >= 0 {
		rest = rest[:end]
	}
	return header + rest, nil
}

// sectionNumeral votes for the numeral run seen most often near keyword
// matches. Ties go to the run encountered first.
func sectionNumeral(text string, re *regexp.Regexp) (string, error) {
	counts := make(map[string]int)
	var order []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		lo, hi := back(text, loc[0], numeralWindow), forward(text, loc[0], numeralWindow)
		for _, run := range numeralRun.FindAllString(text[lo:hi], -1) {
			if counts[run] == 0 {
				order = append(order, run)
			}
			counts[run]++
		}
	}
	if len(order) == 0 {
		return "", fmt.Errorf("%w: no section numeral near keywords", ErrPatternNotFound)
	}

	best := order[0]
	for _, run := range order[1:] {
		if counts[run] > counts[best] {
			best = run
		}
	}
	return best, nil
}
