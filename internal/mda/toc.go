package mda

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// tocSpan is how many characters after the TOC marker are treated as the TOC.
	tocSpan = 2000
	// unmarkedTOCSpan is the assumed TOC length when no marker exists.
	unmarkedTOCSpan = 2500
)

var (
	tocMarker     = regexp.MustCompile(`\n目[\s\p{Zs}]*录`)
	sectionMarker = regexp.MustCompile(`\n第` + numeralClass + `{1,2}[节章]`)

	// Page numbers and dot leaders between a TOC title and its page.
	titleJunk = regexp.MustCompile(`[0-9０-９.．…⋯·]+`)
)

const titleSeparators = " \t　,，:：、"

// Section is one TOC entry: a marker such as 第三节 and the title after it.
type Section struct {
	Marker string `json:"marker"`
	Title  string `json:"title"`
}

// Header renders the entry the way a body header is usually laid out.
func (s Section) Header() string {
	return s.Marker + " " + s.Title
}

// LocateTOC returns the approximate character range of the table of contents.
// The range may extend past the end of text.
func LocateTOC(text string) (start, end int) {
	loc := tocMarker.FindStringIndex(text)
	if loc == nil {
		return 0, unmarkedTOCSpan
	}
	start = utf8.RuneCountInString(text[:loc[0]])
	return start, start + tocSpan
}

// tocBounds is LocateTOC converted to byte offsets clamped to text.
func tocBounds(text string) (lo, hi int) {
	start, end := LocateTOC(text)
	lo = byteOffset(text, start)
	return lo, forward(text, lo, end-start)
}

// ParseTOC splits TOC text into its entries, in declared order. Text before
// the first marker is preamble and is dropped.
func ParseTOC(toc string) []Section {
	locs := sectionMarker.FindAllStringIndex(toc, -1)
	sections := make([]Section, 0, len(locs))
	for i, loc := range locs {
		end := len(toc)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, Section{
			Marker: toc[loc[0]+1 : loc[1]],
			Title:  cleanTitle(toc[loc[1]:end]),
		})
	}
	return sections
}

// cleanTitle keeps the first non-empty line of a TOC fragment with page
// numbers, dot leaders and separators removed.
func cleanTitle(fragment string) string {
	for _, line := range strings.Split(fragment, "\n") {
		line = titleJunk.ReplaceAllString(line, "")
		line = strings.Trim(strings.TrimSpace(line), titleSeparators)
		if line != "" {
			return line
		}
	}
	return ""
}
