package mda

import (
	"fmt"
	"strings"
)

// headerWindow is how many characters around a title occurrence are searched
// for its section marker.
const headerWindow = 50

// ExtractViaTOC finds the MD&A entry in the table of contents and slices the
// body between its header and the header of the entry after it. When the TOC
// yields no entries it falls back to numeral-proximity search over the
// whole document; that result starts at the MD&A header, like the keyword
// strategy's.
func ExtractViaTOC(text, keywords string) (string, error) {
	re, err := compileKeywords(keywords)
	if err != nil {
		return "", err
	}

	lo, hi := tocBounds(text)
	sections := ParseTOC(text[lo:hi])
	if len(sections) == 0 {
		return extractByNumeral(text, re)
	}

	idx := -1
	for i, s := range sections {
		if re.MatchString(s.Title) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: no toc entry matches keywords", ErrPatternNotFound)
	}
	if idx+1 >= len(sections) {
		return "", fmt.Errorf("%w: %q", ErrNoNextSection, sections[idx].Header())
	}

	body := text[hi:]
	current, next := sections[idx], sections[idx+1]
	if out, err := sliceByProximity(body, current, next); err == nil {
		return out, nil
	}
	return sliceByLiteral(body, current, next)
}

// sliceByProximity locates both headers by their title, confirmed by the
// marker sitting nearby, and returns body from the MD&A header up to the
// next header.
func sliceByProximity(body string, current, next Section) (string, error) {
	start, err := locateHeader(body, current, -1)
	if err != nil {
		return "", err
	}
	end, err := locateHeader(body, next, start)
	if err != nil {
		return "", err
	}
	return body[start:end], nil
}

// locateHeader returns the byte offset of the first confirmed header for s
// that lies strictly after the offset after. The offset is that of the
// marker when it precedes the title, otherwise that of the title.
func locateHeader(body string, s Section, after int) (int, error) {
	if s.Title == "" {
		return 0, fmt.Errorf("%w: empty title for %q", ErrPatternNotFound, s.Marker)
	}

	earlier := false
	for from := 0; from < len(body); {
		i := strings.Index(body[from:], s.Title)
		if i < 0 {
			break
		}
		pos := from + i
		from = pos + len(s.Title)

		lo, hi := back(body, pos, headerWindow), forward(body, pos, headerWindow)
		start := pos
		if m := strings.LastIndex(body[lo:pos], s.Marker); m >= 0 {
			start = lo + m
		} else if !strings.Contains(body[pos:hi], s.Marker) {
			continue
		}
		if start <= after {
			earlier = true
			continue
		}
		return start, nil
	}

	if earlier {
		return 0, fmt.Errorf("%w: %q", ErrOrdering, s.Header())
	}
	return 0, fmt.Errorf("%w: header %q", ErrPatternNotFound, s.Header())
}

// sliceByLiteral cuts body at the first literal occurrence of the MD&A header
// and then at the first literal occurrence of the next header after it. When
// the next header is missing the slice runs to the end of body.
func sliceByLiteral(body string, current, next Section) (string, error) {
	start, header := indexHeader(body, current)
	if start < 0 {
		return "", fmt.Errorf("%w: header %q", ErrPatternNotFound, current.Header())
	}
	rest := body[start+len(header):]
	end, _ := indexHeader(rest, next)
	if end < 0 {
		return body[start:], nil
	}
	return body[start : start+len(header)+end], nil
}

// indexHeader returns the earliest occurrence of s in any of the layouts a
// header is printed in, and the literal that matched.
func indexHeader(body string, s Section) (int, string) {
	best, literal := -1, ""
	for _, h := range []string{s.Header(), s.Marker + "　" + s.Title, s.Marker + s.Title} {
		if i := strings.Index(body, h); i >= 0 && (best < 0 || i < best) {
			best, literal = i, h
		}
	}
	return best, literal
}
