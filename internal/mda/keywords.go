package mda

import (
	"fmt"
	"regexp"
)

// DefaultKeywords is the built-in alternation of header titles that filers
// use for the MD&A section.
const DefaultKeywords = "董事会报告|董事会报告与管理讨论|企业运营与管理评述|经营总结与分析|" +
	"管理层评估与未来展望|董事局报告|管理层讨论与分析|经营情况讨论与分析|" +
	"经营业绩分析|业务回顾与展望|公司经营分析|管理层评论与分析|" +
	"执行摘要与业务回顾|业务运营分析"

var defaultKeywordsRe = regexp.MustCompile(DefaultKeywords)

// KeywordsPattern returns custom verbatim, or DefaultKeywords when custom is empty.
func KeywordsPattern(custom string) string {
	if custom == "" {
		return DefaultKeywords
	}
	return custom
}

// ValidateKeywords reports whether pattern can be used as a keywords override.
// The empty pattern selects the default catalog and is always valid.
func ValidateKeywords(pattern string) error {
	re, err := compileKeywords(pattern)
	if err != nil {
		return err
	}
	if re.MatchString("") {
		return fmt.Errorf("%w: pattern matches empty text", ErrInvalidPattern)
	}
	return nil
}

func compileKeywords(custom string) (*regexp.Regexp, error) {
	if custom == "" {
		return defaultKeywordsRe, nil
	}
	re, err := regexp.Compile(custom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}
