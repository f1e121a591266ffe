package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordCatalog is the on-disk form of a custom MD&A title list:
//
//	keywords:
//	  - 管理层讨论与分析
//	  - 经营情况讨论与分析
type KeywordCatalog struct {
	Keywords []string `yaml:"keywords"`
}

// Pattern joins the phrases into a regexp alternation. Phrases are matched
// literally; blank entries are skipped.
func (c KeywordCatalog) Pattern() (string, error) {
	var parts []string
	for _, k := range c.Keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(k))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("keyword catalog is empty")
	}
	return strings.Join(parts, "|"), nil
}

// ReadKeywordCatalog reads a YAML keyword catalog from path.
func ReadKeywordCatalog(path string) (KeywordCatalog, error) {
	var cat KeywordCatalog
	data, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("read keywords file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return cat, fmt.Errorf("parse keywords file %s: %w", path, err)
	}
	return cat, nil
}

// LoadKeywords reads a YAML keyword catalog and returns its alternation pattern.
func LoadKeywords(path string) (string, error) {
	cat, err := ReadKeywordCatalog(path)
	if err != nil {
		return "", err
	}
	pattern, err := cat.Pattern()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return pattern, nil
}
