package mda

import (
	"errors"
	"testing"
)

func TestKeywordsPattern_DefaultIsStable(t *testing.T) {
	for range 3 {
		if got := KeywordsPattern(""); got != DefaultKeywords {
			t.Fatalf("expected default catalog, got %q", got)
		}
	}
}

func TestKeywordsPattern_CustomVerbatim(t *testing.T) {
	custom := "经营层分析|管理层回顾"
	if got := KeywordsPattern(custom); got != custom {
		t.Errorf("expected %q, got %q", custom, got)
	}
}

func TestDefaultKeywords_MatchesTitlesAndText(t *testing.T) {
	titles := []string{"管理层讨论与分析", "经营情况讨论与分析", "董事会报告", "业务回顾与展望"}
	for _, title := range titles {
		if !defaultKeywordsRe.MatchString(title) {
			t.Errorf("expected %q to match the default catalog", title)
		}
	}
	if defaultKeywordsRe.MatchString("公司治理") {
		t.Error("expected 公司治理 not to match")
	}
	if loc := defaultKeywordsRe.FindStringIndex("第三节 管理层讨论与分析"); loc == nil {
		t.Error("expected search in running text to find the keyword")
	}
}

func TestValidateKeywords(t *testing.T) {
	valid := []string{"", "管理层讨论与分析", "经营.{0,2}分析"}
	for _, p := range valid {
		if err := ValidateKeywords(p); err != nil {
			t.Errorf("expected %q to be valid, got %v", p, err)
		}
	}
	invalid := []string{"(", "管理层|", ".*"}
	for _, p := range invalid {
		if err := ValidateKeywords(p); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("expected %q to be rejected, got %v", p, err)
		}
	}
}
