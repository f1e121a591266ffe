package mda

import (
	"errors"
	"testing"
)

func TestExtractViaKeywords_NumeralVote(t *testing.T) {
	got, err := ExtractViaKeywords(keywordReport, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != keywordMDA {
		t.Errorf("expected %q, got %q", keywordMDA, got)
	}
}

func TestExtractViaKeywords_LastHeaderWins(t *testing.T) {
	// A preface header with the same layout appears before the real one.
	text := "\n三、管理层讨论与分析（摘要）\n摘要内容。\n" +
		"正文开始。\n" +
		"\n三、管理层讨论与分析\n完整内容。\n四、重要事项\n事项。\n"
	got, err := ExtractViaKeywords(text, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "三、管理层讨论与分析\n完整内容。"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractViaKeywords_SeparatorCarriedToNextHeader(t *testing.T) {
	text := "目次说明文字。\n第五章：经营情况讨论与分析\n内容。\n六、不是下一章\n六：公司治理\n"
	got, err := ExtractViaKeywords(text, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "第五章：经营情况讨论与分析\n内容。\n六、不是下一章"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractViaKeywords_NoKeywords(t *testing.T) {
	_, err := ExtractViaKeywords("这是一份与主题无关的文本。", "")
	if !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("expected ErrPatternNotFound, got %v", err)
	}
}

func TestExtractViaKeywords_NoNumeralNearKeyword(t *testing.T) {
	text := "这一部分很长很长很长很长，然后才是管理层讨论与分析，之后也没有编号。"
	_, err := ExtractViaKeywords(text, "")
	if !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("expected ErrPatternNotFound, got %v", err)
	}
}

func TestExtractViaKeywords_MissingNextHeaderRunsToEnd(t *testing.T) {
	text := "\n第三节、管理层讨论与分析\n正文一直到文末。"
	got, err := ExtractViaKeywords(text, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "第三节、管理层讨论与分析\n正文一直到文末。"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractViaKeywords_NextHeaderInOtherLayout(t *testing.T) {
	// The next section is printed as 第四节 rather than "四 ", so the
	// section is taken to the end of the document.
	text := "公司年度报告正文开始。\n第三节 管理层讨论与分析\n营业收入稳步增长。\n第四节 公司治理\n治理。"
	got, err := ExtractViaKeywords(text, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "第三节 管理层讨论与分析\n营业收入稳步增长。\n第四节 公司治理\n治理。"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractViaKeywords_CodecMiss(t *testing.T) {
	text := "\n第十一节、管理层讨论与分析\n正文。\n十二、公司治理\n"
	_, err := ExtractViaKeywords(text, "")
	if !errors.Is(err, ErrUnknownNumeral) {
		t.Errorf("expected ErrUnknownNumeral, got %v", err)
	}
}

func TestSectionNumeral_TieGoesToFirstSeen(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"第二节管理层讨论与分析。其后的内容很长很长很长很长。第三节管理层讨论与分析。", "二"},
		{"第三节管理层讨论与分析。其后的内容很长很长很长很长。第二节管理层讨论与分析。", "三"},
		{"第二节管理层讨论与分析。其后的内容很长很长很长很长。第三节管理层讨论与分析。又见第三节管理层讨论与分析。", "三"},
	}
	for _, tt := range tests {
		got, err := sectionNumeral(tt.text, defaultKeywordsRe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
