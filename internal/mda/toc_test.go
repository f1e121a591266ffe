package mda

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLocateTOC_Marker(t *testing.T) {
	text := "2023年年度报告\n目录\n第一节 公司简介"
	start, end := LocateTOC(text)
	if start != 9 || end != 2009 {
		t.Errorf("expected (9, 2009), got (%d, %d)", start, end)
	}
}

func TestLocateTOC_MarkerWithSpacing(t *testing.T) {
	text := "封面\n目　 录\n"
	start, end := LocateTOC(text)
	if start != 2 || end != 2002 {
		t.Errorf("expected (2, 2002), got (%d, %d)", start, end)
	}
}

func TestLocateTOC_NoMarker(t *testing.T) {
	for _, text := range []string{"", "短文本", strings.Repeat("长", 5000)} {
		start, end := LocateTOC(text)
		if start != 0 || end != 2500 {
			t.Errorf("len %d: expected (0, 2500), got (%d, %d)", len(text), start, end)
		}
	}
}

func TestLocateTOC_MarkerNeedsNewline(t *testing.T) {
	// "目录" in running text is not a TOC heading.
	start, end := LocateTOC("详见目录所列章节")
	if start != 0 || end != 2500 {
		t.Errorf("expected (0, 2500), got (%d, %d)", start, end)
	}
}

func TestTOCBounds_ClampsToText(t *testing.T) {
	text := "前言\n目录\n第一节 公司简介"
	lo, hi := tocBounds(text)
	if lo != len("前言") || hi != len(text) {
		t.Errorf("expected (%d, %d), got (%d, %d)", len("前言"), len(text), lo, hi)
	}
}

func TestParseTOC(t *testing.T) {
	toc := "\n目录\n" +
		"第一节 重要提示 ........ 1\n" +
		"第二节 公司简介和主要财务指标 ........ 5\n" +
		"第三节、管理层讨论与分析 …… 12\n" +
		"第十一章 财务报告 ........ 80\n"
	want := []Section{
		{Marker: "第一节", Title: "重要提示"},
		{Marker: "第二节", Title: "公司简介和主要财务指标"},
		{Marker: "第三节", Title: "管理层讨论与分析"},
		{Marker: "第十一章", Title: "财务报告"},
	}
	if diff := cmp.Diff(want, ParseTOC(toc)); diff != "" {
		t.Errorf("ParseTOC mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOC_TitleOnNextLine(t *testing.T) {
	toc := "\n第三节\n  管理层讨论与分析 12\n第四节\n公司治理\n"
	want := []Section{
		{Marker: "第三节", Title: "管理层讨论与分析"},
		{Marker: "第四节", Title: "公司治理"},
	}
	if diff := cmp.Diff(want, ParseTOC(toc)); diff != "" {
		t.Errorf("ParseTOC mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOC_NoMarkers(t *testing.T) {
	if got := ParseTOC("一、公司简介\n二、管理层讨论与分析\n"); len(got) != 0 {
		t.Errorf("expected no sections, got %v", got)
	}
}

func TestSection_Header(t *testing.T) {
	s := Section{Marker: "第三节", Title: "管理层讨论与分析"}
	if got := s.Header(); got != "第三节 管理层讨论与分析" {
		t.Errorf("expected %q, got %q", "第三节 管理层讨论与分析", got)
	}
}
