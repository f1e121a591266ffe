package mda

import (
	"errors"
	"sync"
	"testing"
)

func TestExtract_PrefersTOC(t *testing.T) {
	res := ExtractDetailed(tocListing+filler+tocBody, "")
	if res.Strategy != StrategyTOC {
		t.Errorf("expected strategy %q, got %q", StrategyTOC, res.Strategy)
	}
	if res.Text != tocMDA {
		t.Errorf("expected %q, got %q", tocMDA, res.Text)
	}
	if !res.Found() || res.Err != nil {
		t.Errorf("expected found result without error, got %+v", res)
	}
}

func TestExtract_FallsBackToKeywords(t *testing.T) {
	res := ExtractDetailed(keywordReport, "")
	if res.Strategy != StrategyKeyword {
		t.Errorf("expected strategy %q, got %q", StrategyKeyword, res.Strategy)
	}
	if res.Text != keywordMDA {
		t.Errorf("expected %q, got %q", keywordMDA, res.Text)
	}
}

func TestExtract_MDALastInTOC(t *testing.T) {
	listing := "\n目录\n第一节 公司简介 ........ 1\n第二节 会计数据摘要 ........ 4\n第三节 管理层讨论与分析 ........ 9\n"
	body := "\n第三节、管理层讨论与分析\n营业收入稳步增长。\n四、其他事项\n其他。\n"
	res := ExtractDetailed(listing+filler+body, "")
	if res.Strategy != StrategyKeyword {
		t.Fatalf("expected strategy %q, got %q (err %v)", StrategyKeyword, res.Strategy, res.Err)
	}
	want := "第三节、管理层讨论与分析\n营业收入稳步增长。"
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}
}

func TestExtract_MDALastInTOCRunsToEnd(t *testing.T) {
	listing := "\n目录\n第一节 公司简介 ........ 1\n第二节 会计数据摘要 ........ 4\n第三节 管理层讨论与分析 ........ 9\n"
	body := "\n第三节 管理层讨论与分析\n营业收入稳步增长。\n第四节 公司治理\n治理。\n"
	res := ExtractDetailed(listing+filler+body, "")
	if res.Strategy != StrategyKeyword {
		t.Fatalf("expected strategy %q, got %q (err %v)", StrategyKeyword, res.Strategy, res.Err)
	}
	want := "第三节 管理层讨论与分析\n营业收入稳步增长。\n第四节 公司治理\n治理。\n"
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}
}

func TestExtract_NothingFound(t *testing.T) {
	inputs := []string{"", "这是一份与主题无关的文本。", "\n目录\n第一节 公司简介\n第二节 公司治理\n"}
	for _, in := range inputs {
		if got := Extract(in, ""); got != "" {
			t.Errorf("expected empty result for %q, got %q", in, got)
		}
		res := ExtractDetailed(in, "")
		if res.Strategy != StrategyNone || res.Err == nil {
			t.Errorf("expected strategy none with error, got %+v", res)
		}
	}
}

func TestExtract_InvalidPatternIsEmpty(t *testing.T) {
	res := ExtractDetailed(keywordReport, "(")
	if res.Text != "" {
		t.Errorf("expected empty text, got %q", res.Text)
	}
	if !errors.Is(res.Err, ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", res.Err)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	docs := []string{tocListing + filler + tocBody, keywordReport}
	for _, doc := range docs {
		first := Extract(doc, "")
		for range 5 {
			if got := Extract(doc, ""); got != first {
				t.Fatalf("expected repeated extraction to return %q, got %q", first, got)
			}
		}
	}
}

func TestExtract_ConcurrentCalls(t *testing.T) {
	doc := tocListing + filler + tocBody
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Extract(doc, ""); got != tocMDA {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("expected %q, got %q", tocMDA, got)
	}
}
