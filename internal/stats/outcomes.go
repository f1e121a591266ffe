package stats

import "sync"

// OutcomesSnapshot counts runs by the strategy that produced them. Runs where
// nothing was found are counted under "none"; reports that could not be
// parsed under Failed.
type OutcomesSnapshot struct {
	Total      int64            `json:"total"`
	ByStrategy map[string]int64 `json:"by_strategy"`
	Failed     int64            `json:"failed"`
	MDAChars   int64            `json:"mda_chars"`
}

// Outcomes tallies extraction results since process start.
type Outcomes struct {
	mu         sync.Mutex
	total      int64
	byStrategy map[string]int64
	failed     int64
	chars      int64
}

func NewOutcomes() *Outcomes {
	return &Outcomes{byStrategy: make(map[string]int64)}
}

// Record counts one completed extraction of length characters.
func (o *Outcomes) Record(strategy string, length int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.total++
	o.byStrategy[strategy]++
	o.chars += int64(length)
}

// Fail counts a run that ended before extraction finished.
func (o *Outcomes) Fail() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.total++
	o.failed++
}

func (o *Outcomes) Snapshot() OutcomesSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	by := make(map[string]int64, len(o.byStrategy))
	for k, v := range o.byStrategy {
		by[k] = v
	}
	return OutcomesSnapshot{
		Total:      o.total,
		ByStrategy: by,
		Failed:     o.failed,
		MDAChars:   o.chars,
	}
}
