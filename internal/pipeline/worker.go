package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/mdagest/internal/mda"
	"github.com/dgallion1/mdagest/internal/parser"
	"github.com/dgallion1/mdagest/internal/stats"
	"github.com/dgallion1/mdagest/internal/store"
)

// Worker processes a single report job.
type Worker struct {
	sink      store.Sink
	log       *slog.Logger
	parseOpts parser.Options
	keywords  string

	latency  *stats.Latency
	outcomes *stats.Outcomes
	storeSem chan struct{}
}

func NewWorker(sink store.Sink, log *slog.Logger, parseOpts parser.Options, keywords string, latency *stats.Latency, outcomes *stats.Outcomes, storeSem chan struct{}) *Worker {
	return &Worker{
		sink:      sink,
		log:       log,
		parseOpts: parseOpts,
		keywords:  keywords,
		latency:   latency,
		outcomes:  outcomes,
		storeSem:  storeSem,
	}
}

// Process runs parse, extraction and storage for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	text, err := w.reportText(job)
	job.release()
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		w.outcomes.Fail()
		return
	}
	hash := ContentHashHex([]byte(text))
	job.SetContentHash(hash)

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	keywords := job.Keywords
	if keywords == "" {
		keywords = w.keywords
	}
	start := time.Now()
	res := mda.ExtractDetailed(text, keywords)
	w.latency.Since(start)

	length := utf8.RuneCountInString(res.Text)
	w.outcomes.Record(string(res.Strategy), length)
	outcome := Outcome{Strategy: string(res.Strategy), MDA: res.Text, Length: length}
	if !res.Found() && res.Err != nil {
		outcome.Reason = res.Err.Error()
	}
	job.SetOutcome(outcome)
	log.Info("extraction complete", "strategy", res.Strategy, "length", length, "text_chars", utf8.RuneCountInString(text))

	if errors.Is(res.Err, mda.ErrInvalidPattern) {
		job.AddError(res.Err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if !res.Found() {
		job.SetStatus(StatusNotFound, "done")
		return
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	rec := store.Record{
		DocID:       job.DocID,
		Filename:    job.Filename,
		ContentHash: hash,
		Strategy:    outcome.Strategy,
		MDA:         outcome.MDA,
		Length:      length,
		CreatedAt:   job.CreatedAt,
	}
	if err := w.put(ctx, rec); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) reportText(job *Job) (string, error) {
	if text, ok := job.Text(); ok {
		return text, nil
	}
	return parser.ReportText(job.FileData(), job.Filename, w.parseOpts)
}

// put writes rec through the sink, bounded by the shared store semaphore.
func (w *Worker) put(ctx context.Context, rec store.Record) error {
	select {
	case w.storeSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-w.storeSem }()

	return store.Retry(ctx, w.log, func() error {
		return w.sink.Put(ctx, rec)
	})
}
