package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/mdagest/internal/config"
	"github.com/dgallion1/mdagest/internal/parser"
	"github.com/dgallion1/mdagest/internal/stats"
	"github.com/dgallion1/mdagest/internal/store"
)

// Orchestrator manages the report extraction pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	sink     store.Sink
	log      *slog.Logger
	cfg      config.Config
	keywords string

	latency  *stats.Latency
	outcomes *stats.Outcomes
	storeSem chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. keywords is the process-wide
// pattern; empty selects the built-in catalog.
func NewOrchestrator(cfg config.Config, sink store.Sink, keywords string, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		sink:     sink,
		log:      log,
		cfg:      cfg,
		keywords: keywords,
		latency:  stats.NewLatency(cfg.StatsWindow),
		outcomes: stats.NewOutcomes(),
		storeSem: make(chan struct{}, max(cfg.MaxConcurrentStore, 1)),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	parseOpts := parser.Options{PdftotextFallback: o.cfg.PDFFallbackPdftotext}
	for range max(o.cfg.WorkerCount, 1) {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.sink, o.log, parseOpts, o.keywords, o.latency, o.outcomes, o.storeSem)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Keywords returns the process-wide keywords pattern.
func (o *Orchestrator) Keywords() string {
	return o.keywords
}

// Sink returns the result sink for direct use by API handlers.
func (o *Orchestrator) Sink() store.Sink {
	return o.sink
}

func (o *Orchestrator) Latency() *stats.Latency {
	return o.latency
}

func (o *Orchestrator) Outcomes() *stats.Outcomes {
	return o.outcomes
}
