package workers

import (
	"context"
	"sync"

	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/services"
)

// ImportWorker drains the import queue. Jobs are processed sequentially
// per worker; the buffered channel absorbs upload bursts and EnqueueImport
// fails fast when it is full.
type ImportWorker struct {
	importService services.ImportService
	jobs          chan string
	workerCount   int
	wg            sync.WaitGroup
}

func NewImportWorker(importService services.ImportService, queueSize, workerCount int) *ImportWorker {
	if queueSize < 1 {
		queueSize = 64
	}
	if workerCount < 1 {
		workerCount = 2
	}
	return &ImportWorker{
		importService: importService,
		jobs:          make(chan string, queueSize),
		workerCount:   workerCount,
	}
}

// Enqueue hands a job to the workers. Returns false when the queue is full.
func (w *ImportWorker) Enqueue(jobID string) bool {
	select {
	case w.jobs <- jobID:
		return true
	default:
		logger.Warn("import queue is full, rejecting job", "job_id", jobID)
		return false
	}
}

// Start launches the worker goroutines. They exit when ctx is cancelled.
func (w *ImportWorker) Start(ctx context.Context) {
	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
	logger.WorkerLog("import", "started", "workers", w.workerCount, "queue_size", cap(w.jobs))
}

// Stop waits for in-flight jobs to finish. Call after cancelling the
// context passed to Start.
func (w *ImportWorker) Stop() {
	w.wg.Wait()
	logger.WorkerLog("import", "stopped")
}

func (w *ImportWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case jobID := <-w.jobs:
			logger.WorkerLog("import", "processing job", "worker", id, "job_id", jobID)
			if err := w.importService.ProcessJob(jobID); err != nil {
				logger.WithError(err).Error("import job failed", "worker", id, "job_id", jobID)
			}
		}
	}
}
