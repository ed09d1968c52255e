package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

type queuedJob struct {
	seq int
	job Job
}

type queuedResult struct {
	seq    int
	result Result
}

// Pool manages a pool of workers that execute jobs concurrently.
// Results come back in submission order regardless of completion order.
type Pool struct {
	workers    int
	jobQueue   chan queuedJob
	results    chan queuedResult
	collected  chan []queuedResult
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	submitted  int
	started    bool
	waitOnce   sync.Once
	final      []Result
}

// NewPool creates a new worker pool with the specified number of workers.
// Cancelling ctx stops the workers; queued jobs that never ran have no result.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan queuedJob, workers*2),
		results:    make(chan queuedResult, workers*2),
		collected:  make(chan []queuedResult, 1),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	p.started = true
	go p.collect()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// collect drains results while jobs are still being submitted
func (p *Pool) collect() {
	var out []queuedResult
	for r := range p.results {
		out = append(out, r)
	}
	p.collected <- out
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- queuedResult{seq: job.seq, result: job.job.Execute(p.ctx)}
		}
	}
}

// Submit queues a job. It returns false once the pool is cancelled or
// drained. Submit must be called from a single goroutine.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- queuedJob{seq: p.submitted, job: job}:
		p.submitted++
		return true
	}
}

// Wait waits for all submitted jobs and returns their results in
// submission order. Jobs skipped because of cancellation leave a nil slot.
func (p *Pool) Wait() []Result {
	p.waitOnce.Do(func() {
		close(p.jobQueue)
		p.wg.Wait()
		close(p.results)

		out := make([]Result, p.submitted)
		if p.started {
			for _, r := range <-p.collected {
				out[r.seq] = r.result
			}
		}
		p.final = out

		p.cancelFunc()
	})
	return p.final
}

// Shutdown cancels outstanding jobs and waits for the workers to exit
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.Wait()
}
