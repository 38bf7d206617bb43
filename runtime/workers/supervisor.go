package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"workflow-lab/contract"
	"workflow-lab/errors"
)

const restartBackoff = 200 * time.Millisecond

// Supervisor runs each worker in its own goroutine, recovers panics,
// restarts crashed workers after a short backoff, and stops everything when
// the parent context is canceled. A failing worker never takes the
// supervisor down with it.
type Supervisor struct {
	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      *sync.WaitGroup
	log     *slog.Logger
	workers []contract.Worker
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{wg: &sync.WaitGroup{}, log: log}
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run starts every registered worker under a cancellation scope derived
// from ctx and blocks until all of them have finished. Run is typically
// launched on its own goroutine while Stop comes from the caller's, so the
// cancel handle is published under the mutex.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	if s.stopped {
		// Stop raced ahead of Run; honor it.
		cancel()
	}
	s.mu.Unlock()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

// Start supervises a single worker. A panic inside Run is converted to
// ErrWorkerPanic and handled like any other crash: log, back off, restart.
// A clean return retires the worker permanently.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	name := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info("Stopping worker", "name", name)
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = errors.ErrWorkerPanic
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info("Worker finished", "name", name)
				return
			}
			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", name)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", name, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(restartBackoff):
			}
		}
	}()
}

// Stop cancels the supervised scope; Run returns once every worker exits.
// Safe to call from any goroutine, before or after Run has started.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
}
