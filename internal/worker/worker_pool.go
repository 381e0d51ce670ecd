package worker

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Task func()

// Pool runs fire-and-forget background tasks on a fixed set of workers.
type Pool struct {
	tasks      chan namedTask
	wg         sync.WaitGroup
	maxWorkers int
	logger     zerolog.Logger
}

type namedTask struct {
	name string
	run  Task
}

func NewPool(maxWorkers int, logger zerolog.Logger) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		tasks:      make(chan namedTask, maxWorkers*10),
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (p *Pool) Start() {
	p.logger.Info().Int("max_workers", p.maxWorkers).Msg("Starting worker pool")

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop closes the task queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	p.logger.Info().Msg("Stopping worker pool")

	close(p.tasks)
	p.wg.Wait()

	p.logger.Info().Msg("Worker pool stopped")
}

// Submit enqueues a task without waiting for its result. If the queue
// stays full for a second the task is dropped and logged.
func (p *Pool) Submit(name string, task Task) {
	t := namedTask{name: name, run: task}
	select {
	case p.tasks <- t:
	default:
		p.logger.Warn().Str("task", name).Msg("Worker pool task queue is full")
		select {
		case p.tasks <- t:
		case <-time.After(1 * time.Second):
			p.logger.Error().Str("task", name).Msg("Failed to submit task to worker pool (timeout)")
		}
	}
}

func (p *Pool) QueueLength() int {
	return len(p.tasks)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug().Int("worker_id", id).Msg("Worker started")

	for task := range p.tasks {
		p.logger.Debug().Int("worker_id", id).Str("task", task.name).Msg("Worker processing task")

		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error().
						Int("worker_id", id).
						Str("task", task.name).
						Interface("panic", r).
						Msg("Worker recovered from panic")
				}
			}()

			task.run()
		}()
	}

	p.logger.Debug().Int("worker_id", id).Msg("Worker stopped")
}
