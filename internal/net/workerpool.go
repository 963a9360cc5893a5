package net

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// WorkerFunc handles a single queued task. It is called again with a
// fresh task each time a worker pulls one off the pool.
type WorkerFunc = func(t *tomb.Tomb, task any) error

// workerPool is a fixed-size pool of goroutines draining a shared task
// channel, supervised by the caller's tomb. Adapted from a
// fixed-worker-count-per-accept-loop design to a pool shared across
// the server's lifetime.
type workerPool struct {
	n     int
	tasks chan any
}

func newWorkerPool(size int) *workerPool {
	return &workerPool{n: size, tasks: make(chan any, taskChanSize)}
}

func (p *workerPool) addTask(task any) {
	p.tasks <- task
}

// run starts p.n workers under t, each executing work for every task
// it pulls until t starts dying.
func (p *workerPool) run(t *tomb.Tomb, work WorkerFunc) {
	log.Info().Int("workers", p.n).Msg("starting worker pool")
	for i := 0; i < p.n; i++ {
		t.Go(func() error {
			return p.worker(t, work)
		})
	}
}

func (p *workerPool) worker(t *tomb.Tomb, work WorkerFunc) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case task := <-p.tasks:
			if err := work(t, task); err != nil {
				log.Error().Err(err).Msg("worker exiting")
				return err
			}
		}
	}
}
