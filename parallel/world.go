package parallel

import (
	"fmt"
	"sync"
)

// World is a group of ranks that communicate only through messages. Each rank
// runs on its own goroutine.
type World struct {
	size      int
	mb        *MailBox
	abort     chan struct{}
	abortOnce sync.Once
	mu        sync.Mutex
	firstErr  error
}

func NewWorld(size int) *World {
	if size < 1 {
		panic(fmt.Errorf("world size must be positive, have %d", size))
	}
	return &World{
		size:  size,
		mb:    NewMailBox(),
		abort: make(chan struct{}),
	}
}

func (w *World) Size() int { return w.size }

// Abort stops the whole world. Blocked operations in every rank return
// ErrAborted. The first abort reason is kept.
func (w *World) Abort(err error) {
	if err == nil {
		err = ErrAborted
	}
	w.mu.Lock()
	if w.firstErr == nil {
		w.firstErr = err
	}
	w.mu.Unlock()
	w.abortOnce.Do(func() { close(w.abort) })
}

func (w *World) Aborted() bool {
	select {
	case <-w.abort:
		return true
	default:
		return false
	}
}

// Run executes fn once per rank and waits for all ranks. A returned error or
// a panic in any rank aborts the world, and the first such error is returned.
func (w *World) Run(fn func(c *Comm) error) error {
	var (
		wg = sync.WaitGroup{}
	)
	for rank := 0; rank < w.size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					w.Abort(fmt.Errorf("rank %d: %v", rank, r))
				}
			}()
			if err := fn(&Comm{world: w, rank: rank}); err != nil {
				w.Abort(fmt.Errorf("rank %d: %w", rank, err))
			}
		}(rank)
	}
	wg.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.firstErr
}
