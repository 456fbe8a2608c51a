package engine

import (
	"context"
	"sync"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

// SaveFunc pushes one answer snapshot to the server and returns the
// authoritative progress percentage.
type SaveFunc func(ctx context.Context, answers []types.AnswerItem) (progressPercent int, err error)

// SaveResult is reported for every executed save.
type SaveResult struct {
	ProgressPercent int
	Err             error
}

// SaveQueue serializes draft saves: at most one save is in flight at any time
// and rapid consecutive snapshots collapse to the newest one. This closes the
// race where two overlapping saves could land at the server in reverse order.
type SaveQueue struct {
	mu         sync.Mutex
	cond       *sync.Cond
	save       SaveFunc
	onResult   func(SaveResult)
	inFlight   bool
	pending    []types.AnswerItem
	hasPending bool
}

// NewSaveQueue creates a queue around save. onResult may be nil; when set it
// is called after every executed save, outside the queue lock.
func NewSaveQueue(save SaveFunc, onResult func(SaveResult)) *SaveQueue {
	q := &SaveQueue{
		save:     save,
		onResult: onResult,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue registers a snapshot for saving. If a save is already running the
// snapshot replaces any queued-but-not-yet-sent one (newest wins).
func (q *SaveQueue) Enqueue(ctx context.Context, answers []types.AnswerItem) {
	q.mu.Lock()
	q.pending = answers
	q.hasPending = true
	if q.inFlight {
		q.mu.Unlock()
		return
	}
	q.inFlight = true
	q.mu.Unlock()

	go q.worker(ctx)
}

func (q *SaveQueue) worker(ctx context.Context) {
	for {
		q.mu.Lock()
		if !q.hasPending || ctx.Err() != nil {
			q.inFlight = false
			q.hasPending = false
			q.cond.Broadcast()
			q.mu.Unlock()
			return
		}
		snapshot := q.pending
		q.hasPending = false
		q.mu.Unlock()

		progress, err := q.save(ctx, snapshot)
		if q.onResult != nil {
			q.onResult(SaveResult{ProgressPercent: progress, Err: err})
		}
	}
}

// Flush blocks until the queue is idle or the context is cancelled.
func (q *SaveQueue) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.mu.Lock()
		for q.inFlight {
			q.cond.Wait()
		}
		q.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
