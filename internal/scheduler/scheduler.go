// Package scheduler runs delayed tasks one at a time on a single goroutine.
//
// Tasks are ordered by due time and, for equal due times, by the order in
// which they were scheduled. A Scheduler either follows the wall clock or a
// virtual clock that jumps straight to the next due task.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is the work run when a scheduled delay elapses. now is the
// scheduler time at which the task fires.
type Task func(now time.Time)

type item struct {
	due  time.Time
	seq  uint64
	name string
	fn   Task
}

type queue []*item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q queue) Swap(i, j int)  { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)    { *q = append(*q, x.(*item)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// Scheduler is a cooperative delayed-task queue.
type Scheduler struct {
	mu      sync.Mutex
	q       queue
	seq     uint64
	virtual bool
	vnow    time.Time
	wake    chan struct{}
	logger  *zap.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for task tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l.Named("scheduler")
		}
	}
}

// New returns a scheduler that follows the wall clock.
func New(opts ...Option) *Scheduler {
	return newScheduler(false, time.Time{}, opts)
}

// NewVirtual returns a scheduler whose clock starts at start and only
// advances when tasks run.
func NewVirtual(start time.Time, opts ...Option) *Scheduler {
	return newScheduler(true, start, opts)
}

func newScheduler(virtual bool, start time.Time, opts []Option) *Scheduler {
	s := &Scheduler{
		virtual: virtual,
		vnow:    start,
		wake:    make(chan struct{}, 1),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nowLocked()
}

func (s *Scheduler) nowLocked() time.Time {
	if s.virtual {
		return s.vnow
	}
	return time.Now()
}

// After schedules fn to run d after the current time. It is safe to call
// from any goroutine, including from inside a running task.
func (s *Scheduler) After(d time.Duration, name string, fn Task) {
	s.mu.Lock()
	s.seq++
	heap.Push(&s.q, &item{due: s.nowLocked().Add(d), seq: s.seq, name: name, fn: fn})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.q)
}

// Run executes tasks as they fall due until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	return s.loop(ctx, false)
}

// Drain executes tasks until the queue is empty, including tasks scheduled
// by the tasks it runs. On a virtual scheduler it returns without waiting.
func (s *Scheduler) Drain(ctx context.Context) error {
	return s.loop(ctx, true)
}

func (s *Scheduler) loop(ctx context.Context, untilIdle bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.Lock()
		if len(s.q) == 0 {
			s.mu.Unlock()
			if untilIdle {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.wake:
			}
			continue
		}

		next := s.q[0]
		if s.virtual {
			if next.due.After(s.vnow) {
				s.vnow = next.due
			}
		} else if wait := time.Until(next.due); wait > 0 {
			s.mu.Unlock()
			if err := s.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		heap.Pop(&s.q)
		now := s.nowLocked()
		s.mu.Unlock()

		s.logger.Debug("run task", zap.String("task", next.name), zap.Time("at", now))
		next.fn(now)
	}
}

// Advance moves a virtual clock forward by d, running every task that falls
// due on the way, and returns how many ran. It has no effect on a wall-clock
// scheduler.
func (s *Scheduler) Advance(d time.Duration) int {
	if !s.virtual {
		return 0
	}
	s.mu.Lock()
	target := s.vnow.Add(d)
	s.mu.Unlock()

	ran := 0
	for {
		s.mu.Lock()
		if len(s.q) == 0 || s.q[0].due.After(target) {
			s.vnow = target
			s.mu.Unlock()
			return ran
		}
		next := heap.Pop(&s.q).(*item)
		if next.due.After(s.vnow) {
			s.vnow = next.due
		}
		now := s.vnow
		s.mu.Unlock()

		next.fn(now)
		ran++
	}
}

// sleep waits for d, returning early when new work is scheduled.
func (s *Scheduler) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.wake:
	case <-t.C:
	}
	return nil
}
