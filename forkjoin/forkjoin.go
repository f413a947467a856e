/*
Package forkjoin provides a work-stealing pool for fork-join parallelism.

A Pool consists of a number of workers, each of which owns a deque of
pending tasks. A task that runs on a worker can fork subtasks, which are
pushed onto the tail of that worker's deque, and later join them. Workers
take tasks from the tail of their own deque, and steal tasks from the head of
the deques of other workers when their own deque is empty.

Joining avoids idling where it can: a worker that joins a task that is still
pending executes tasks from its own deque until the joined task has run.
When the joined task has been taken by another worker, the joining worker
only helps that worker, by stealing the subtasks it has forked. It does not
run older pending tasks of its own in the meantime, since those may be
siblings of its ancestors and would delay the join by a whole unrelated
subtree. Only when the worker running the joined task has no subtasks left
to steal does the joining worker block.

The goroutine that invokes a computation on a Pool participates as a worker
for the duration of the invocation. A Pool created with a parallelism of 1
therefore has no background workers at all, and executes every task on the
invoking goroutine in a deterministic order, which is useful for testing.

There is no support for cancelation or timeouts. A panic in a task is
recovered, and re-raised on the goroutine that joins the task.
*/
package forkjoin

import (
	"errors"
	"sync"

	"github.com/exascience/recipsum/internal"
)

// ErrClosed is returned when a computation is invoked on a closed Pool.
var ErrClosed = errors.New("forkjoin: pool is closed")

type (
	/*
	  A Pool is a set of workers that cooperatively execute forked tasks.

	  All deques and task states of a pool are guarded by a single mutex.
	  Forking a task signals one idle background worker, and wakes the
	  joiners that help the forking worker. Completing a task wakes all
	  blocked joiners.

	  The zero Pool is not valid. Use NewPool or Default.
	*/
	Pool struct {
		mutex       sync.Mutex
		idle        sync.Cond // background workers without tasks
		joined      sync.Cond // joiners waiting for a task to complete
		workers     []*Worker
		victim      int
		closed      bool
		parallelism int
		wg          sync.WaitGroup
	}

	// A Worker is the context in which tasks are executed. It is passed to
	// each task function, and must only be used by the goroutine that
	// executes that function.
	Worker struct {
		pool    *Pool
		deque   []*Future
		helpers int // blocked joiners helping this worker
	}

	// A Future represents a forked task and its eventual result.
	Future struct {
		fn     func(*Worker) float64
		worker *Worker // the worker that took the task, nil while pending
		done   bool
		value  float64
		p      interface{}
	}
)

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// Default returns the process-wide pool, which is created on first use with
// runtime.GOMAXPROCS(0) as parallelism and is never closed.
func Default() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewPool(0)
	})
	return defaultPool
}

// NewPool creates a pool with the given parallelism, which is the number of
// background workers plus the invoking goroutine. If parallelism is 0,
// runtime.GOMAXPROCS(0) is used instead.
//
// NewPool panics if parallelism < 0.
func NewPool(parallelism int) *Pool {
	parallelism = internal.ComputeParallelism(parallelism)
	p := &Pool{parallelism: parallelism}
	p.idle.L = &p.mutex
	p.joined.L = &p.mutex
	for i := 1; i < parallelism; i++ {
		w := &Worker{pool: p}
		p.workers = append(p.workers, w)
		p.wg.Add(1)
		go w.loop()
	}
	return p
}

// Parallelism returns the parallelism the pool was created with.
func (p *Pool) Parallelism() int {
	return p.parallelism
}

/*
Close stops the background workers of the pool after they have drained
their deques, and waits for them to terminate. Computations that are still
running on invoking goroutines complete on those goroutines. Subsequent
invocations fail with ErrClosed.

Close is idempotent.
*/
func (p *Pool) Close() {
	p.mutex.Lock()
	p.closed = true
	p.mutex.Unlock()
	p.idle.Broadcast()
	p.wg.Wait()
}

/*
Invoke executes fn on the invoking goroutine, which participates as a
worker of the pool until fn returns, and returns the result of fn.

Invoke returns ErrClosed without calling fn if the pool is closed. If fn
panics, Invoke panics with the same value.
*/
func (p *Pool) Invoke(fn func(*Worker) float64) (float64, error) {
	w, err := p.attach()
	if err != nil {
		return 0, err
	}
	defer p.detach(w)
	return fn(w), nil
}

func (p *Pool) attach() (*Worker, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	w := &Worker{pool: p}
	p.workers = append(p.workers, w)
	return w, nil
}

// detach removes an invoking goroutine's worker. Tasks that were forked but
// never joined are handed over to a background worker.
func (p *Pool) detach(w *Worker) {
	p.mutex.Lock()
	for i, v := range p.workers {
		if v == w {
			p.workers = append(p.workers[:i], p.workers[i+1:]...)
			break
		}
	}
	handedOver := len(w.deque) > 0 && len(p.workers) > 0
	if handedOver {
		heir := p.workers[0]
		heir.deque = append(heir.deque, w.deque...)
	}
	w.deque = nil
	p.victim = 0
	p.mutex.Unlock()
	if handedOver {
		p.idle.Broadcast()
	}
}

// take returns the next task for w, or nil. The pool mutex must be held.
func (p *Pool) take(w *Worker) *Future {
	if n := len(w.deque); n > 0 {
		f := w.deque[n-1]
		w.deque[n-1] = nil
		w.deque = w.deque[:n-1]
		f.worker = w
		return f
	}
	return p.steal(w)
}

// steal takes the oldest task of another worker, rotating over victims. The
// pool mutex must be held.
func (p *Pool) steal(thief *Worker) *Future {
	n := len(p.workers)
	for i := 0; i < n; i++ {
		j := (p.victim + i) % n
		v := p.workers[j]
		if v == thief {
			continue
		}
		if f := stealFrom(thief, v); f != nil {
			p.victim = (j + 1) % n
			return f
		}
	}
	return nil
}

// stealFrom takes the oldest task of victim, or returns nil if victim has
// none. The pool mutex must be held.
func stealFrom(thief, victim *Worker) *Future {
	if len(victim.deque) == 0 {
		return nil
	}
	f := victim.deque[0]
	victim.deque[0] = nil
	victim.deque = victim.deque[1:]
	f.worker = thief
	return f
}

func (w *Worker) loop() {
	p := w.pool
	defer p.wg.Done()
	p.mutex.Lock()
	for {
		if f := p.take(w); f != nil {
			p.mutex.Unlock()
			f.run(w)
			p.mutex.Lock()
			continue
		}
		if p.closed {
			break
		}
		p.idle.Wait()
	}
	p.mutex.Unlock()
}

// Pool returns the pool w belongs to.
func (w *Worker) Pool() *Pool {
	return w.pool
}

// Fork schedules fn for concurrent execution and returns immediately. The
// result of fn can be obtained by joining the returned Future.
func (w *Worker) Fork(fn func(*Worker) float64) *Future {
	f := &Future{fn: fn}
	p := w.pool
	p.mutex.Lock()
	w.deque = append(w.deque, f)
	helped := w.helpers > 0
	p.mutex.Unlock()
	p.idle.Signal()
	if helped {
		p.joined.Broadcast()
	}
	return f
}

/*
InvokeAll executes fns in parallel and returns their results in the same
order. It forks all but the first function, executes the first one on the
current goroutine, and then joins the others in order.

InvokeAll returns only when all functions have terminated. If one or more
functions panic, InvokeAll eventually panics with the left-most recovered
panic value.
*/
func (w *Worker) InvokeAll(fns ...func(*Worker) float64) []float64 {
	results := make([]float64, len(fns))
	if len(fns) == 0 {
		return results
	}
	futures := make([]*Future, len(fns))
	// fork in reverse, so that the own deque yields them in join order
	for i := len(fns) - 1; i > 0; i-- {
		futures[i] = w.Fork(fns[i])
	}
	var p interface{}
	func() {
		defer func() {
			p = internal.WrapPanic(recover())
		}()
		results[0] = fns[0](w)
	}()
	for i := 1; i < len(fns); i++ {
		v, pi := futures[i].wait(w)
		results[i] = v
		if p == nil {
			p = pi
		}
	}
	if p != nil {
		panic(p)
	}
	return results
}

func (f *Future) run(w *Worker) {
	var value float64
	var p interface{}
	func() {
		defer func() {
			p = internal.WrapPanic(recover())
		}()
		value = f.fn(w)
	}()
	pool := w.pool
	pool.mutex.Lock()
	f.fn = nil
	f.value, f.p, f.done = value, p, true
	pool.mutex.Unlock()
	pool.joined.Broadcast()
}

/*
Join waits for the forked task to complete and returns its result. While
the task is still pending, w executes tasks from its own deque. Once another
worker has taken the task, w only steals subtasks from that worker. w must
belong to the same pool as the worker that forked the task.

If the task panicked, Join panics with the recovered panic value.
*/
func (f *Future) Join(w *Worker) float64 {
	value, p := f.wait(w)
	if p != nil {
		panic(p)
	}
	return value
}

func (f *Future) wait(w *Worker) (float64, interface{}) {
	pool := w.pool
	pool.mutex.Lock()
	for !f.done {
		var t *Future
		thief := f.worker
		if thief == nil {
			t = pool.take(w)
		} else {
			t = stealFrom(w, thief)
		}
		if t != nil {
			pool.mutex.Unlock()
			t.run(w)
			pool.mutex.Lock()
			continue
		}
		if thief == nil {
			pool.joined.Wait()
			continue
		}
		thief.helpers++
		pool.joined.Wait()
		thief.helpers--
	}
	value, p := f.value, f.p
	pool.mutex.Unlock()
	return value, p
}
