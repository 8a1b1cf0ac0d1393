// Package scheduling provides the fixed-size worker pool that all artifact
// recomputation runs on.
package scheduling

import (
	"sync"
	"time"

	"github.com/sarchlab/partwright/hooking"
	"github.com/sarchlab/partwright/idgen"
)

// HookPosTaskStart is triggered on the worker goroutine right before a task
// runs.
var HookPosTaskStart = &hooking.HookPos{Name: "TaskStart"}

// HookPosTaskEnd is triggered on the worker goroutine right after a task
// completes.
var HookPosTaskEnd = &hooking.HookPos{Name: "TaskEnd"}

// Scheduler accepts tasks for deferred execution.
type Scheduler interface {
	// Enqueue adds a task to the queue. It never blocks.
	Enqueue(t Task)

	// NumWorkers returns the number of workers.
	NumWorkers() int

	// NumPending returns the number of queued tasks not yet started.
	NumPending() int
}

// WorkerState is the lifecycle state of one worker.
type WorkerState int

// The worker states.
const (
	WorkerIdle WorkerState = iota
	WorkerRunning
	WorkerTerminated
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerRunning:
		return "running"
	case WorkerTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// TaskInfo describes one task execution. It is the Item of the task hooks.
type TaskInfo struct {
	TaskID   string
	WorkerID string
	Start    time.Time
	End      time.Time
	Err      error
}

type queuedTask struct {
	id   string
	task Task
}

type worker struct {
	id    string
	state WorkerState
}

// A Pool is a fixed set of worker goroutines pulling from one shared queue.
type Pool struct {
	*hooking.HookableBase

	name string

	lock          sync.Mutex
	jobsAvailable *sync.Cond
	idle          *sync.Cond
	queue         []queuedTask
	workers       []*worker
	numWaiting    int
	paused        bool
	terminated    bool
	waitGroup     sync.WaitGroup

	taskIDs idgen.Generator
}

// Name returns the name of the pool.
func (p *Pool) Name() string {
	return p.name
}

func (p *Pool) start() {
	p.waitGroup.Add(len(p.workers))

	for _, w := range p.workers {
		go p.workerLoop(w)
	}
}

func (p *Pool) workerLoop(w *worker) {
	defer p.waitGroup.Done()

	for {
		p.lock.Lock()

		for !p.terminated && (len(p.queue) == 0 || p.paused) {
			w.state = WorkerIdle
			p.numWaiting++
			p.idle.Broadcast()
			p.jobsAvailable.Wait()
			p.numWaiting--
		}

		if p.terminated {
			w.state = WorkerTerminated
			p.lock.Unlock()

			return
		}

		next := p.queue[0]
		p.queue[0] = queuedTask{}
		p.queue = p.queue[1:]
		w.state = WorkerRunning

		p.lock.Unlock()

		p.runTask(w, next)
	}
}

func (p *Pool) runTask(w *worker, qt queuedTask) {
	info := &TaskInfo{
		TaskID:   qt.id,
		WorkerID: w.id,
		Start:    time.Now(),
	}

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    HookPosTaskStart,
		Item:   info,
	})

	info.Err = qt.task.Run()
	info.End = time.Now()

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    HookPosTaskEnd,
		Item:   info,
	})
}

// Enqueue adds a task to the end of the queue and wakes one idle worker. A
// task enqueued after Terminate is discarded with ErrPoolTerminated.
func (p *Pool) Enqueue(t Task) {
	p.lock.Lock()

	if p.terminated {
		p.lock.Unlock()
		t.Discard(ErrPoolTerminated)

		return
	}

	p.queue = append(p.queue, queuedTask{id: p.taskIDs.Generate(), task: t})
	p.jobsAvailable.Signal()

	p.lock.Unlock()
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return len(p.workers)
}

// NumPending returns the number of queued tasks that have not started.
func (p *Pool) NumPending() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.queue)
}

// WorkerIDs returns the IDs of the workers.
func (p *Pool) WorkerIDs() []string {
	ids := make([]string, 0, len(p.workers))
	for _, w := range p.workers {
		ids = append(ids, w.id)
	}

	return ids
}

// WorkerStates returns the current state of every worker, keyed by worker ID.
func (p *Pool) WorkerStates() map[string]WorkerState {
	p.lock.Lock()
	defer p.lock.Unlock()

	states := make(map[string]WorkerState, len(p.workers))
	for _, w := range p.workers {
		states[w.id] = w.state
	}

	return states
}

// Clear discards all the queued tasks. Tasks that are already running are not
// affected. The handles of the discarded tasks fail with ErrTaskDiscarded.
func (p *Pool) Clear() {
	p.lock.Lock()
	dropped := p.queue
	p.queue = nil
	p.idle.Broadcast()
	p.lock.Unlock()

	for _, qt := range dropped {
		qt.task.Discard(ErrTaskDiscarded)
	}
}

// Pause stops (true) or resumes (false) pulling new tasks from the queue.
// Running tasks are not affected.
func (p *Pool) Pause(paused bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.paused = paused
	if !paused {
		p.jobsAvailable.Broadcast()
	}

	p.idle.Broadcast()
}

// IsPaused tells if the pool is paused.
func (p *Pool) IsPaused() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.paused
}

// Drain blocks until every worker is idle and there is no task the workers
// could pick up. While paused, queued tasks do not keep Drain waiting.
//
// Drain must not be called from inside a task.
func (p *Pool) Drain() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for !p.isIdle() {
		p.idle.Wait()
	}
}

func (p *Pool) isIdle() bool {
	if p.terminated {
		return true
	}

	return p.numWaiting == len(p.workers) && (len(p.queue) == 0 || p.paused)
}

// Terminate stops the pool. Queued tasks are abandoned with ErrTaskDiscarded,
// running tasks complete, and Terminate returns once every worker has exited.
// Calling Terminate more than once is a no-op.
//
// Terminate must not be called from inside a task.
func (p *Pool) Terminate() {
	p.lock.Lock()
	if p.terminated {
		p.lock.Unlock()
		return
	}

	p.terminated = true
	dropped := p.queue
	p.queue = nil
	p.jobsAvailable.Broadcast()
	p.idle.Broadcast()
	p.lock.Unlock()

	for _, qt := range dropped {
		qt.task.Discard(ErrTaskDiscarded)
	}

	p.waitGroup.Wait()
}

// IsTerminated tells if Terminate has been called.
func (p *Pool) IsTerminated() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.terminated
}

var _ Scheduler = (*Pool)(nil)
