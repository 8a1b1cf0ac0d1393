package scheduling

import (
	"runtime"
	"sync"

	"github.com/sarchlab/partwright/hooking"
	"github.com/sarchlab/partwright/idgen"
)

// Builder can build worker pools.
type Builder struct {
	numWorkers int
	workerIDs  idgen.Generator
	taskIDs    idgen.Generator
}

// MakeBuilder creates a builder with default parameters. By default, the pool
// has one worker per usable CPU.
func MakeBuilder() Builder {
	return Builder{
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

// WithNumWorkers sets the number of workers. Values below one are ignored.
func (b Builder) WithNumWorkers(n int) Builder {
	if n > 0 {
		b.numWorkers = n
	}

	return b
}

// WithWorkerIDGenerator sets the generator used to name the workers.
func (b Builder) WithWorkerIDGenerator(g idgen.Generator) Builder {
	b.workerIDs = g
	return b
}

// WithTaskIDGenerator sets the generator used to name the tasks.
func (b Builder) WithTaskIDGenerator(g idgen.Generator) Builder {
	b.taskIDs = g
	return b
}

// Build creates and starts the pool.
func (b Builder) Build(name string) *Pool {
	workerIDs := b.workerIDs
	if workerIDs == nil {
		workerIDs = idgen.WithPrefix(idgen.NewSequential(), name+".Worker")
	}

	taskIDs := b.taskIDs
	if taskIDs == nil {
		taskIDs = idgen.WithPrefix(idgen.NewSequential(), name+".Task")
	}

	p := &Pool{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		taskIDs:      taskIDs,
	}
	p.jobsAvailable = sync.NewCond(&p.lock)
	p.idle = sync.NewCond(&p.lock)

	p.workers = make([]*worker, 0, b.numWorkers)
	for i := 0; i < b.numWorkers; i++ {
		p.workers = append(p.workers, &worker{id: workerIDs.Generate()})
	}

	p.start()

	return p
}
