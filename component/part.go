package component

import (
	"sync"
	"time"

	"github.com/sarchlab/partwright/equation"
	"github.com/sarchlab/partwright/hooking"
	"github.com/sarchlab/partwright/idgen"
	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/scheduling"
)

// HookPosRecomputeStart is triggered when a recompute starts running.
var HookPosRecomputeStart = &hooking.HookPos{Name: "RecomputeStart"}

// HookPosRecomputeEnd is triggered when a recompute completes, successfully
// or not.
var HookPosRecomputeEnd = &hooking.HookPos{Name: "RecomputeEnd"}

// RecomputeInfo describes one recompute. It is the Item of the recompute
// hooks.
type RecomputeInfo struct {
	ID        string
	Component string
	Start     time.Time
	End       time.Time
	Revision  uint64
	Err       error
}

// ChainFactory creates the stage chain of a component. It is called once per
// recompute, so every recompute works on a fresh chain.
type ChainFactory func(env Environment, params *param.Container) (Stage, error)

// A Part is a component that recomputes its artifact whenever a parameter of
// its specification changes.
type Part struct {
	*hooking.HookableBase

	name     string
	category string
	env      Environment
	spec     *param.Container
	params   *param.Container
	chain    ChainFactory

	recomputeIDs idgen.Generator

	lock        sync.RWMutex
	artifact    Artifact
	hasArtifact bool
	revision    uint64
	connections []*param.Connection
}

// Name returns the name of the part.
func (p *Part) Name() string {
	return p.name
}

// Category returns the category of the designer that built the part.
func (p *Part) Category() string {
	return p.category
}

// Specification returns the container the part was built from.
func (p *Part) Specification() *param.Container {
	return p.spec
}

// Parameters returns the parameters of the part, linked to the
// specification.
func (p *Part) Parameters() *param.Container {
	return p.params
}

// Artifact returns the last artifact successfully constructed.
func (p *Part) Artifact() (Artifact, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.artifact, p.hasArtifact
}

// Revision returns the number of successful recomputes.
func (p *Part) Revision() uint64 {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.revision
}

// Derive evaluates the equation registered for the part's designer and the
// given identity on the part's parameters.
func (p *Part) Derive(id param.Identity) (param.Quantity, error) {
	return p.env.equations().Evaluate(equation.TypeTag(p.name), id, p.params)
}

// RequestUpdate schedules one recompute.
//
// The recompute waits on the stage handles from inside the scheduler. A
// scheduler whose workers are all busy with recomputes cannot start the stage
// work they wait for, so the scheduler must have more workers than the number
// of recomputes expected to overlap.
func (p *Part) RequestUpdate() *scheduling.Handle[Artifact] {
	info := &RecomputeInfo{
		ID:        p.recomputeIDs.Generate(),
		Component: p.name,
	}

	return scheduling.Submit(p.env.Scheduler, func() (Artifact, error) {
		return p.recompute(info)
	})
}

func (p *Part) recompute(info *RecomputeInfo) (Artifact, error) {
	logger := p.env.logger()

	info.Start = time.Now()
	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    HookPosRecomputeStart,
		Item:   info,
	})

	artifact, err := p.construct()

	info.End = time.Now()
	info.Err = err

	if err != nil {
		logger.Error("component update failed",
			"component", p.name,
			"recompute", info.ID,
			"error", err)
	} else {
		info.Revision = p.store(artifact)
		logger.Info("component updated",
			"component", p.name,
			"recompute", info.ID,
			"revision", info.Revision,
			"duration", info.End.Sub(info.Start),
			"workers", p.env.Scheduler.NumWorkers())
	}

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    HookPosRecomputeEnd,
		Item:   info,
	})

	return artifact, err
}

func (p *Part) construct() (Artifact, error) {
	stage, err := p.chain(p.env, p.params)
	if err != nil {
		return nil, constructionFailed("chain", err)
	}

	return stage.ConstructModel(p.params).Wait()
}

// store keeps the artifact of the recompute that completes last.
func (p *Part) store(a Artifact) uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.artifact = a
	p.hasArtifact = true
	p.revision++

	return p.revision
}

func (p *Part) connect() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.spec.Range(func(_ param.Key, prm *param.Parameter) bool {
		c := prm.ConnectUpdateListener(func(*param.Parameter) {
			p.RequestUpdate()
		})
		p.connections = append(p.connections, c)

		return true
	})
}

// Release disconnects the part from the parameters of its specification.
// Recomputes already scheduled still run.
func (p *Part) Release() {
	p.lock.Lock()
	connections := p.connections
	p.connections = nil
	p.lock.Unlock()

	for _, c := range connections {
		c.Disconnect()
	}
}

var _ Component = (*Part)(nil)
