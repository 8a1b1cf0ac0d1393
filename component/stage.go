// Package component turns component specifications into artifacts. The
// construction of an artifact runs as a chain of stages on a scheduler: a
// base model stage wrapped by zero or more modifier stages.
package component

import (
	"errors"
	"fmt"

	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/scheduling"
)

// ErrArtifactConstructionFailed is carried by the handle of any stage that
// could not produce its artifact.
var ErrArtifactConstructionFailed = errors.New("artifact construction failed")

// Artifact is the product of a stage. Its content is only meaningful to the
// models and modifiers that produce and consume it.
type Artifact any

// A Model constructs a base artifact from parameters.
type Model interface {
	ConstructArtifact(params *param.Container) (Artifact, error)
}

// A Modifier contributes to an artifact built by an inner stage.
type Modifier interface {
	// ConstructModifier builds the contribution of the modifier. It does not
	// see the base artifact.
	ConstructModifier(params *param.Container) (Artifact, error)

	// Apply combines the base artifact with the contribution.
	Apply(base, modifier Artifact) (Artifact, error)
}

// A Stage returns a handle to the artifact it constructs from params.
type Stage interface {
	ConstructModel(params *param.Container) *scheduling.Handle[Artifact]
}

func constructionFailed(step string, err error) error {
	if errors.Is(err, ErrArtifactConstructionFailed) {
		return err
	}

	return fmt.Errorf("%w: %s: %w", ErrArtifactConstructionFailed, step, err)
}

// construct runs fn and turns its error or panic into a construction failure.
func construct(step string, fn func() (Artifact, error)) (a Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = constructionFailed(step,
				fmt.Errorf("%w: %v", scheduling.ErrTaskPanicked, r))
		}
	}()

	a, err = fn()
	if err != nil {
		return nil, constructionFailed(step, err)
	}

	return a, nil
}

// BaseStage submits the construction of the base model.
type BaseStage struct {
	scheduler scheduling.Scheduler
	model     Model
}

// NewBaseStage creates a base stage.
func NewBaseStage(s scheduling.Scheduler, m Model) *BaseStage {
	return &BaseStage{scheduler: s, model: m}
}

// ConstructModel submits the model and returns its handle.
func (st *BaseStage) ConstructModel(
	params *param.Container,
) *scheduling.Handle[Artifact] {
	return scheduling.Submit(st.scheduler, func() (Artifact, error) {
		return construct("model", func() (Artifact, error) {
			return st.model.ConstructArtifact(params)
		})
	})
}

// ModifierStage decorates another stage with a modifier.
type ModifierStage struct {
	scheduler scheduling.Scheduler
	wrapped   Stage
	modifier  Modifier
}

// NewModifierStage creates a stage that applies m to the artifact of wrapped.
func NewModifierStage(
	s scheduling.Scheduler,
	wrapped Stage,
	m Modifier,
) *ModifierStage {
	return &ModifierStage{scheduler: s, wrapped: wrapped, modifier: m}
}

// ConstructModel starts the wrapped stage and the modifier contribution, waits
// for both on the calling goroutine and submits the combination. The returned
// handle is the one of the combination step.
func (st *ModifierStage) ConstructModel(
	params *param.Container,
) *scheduling.Handle[Artifact] {
	baseHandle := st.wrapped.ConstructModel(params)
	modHandle := scheduling.Submit(st.scheduler, func() (Artifact, error) {
		return construct("modifier", func() (Artifact, error) {
			return st.modifier.ConstructModifier(params)
		})
	})

	base, err := baseHandle.Wait()
	if err != nil {
		return scheduling.Failed[Artifact](constructionFailed("base", err))
	}

	mod, err := modHandle.Wait()
	if err != nil {
		return scheduling.Failed[Artifact](constructionFailed("modifier", err))
	}

	return scheduling.Submit(st.scheduler, func() (Artifact, error) {
		return construct("apply", func() (Artifact, error) {
			return st.modifier.Apply(base, mod)
		})
	})
}

var (
	_ Stage = (*BaseStage)(nil)
	_ Stage = (*ModifierStage)(nil)
)
