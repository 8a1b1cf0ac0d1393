package component

import (
	"errors"

	"github.com/sarchlab/partwright/scheduling"
)

// ErrInvalidChain is returned when a chain is built without a scheduler or a
// model.
var ErrInvalidChain = errors.New("invalid stage chain")

// ChainBuilder builds stage chains. Modifiers are listed innermost first.
type ChainBuilder struct {
	scheduler scheduling.Scheduler
	model     Model
	modifiers []Modifier
}

// MakeChainBuilder creates a new chain builder.
func MakeChainBuilder() ChainBuilder {
	return ChainBuilder{}
}

// WithScheduler sets the scheduler that runs every stage.
func (b ChainBuilder) WithScheduler(s scheduling.Scheduler) ChainBuilder {
	b.scheduler = s
	return b
}

// WithModel sets the base model.
func (b ChainBuilder) WithModel(m Model) ChainBuilder {
	b.model = m
	return b
}

// WithModifier wraps the chain built so far with one more modifier.
func (b ChainBuilder) WithModifier(m Modifier) ChainBuilder {
	modifiers := make([]Modifier, len(b.modifiers), len(b.modifiers)+1)
	copy(modifiers, b.modifiers)
	b.modifiers = append(modifiers, m)

	return b
}

// Build creates the chain and returns its outermost stage.
func (b ChainBuilder) Build() (Stage, error) {
	if b.scheduler == nil {
		return nil, errors.Join(ErrInvalidChain, errors.New("no scheduler"))
	}

	if b.model == nil {
		return nil, errors.Join(ErrInvalidChain, errors.New("no base model"))
	}

	var stage Stage = NewBaseStage(b.scheduler, b.model)
	for _, m := range b.modifiers {
		if m == nil {
			return nil, errors.Join(ErrInvalidChain, errors.New("nil modifier"))
		}

		stage = NewModifierStage(b.scheduler, stage, m)
	}

	return stage, nil
}
