// Package param implements named, unit-typed, range-constrained parameters and
// the containers that group them into a component specification.
package param

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

// state is an immutable snapshot of everything a parameter holds. Every
// mutation builds a new state and swaps it in.
type state struct {
	identity Identity
	unit     Unit
	value    float64
	min      float64
	max      float64
	def      float64
}

func (s *state) inRange(v float64) bool {
	return s.min <= v && v <= s.max
}

// UpdateListener is invoked after a new value has been committed.
type UpdateListener func(p *Parameter)

// A Connection links one listener to one parameter.
type Connection struct {
	param     *Parameter
	listener  UpdateListener
	connected atomic.Bool
}

// Connected tells if the listener is still attached.
func (c *Connection) Connected() bool {
	return c.connected.Load()
}

// Disconnect detaches the listener. It is safe to call more than once.
func (c *Connection) Disconnect() {
	if !c.connected.CompareAndSwap(true, false) {
		return
	}

	c.param.removeConnection(c)
}

// A Parameter is a named quantity with limits and a default value. The value
// and the default always lie within the limits.
type Parameter struct {
	state atomic.Pointer[state]

	listenerLock sync.Mutex
	connections  []*Connection
}

func newParameter(s *state) *Parameter {
	p := new(Parameter)
	p.state.Store(s)

	return p
}

func (p *Parameter) load() *state {
	return p.state.Load()
}

// Name returns the name of the parameter.
func (p *Parameter) Name() string {
	return p.load().identity.Name
}

// Symbol returns the symbol of the parameter.
func (p *Parameter) Symbol() string {
	return p.load().identity.Symbol
}

// Identity returns the name and the symbol.
func (p *Parameter) Identity() Identity {
	return p.load().identity
}

// Unit returns the unit all the quantities of the parameter are expressed in.
func (p *Parameter) Unit() Unit {
	return p.load().unit
}

// Value returns the current value.
func (p *Parameter) Value() Quantity {
	s := p.load()
	return Q(s.value, s.unit)
}

// Default returns the default value.
func (p *Parameter) Default() Quantity {
	s := p.load()
	return Q(s.def, s.unit)
}

// Limits returns the minimum and the maximum.
func (p *Parameter) Limits() (min, max Quantity) {
	s := p.load()
	return Q(s.min, s.unit), Q(s.max, s.unit)
}

// IsLimited tells if the limits differ from the full numeric range.
func (p *Parameter) IsLimited() bool {
	s := p.load()
	return !(s.min == -math.MaxFloat64 && s.max == math.MaxFloat64)
}

func (p *Parameter) checkUnit(q Quantity) error {
	if u := p.Unit(); q.Unit != u {
		return fmt.Errorf("%w: parameter %q is in %q, got %q",
			ErrUnitMismatch, p.Name(), u, q.Unit)
	}

	return nil
}

func normalizeLimits(min, max float64) (float64, float64, error) {
	if min == max {
		return 0, 0, fmt.Errorf(
			"%w: %g, no room left for any valid value", ErrRangeInvalid, min)
	}

	if min > max {
		min, max = max, min
	}

	return min, max, nil
}

// SetLimits replaces the limits. The two values may come in any order. The
// current value and the default must lie within the new limits.
func (p *Parameter) SetLimits(min, max Quantity) error {
	if err := p.checkUnit(min); err != nil {
		return err
	}

	if err := p.checkUnit(max); err != nil {
		return err
	}

	lo, hi, err := normalizeLimits(min.Value, max.Value)
	if err != nil {
		return err
	}

	old := p.load()
	next := *old
	next.min, next.max = lo, hi

	if !next.inRange(next.value) || !next.inRange(next.def) {
		return fmt.Errorf(
			"%w: limits <%g, %g> of parameter %q exclude value %g or default %g",
			ErrOutOfRange, lo, hi, old.identity.Name, old.value, old.def)
	}

	p.state.Store(&next)

	return nil
}

// SetDefault replaces the default value.
func (p *Parameter) SetDefault(v Quantity) error {
	if err := p.checkUnit(v); err != nil {
		return err
	}

	old := p.load()
	if !old.inRange(v.Value) {
		return fmt.Errorf(
			"%w: default %s of parameter %q is outside <%g, %g>",
			ErrOutOfRange, v, old.identity.Name, old.min, old.max)
	}

	next := *old
	next.def = v.Value
	p.state.Store(&next)

	return nil
}

// Assign replaces the value. On success, every connected listener is invoked
// once, synchronously, after the new value is visible. On failure the
// parameter is left unchanged and no listener runs.
func (p *Parameter) Assign(v Quantity) error {
	if err := p.checkUnit(v); err != nil {
		return err
	}

	old := p.load()
	if !old.inRange(v.Value) {
		return fmt.Errorf(
			"%w: cannot assign %s to parameter %q, range is <%g, %g>",
			ErrOutOfRange, v, old.identity.Name, old.min, old.max)
	}

	next := *old
	next.value = v.Value
	p.state.Store(&next)

	p.notify()

	return nil
}

// AssignValue is Assign with the parameter's own unit.
func (p *Parameter) AssignValue(v float64) error {
	return p.Assign(Q(v, p.Unit()))
}

// ResetToDefault assigns the default value. Limits are preserved.
func (p *Parameter) ResetToDefault() error {
	return p.Assign(p.Default())
}

// SetName renames the parameter.
func (p *Parameter) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentity)
	}

	next := *p.load()
	next.identity.Name = name
	p.state.Store(&next)

	return nil
}

// SetSymbol changes the symbol of the parameter.
func (p *Parameter) SetSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidIdentity)
	}

	next := *p.load()
	next.identity.Symbol = symbol
	p.state.Store(&next)

	return nil
}

// ConnectUpdateListener registers a listener that is called after every
// successful assignment. Each call creates a separate connection.
func (p *Parameter) ConnectUpdateListener(l UpdateListener) *Connection {
	c := &Connection{param: p, listener: l}
	c.connected.Store(true)

	p.listenerLock.Lock()
	p.connections = append(p.connections, c)
	p.listenerLock.Unlock()

	return c
}

// NumConnections returns the number of attached listeners.
func (p *Parameter) NumConnections() int {
	p.listenerLock.Lock()
	defer p.listenerLock.Unlock()

	return len(p.connections)
}

func (p *Parameter) removeConnection(c *Connection) {
	p.listenerLock.Lock()
	defer p.listenerLock.Unlock()

	for i, existing := range p.connections {
		if existing == c {
			p.connections = append(p.connections[:i], p.connections[i+1:]...)
			return
		}
	}
}

func (p *Parameter) notify() {
	p.listenerLock.Lock()
	connections := make([]*Connection, len(p.connections))
	copy(connections, p.connections)
	p.listenerLock.Unlock()

	for _, c := range connections {
		if c.Connected() {
			c.listener(p)
		}
	}
}

// Clone creates a parameter with the same identity, limits, default and
// value. Listeners are not copied.
func (p *Parameter) Clone() *Parameter {
	s := *p.load()
	return newParameter(&s)
}

func (p *Parameter) String() string {
	s := p.load()

	var b strings.Builder
	b.WriteString("[Parameter: ")

	if s.identity.Name != "" {
		fmt.Fprintf(&b, "'%s'", s.identity.Name)
	}

	if s.identity.Symbol != "" {
		fmt.Fprintf(&b, " %s = ", s.identity.Symbol)
	}

	b.WriteString(Q(s.value, s.unit).String())

	if p.IsLimited() {
		fmt.Fprintf(&b, ", <%s,%s>", Q(s.min, s.unit), Q(s.max, s.unit))
	}

	b.WriteString("]")

	return b.String()
}
