// Package stat implements named integer values that own a derivation pipeline
// (base -> effective value) and, for pooled values, a change pipeline that
// transforms every requested increase or decrease of the current amount.
package stat

import "log/slog"

// Changed is delivered to subscribers when a value's final or current amount moves.
type Changed struct {
	Name       Name
	OldFinal   int
	NewFinal   int
	OldCurrent int
	NewCurrent int
}

// Option configures a pooled value.
type Option func(*Value)

// WithCurrent sets the starting current amount. Negative amounts become zero.
func WithCurrent(n int) Option {
	return func(v *Value) {
		v.current = max(n, 0)
	}
}

// Capped keeps the current amount at or below the final value.
func Capped() Option {
	return func(v *Value) {
		v.capped = true
	}
}

// Value is a named integer quantity.
//
// The final value is derivation.Evaluate(base), cached until the base or the
// derivation pipeline changes. Pooled values also carry a current amount that
// is never negative and is moved only through RequestChange or Drain.
//
// Not safe for concurrent use.
type Value struct {
	name    Name
	base    int
	current int
	pooled  bool
	capped  bool

	derivation Derivation
	changes    Changes

	final      int
	finalDirty bool

	listeners []*listener
}

type listener struct {
	fn func(Changed)
}

// NewStat creates a derived-only value.
func NewStat(name Name, base int) *Value {
	v := &Value{name: name, base: base, finalDirty: true}
	v.derivation.OnDirty(v.derivationChanged)
	return v
}

// NewPool creates a pooled value. Unless WithCurrent is given, the pool starts
// full for capped values and at base otherwise.
func NewPool(name Name, base int, opts ...Option) *Value {
	v := NewStat(name, base)
	v.pooled = true
	v.current = -1
	for _, opt := range opts {
		opt(v)
	}
	if v.current < 0 {
		v.current = max(base, 0)
		if v.capped {
			v.current = max(v.FinalValue(), 0)
		}
	}
	v.clampToCap()
	return v
}

// Name returns the value name.
func (v *Value) Name() Name { return v.name }

// Pooled reports whether the value has a current amount.
func (v *Value) Pooled() bool { return v.pooled }

// BaseValue returns the base before derivation.
func (v *Value) BaseValue() int { return v.base }

// CurrentValue returns the current amount; zero for non-pooled values.
func (v *Value) CurrentValue() int { return v.current }

// Derivation returns the derivation pipeline.
func (v *Value) Derivation() *Derivation { return &v.derivation }

// Changes returns the change pipeline. It is only evaluated for pooled values.
func (v *Value) Changes() *Changes { return &v.changes }

// FinalValue returns the derived value, recomputing it only if stale.
func (v *Value) FinalValue() int {
	if v.finalDirty {
		v.final = v.derivation.Evaluate(v.base)
		v.finalDirty = false
	}
	return v.final
}

// SetBaseValue stores a new base and notifies subscribers if the final value moved.
func (v *Value) SetBaseValue(base int) {
	if base == v.base {
		return
	}
	oldFinal, oldCurrent := v.FinalValue(), v.current
	v.base = base
	v.finalDirty = true
	v.settle(oldFinal, oldCurrent)
}

// RequestChange runs amount through the change pipeline and applies the result
// to the current amount. Decreases stop at zero; capped increases stop at the
// final value. Returns the signed delta actually applied.
func (v *Value) RequestChange(amount int, dir Direction, ctx Context) int {
	if !v.pooled {
		slog.Debug("change requested on non-pooled value", "value", v.name)
		return 0
	}
	if amount <= 0 || (dir != Increase && dir != Decrease) {
		return 0
	}

	resolved := v.changes.Evaluate(amount, dir, ctx)
	oldFinal, oldCurrent := v.FinalValue(), v.current

	switch dir {
	case Decrease:
		v.current = max(v.current-resolved, 0)
	case Increase:
		next := v.current + resolved
		if v.capped {
			next = min(next, max(oldFinal, v.current))
		}
		v.current = next
	}

	slog.Debug("value changed",
		"value", v.name,
		"direction", dir,
		"category", ctx.Category,
		"requested", amount,
		"resolved", resolved,
		"current", v.current)

	v.notify(oldFinal, oldFinal, oldCurrent)
	return v.current - oldCurrent
}

// Drain consumes up to n from the pool without running the change pipeline.
// Returns the amount consumed.
func (v *Value) Drain(n int) int {
	if !v.pooled || n <= 0 {
		return 0
	}
	consumed := min(n, v.current)
	if consumed == 0 {
		return 0
	}
	final := v.FinalValue()
	old := v.current
	v.current -= consumed
	v.notify(final, final, old)
	return consumed
}

// Subscribe registers fn for change notifications.
func (v *Value) Subscribe(fn func(Changed)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	// Establish the baseline so later derivation changes can be compared.
	v.FinalValue()
	l := &listener{fn: fn}
	v.listeners = append(v.listeners, l)
	return func() {
		for i, existing := range v.listeners {
			if existing == l {
				v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}

// derivationChanged is the dirty hook of the derivation pipeline. Observed
// values settle immediately; unobserved ones stay lazy.
func (v *Value) derivationChanged() {
	if v.finalDirty {
		return
	}
	oldFinal, oldCurrent := v.final, v.current
	v.finalDirty = true
	if len(v.listeners) == 0 && !v.capped {
		return
	}
	v.settle(oldFinal, oldCurrent)
}

func (v *Value) settle(oldFinal, oldCurrent int) {
	newFinal := v.FinalValue()
	v.clampToCap()
	v.notify(oldFinal, newFinal, oldCurrent)
}

func (v *Value) clampToCap() {
	if v.pooled && v.capped {
		v.current = min(v.current, max(v.FinalValue(), 0))
	}
}

func (v *Value) notify(oldFinal, newFinal, oldCurrent int) {
	if oldFinal == newFinal && oldCurrent == v.current {
		return
	}
	ev := Changed{
		Name:       v.name,
		OldFinal:   oldFinal,
		NewFinal:   newFinal,
		OldCurrent: oldCurrent,
		NewCurrent: v.current,
	}
	snapshot := make([]*listener, len(v.listeners))
	copy(snapshot, v.listeners)
	for _, l := range snapshot {
		l.fn(ev)
	}
}
