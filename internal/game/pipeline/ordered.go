// Package pipeline implements the priority-ordered stage table shared by the
// derivation and change pipelines, together with the provider-keyed stacking
// contract used by aggregated stages.
//
// A pipeline holds two kinds of stages:
//   - singleton stages, registered and removed by identity;
//   - aggregated stages, one live instance per Kind, fed by many providers
//     through Stacks and destroyed when the last provider leaves.
//
// The merged sequence is stable-sorted by Priority (lower first) lazily, right
// before the next evaluation.
package pipeline

import (
	"cmp"
	"log/slog"
	"slices"
)

// Stage is one ordered unit of evaluation. Lower priority runs earlier.
type Stage interface {
	Priority() int
}

// Kind identifies an aggregated stage type and knows how to build a fresh
// instance of it. Kinds are compared by pointer, so declare them once as
// package-level variables.
type Kind[S Stage] struct {
	name  string
	build func() (S, *Stacks)
}

// NewKind declares an aggregated stage type. build must return the new stage and
// the Stacks table embedded in it.
func NewKind[S Stage](name string, build func() (S, *Stacks)) *Kind[S] {
	return &Kind[S]{name: name, build: build}
}

// Name returns the kind name used in logs.
func (k *Kind[S]) Name() string {
	return k.name
}

type entry[S Stage] struct {
	stage  S
	kind   *Kind[S]
	stacks *Stacks
}

// Ordered is a priority-ordered stage table. The zero value is ready to use.
// Not safe for concurrent use.
type Ordered[S Stage] struct {
	entries    []*entry[S]
	aggregates map[*Kind[S]]*entry[S]

	sorted []S
	dirty  bool

	onDirty func()
}

// OnDirty sets a hook invoked after every structural change.
func (o *Ordered[S]) OnDirty(fn func()) {
	o.onDirty = fn
}

// Register adds a singleton stage. Registering the same stage twice is a no-op.
// Stages are compared by identity, so use pointer types.
func (o *Ordered[S]) Register(stage S) bool {
	if o.indexOf(stage) >= 0 {
		return false
	}
	o.entries = append(o.entries, &entry[S]{stage: stage})
	o.markDirty()
	return true
}

// Unregister removes a singleton stage. Returns false if it was not registered.
func (o *Ordered[S]) Unregister(stage S) bool {
	i := o.indexOf(stage)
	if i < 0 {
		return false
	}
	o.entries = slices.Delete(o.entries, i, i+1)
	o.markDirty()
	return true
}

// Registered reports whether stage is registered as a singleton.
func (o *Ordered[S]) Registered(stage S) bool {
	return o.indexOf(stage) >= 0
}

// AddStack adds amount under key to the aggregated stage of kind, creating the
// stage on first use.
func (o *Ordered[S]) AddStack(kind *Kind[S], amount int, key ProviderKey) {
	if kind == nil {
		return
	}
	e, ok := o.aggregates[kind]
	if !ok {
		stage, stacks := kind.build()
		if stacks == nil {
			slog.Error("aggregated stage built without stacks", "kind", kind.name)
			return
		}
		e = &entry[S]{stage: stage, kind: kind, stacks: stacks}
		if o.aggregates == nil {
			o.aggregates = make(map[*Kind[S]]*entry[S])
		}
		o.aggregates[kind] = e
		o.entries = append(o.entries, e)
	}
	e.stacks.AddStack(amount, key)
	o.markDirty()
}

// RemoveStack withdraws the contribution of key from kind. When the last
// provider leaves, the stage is destroyed. Returns false if nothing was removed.
func (o *Ordered[S]) RemoveStack(kind *Kind[S], key ProviderKey) bool {
	e, ok := o.aggregates[kind]
	if !ok {
		return false
	}
	if !e.stacks.RemoveStack(key) {
		return false
	}
	if !e.stacks.HasStacks() {
		delete(o.aggregates, kind)
		if i := slices.Index(o.entries, e); i >= 0 {
			o.entries = slices.Delete(o.entries, i, i+1)
		}
	}
	o.markDirty()
	return true
}

// Aggregate returns the live stage of kind, if any.
func (o *Ordered[S]) Aggregate(kind *Kind[S]) (S, bool) {
	e, ok := o.aggregates[kind]
	if !ok {
		var zero S
		return zero, false
	}
	return e.stage, true
}

// HasStacks reports whether kind has a live stage.
func (o *Ordered[S]) HasStacks(kind *Kind[S]) bool {
	_, ok := o.aggregates[kind]
	return ok
}

// StackCount returns the number of providers feeding kind.
func (o *Ordered[S]) StackCount(kind *Kind[S]) int {
	if e, ok := o.aggregates[kind]; ok {
		return e.stacks.StackCount()
	}
	return 0
}

// TotalEffectValue returns the summed contribution to kind.
func (o *Ordered[S]) TotalEffectValue(kind *Kind[S]) int {
	if e, ok := o.aggregates[kind]; ok {
		return e.stacks.TotalEffectValue()
	}
	return 0
}

// HasStackFromProvider reports whether key contributes to kind.
func (o *Ordered[S]) HasStackFromProvider(kind *Kind[S], key ProviderKey) bool {
	if e, ok := o.aggregates[kind]; ok {
		return e.stacks.HasStackFromProvider(key)
	}
	return false
}

// Len returns the number of live stages.
func (o *Ordered[S]) Len() int {
	return len(o.entries)
}

// Stages returns the stages in evaluation order. The slice is cached until the
// next structural change and must not be modified.
func (o *Ordered[S]) Stages() []S {
	if o.dirty || (o.sorted == nil && len(o.entries) > 0) {
		o.resort()
	}
	return o.sorted
}

// resort rebuilds the sorted view into a fresh slice, so callers still ranging
// over the previous view are unaffected.
func (o *Ordered[S]) resort() {
	view := make([]*entry[S], len(o.entries))
	copy(view, o.entries)
	slices.SortStableFunc(view, func(a, b *entry[S]) int {
		return cmp.Compare(a.stage.Priority(), b.stage.Priority())
	})

	sorted := make([]S, len(view))
	for i, e := range view {
		sorted[i] = e.stage
	}
	o.sorted = sorted
	o.dirty = false
}

func (o *Ordered[S]) markDirty() {
	o.dirty = true
	if o.onDirty != nil {
		o.onDirty()
	}
}

func (o *Ordered[S]) indexOf(stage S) int {
	for i, e := range o.entries {
		if e.kind == nil && any(e.stage) == any(stage) {
			return i
		}
	}
	return -1
}
