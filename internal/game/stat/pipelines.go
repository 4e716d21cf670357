package stat

import "github.com/udisondev/statfx/internal/game/pipeline"

// Deriver is a derivation stage: a pure transform of the running value.
type Deriver interface {
	pipeline.Stage
	Derive(value int) int
}

// Changer is a change stage. It only runs for the directions it declares.
type Changer interface {
	pipeline.Stage
	Directions() Direction
	Change(amount int, dir Direction) int
}

// ContextualChanger is a Changer that also inspects the cause of the change.
// When a stage implements it, ChangeWithContext is called instead of Change.
type ContextualChanger interface {
	Changer
	ChangeWithContext(amount int, dir Direction, ctx Context) int
}

// DeriveKind is an aggregated derivation stage type.
type DeriveKind = pipeline.Kind[Deriver]

// ChangeKind is an aggregated change stage type.
type ChangeKind = pipeline.Kind[Changer]

// Derivation turns a base value into the effective value.
// Every stage runs, in priority order.
type Derivation struct {
	pipeline.Ordered[Deriver]
}

// Evaluate runs base through all stages.
func (d *Derivation) Evaluate(base int) int {
	value := base
	for _, stage := range d.Stages() {
		value = stage.Derive(value)
	}
	return value
}

// Changes transforms the magnitude of a requested change. A nil *Changes is a
// valid empty pipeline whose mutators are no-ops.
type Changes struct {
	pipeline.Ordered[Changer]
}

// Evaluate runs amount through the stages supporting dir. A decrease stops as
// soon as nothing is left to mitigate. The result is never negative.
func (c *Changes) Evaluate(amount int, dir Direction, ctx Context) int {
	if c == nil {
		return max(amount, 0)
	}
	for _, stage := range c.Stages() {
		if dir == Decrease && amount <= 0 {
			break
		}
		if !stage.Directions().Has(dir) {
			continue
		}
		if cs, ok := stage.(ContextualChanger); ok {
			amount = cs.ChangeWithContext(amount, dir, ctx)
		} else {
			amount = stage.Change(amount, dir)
		}
		amount = max(amount, 0)
	}
	return max(amount, 0)
}

// Register adds a singleton change stage.
func (c *Changes) Register(stage Changer) bool {
	if c == nil {
		return false
	}
	return c.Ordered.Register(stage)
}

// Unregister removes a singleton change stage.
func (c *Changes) Unregister(stage Changer) bool {
	if c == nil {
		return false
	}
	return c.Ordered.Unregister(stage)
}

// AddStack contributes amount under key to the stage of kind.
func (c *Changes) AddStack(kind *ChangeKind, amount int, key pipeline.ProviderKey) {
	if c == nil {
		return
	}
	c.Ordered.AddStack(kind, amount, key)
}

// RemoveStack withdraws the contribution of key from kind.
func (c *Changes) RemoveStack(kind *ChangeKind, key pipeline.ProviderKey) bool {
	if c == nil {
		return false
	}
	return c.Ordered.RemoveStack(kind, key)
}

// TotalEffectValue returns the summed contribution to kind.
func (c *Changes) TotalEffectValue(kind *ChangeKind) int {
	if c == nil {
		return 0
	}
	return c.Ordered.TotalEffectValue(kind)
}

// HasStackFromProvider reports whether key contributes to kind.
func (c *Changes) HasStackFromProvider(kind *ChangeKind, key pipeline.ProviderKey) bool {
	if c == nil {
		return false
	}
	return c.Ordered.HasStackFromProvider(kind, key)
}
