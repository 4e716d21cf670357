// Package buff implements stateful effects with an apply/remove lifecycle,
// the per-target Container that resolves merge conflicts between them, and the
// concrete buffs of the game.
//
// A buff is created unattached, becomes applied when a Container accepts it and
// is removed exactly once. Concrete buffs use themselves as the provider key
// when they contribute stacks to the target's values, so removing one buff
// withdraws exactly its own share.
package buff

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/statfx/internal/game/stat"
)

// State of a buff in its lifecycle.
type State uint8

const (
	StateUnattached State = iota
	StateApplied
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateApplied:
		return "applied"
	case StateRemoved:
		return "removed"
	default:
		return "unattached"
	}
}

// Target is the owner a buff is applied to.
type Target interface {
	// Stat looks up a value capability of the owner.
	Stat(name stat.Name) (*stat.Value, bool)
}

// Buff is implemented by embedding Base in a concrete type and providing
// OnApply, OnRemove and TryMergeWith.
type Buff interface {
	ID() uuid.UUID
	Type() string
	State() State

	OnApply(target Target)
	OnRemove(target Target)
	OnTurnStart(turn int)
	OnTurnEnd(turn int)

	// CanMergeWith reports whether other is of a compatible kind.
	CanMergeWith(other Buff) bool
	// TryMergeWith resolves an incoming compatible buff against the receiver.
	// For a Merge outcome the receiver absorbs incoming before returning.
	TryMergeWith(incoming Buff) MergeResult

	base() *Base
}

// Base carries the identity and lifecycle shared by every buff.
type Base struct {
	id    uuid.UUID
	kind  string
	state State

	container *Container
	self      Buff
	target    Target
}

// NewBase creates the embedded part of a buff of the given type.
func NewBase(kind string) Base {
	return Base{id: uuid.New(), kind: kind}
}

func (b *Base) ID() uuid.UUID { return b.id }
func (b *Base) Type() string  { return b.kind }
func (b *Base) State() State  { return b.state }

// Target returns the owner while the buff is applied.
func (b *Base) Target() Target {
	if b.state != StateApplied {
		return nil
	}
	return b.target
}

func (b *Base) OnTurnStart(int) {}
func (b *Base) OnTurnEnd(int)   {}

// CanMergeWith matches buffs of the same type.
func (b *Base) CanMergeWith(other Buff) bool {
	return other != nil && other.Type() == b.kind
}

// Expire asks the owning container to remove this buff.
// Returns false if the buff is not applied.
func (b *Base) Expire() bool {
	if b.state != StateApplied || b.container == nil {
		return false
	}
	return b.container.Remove(b.self)
}

func (b *Base) base() *Base { return b }

// lookup resolves a value on target. A missing target or capability is not an
// error: the buff simply has nothing to act on.
func lookup(target Target, name stat.Name) *stat.Value {
	if target == nil {
		return nil
	}
	v, ok := target.Stat(name)
	if !ok || v == nil {
		slog.Debug("buff target lacks value", "value", name)
		return nil
	}
	return v
}
