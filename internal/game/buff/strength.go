package buff

import (
	"log/slog"

	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

const TypeStrength = "strength"

// Strength raises attack power by a flat amount. A second Strength merges into
// the first and the amounts add up. Reaching zero removes the buff.
type Strength struct {
	Base
	amount int
}

func NewStrength(amount int) *Strength {
	return &Strength{Base: NewBase(TypeStrength), amount: amount}
}

// NewStrengthFromSettings builds a Strength for the registry.
func NewStrengthFromSettings(s Settings) Buff {
	return NewStrength(s.Amount)
}

// Amount returns the current bonus.
func (s *Strength) Amount() int { return s.amount }

func (s *Strength) OnApply(target Target) {
	if v := lookup(target, stat.AttackPower); v != nil {
		v.Derivation().AddStack(effect.Flat, s.amount, s)
	}
}

func (s *Strength) OnRemove(target Target) {
	if v := lookup(target, stat.AttackPower); v != nil {
		v.Derivation().RemoveStack(effect.Flat, s)
	}
}

func (s *Strength) TryMergeWith(incoming Buff) MergeResult {
	other, ok := incoming.(*Strength)
	if !ok {
		return CoexistWith()
	}

	s.amount += other.amount
	if v := lookup(s.Target(), stat.AttackPower); v != nil {
		v.Derivation().AddStack(effect.Flat, other.amount, s)
	}
	slog.Debug("strength merged", "added", other.amount, "total", s.amount)

	if s.amount == 0 {
		s.Expire()
	}
	return MergedInto(s)
}
