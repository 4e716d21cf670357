package buff

import (
	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

// StanceMode selects what a stance does.
type StanceMode string

const (
	// StanceWrath: +N% attack power.
	StanceWrath StanceMode = "wrath"
	// StanceGuard: +N to every block gain.
	StanceGuard StanceMode = "guard"
)

const typeStancePrefix = "stance."

// Stance is a mutually exclusive posture. Any stance is compatible with any
// other; entering a stance replaces the current one.
type Stance struct {
	Base
	mode   StanceMode
	amount int
}

func NewStance(mode StanceMode, amount int) *Stance {
	return &Stance{Base: NewBase(typeStancePrefix + string(mode)), mode: mode, amount: amount}
}

func NewWrathFromSettings(s Settings) Buff {
	return NewStance(StanceWrath, s.Amount)
}

func NewGuardFromSettings(s Settings) Buff {
	return NewStance(StanceGuard, s.Amount)
}

func (s *Stance) Mode() StanceMode { return s.mode }
func (s *Stance) Amount() int      { return s.amount }

// CanMergeWith matches every stance, whatever its mode.
func (s *Stance) CanMergeWith(other Buff) bool {
	_, ok := other.(*Stance)
	return ok
}

func (s *Stance) OnApply(target Target) {
	switch s.mode {
	case StanceWrath:
		if v := lookup(target, stat.AttackPower); v != nil {
			v.Derivation().AddStack(effect.Percent, s.amount, s)
		}
	case StanceGuard:
		if v := lookup(target, stat.Block); v != nil {
			v.Changes().AddStack(effect.GainBoost, s.amount, s)
		}
	}
}

func (s *Stance) OnRemove(target Target) {
	switch s.mode {
	case StanceWrath:
		if v := lookup(target, stat.AttackPower); v != nil {
			v.Derivation().RemoveStack(effect.Percent, s)
		}
	case StanceGuard:
		if v := lookup(target, stat.Block); v != nil {
			v.Changes().RemoveStack(effect.GainBoost, s)
		}
	}
}

func (s *Stance) TryMergeWith(incoming Buff) MergeResult {
	return ReplaceWith(incoming)
}
