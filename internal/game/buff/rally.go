package buff

import (
	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

const TypeRally = "rally"

// Rally grants attack power until the end of the turn. Several rallies coexist,
// each tracked as its own stack.
type Rally struct {
	Base
	amount int
}

func NewRally(amount int) *Rally {
	return &Rally{Base: NewBase(TypeRally), amount: amount}
}

func NewRallyFromSettings(s Settings) Buff {
	return NewRally(s.Amount)
}

func (r *Rally) Amount() int { return r.amount }

func (r *Rally) OnApply(target Target) {
	if v := lookup(target, stat.AttackPower); v != nil {
		v.Derivation().AddStack(effect.Flat, r.amount, r)
	}
}

func (r *Rally) OnRemove(target Target) {
	if v := lookup(target, stat.AttackPower); v != nil {
		v.Derivation().RemoveStack(effect.Flat, r)
	}
}

func (r *Rally) OnTurnEnd(int) {
	r.Expire()
}

func (r *Rally) TryMergeWith(Buff) MergeResult {
	return CoexistWith()
}
