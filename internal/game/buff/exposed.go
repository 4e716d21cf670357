package buff

import (
	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

const TypeExposed = "exposed"

// Exposed makes the target take +N from attacks. It loses one stack at the end
// of each of the target's turns and expires at zero. Repeat applications merge.
type Exposed struct {
	Base
	stacks int
}

func NewExposed(stacks int) *Exposed {
	return &Exposed{Base: NewBase(TypeExposed), stacks: stacks}
}

func NewExposedFromSettings(s Settings) Buff {
	return NewExposed(s.Amount)
}

// Stacks returns the remaining magnitude.
func (e *Exposed) Stacks() int { return e.stacks }

func (e *Exposed) OnApply(target Target) {
	if e.stacks <= 0 {
		e.Expire()
		return
	}
	if hp := lookup(target, stat.HP); hp != nil {
		hp.Changes().AddStack(effect.AttackVulnerability, e.stacks, e)
	}
}

func (e *Exposed) OnRemove(target Target) {
	if hp := lookup(target, stat.HP); hp != nil {
		hp.Changes().RemoveStack(effect.AttackVulnerability, e)
	}
}

func (e *Exposed) OnTurnEnd(int) {
	e.stacks--
	if e.stacks <= 0 {
		e.Expire()
		return
	}
	if hp := lookup(e.Target(), stat.HP); hp != nil {
		hp.Changes().AddStack(effect.AttackVulnerability, -1, e)
	}
}

func (e *Exposed) TryMergeWith(incoming Buff) MergeResult {
	other, ok := incoming.(*Exposed)
	if !ok {
		return CoexistWith()
	}
	if other.stacks <= 0 {
		return Rejected("no stacks to add")
	}
	e.stacks += other.stacks
	if hp := lookup(e.Target(), stat.HP); hp != nil {
		hp.Changes().AddStack(effect.AttackVulnerability, other.stacks, e)
	}
	return MergedInto(e)
}
