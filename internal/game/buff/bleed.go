package buff

import (
	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

const TypeBleed = "bleed"

// Bleed adds +N to every decrease of hit points that gets past block and armor.
// It wears off when the target's next turn starts. Repeat applications merge.
type Bleed struct {
	Base
	amount int
}

func NewBleed(amount int) *Bleed {
	return &Bleed{Base: NewBase(TypeBleed), amount: amount}
}

func NewBleedFromSettings(s Settings) Buff {
	return NewBleed(s.Amount)
}

func (b *Bleed) Amount() int { return b.amount }

func (b *Bleed) OnApply(target Target) {
	if hp := lookup(target, stat.HP); hp != nil {
		hp.Changes().AddStack(effect.Wounded, b.amount, b)
	}
}

func (b *Bleed) OnRemove(target Target) {
	if hp := lookup(target, stat.HP); hp != nil {
		hp.Changes().RemoveStack(effect.Wounded, b)
	}
}

func (b *Bleed) OnTurnStart(int) {
	b.Expire()
}

func (b *Bleed) TryMergeWith(incoming Buff) MergeResult {
	other, ok := incoming.(*Bleed)
	if !ok {
		return CoexistWith()
	}
	b.amount += other.amount
	if hp := lookup(b.Target(), stat.HP); hp != nil {
		hp.Changes().AddStack(effect.Wounded, other.amount, b)
	}
	return MergedInto(b)
}
