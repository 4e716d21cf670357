package buff

import (
	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

const TypeWard = "ward"

// Ward adds +N to every block gain for a number of turns. Only one ward can be
// active; later ones are rejected until it fades.
type Ward struct {
	Base
	amount int
	turns  int
}

func NewWard(amount, turns int) *Ward {
	return &Ward{Base: NewBase(TypeWard), amount: amount, turns: max(turns, 1)}
}

func NewWardFromSettings(s Settings) Buff {
	return NewWard(s.Amount, s.Turns)
}

func (w *Ward) Amount() int         { return w.amount }
func (w *Ward) TurnsRemaining() int { return w.turns }

func (w *Ward) OnApply(target Target) {
	if block := lookup(target, stat.Block); block != nil {
		block.Changes().AddStack(effect.GainBoost, w.amount, w)
	}
}

func (w *Ward) OnRemove(target Target) {
	if block := lookup(target, stat.Block); block != nil {
		block.Changes().RemoveStack(effect.GainBoost, w)
	}
}

func (w *Ward) OnTurnEnd(int) {
	w.turns--
	if w.turns <= 0 {
		w.Expire()
	}
}

func (w *Ward) TryMergeWith(Buff) MergeResult {
	return Rejected("ward already active")
}
