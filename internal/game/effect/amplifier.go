package effect

import (
	"github.com/udisondev/statfx/internal/game/pipeline"
	"github.com/udisondev/statfx/internal/game/stat"
)

// Amplifier adds its stacked total to decreases whose category matches the
// trigger. Any other decrease passes through untouched.
type Amplifier struct {
	pipeline.Stacks
	trigger stat.Category
}

func newAmplifierKind(name string, trigger stat.Category) *stat.ChangeKind {
	return pipeline.NewKind(name, func() (stat.Changer, *pipeline.Stacks) {
		a := &Amplifier{trigger: trigger}
		return a, &a.Stacks
	})
}

// Amplifier kinds.
var (
	// AttackVulnerability: +N taken from attacks.
	AttackVulnerability = newAmplifierKind("attack_vulnerability", stat.CategoryAttack)
	// TrapVulnerability: +N taken from traps.
	TrapVulnerability = newAmplifierKind("trap_vulnerability", stat.CategoryTrap)
)

func (a *Amplifier) Priority() int              { return PriorityAmplify }
func (a *Amplifier) Directions() stat.Direction { return stat.Decrease }

// Trigger returns the category this amplifier reacts to.
func (a *Amplifier) Trigger() stat.Category { return a.trigger }

// Change without a context never matches a trigger.
func (a *Amplifier) Change(amount int, _ stat.Direction) int {
	return amount
}

func (a *Amplifier) ChangeWithContext(amount int, _ stat.Direction, ctx stat.Context) int {
	if ctx.Category != a.trigger {
		return amount
	}
	return amount + a.TotalEffectValue()
}

// GainAmplifier adds its stacked total to every increase.
type GainAmplifier struct {
	pipeline.Stacks
}

// GainBoost: +N gained whenever the value increases.
var GainBoost = pipeline.NewKind("gain_boost", func() (stat.Changer, *pipeline.Stacks) {
	g := &GainAmplifier{}
	return g, &g.Stacks
})

func (g *GainAmplifier) Priority() int              { return PriorityAmplify }
func (g *GainAmplifier) Directions() stat.Direction { return stat.Increase }

func (g *GainAmplifier) Change(amount int, _ stat.Direction) int {
	return amount + g.TotalEffectValue()
}

// Wound adds its stacked total to whatever part of a decrease got past the
// absorption pools.
type Wound struct {
	pipeline.Stacks
}

// Wounded: +N to unabsorbed decreases.
var Wounded = pipeline.NewKind("wounded", func() (stat.Changer, *pipeline.Stacks) {
	w := &Wound{}
	return w, &w.Stacks
})

func (w *Wound) Priority() int              { return PriorityWound }
func (w *Wound) Directions() stat.Direction { return stat.Decrease }

func (w *Wound) Change(amount int, _ stat.Direction) int {
	return amount + w.TotalEffectValue()
}
