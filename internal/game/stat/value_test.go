package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/statfx/internal/game/pipeline"
)

type addStage struct {
	priority int
	delta    int
	calls    int
}

func (s *addStage) Priority() int { return s.priority }
func (s *addStage) Derive(v int) int {
	s.calls++
	return v + s.delta
}

type doubleStage struct{ priority int }

func (s *doubleStage) Priority() int     { return s.priority }
func (s *doubleStage) Derive(v int) int { return v * 2 }

type flatDerive struct {
	pipeline.Stacks
}

func (s *flatDerive) Priority() int     { return 10 }
func (s *flatDerive) Derive(v int) int { return v + s.TotalEffectValue() }

var flatKind = pipeline.NewKind("flat", func() (Deriver, *pipeline.Stacks) {
	s := &flatDerive{}
	return s, &s.Stacks
})

// shiftChange adds delta for the directions it supports.
type shiftChange struct {
	priority int
	dirs     Direction
	delta    int
	calls    int
}

func (s *shiftChange) Priority() int         { return s.priority }
func (s *shiftChange) Directions() Direction { return s.dirs }
func (s *shiftChange) Change(amount int, _ Direction) int {
	s.calls++
	return amount + s.delta
}

type categoryChange struct {
	trigger Category
	seen    []Category
}

func (s *categoryChange) Priority() int                      { return 0 }
func (s *categoryChange) Directions() Direction              { return Decrease }
func (s *categoryChange) Change(amount int, _ Direction) int { return amount }
func (s *categoryChange) ChangeWithContext(amount int, _ Direction, ctx Context) int {
	s.seen = append(s.seen, ctx.Category)
	if ctx.Category == s.trigger {
		return amount * 10
	}
	return amount
}

func TestValue_DerivationOrderIsObservable(t *testing.T) {
	v := NewStat(AttackPower, 3)
	v.Derivation().Register(&doubleStage{priority: 20})
	v.Derivation().Register(&addStage{priority: 10, delta: 1})

	// (3 + 1) * 2, not 3*2 + 1
	assert.Equal(t, 8, v.FinalValue())
}

func TestValue_FinalValueIsCached(t *testing.T) {
	v := NewStat(AttackPower, 5)
	stage := &addStage{priority: 1, delta: 2}
	v.Derivation().Register(stage)

	assert.Equal(t, 7, v.FinalValue())
	assert.Equal(t, 7, v.FinalValue())
	assert.Equal(t, 1, stage.calls)

	v.SetBaseValue(10)
	assert.Equal(t, 12, v.FinalValue())
	assert.Equal(t, 2, stage.calls)

	v.Derivation().AddStack(flatKind, 3, "buff")
	assert.Equal(t, 15, v.FinalValue())
	assert.Equal(t, 3, stage.calls)
}

func TestValue_SetBaseValueNotifies(t *testing.T) {
	v := NewStat(AttackPower, 5)
	var events []Changed
	v.Subscribe(func(c Changed) { events = append(events, c) })

	v.SetBaseValue(5)
	assert.Empty(t, events, "same base must not notify")

	v.SetBaseValue(8)
	require.Len(t, events, 1)
	assert.Equal(t, 5, events[0].OldFinal)
	assert.Equal(t, 8, events[0].NewFinal)
}

func TestValue_StackChangesNotifyObservers(t *testing.T) {
	v := NewStat(AttackPower, 5)
	var events []Changed
	unsubscribe := v.Subscribe(func(c Changed) { events = append(events, c) })

	v.Derivation().AddStack(flatKind, 2, "A")
	v.Derivation().AddStack(flatKind, 3, "B")
	v.Derivation().RemoveStack(flatKind, "A")

	require.Len(t, events, 3)
	assert.Equal(t, []int{7, 10, 8}, []int{events[0].NewFinal, events[1].NewFinal, events[2].NewFinal})

	unsubscribe()
	v.Derivation().RemoveStack(flatKind, "B")
	assert.Len(t, events, 3)
	assert.Equal(t, 5, v.FinalValue())
}

func TestValue_RequestChangeFloorsAtZero(t *testing.T) {
	hp := NewPool(HP, 10, WithCurrent(3))
	malus := &shiftChange{priority: 100, dirs: Decrease, delta: 5}
	hp.Changes().Register(malus)

	delta := hp.RequestChange(10, Decrease, Context{})
	assert.Equal(t, -3, delta)
	assert.Equal(t, 0, hp.CurrentValue())

	hp.RequestChange(1, Decrease, Context{})
	assert.Equal(t, 0, hp.CurrentValue(), "current is never negative")
}

func TestValue_DecreaseStopsOnceAbsorbed(t *testing.T) {
	hp := NewPool(HP, 10)
	absorb := &shiftChange{priority: 1, dirs: Decrease, delta: -100}
	later := &shiftChange{priority: 2, dirs: Decrease, delta: 5}
	hp.Changes().Register(later)
	hp.Changes().Register(absorb)

	hp.RequestChange(4, Decrease, Context{})
	assert.Equal(t, 10, hp.CurrentValue())
	assert.Equal(t, 0, later.calls, "stages after full absorption must not run")
}

func TestValue_DirectionFiltering(t *testing.T) {
	energy := NewPool(Energy, 0)
	gain := &shiftChange{priority: 1, dirs: Increase, delta: 1}
	loss := &shiftChange{priority: 1, dirs: Decrease, delta: 1}
	both := &shiftChange{priority: 2, dirs: Both, delta: 0}
	energy.Changes().Register(gain)
	energy.Changes().Register(loss)
	energy.Changes().Register(both)

	energy.RequestChange(2, Increase, Context{})
	assert.Equal(t, 3, energy.CurrentValue())
	assert.Equal(t, 1, gain.calls)
	assert.Equal(t, 0, loss.calls)
	assert.Equal(t, 1, both.calls)

	energy.RequestChange(1, Decrease, Context{})
	assert.Equal(t, 1, energy.CurrentValue())
	assert.Equal(t, 1, loss.calls)
	assert.Equal(t, 2, both.calls)
}

func TestValue_ContextReachesContextualStagesOnly(t *testing.T) {
	hp := NewPool(HP, 1000)
	stage := &categoryChange{trigger: CategoryAttack}
	hp.Changes().Register(stage)

	hp.RequestChange(1, Decrease, Context{Category: CategoryTrap})
	assert.Equal(t, 999, hp.CurrentValue())

	hp.RequestChange(1, Decrease, Context{Category: CategoryAttack})
	assert.Equal(t, 989, hp.CurrentValue())

	hp.RequestChange(1, Decrease, Context{})
	assert.Equal(t, 988, hp.CurrentValue())
	assert.Equal(t, []Category{CategoryTrap, CategoryAttack, CategoryUnspecified}, stage.seen)
}

func TestValue_CappedPool(t *testing.T) {
	hp := NewPool(HP, 20, Capped())
	assert.Equal(t, 20, hp.CurrentValue(), "capped pool starts full")

	hp.RequestChange(15, Decrease, Context{})
	moved := hp.RequestChange(50, Increase, Context{})
	assert.Equal(t, 15, moved)
	assert.Equal(t, 20, hp.CurrentValue())

	hp.Derivation().AddStack(flatKind, -5, "curse")
	assert.Equal(t, 15, hp.FinalValue())
	assert.Equal(t, 15, hp.CurrentValue(), "lowering the cap clamps current")

	hp.Derivation().RemoveStack(flatKind, "curse")
	assert.Equal(t, 15, hp.CurrentValue(), "raising the cap does not heal")
}

func TestValue_NonPooledIgnoresChanges(t *testing.T) {
	v := NewStat(AttackPower, 4)
	assert.Equal(t, 0, v.RequestChange(3, Decrease, Context{}))
	assert.Equal(t, 0, v.Drain(3))
	assert.Equal(t, 4, v.FinalValue())
}

func TestValue_NonPositiveAmountIsNoop(t *testing.T) {
	hp := NewPool(HP, 10)
	gain := &shiftChange{priority: 1, dirs: Increase, delta: 3}
	hp.Changes().Register(gain)

	assert.Equal(t, 0, hp.RequestChange(0, Increase, Context{}))
	assert.Equal(t, 0, hp.RequestChange(-4, Decrease, Context{}))
	assert.Equal(t, 10, hp.CurrentValue())
	assert.Equal(t, 0, gain.calls)
}

func TestValue_DrainNotifies(t *testing.T) {
	block := NewPool(Block, 0, WithCurrent(5))
	var events []Changed
	block.Subscribe(func(c Changed) { events = append(events, c) })

	assert.Equal(t, 5, block.Drain(8))
	assert.Equal(t, 0, block.CurrentValue())
	assert.Equal(t, 0, block.Drain(1))
	require.Len(t, events, 1)
	assert.Equal(t, 5, events[0].OldCurrent)
	assert.Equal(t, 0, events[0].NewCurrent)
}
