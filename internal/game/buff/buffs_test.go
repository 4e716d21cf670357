package buff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

func attack(hp *stat.Value, amount int) {
	hp.RequestChange(amount, stat.Decrease, stat.Context{Category: stat.CategoryAttack})
}

func TestExposed_AmplifiesAttacksAndDecays(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	hp := target.value(stat.HP)

	e := NewExposed(2)
	_, err := c.Add(e)
	require.NoError(t, err)

	attack(hp, 4)
	assert.Equal(t, 44, hp.CurrentValue())

	hp.RequestChange(4, stat.Decrease, stat.Context{Category: stat.CategoryTrap})
	assert.Equal(t, 40, hp.CurrentValue(), "traps are not amplified")

	c.TurnEnd(1)
	assert.Equal(t, 1, e.Stacks())
	attack(hp, 4)
	assert.Equal(t, 35, hp.CurrentValue())

	c.TurnEnd(2)
	assert.Equal(t, StateRemoved, e.State())
	assert.False(t, hp.Changes().HasStacks(effect.AttackVulnerability))
	attack(hp, 4)
	assert.Equal(t, 31, hp.CurrentValue())
}

func TestExposed_MergeAddsStacks(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	hp := target.value(stat.HP)

	e := NewExposed(1)
	_, _ = c.Add(e)
	outcome, err := c.Add(NewExposed(2))
	require.NoError(t, err)
	assert.Equal(t, Merge, outcome)
	assert.Equal(t, 3, e.Stacks())
	assert.Equal(t, 3, hp.Changes().TotalEffectValue(effect.AttackVulnerability))

	outcome, err = c.Add(NewExposed(0))
	require.NoError(t, err)
	assert.Equal(t, Reject, outcome)
	assert.Equal(t, 3, e.Stacks())
}

func TestExposed_AmplifiedBeforeAbsorption(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	hp, block, armor := target.value(stat.HP), target.value(stat.Block), target.value(stat.Armor)
	block.RequestChange(3, stat.Increase, stat.Context{})
	armor.RequestChange(2, stat.Increase, stat.Context{})

	_, _ = c.Add(NewExposed(2))
	attack(hp, 4)

	assert.Equal(t, 0, block.CurrentValue())
	assert.Equal(t, 0, armor.CurrentValue())
	assert.Equal(t, 49, hp.CurrentValue())
}

func TestExposed_SharesStageWithOtherProviders(t *testing.T) {
	target := newTestTarget(t)
	hp := target.value(stat.HP)
	hp.Changes().AddStack(effect.AttackVulnerability, 1, nil)

	c := NewContainer(target)
	e := NewExposed(2)
	_, _ = c.Add(e)
	assert.Equal(t, 3, hp.Changes().TotalEffectValue(effect.AttackVulnerability))

	c.Remove(e)
	assert.Equal(t, 1, hp.Changes().TotalEffectValue(effect.AttackVulnerability))
	assert.True(t, hp.Changes().HasStackFromProvider(effect.AttackVulnerability, nil))
}

func TestStrength_MergeToZeroExpires(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	changes := recordChanges(c)

	s := NewStrength(2)
	_, _ = c.Add(s)
	outcome, err := c.Add(NewStrength(-2))
	require.NoError(t, err)

	assert.Equal(t, Merge, outcome)
	assert.Equal(t, StateRemoved, s.State())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 10, target.value(stat.AttackPower).FinalValue())
	require.Len(t, *changes, 2)
	assert.Equal(t, []Buff{s}, (*changes)[1].Removed)
}

func TestWard_BoostsBlockGainUntilExpiry(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	block := target.value(stat.Block)

	w := NewWard(2, 2)
	_, _ = c.Add(w)

	block.RequestChange(5, stat.Increase, stat.Context{})
	assert.Equal(t, 7, block.CurrentValue())

	c.TurnEnd(1)
	assert.Equal(t, StateApplied, w.State())
	assert.Equal(t, 1, w.TurnsRemaining())

	c.TurnEnd(2)
	assert.Equal(t, StateRemoved, w.State())

	block.RequestChange(5, stat.Increase, stat.Context{})
	assert.Equal(t, 12, block.CurrentValue())

	outcome, err := c.Add(NewWard(1, 1))
	require.NoError(t, err)
	assert.Equal(t, Coexist, outcome, "a new ward is accepted once the old one faded")
}

func TestBleed_WoundsUnabsorbedDamageUntilTurnStart(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	hp := target.value(stat.HP)

	b := NewBleed(1)
	_, _ = c.Add(b)
	_, err := c.Add(NewBleed(2))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Amount())

	attack(hp, 2)
	assert.Equal(t, 45, hp.CurrentValue())

	c.TurnStart(2)
	assert.Equal(t, 0, c.Len())
	attack(hp, 2)
	assert.Equal(t, 43, hp.CurrentValue())
}

func TestStance_ReplaceAcrossModes(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)

	wrath := NewStance(StanceWrath, 50)
	_, _ = c.Add(wrath)
	assert.Equal(t, 15, target.value(stat.AttackPower).FinalValue())

	again := NewStance(StanceWrath, 100)
	outcome, err := c.Add(again)
	require.NoError(t, err)
	assert.Equal(t, Replace, outcome)
	assert.Equal(t, 20, target.value(stat.AttackPower).FinalValue())
	assert.Equal(t, []Buff{again}, c.All())
	assert.Equal(t, "stance.wrath", again.Type())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"bleed", "exposed", "guard", "rally", "strength", "ward", "wrath"}, r.Names())

	b, err := r.Create(TypeStrength, Settings{Amount: 4})
	require.NoError(t, err)
	s, ok := b.(*Strength)
	require.True(t, ok)
	assert.Equal(t, 4, s.Amount())

	b, err = r.Create("guard", Settings{Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, StanceGuard, b.(*Stance).Mode())

	b, err = r.Create(TypeWard, Settings{Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, b.(*Ward).TurnsRemaining(), "ward lasts at least one turn")

	_, err = r.Create("nope", Settings{})
	require.ErrorIs(t, err, ErrUnknownBuff)

	r.Register("nope", func(Settings) Buff { return NewRally(1) })
	_, err = r.Create("nope", Settings{})
	require.NoError(t, err)

	r.Register("nope", nil)
	_, err = r.Create("nope", Settings{})
	require.ErrorIs(t, err, ErrUnknownBuff)
}

func TestBase_Lifecycle(t *testing.T) {
	target := newTestTarget(t)
	c := NewContainer(target)
	r := NewRally(1)

	assert.Nil(t, r.Target())
	assert.False(t, r.Expire(), "unattached buffs cannot expire")

	_, _ = c.Add(r)
	assert.Equal(t, Target(target), r.Target())

	assert.True(t, r.Expire())
	assert.Equal(t, StateRemoved, r.State())
	assert.Nil(t, r.Target())
	assert.False(t, r.Expire())
}
