package buff

import (
	"testing"

	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

// testTarget is a minimal owner with the standard values.
type testTarget struct {
	values map[stat.Name]*stat.Value
}

func newTestTarget(t *testing.T) *testTarget {
	t.Helper()
	hp := stat.NewPool(stat.HP, 50, stat.Capped())
	block := stat.NewPool(stat.Block, 0)
	armor := stat.NewPool(stat.Armor, 0)
	hp.Changes().Register(effect.NewBlockAbsorption(block))
	hp.Changes().Register(effect.NewArmorAbsorption(armor))
	return &testTarget{values: map[stat.Name]*stat.Value{
		stat.HP:          hp,
		stat.Block:       block,
		stat.Armor:       armor,
		stat.AttackPower: stat.NewStat(stat.AttackPower, 10),
	}}
}

func (tt *testTarget) Stat(name stat.Name) (*stat.Value, bool) {
	v, ok := tt.values[name]
	return v, ok
}

func (tt *testTarget) value(name stat.Name) *stat.Value {
	return tt.values[name]
}

// emptyTarget has no values at all.
type emptyTarget struct{}

func (emptyTarget) Stat(stat.Name) (*stat.Value, bool) { return nil, false }

// recordChanges subscribes to c and collects every notification.
func recordChanges(c *Container) *[]Change {
	var changes []Change
	c.Subscribe(func(ch Change) { changes = append(changes, ch) })
	return &changes
}

// scriptedBuff returns a fixed merge result and records its hooks.
type scriptedBuff struct {
	Base
	result  MergeResult
	applied int
	removed int
	onStart func(turn int)
}

func newScripted(kind string, result MergeResult) *scriptedBuff {
	return &scriptedBuff{Base: NewBase(kind), result: result}
}

func (s *scriptedBuff) OnApply(Target)  { s.applied++ }
func (s *scriptedBuff) OnRemove(Target) { s.removed++ }
func (s *scriptedBuff) OnTurnStart(turn int) {
	if s.onStart != nil {
		s.onStart(turn)
	}
}
func (s *scriptedBuff) TryMergeWith(Buff) MergeResult { return s.result }
