package effect

import (
	"github.com/udisondev/statfx/internal/game/pipeline"
	"github.com/udisondev/statfx/internal/game/stat"
)

// ModType defines how a Modifier is applied.
type ModType int8

const (
	ModAdd     ModType = iota // Additive bonus (e.g. +2 attack power)
	ModPercent                // Percent bonus (e.g. +50 means x1.5)
)

// Modifier is a fixed derivation stage owned by one source, such as a piece of
// equipment. Registered by identity; it is never stacked.
type Modifier struct {
	Type     ModType
	Value    int
	priority int
}

// NewFlatModifier returns a +value modifier evaluated with the flat bonuses.
func NewFlatModifier(value int) *Modifier {
	return &Modifier{Type: ModAdd, Value: value, priority: PriorityFlat}
}

// NewPercentModifier returns a +value% modifier evaluated with the percent bonuses.
func NewPercentModifier(value int) *Modifier {
	return &Modifier{Type: ModPercent, Value: value, priority: PriorityPercent}
}

func (m *Modifier) Priority() int { return m.priority }

func (m *Modifier) Derive(value int) int {
	switch m.Type {
	case ModPercent:
		return applyPercent(value, m.Value)
	default:
		return value + m.Value
	}
}

// FlatBonus adds the stacked total.
type FlatBonus struct {
	pipeline.Stacks
}

// Flat: +N to the derived value, before percent bonuses.
var Flat = pipeline.NewKind("flat_bonus", func() (stat.Deriver, *pipeline.Stacks) {
	b := &FlatBonus{}
	return b, &b.Stacks
})

func (b *FlatBonus) Priority() int         { return PriorityFlat }
func (b *FlatBonus) Derive(value int) int { return value + b.TotalEffectValue() }

// PercentBonus scales by the stacked total, in percent.
type PercentBonus struct {
	pipeline.Stacks
}

// Percent: +N% to the derived value, after flat bonuses.
var Percent = pipeline.NewKind("percent_bonus", func() (stat.Deriver, *pipeline.Stacks) {
	b := &PercentBonus{}
	return b, &b.Stacks
})

func (b *PercentBonus) Priority() int         { return PriorityPercent }
func (b *PercentBonus) Derive(value int) int { return applyPercent(value, b.TotalEffectValue()) }

// applyPercent truncates toward zero; a total of -100 or less yields zero.
func applyPercent(value, percent int) int {
	factor := max(100+percent, 0)
	return value * factor / 100
}
