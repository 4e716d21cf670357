package effect

import (
	"log/slog"

	"github.com/udisondev/statfx/internal/game/stat"
)

// Absorption soaks up a decrease from a separate pool (block, armor) and records
// the consumption on that pool. It is a singleton stage: register one per pool.
type Absorption struct {
	label    string
	priority int
	pool     *stat.Value
}

// NewAbsorption creates an absorption stage at an arbitrary priority.
func NewAbsorption(label string, priority int, pool *stat.Value) *Absorption {
	return &Absorption{label: label, priority: priority, pool: pool}
}

// NewBlockAbsorption absorbs from a block pool. Runs first among absorptions.
func NewBlockAbsorption(pool *stat.Value) *Absorption {
	return NewAbsorption("block", PriorityBlock, pool)
}

// NewArmorAbsorption absorbs from an armor pool. Runs after block.
func NewArmorAbsorption(pool *stat.Value) *Absorption {
	return NewAbsorption("armor", PriorityArmor, pool)
}

func (a *Absorption) Priority() int              { return a.priority }
func (a *Absorption) Directions() stat.Direction { return stat.Decrease }

// Pool returns the pool this stage drains.
func (a *Absorption) Pool() *stat.Value { return a.pool }

// Change returns what is left of amount after the pool absorbed what it could.
func (a *Absorption) Change(amount int, _ stat.Direction) int {
	if a.pool == nil || amount <= 0 {
		return amount
	}
	absorbed := a.pool.Drain(amount)
	if absorbed > 0 {
		slog.Debug("decrease absorbed",
			"pool", a.label,
			"absorbed", absorbed,
			"remaining", a.pool.CurrentValue())
	}
	return amount - absorbed
}
