// Package effect provides the concrete pipeline stages used by buffs and actors.
//
// Priorities form a contract: lower runs earlier and sees a value closer to the
// raw input. Decrease amplification runs before block, block before armor, and
// wounds apply to whatever got through both pools.
package effect

// Change pipeline priorities.
const (
	PriorityAmplify = 100
	PriorityBlock   = 200
	PriorityArmor   = 300
	PriorityWound   = 400
)

// Derivation pipeline priorities.
const (
	PriorityFlat    = 100
	PriorityPercent = 200
)
