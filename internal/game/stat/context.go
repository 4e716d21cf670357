package stat

// Name identifies a value on its owner.
type Name string

// Well-known value names.
const (
	HP          Name = "hp"
	Block       Name = "block"
	Armor       Name = "armor"
	AttackPower Name = "attack_power"
	Energy      Name = "energy"
)

// Direction of a requested change. Directions are bit flags so a stage can
// declare that it takes part in both.
type Direction uint8

const (
	Increase Direction = 1 << iota
	Decrease
)

// Both is the direction set of stages that handle increases and decreases.
const Both = Increase | Decrease

// Has reports whether d includes every flag of other.
func (d Direction) Has(other Direction) bool {
	return other != 0 && d&other == other
}

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	case Both:
		return "both"
	default:
		return "none"
	}
}

// Category classifies what caused a change.
type Category uint8

const (
	CategoryUnspecified Category = iota
	CategoryAttack
	CategoryTrap
	CategoryEnvironment
	CategorySelf
	CategoryStatus
)

func (c Category) String() string {
	switch c {
	case CategoryAttack:
		return "attack"
	case CategoryTrap:
		return "trap"
	case CategoryEnvironment:
		return "environment"
	case CategorySelf:
		return "self"
	case CategoryStatus:
		return "status"
	default:
		return "unspecified"
	}
}

// Context describes the cause of a change. The zero value means "no context".
type Context struct {
	Category Category
	// Source is the actor responsible for the change, if any.
	Source any
}
