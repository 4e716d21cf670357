package model

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/statfx/internal/game/buff"
	"github.com/udisondev/statfx/internal/game/effect"
	"github.com/udisondev/statfx/internal/game/stat"
)

// Template holds the starting values of an actor.
type Template struct {
	Name        string
	HP          int
	Block       int
	Armor       int
	AttackPower int
	Energy      int
}

// Actor is a combatant owning a set of values and the buffs applied to it.
// Implements buff.Target.
type Actor struct {
	id    uuid.UUID
	name  string
	stats map[stat.Name]*stat.Value
	buffs *buff.Container
}

// NewActor builds an actor from tmpl. Hit points and energy are capped pools;
// block and armor are uncapped pools that absorb hit point loss, block first.
func NewActor(tmpl Template) *Actor {
	hp := stat.NewPool(stat.HP, tmpl.HP, stat.Capped())
	block := stat.NewPool(stat.Block, 0, stat.WithCurrent(tmpl.Block))
	armor := stat.NewPool(stat.Armor, 0, stat.WithCurrent(tmpl.Armor))
	energy := stat.NewPool(stat.Energy, tmpl.Energy, stat.Capped())
	attack := stat.NewStat(stat.AttackPower, tmpl.AttackPower)

	hp.Changes().Register(effect.NewBlockAbsorption(block))
	hp.Changes().Register(effect.NewArmorAbsorption(armor))

	a := &Actor{
		id:   uuid.New(),
		name: tmpl.Name,
		stats: map[stat.Name]*stat.Value{
			stat.HP:          hp,
			stat.Block:       block,
			stat.Armor:       armor,
			stat.Energy:      energy,
			stat.AttackPower: attack,
		},
	}
	a.buffs = buff.NewContainer(a)
	return a
}

// ID returns the actor's unique id.
func (a *Actor) ID() uuid.UUID { return a.id }

// Name returns the display name.
func (a *Actor) Name() string { return a.name }

// Stat looks up a value by name.
func (a *Actor) Stat(name stat.Name) (*stat.Value, bool) {
	v, ok := a.stats[name]
	return v, ok
}

// AddStat attaches an extra value, replacing any value with the same name.
func (a *Actor) AddStat(v *stat.Value) {
	if v == nil {
		return
	}
	a.stats[v.Name()] = v
}

// Buffs returns the actor's buff container.
func (a *Actor) Buffs() *buff.Container { return a.buffs }

// HP returns the current hit points.
func (a *Actor) HP() int { return a.current(stat.HP) }

// Block returns the current block.
func (a *Actor) Block() int { return a.current(stat.Block) }

// Armor returns the current armor.
func (a *Actor) Armor() int { return a.current(stat.Armor) }

// Energy returns the current energy.
func (a *Actor) Energy() int { return a.current(stat.Energy) }

// AttackPower returns the derived attack power.
func (a *Actor) AttackPower() int {
	if v, ok := a.stats[stat.AttackPower]; ok {
		return v.FinalValue()
	}
	return 0
}

// IsDead reports whether hit points reached zero.
func (a *Actor) IsDead() bool { return a.HP() == 0 }

// Hit requests a hit point loss caused by source. Returns hit points lost.
func (a *Actor) Hit(amount int, category stat.Category, source *Actor) int {
	ctx := stat.Context{Category: category}
	if source != nil {
		ctx.Source = source
	}
	lost := -a.change(stat.HP, amount, stat.Decrease, ctx)
	if lost > 0 && a.IsDead() {
		slog.Debug("actor died", "actor", a.name)
	}
	return lost
}

// Heal restores hit points up to the maximum. Returns hit points gained.
func (a *Actor) Heal(amount int) int {
	return a.change(stat.HP, amount, stat.Increase, stat.Context{Category: stat.CategorySelf})
}

// GainBlock adds block. Returns block gained.
func (a *Actor) GainBlock(amount int) int {
	return a.change(stat.Block, amount, stat.Increase, stat.Context{Category: stat.CategorySelf})
}

// GainArmor adds armor. Returns armor gained.
func (a *Actor) GainArmor(amount int) int {
	return a.change(stat.Armor, amount, stat.Increase, stat.Context{Category: stat.CategorySelf})
}

// GainEnergy adds energy up to the cap. Returns energy gained.
func (a *Actor) GainEnergy(amount int) int {
	return a.change(stat.Energy, amount, stat.Increase, stat.Context{Category: stat.CategorySelf})
}

// SpendEnergy consumes energy if enough is available.
func (a *Actor) SpendEnergy(amount int) bool {
	if amount < 0 || a.Energy() < amount {
		return false
	}
	a.change(stat.Energy, amount, stat.Decrease, stat.Context{Category: stat.CategorySelf})
	return true
}

// Attack hits target for this actor's attack power. Returns hit points lost.
func (a *Actor) Attack(target *Actor) int {
	if target == nil {
		return 0
	}
	return target.Hit(a.AttackPower(), stat.CategoryAttack, a)
}

func (a *Actor) change(name stat.Name, amount int, dir stat.Direction, ctx stat.Context) int {
	v, ok := a.stats[name]
	if !ok {
		return 0
	}
	return v.RequestChange(amount, dir, ctx)
}

func (a *Actor) current(name stat.Name) int {
	if v, ok := a.stats[name]; ok {
		return v.CurrentValue()
	}
	return 0
}
