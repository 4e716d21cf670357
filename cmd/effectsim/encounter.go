package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/statfx/internal/config"
	"github.com/udisondev/statfx/internal/game/action"
	"github.com/udisondev/statfx/internal/game/buff"
	"github.com/udisondev/statfx/internal/game/stat"
	"github.com/udisondev/statfx/internal/game/turn"
	"github.com/udisondev/statfx/internal/model"
)

// Result summarizes a finished encounter.
type Result struct {
	Rounds int
	Winner string
}

// encounter is a scripted duel between a hero and an enemy.
type encounter struct {
	cfg       config.Engine
	registry  *buff.Registry
	scheduler *turn.Scheduler
	hero      *model.Actor
	enemy     *model.Actor

	// first failure raised inside a turn callback
	err error
}

func newEncounter(cfg config.Engine) *encounter {
	e := &encounter{
		cfg:       cfg,
		registry:  buff.NewRegistry(),
		scheduler: turn.NewScheduler(),
		hero:      model.NewActor(template(cfg.Hero)),
		enemy:     model.NewActor(template(cfg.Enemy)),
	}
	for _, a := range []*model.Actor{e.hero, e.enemy} {
		e.scheduler.Subscribe(a, a.Buffs())
		watch(a)
	}
	return e
}

func template(t config.ActorTemplate) model.Template {
	return model.Template{
		Name:        t.Name,
		HP:          t.HP,
		Block:       t.Block,
		Armor:       t.Armor,
		AttackPower: t.AttackPower,
		Energy:      t.Energy,
	}
}

// watch logs buff and hit point changes of a.
func watch(a *model.Actor) {
	a.Buffs().Subscribe(func(c buff.Change) {
		slog.Info("buffs changed",
			"actor", a.Name(),
			"added", buffTypes(c.Added),
			"removed", buffTypes(c.Removed),
			"merged", buffTypes(c.Merged))
	})
	if hp, ok := a.Stat(stat.HP); ok {
		hp.Subscribe(func(c stat.Changed) {
			slog.Info("hp changed", "actor", a.Name(), "from", c.OldCurrent, "to", c.NewCurrent, "max", c.NewFinal)
		})
	}
}

func buffTypes(bs []buff.Buff) []string {
	names := make([]string, 0, len(bs))
	for _, b := range bs {
		names = append(names, b.Type())
	}
	return names
}

// Play runs rounds until one side dies or the round limit is reached.
func (e *encounter) Play(ctx context.Context) (Result, error) {
	order := []any{e.hero, e.enemy}
	var res Result

	for res.Rounds < e.cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		e.scheduler.PlayRound(order, func(owner any, round int) {
			actor, ok := owner.(*model.Actor)
			if !ok || e.err != nil || e.over() {
				return
			}
			if actor == e.hero {
				e.err = e.heroTurn(ctx, round)
			} else {
				e.err = e.enemyTurn(round)
			}
		})
		res.Rounds++
		if e.err != nil {
			return res, e.err
		}
		if e.over() {
			break
		}
	}

	switch {
	case e.enemy.IsDead() && !e.hero.IsDead():
		res.Winner = e.hero.Name()
	case e.hero.IsDead() && !e.enemy.IsDead():
		res.Winner = e.enemy.Name()
	}
	return res, nil
}

func (e *encounter) over() bool {
	return e.hero.IsDead() || e.enemy.IsDead()
}

// heroTurn takes a stance and plays a flurry that exposes the enemy before
// striking twice.
func (e *encounter) heroTurn(ctx context.Context, round int) error {
	stance := "guard"
	if round > 1 {
		stance = "wrath"
	}
	if err := e.apply(e.hero, stance); err != nil {
		return err
	}
	if round == 1 {
		if err := e.apply(e.hero, "ward"); err != nil {
			return err
		}
	}
	gained := e.hero.GainBlock(3)
	slog.Info("block gained", "actor", e.hero.Name(), "amount", gained, "block", e.hero.Block())

	delay := e.cfg.PresentationDelay
	seq := action.NewSequence("flurry").
		Then("expose", 0, func() error { return e.apply(e.enemy, "exposed") }).
		Then("strike", delay, e.strike(e.hero, e.enemy)).
		Then("strike", delay, e.strike(e.hero, e.enemy)).
		Then("empower", delay, func() error { return e.apply(e.hero, "strength") })

	return seq.Play(ctx).Wait()
}

// enemyTurn rallies, attacks and leaves the hero bleeding.
func (e *encounter) enemyTurn(int) error {
	if err := e.apply(e.enemy, "rally"); err != nil {
		return err
	}
	if err := e.strike(e.enemy, e.hero)(); err != nil {
		return err
	}
	return e.apply(e.hero, "bleed")
}

func (e *encounter) strike(attacker, target *model.Actor) func() error {
	return func() error {
		if attacker.IsDead() || target.IsDead() {
			return nil
		}
		lost := attacker.Attack(target)
		slog.Info("attack",
			"attacker", attacker.Name(),
			"target", target.Name(),
			"power", attacker.AttackPower(),
			"hp_lost", lost,
			"block", target.Block(),
			"armor", target.Armor())
		return nil
	}
}

func (e *encounter) apply(target *model.Actor, name string) error {
	b, err := e.registry.Create(name, buff.Settings(e.cfg.BuffSettings(name)))
	if err != nil {
		return err
	}
	outcome, err := target.Buffs().Add(b)
	if err != nil {
		return fmt.Errorf("applying %s to %s: %w", name, target.Name(), err)
	}
	slog.Debug("buff applied", "buff", name, "target", target.Name(), "outcome", outcome)
	return nil
}
