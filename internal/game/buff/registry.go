package buff

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var ErrUnknownBuff = errors.New("unknown buff")

// Settings carry the initial magnitude of a buff built from configuration.
type Settings struct {
	Amount int
	Turns  int
}

// Factory builds a fresh, unattached buff.
type Factory func(s Settings) Buff

// Registry maps buff names to factories.
// Not safe for concurrent registration.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry preloaded with the built-in buffs.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory, 8)}
	r.Register(TypeStrength, NewStrengthFromSettings)
	r.Register(TypeExposed, NewExposedFromSettings)
	r.Register(TypeRally, NewRallyFromSettings)
	r.Register(TypeWard, NewWardFromSettings)
	r.Register(TypeBleed, NewBleedFromSettings)
	r.Register(string(StanceWrath), NewWrathFromSettings)
	r.Register(string(StanceGuard), NewGuardFromSettings)
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	if factory == nil {
		delete(r.factories, name)
		return
	}
	r.factories[name] = factory
}

// Create builds a buff by name.
func (r *Registry) Create(name string, s Settings) (Buff, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuff, name)
	}
	return factory(s), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.factories))
}
