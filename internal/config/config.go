package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Engine holds all configuration for the effect simulator.
type Engine struct {
	// Logging
	LogLevel string `yaml:"log_level" env:"STATFX_LOG_LEVEL"`

	// Presentation delay between the sub-effects of one action.
	PresentationDelay time.Duration `yaml:"presentation_delay" env:"STATFX_PRESENTATION_DELAY"`

	// Rounds played by the scripted encounter.
	Rounds int `yaml:"rounds" env:"STATFX_ROUNDS"`

	// Combatants
	Hero  ActorTemplate `yaml:"hero"`
	Enemy ActorTemplate `yaml:"enemy"`

	// Buff magnitudes, keyed by registry name.
	Buffs map[string]BuffSettings `yaml:"buffs"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel:          "info",
		PresentationDelay: 150 * time.Millisecond,
		Rounds:            3,
		Hero: ActorTemplate{
			Name:        "Hero",
			HP:          40,
			Block:       0,
			Armor:       4,
			AttackPower: 6,
			Energy:      3,
		},
		Enemy: ActorTemplate{
			Name:        "Cultist",
			HP:          30,
			AttackPower: 5,
		},
		Buffs: DefaultBuffs(),
	}
}

// LoadEngine loads engine config from a YAML file, then applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	// Buffs missing from the file keep their defaults.
	for name, settings := range DefaultBuffs() {
		if _, ok := cfg.Buffs[name]; !ok {
			if cfg.Buffs == nil {
				cfg.Buffs = make(map[string]BuffSettings)
			}
			cfg.Buffs[name] = settings
		}
	}

	return cfg, nil
}

// BuffSettings returns the settings for a buff name, or zero settings when
// the name is not configured.
func (e Engine) BuffSettings(name string) BuffSettings {
	return e.Buffs[name]
}
