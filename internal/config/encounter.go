package config

// ActorTemplate holds the starting values of a combatant.
type ActorTemplate struct {
	Name        string `yaml:"name"`
	HP          int    `yaml:"hp"`
	Block       int    `yaml:"block"`
	Armor       int    `yaml:"armor"`
	AttackPower int    `yaml:"attack_power"`
	Energy      int    `yaml:"energy"`
}

// BuffSettings holds the initial magnitude of a buff.
// Field layout matches buff.Settings so the two convert directly.
type BuffSettings struct {
	Amount int `yaml:"amount"`
	Turns  int `yaml:"turns"`
}

// DefaultBuffs returns the built-in buff magnitudes.
func DefaultBuffs() map[string]BuffSettings {
	return map[string]BuffSettings{
		"strength": {Amount: 2},
		"exposed":  {Amount: 2},
		"rally":    {Amount: 3},
		"ward":     {Amount: 2, Turns: 2},
		"bleed":    {Amount: 1},
		"wrath":    {Amount: 50},
		"guard":    {Amount: 3},
	}
}
