package pipeline

// ProviderKey identifies who contributed a stack. Usually the buff instance itself.
// Keys must be comparable; nil is normalized to Unsourced.
type ProviderKey any

type unsourced struct{}

func (unsourced) String() string { return "unsourced" }

// Unsourced is the key under which contributions without a provider are tracked.
var Unsourced ProviderKey = unsourced{}

// Key normalizes a provider key, mapping nil to Unsourced.
func Key(key ProviderKey) ProviderKey {
	if key == nil {
		return Unsourced
	}
	return key
}

// Stacks is the provider-keyed contribution table embedded by aggregated stages.
// Providers keep their first insertion order so iteration is deterministic.
type Stacks struct {
	order   []ProviderKey
	amounts map[ProviderKey]int
}

// AddStack adds amount under key. Re-adding an existing key accumulates.
func (s *Stacks) AddStack(amount int, key ProviderKey) {
	key = Key(key)
	if s.amounts == nil {
		s.amounts = make(map[ProviderKey]int, 2)
	}
	if _, ok := s.amounts[key]; !ok {
		s.order = append(s.order, key)
	}
	s.amounts[key] += amount
}

// RemoveStack drops the whole contribution of key.
// Returns false if key never contributed.
func (s *Stacks) RemoveStack(key ProviderKey) bool {
	key = Key(key)
	if _, ok := s.amounts[key]; !ok {
		return false
	}
	delete(s.amounts, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// StackCount returns the number of distinct providers.
func (s *Stacks) StackCount() int {
	return len(s.amounts)
}

// HasStacks reports whether any provider contributes.
func (s *Stacks) HasStacks() bool {
	return len(s.amounts) > 0
}

// TotalEffectValue sums all contributions.
func (s *Stacks) TotalEffectValue() int {
	total := 0
	for _, amount := range s.amounts {
		total += amount
	}
	return total
}

// HasStackFromProvider reports whether key currently contributes.
func (s *Stacks) HasStackFromProvider(key ProviderKey) bool {
	_, ok := s.amounts[Key(key)]
	return ok
}

// StackFrom returns the contribution of key.
func (s *Stacks) StackFrom(key ProviderKey) (int, bool) {
	amount, ok := s.amounts[Key(key)]
	return amount, ok
}

// Providers returns a copy of the contributing keys in insertion order.
func (s *Stacks) Providers() []ProviderKey {
	out := make([]ProviderKey, len(s.order))
	copy(out, s.order)
	return out
}
