package buff

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrNilBuff         = errors.New("nil buff")
	ErrBuffAttached    = errors.New("buff is not unattached")
	ErrUnresolvedMerge = errors.New("merge resolution returned no valid outcome")
)

// Change describes one logical mutation of a container. A buff that expired
// during its own OnApply shows up in both Added and Removed.
type Change struct {
	Added   []Buff
	Removed []Buff
	Merged  []Buff
}

// Empty reports whether nothing changed.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Merged) == 0
}

type changeListener struct {
	fn func(Change)
}

// Container tracks the active buffs of one owner.
//
// Every member is applied. Each logical operation (Add, Remove, Clear, one turn
// tick) fires at most one change notification, however many mutations it
// caused, including removals requested from inside buff hooks.
//
// Not safe for concurrent use.
type Container struct {
	owner Target
	buffs []Buff

	listeners []*changeListener

	depth   int
	pending Change
}

// NewContainer creates an empty container for owner.
func NewContainer(owner Target) *Container {
	return &Container{
		owner: owner,
		buffs: make([]Buff, 0, 8),
	}
}

// Owner returns the target buffs are applied to.
func (c *Container) Owner() Target {
	return c.owner
}

// Add inserts b, resolving it against the first active buff it is compatible
// with. Returns the outcome; Coexist is also reported when nothing conflicted.
func (c *Container) Add(b Buff) (MergeOutcome, error) {
	if isNil(b) {
		return 0, ErrNilBuff
	}
	if b.State() != StateUnattached {
		return 0, fmt.Errorf("%w: %s is %s", ErrBuffAttached, b.Type(), b.State())
	}

	c.begin()
	defer c.end()

	existing := c.firstCompatible(b)
	if existing == nil {
		c.attach(b, len(c.buffs))
		return Coexist, nil
	}

	res := existing.TryMergeWith(b)
	switch res.Outcome {
	case Coexist:
		c.attach(b, len(c.buffs))

	case Replace:
		next := res.Buff
		if isNil(next) {
			next = b
		}
		if next.State() != StateUnattached {
			slog.Error("replacement buff already attached",
				"existing", existing.Type(),
				"replacement", next.Type())
			return 0, fmt.Errorf("%w: replacement %s is %s", ErrBuffAttached, next.Type(), next.State())
		}
		at := slices.Index(c.buffs, existing)
		c.detach(existing)
		if at < 0 || at > len(c.buffs) {
			at = len(c.buffs)
		}
		c.attach(next, at)

	case Merge:
		survivor := res.Buff
		if isNil(survivor) {
			survivor = existing
		}
		c.pending.Merged = append(c.pending.Merged, survivor)
		slog.Debug("buff merged",
			"type", survivor.Type(),
			"survivor", survivor.ID(),
			"discarded", b.ID())

	case Reject:
		slog.Debug("buff rejected",
			"type", b.Type(),
			"existing", existing.ID(),
			"reason", res.Reason)

	default:
		slog.Error("buff returned invalid merge outcome",
			"existing", existing.Type(),
			"incoming", b.Type(),
			"outcome", res.Outcome)
		return 0, fmt.Errorf("%w: %s against %s", ErrUnresolvedMerge, existing.Type(), b.Type())
	}

	return res.Outcome, nil
}

// Remove detaches b. Returns false if b is not a member.
func (c *Container) Remove(b Buff) bool {
	if isNil(b) {
		return false
	}
	c.begin()
	defer c.end()
	return c.detach(b)
}

// RemoveByID detaches the buff with the given id.
func (c *Container) RemoveByID(id uuid.UUID) bool {
	b, ok := c.ByID(id)
	if !ok {
		return false
	}
	return c.Remove(b)
}

// Clear detaches every buff, in insertion order.
func (c *Container) Clear() {
	c.begin()
	defer c.end()
	for _, b := range c.All() {
		c.detach(b)
	}
}

// TurnStart forwards the start-of-turn tick to every applied buff.
func (c *Container) TurnStart(turn int) {
	c.dispatch(func(b Buff) { b.OnTurnStart(turn) })
}

// TurnEnd forwards the end-of-turn tick to every applied buff.
func (c *Container) TurnEnd(turn int) {
	c.dispatch(func(b Buff) { b.OnTurnEnd(turn) })
}

// dispatch iterates a snapshot: hooks may remove themselves or siblings.
func (c *Container) dispatch(hook func(Buff)) {
	c.begin()
	defer c.end()
	for _, b := range c.All() {
		if b.State() != StateApplied || b.base().container != c {
			continue
		}
		hook(b)
	}
}

// Subscribe registers fn for change notifications.
func (c *Container) Subscribe(fn func(Change)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	l := &changeListener{fn: fn}
	c.listeners = append(c.listeners, l)
	return func() {
		if i := slices.Index(c.listeners, l); i >= 0 {
			c.listeners = slices.Delete(c.listeners, i, i+1)
		}
	}
}

// All returns a copy of the active buffs in insertion order.
func (c *Container) All() []Buff {
	out := make([]Buff, len(c.buffs))
	copy(out, c.buffs)
	return out
}

// Len returns the number of active buffs.
func (c *Container) Len() int {
	return len(c.buffs)
}

// Contains reports whether b is active here.
func (c *Container) Contains(b Buff) bool {
	return slices.Contains(c.buffs, b)
}

// ByID finds an active buff by id.
func (c *Container) ByID(id uuid.UUID) (Buff, bool) {
	for _, b := range c.buffs {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

// OfType returns the active buffs of concrete type T.
func OfType[T Buff](c *Container) []T {
	var out []T
	for _, b := range c.buffs {
		if t, ok := b.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// FirstOfType returns the first active buff of concrete type T.
func FirstOfType[T Buff](c *Container) (T, bool) {
	for _, b := range c.buffs {
		if t, ok := b.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// HasOfType reports whether any active buff has concrete type T.
func HasOfType[T Buff](c *Container) bool {
	_, ok := FirstOfType[T](c)
	return ok
}

func (c *Container) firstCompatible(incoming Buff) Buff {
	for _, existing := range c.buffs {
		if incoming.CanMergeWith(existing) {
			return existing
		}
	}
	return nil
}

// attach must run inside begin/end.
func (c *Container) attach(b Buff, at int) {
	base := b.base()
	base.state = StateApplied
	base.container = c
	base.self = b
	base.target = c.owner

	c.buffs = slices.Insert(c.buffs, at, b)
	c.pending.Added = append(c.pending.Added, b)

	slog.Debug("buff applied", "type", b.Type(), "id", b.ID())
	b.OnApply(c.owner)
}

// detach must run inside begin/end.
func (c *Container) detach(b Buff) bool {
	i := slices.Index(c.buffs, b)
	if i < 0 {
		return false
	}
	c.buffs = slices.Delete(c.buffs, i, i+1)

	base := b.base()
	base.state = StateRemoved
	c.pending.Removed = append(c.pending.Removed, b)

	slog.Debug("buff removed", "type", b.Type(), "id", b.ID())
	b.OnRemove(c.owner)

	base.container = nil
	base.self = nil
	base.target = nil
	return true
}

func (c *Container) begin() {
	c.depth++
}

func (c *Container) end() {
	c.depth--
	if c.depth > 0 || c.pending.Empty() {
		return
	}
	ev := c.pending
	c.pending = Change{}

	snapshot := make([]*changeListener, len(c.listeners))
	copy(snapshot, c.listeners)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

func isNil(b Buff) bool {
	return b == nil
}
