// Package turn delivers turn-boundary ticks to the listeners of each owner.
// Scheduling mechanics (initiative, movement) live elsewhere; this package only
// carries the start/end signal.
package turn

import "log/slog"

// Phase of a turn.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseEnd
)

func (p Phase) String() string {
	if p == PhaseEnd {
		return "end"
	}
	return "start"
}

// Tick is a single turn-boundary signal.
type Tick struct {
	Phase Phase
	Turn  int
	Owner any
}

// Listener receives the ticks of the owner it subscribed for.
type Listener interface {
	TurnStart(turn int)
	TurnEnd(turn int)
}

type subscription struct {
	listener Listener
}

// Scheduler routes ticks to per-owner listeners. Owners must be comparable.
// Not safe for concurrent use.
type Scheduler struct {
	turn      int
	listeners map[any][]*subscription
}

// NewScheduler creates a scheduler positioned at turn 1.
func NewScheduler() *Scheduler {
	return &Scheduler{
		turn:      1,
		listeners: make(map[any][]*subscription),
	}
}

// Turn returns the current turn number.
func (s *Scheduler) Turn() int {
	return s.turn
}

// NextRound advances the turn counter and returns the new turn number.
func (s *Scheduler) NextRound() int {
	s.turn++
	return s.turn
}

// Subscribe registers l for ticks of owner.
func (s *Scheduler) Subscribe(owner any, l Listener) (unsubscribe func()) {
	if owner == nil || l == nil {
		return func() {}
	}
	sub := &subscription{listener: l}
	s.listeners[owner] = append(s.listeners[owner], sub)
	return func() {
		subs := s.listeners[owner]
		for i, existing := range subs {
			if existing == sub {
				s.listeners[owner] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(s.listeners[owner]) == 0 {
			delete(s.listeners, owner)
		}
	}
}

// StartTurn signals the start of owner's turn.
func (s *Scheduler) StartTurn(owner any) {
	s.Dispatch(Tick{Phase: PhaseStart, Turn: s.turn, Owner: owner})
}

// EndTurn signals the end of owner's turn.
func (s *Scheduler) EndTurn(owner any) {
	s.Dispatch(Tick{Phase: PhaseEnd, Turn: s.turn, Owner: owner})
}

// Dispatch delivers tick to the listeners of tick.Owner. Listeners that
// unsubscribe during dispatch still receive the current tick.
func (s *Scheduler) Dispatch(tick Tick) {
	subs := s.listeners[tick.Owner]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]*subscription, len(subs))
	copy(snapshot, subs)

	slog.Debug("turn tick", "phase", tick.Phase, "turn", tick.Turn, "listeners", len(snapshot))

	for _, sub := range snapshot {
		switch tick.Phase {
		case PhaseStart:
			sub.listener.TurnStart(tick.Turn)
		case PhaseEnd:
			sub.listener.TurnEnd(tick.Turn)
		}
	}
}

// PlayRound runs one turn for each owner in order: start tick, act, end tick.
// The turn counter advances once the round is over.
func (s *Scheduler) PlayRound(order []any, act func(owner any, turn int)) {
	for _, owner := range order {
		s.StartTurn(owner)
		if act != nil {
			act(owner, s.turn)
		}
		s.EndTurn(owner)
	}
	s.NextRound()
}
