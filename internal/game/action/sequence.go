// Package action sequences the sub-effects of a composite action.
//
// Each step may be preceded by a presentation delay, but its Resolve always runs
// to completion before the next step starts. A caller can wait for the whole
// action to settle.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Step is one sub-effect of an action.
type Step struct {
	Name  string
	Delay time.Duration
	// Resolve applies the sub-effect. It must not block.
	Resolve func() error
}

// Sequence is an ordered list of steps.
type Sequence struct {
	name  string
	steps []Step
	wait  func(ctx context.Context, d time.Duration) error
}

// NewSequence creates an empty sequence.
func NewSequence(name string) *Sequence {
	return &Sequence{name: name, wait: sleep}
}

// Then appends a step and returns the sequence for chaining.
func (s *Sequence) Then(name string, delay time.Duration, resolve func() error) *Sequence {
	s.steps = append(s.steps, Step{Name: name, Delay: delay, Resolve: resolve})
	return s
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// Run resolves every step in order on the calling goroutine. It stops at the
// first failing step. Cancelling ctx stops before the next delay or step; a
// step that already started always completes.
func (s *Sequence) Run(ctx context.Context) error {
	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("action %s interrupted before %s: %w", s.name, step.Name, err)
		}
		if step.Delay > 0 {
			if err := s.wait(ctx, step.Delay); err != nil {
				return fmt.Errorf("action %s interrupted before %s: %w", s.name, step.Name, err)
			}
		}
		if step.Resolve == nil {
			continue
		}
		if err := step.Resolve(); err != nil {
			return fmt.Errorf("action %s step %d (%s): %w", s.name, i, step.Name, err)
		}
		slog.Debug("action step resolved", "action", s.name, "step", step.Name)
	}
	return nil
}

// Handle tracks an action playing in the background.
type Handle struct {
	g    *errgroup.Group
	done chan struct{}
}

// Play runs the sequence on its own goroutine. The engine is single-threaded:
// callers must not touch the values the steps act on until Wait returns.
func (s *Sequence) Play(ctx context.Context) *Handle {
	g, gctx := errgroup.WithContext(ctx)
	h := &Handle{g: g, done: make(chan struct{})}
	g.Go(func() error {
		defer close(h.done)
		return s.Run(gctx)
	})
	return h
}

// Wait blocks until every step resolved or the action stopped.
func (h *Handle) Wait() error {
	return h.g.Wait()
}

// Done is closed once the action stopped running.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
