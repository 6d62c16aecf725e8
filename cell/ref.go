// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cell provides a reagent-composable atomic reference: a single
// mutable cell whose reads and updates are plain reagents, joinable with
// any other reagent (including another cell's) into one atomic reaction.
package cell

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/reagent"
)

// Ref is a single mutable cell of type T, backed by a lock-free slot that
// participates in the same multi-word CAS protocol as the rest of the
// reagent package. A Ref never blocks: contention on its slot backtracks
// with Retry, never Block, so it never needs a Waiter or Catalyst.
type Ref[T any] struct {
	slot *reagent.Slot
}

// New allocates a Ref holding initial.
func New[T any](initial T) *Ref[T] {
	return &Ref[T]{slot: reagent.NewSlot(initial)}
}

// Get returns a reagent that reads the cell's current value without
// touching the Reaction: reads never conflict with anything, so Get always
// commits.
func Get[T any](r *Ref[T]) reagent.Reagent[struct{}, T] {
	return getReagent[T]{r: r}
}

// CAS returns a reagent that tentatively swaps expected for newValue,
// leaving the actual application to whatever [reagent.Commit] eventually
// finishes this attempt's Reaction. Compose several cells' CAS reagents
// together, terminated by [reagent.Commit], to update them all atomically.
func CAS[T comparable](r *Ref[T], expected, newValue T) reagent.Reagent[struct{}, bool] {
	return casReagent[T]{r: r, expected: expected, newValue: newValue}
}

// Upd returns a self-contained reagent that atomically applies f to the
// cell's current value and returns the value that was there before the
// update, backing off and retrying internally on conflict until it succeeds.
// Unlike [CAS], Upd never backtracks: it always produces an answer, which
// makes it safe to stand behind a [reagent.Dissolve]d catalyst, but it also
// means it applies its update to the cell immediately, outside the Reaction
// it is handed (which it passes on unchanged), and is not meant to be
// sequenced with other cells' operations via [reagent.Compose].
func Upd[T any](r *Ref[T], f func(T) T) reagent.Reagent[struct{}, T] {
	return updReagent[T]{r: r, f: f}
}

type getReagent[T any] struct{ r *Ref[T] }

func (g getReagent[T]) TryReact(_ struct{}, rx reagent.Reaction, _ reagent.Offer) reagent.Outcome[T] {
	return reagent.Committed(g.r.slot.Load().(T), rx)
}
func (getReagent[T]) AlwaysCommits() bool { return true }
func (getReagent[T]) MaySync() bool       { return false }
func (getReagent[T]) Snoop(struct{}) bool { return true }

type casReagent[T comparable] struct {
	r                  *Ref[T]
	expected, newValue T
}

func (c casReagent[T]) TryReact(_ struct{}, rx reagent.Reaction, _ reagent.Offer) reagent.Outcome[bool] {
	cur, ok := c.r.slot.Load().(T)
	if !ok || cur != c.expected {
		return reagent.Backtracked[bool](reagent.Retry)
	}
	return reagent.Committed(true, rx.WithCAS(c.r.slot, c.expected, c.newValue))
}
func (casReagent[T]) AlwaysCommits() bool { return false }
func (casReagent[T]) MaySync() bool       { return false }
func (c casReagent[T]) Snoop(struct{}) bool {
	cur, ok := c.r.slot.Load().(T)
	return ok && cur == c.expected
}

type updReagent[T any] struct {
	r *Ref[T]
	f func(T) T
}

func (u updReagent[T]) TryReact(_ struct{}, rx reagent.Reaction, _ reagent.Offer) reagent.Outcome[T] {
	var bo iox.Backoff
	for {
		old := u.r.slot.Load().(T)
		next := u.f(old)
		if u.r.slot.CompareAndSwap(old, next) {
			return reagent.Committed(old, rx)
		}
		bo.Wait()
	}
}
func (updReagent[T]) AlwaysCommits() bool { return true }
func (updReagent[T]) MaySync() bool       { return false }
func (updReagent[T]) Snoop(struct{}) bool { return true }
