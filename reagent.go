// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

import "code.hybscloud.com/kont"

// Backtrack is the signal returned by a Reagent that produced no value on a
// given attempt: Retry means a transient conflict, re-attempt with a fresh
// offer; Block means no partner is presently available and the attempt has
// published an offer where a partner may find it.
type Backtrack int

const (
	Retry Backtrack = iota
	Block
)

func (b Backtrack) String() string {
	if b == Block {
		return "block"
	}
	return "retry"
}

// committed is the Right-hand payload of an Outcome's Either: a value
// paired with the Reaction as extended by the step that produced it.
// Carrying the extended Reaction alongside the value, rather than just the
// value, is what lets sequential composition thread tentative CAS
// operations from one stage into the next without a separate out-parameter.
type committed[B any] struct {
	v  B
	rx Reaction
}

// Outcome is the result of one TryReact attempt: [code.hybscloud.com/kont]'s
// Either of a Backtrack (Left, telling the driver whether to retry or park)
// or a committed value (Right).
type Outcome[B any] struct {
	e kont.Either[Backtrack, committed[B]]
}

// Committed wraps a value together with the Reaction this step leaves
// behind; commitment of the accumulated CAS log happens only at the
// terminal [Commit] node.
func Committed[B any](v B, rx Reaction) Outcome[B] {
	return Outcome[B]{e: kont.Right[Backtrack, committed[B]](committed[B]{v: v, rx: rx})}
}

// Backtracked wraps a Backtrack signal.
func Backtracked[B any](bt Backtrack) Outcome[B] {
	return Outcome[B]{e: kont.Left[Backtrack, committed[B]](bt)}
}

// Value reports whether the outcome carries a value, and returns it
// alongside the Reaction as extended by this step.
func (o Outcome[B]) Value() (B, Reaction, bool) {
	cv, ok := o.e.GetRight()
	if !ok {
		var zero B
		return zero, Reaction{}, false
	}
	return cv.v, cv.rx, true
}

// Backtrack returns the outcome's Backtrack signal. Only meaningful when
// Value's third result is false.
func (o Outcome[B]) Backtrack() Backtrack {
	bt, _ := o.e.GetLeft()
	return bt
}

// Reagent is a composable concurrent action from A to B. Reagents are
// immutable values; combinators return new reagents rather than mutating
// their operands. TryReact must not mutate shared state except through rx
// (tentatively) or through a leaf CAS short-circuit validated by
// [Reaction.CanCASImmediate].
type Reagent[A, B any] interface {
	// TryReact attempts this reagent's effect on input a, threading the
	// accumulated Reaction and this attempt's Offer (nil if none). It
	// returns a value, or a Backtrack if it could not complete.
	TryReact(a A, rx Reaction, offer Offer) Outcome[B]

	// AlwaysCommits reports whether this reagent cannot backtrack for
	// protocol reasons. The driver does not consult it; it decides whether
	// to publish a Waiter from MaySync and from the Blocks it observes.
	AlwaysCommits() bool

	// MaySync reports whether this reagent may rendezvous, so a Waiter must
	// be published even on the first, uncontested attempt.
	MaySync() bool

	// Snoop is a cheap, read-only probe of whether a partner appears ready
	// to react with this reagent on input a. False negatives are allowed;
	// false positives only waste a retry.
	Snoop(a A) bool
}

// terminalCommit is implemented only by the reagent returned by [Commit],
// letting [Compose] and [Reaction.CanCASImmediate] recognise the terminal
// node regardless of its type parameter.
type terminalCommit interface {
	isTerminalCommit()
}
