// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// casOp is one tentative compare-and-set recorded in a Reaction.
type casOp struct {
	slot     *Slot
	expected any
	newValue any
}

// Reaction is an immutable record of tentative CAS operations and
// post-commit callbacks accumulated while a composed reagent attempts to
// react. Combinators extend a Reaction by returning a new value; a Reaction
// is never partially applied.
type Reaction struct {
	ops         []casOp
	postCommits []func()
}

// Inert is the canonical empty Reaction, the starting point of every
// attempt.
var Inert = Reaction{}

// WithCAS returns a Reaction extended with a tentative CAS on slot.
func (rx Reaction) WithCAS(slot *Slot, expected, newValue any) Reaction {
	ops := make([]casOp, len(rx.ops)+1)
	copy(ops, rx.ops)
	ops[len(rx.ops)] = casOp{slot: slot, expected: expected, newValue: newValue}
	return Reaction{ops: ops, postCommits: rx.postCommits}
}

// WithPostCommit returns a Reaction extended with a callback to run, in
// registration order, after a successful commit.
func (rx Reaction) WithPostCommit(fn func()) Reaction {
	pcs := make([]func(), len(rx.postCommits)+1)
	copy(pcs, rx.postCommits)
	pcs[len(rx.postCommits)] = fn
	return Reaction{ops: rx.ops, postCommits: pcs}
}

// CanCASImmediate reports whether k is a terminal Commit and enclosingOffer
// is absent and this Reaction is empty, authorising a leaf to short-circuit
// its own commit with a direct CAS on a partner's slot rather than
// enqueueing into the Reaction.
func (rx Reaction) CanCASImmediate(k any, enclosingOffer Offer) bool {
	if enclosingOffer != nil || len(rx.ops) != 0 {
		return false
	}
	_, ok := k.(terminalCommit)
	return ok
}

// TryCommit atomically applies every recorded CAS. On success it runs every
// post-commit callback, in registration order, on the committing goroutine,
// then returns true. On failure it mutates nothing and returns false.
func (rx Reaction) TryCommit() bool {
	switch len(rx.ops) {
	case 0:
		rx.runPostCommits()
		return true
	case 1:
		op := rx.ops[0]
		if !op.slot.CompareAndSwap(op.expected, op.newValue) {
			return false
		}
		rx.runPostCommits()
		return true
	default:
		d := &descriptor{entries: make([]descEntry, len(rx.ops))}
		for i, op := range rx.ops {
			d.entries[i] = descEntry{slot: op.slot, expected: op.expected, newValue: op.newValue}
		}
		resolve(d)
		if d.load() != descSucceeded {
			return false
		}
		rx.runPostCommits()
		return true
	}
}

func (rx Reaction) runPostCommits() {
	for _, fn := range rx.postCommits {
		fn()
	}
}
