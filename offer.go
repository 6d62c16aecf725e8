// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// Offer is a published rendezvous handle discovered by other reagents. The
// family is closed to *Waiter and *Catalyst[A]: an unexported marker method
// keeps it that way.
type Offer interface {
	isOffer()
	// AbortAndWake tears down this offer. For a Waiter that actually
	// retracts a Waiting registration, it unparks the blocked goroutine.
	// For a Catalyst whose alive flag flips true→false, it re-dissolves a
	// fresh catalyst in its place. Idempotent past the first caller that
	// observes the live state.
	AbortAndWake()
}

// waitingSentinel and abortedSentinel are unique pointer identities used as
// a Waiter's status while Waiting or once Aborted; any other value found in
// the status Slot is the waiter's answer. Pre-allocated so status checks
// never allocate. Each has a non-zero size, since pointers to distinct
// zero-size values may compare equal.
var (
	waitingSentinel = new(struct{ _ byte })
	abortedSentinel = new(struct{ _ byte })
)

// Waiter is an offer published by a stalled caller. Its status Slot holds
// Waiting, Aborted, or a boxed answer; the transition out of Waiting
// happens at most once and is irreversible.
type Waiter struct {
	status   Slot
	blocking bool
	parkCh   chan struct{}
	deleted  atomicFlag
}

// newWaiter allocates a Waiter in the Waiting state. blocking marks whether
// the driver intends to park an OS-level goroutine on it, as opposed to
// spin-retrying while it stays published.
func newWaiter(blocking bool) *Waiter {
	w := &Waiter{blocking: blocking, parkCh: make(chan struct{}, 1)}
	w.status.v.Store(waitingSentinel)
	return w
}

func (w *Waiter) isOffer() {}

// IsActive reports whether the waiter is still Waiting.
func (w *Waiter) IsActive() bool {
	return w.status.Load() == waitingSentinel
}

// IsDeleted reports whether this offer has made a terminal transition and
// should be dropped by any pool that still references it.
func (w *Waiter) IsDeleted() bool {
	return w.deleted.get()
}

// TryAbort retracts a Waiting registration. It returns the answer a partner
// already supplied, if any; otherwise it reports no answer, whether this
// call performed the retraction or the waiter had already left Waiting.
func (w *Waiter) TryAbort() (answer any, hadAnswer bool) {
	for {
		cur := w.status.Load()
		switch {
		case cur == abortedSentinel:
			return nil, false
		case cur == waitingSentinel:
			if w.status.CompareAndSwap(waitingSentinel, abortedSentinel) {
				w.deleted.set()
				return nil, false
			}
		default:
			w.deleted.set()
			return cur, true
		}
	}
}

// TryComplete completes the waiter with a, reporting whether it was still
// Waiting. Used by a leaf combinator's immediate-CAS fast path.
func (w *Waiter) TryComplete(a any) bool {
	ok := w.status.CompareAndSwap(waitingSentinel, a)
	if ok {
		w.deleted.set()
	}
	return ok
}

// AbortAndWake implements the Offer contract for a Waiter.
func (w *Waiter) AbortAndWake() {
	if w.status.CompareAndSwap(waitingSentinel, abortedSentinel) {
		w.deleted.set()
		w.unpark()
	}
}

func (w *Waiter) park() { <-w.parkCh }

func (w *Waiter) unpark() {
	select {
	case w.parkCh <- struct{}{}:
	default:
	}
}

// WaiterConsumeAndContinue computes the reaction that satisfies w and hands
// off to the caller's own continuation k. completeWith is the value that
// answers w on the blocked side; continueWith is fed to k on the
// discovering side, which may carry an unrelated type — the two sides of a
// rendezvous commit together but each resumes its own chain. If w is
// blocking, the joint commit also unparks the blocked goroutine.
func WaiterConsumeAndContinue[T, B any](w *Waiter, completeWith any, continueWith T, k Reagent[T, B], rx Reaction, enclosingOffer Offer) Outcome[B] {
	rx2 := rx
	if rx.CanCASImmediate(k, enclosingOffer) {
		if !w.TryComplete(completeWith) {
			return Backtracked[B](Retry)
		}
	} else {
		rx2 = rx.WithCAS(&w.status, waitingSentinel, completeWith).WithPostCommit(func() {
			w.deleted.set()
		})
	}
	if w.blocking {
		rx2 = rx2.WithPostCommit(w.unpark)
	}
	return k.TryReact(continueWith, rx2, enclosingOffer)
}

// Catalyst is an offer published by a dissolved reagent, reinstated every
// time it is torn down.
type Catalyst[A any] struct {
	dissolvent Reagent[struct{}, A]
	alive      atomicFlag
}

func newCatalyst[A any](r Reagent[struct{}, A]) *Catalyst[A] {
	c := &Catalyst[A]{dissolvent: r}
	c.alive.set()
	return c
}

func (c *Catalyst[A]) isOffer() {}

// IsAlive reports whether this catalyst is still registered.
func (c *Catalyst[A]) IsAlive() bool {
	return c.alive.get()
}

// AbortAndWake implements the Offer contract for a Catalyst: CAS alive
// true→false; on success re-arm a fresh catalyst wrapping the same reagent,
// draining any matches it finds immediately before it settles on Block. See
// [reinstate].
func (c *Catalyst[A]) AbortAndWake() {
	if c.alive.clear() {
		reinstate(c.dissolvent)
	}
}

// CatalystConsumeAndContinue re-enters k directly: a catalyst has no
// offerer to satisfy, only a live/dead flag, so it is a pure
// pattern-match hook rather than a value carrier.
func CatalystConsumeAndContinue[T, B any](continueWith T, k Reagent[T, B], rx Reaction, enclosingOffer Offer) Outcome[B] {
	return k.TryReact(continueWith, rx, enclosingOffer)
}
