// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

import "code.hybscloud.com/iox"

// React invokes r with input a, retrying and, if r may rendezvous, parking
// until a partner completes it. It returns the committed value; there is no
// way to observe a Retry or a still-pending Block from the outside.
func React[A, B any](r Reagent[A, B], a A) B {
	full := Compose[A, B, B](r, Commit[B]())
	return drive(full, a, true)
}

// Attempt invokes r with input a exactly once: a Retry or a Block are both
// reported as ok=false rather than being retried or parked on. This is the
// non-blocking counterpart to [React], for a caller that wants an immediate
// answer or nothing and has no use for distinguishing why none arrived.
func Attempt[A, B any](r Reagent[A, B], a A) (v B, ok bool) {
	full := Compose[A, B, B](r, Commit[B]())
	var offer Offer
	var w *Waiter
	if full.MaySync() {
		w = newWaiter(false)
		offer = w
	}
	out := full.TryReact(a, Inert, offer)
	if val, _, isVal := out.Value(); isVal {
		return val, true
	}
	if w != nil {
		if answer, hadAnswer := w.TryAbort(); hadAnswer {
			return answer.(B), true
		}
	}
	var zero B
	return zero, false
}

// drive runs the try-react/backoff/park loop described by the try-react
// contract: retry with exponential backoff while the reagent reports Retry,
// and when it reports Block, park (if blocking) or spin (if not) until the
// published Waiter is completed by a partner or this attempt gives up and
// starts over with a fresh offer.
//
// shouldBlock starts as full.MaySync(), which lets a reagent that never
// rendezvouses skip allocating a Waiter on its first, most common attempt.
// But MaySync is only a hint, not a guarantee: a reagent can still report
// Block without one (Never always does; a partial Lift does on a rejected
// input), and the attempt that observes that has nothing published for a
// partner to ever find. Rather than trust the hint forever, drive escalates
// shouldBlock to true the moment it sees a waiterless Block, so every
// following attempt publishes a real Waiter a partner can discover — the
// same should-block escalation a single missed offer must trigger.
func drive[A, B any](full Reagent[A, B], a A, blocking bool) B {
	var bo iox.Backoff
	shouldBlock := full.MaySync()
	for {
		var offer Offer
		var w *Waiter
		if shouldBlock {
			w = newWaiter(blocking)
			offer = w
		}
		out := full.TryReact(a, Inert, offer)
		if v, _, ok := out.Value(); ok {
			return v
		}
		if out.Backtrack() == Retry {
			bo.Wait()
			continue
		}
		// Block.
		if w == nil {
			shouldBlock = true
			bo.Wait()
			continue
		}
		if w.blocking {
			w.park()
		} else if !w.IsActive() || !full.Snoop(a) {
			bo.Wait()
		}
		if answer, hadAnswer := w.TryAbort(); hadAnswer {
			return answer.(B)
		}
		bo.Wait()
	}
}
