// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// Dissolve installs r as a standing catalyst: a background presence a
// partner can discover and react with at any time, with no thread blocked
// waiting for it. It constructs a fresh Catalyst and calls
// r.TryReact((), Inert, catalyst), requiring the result to be Block — a
// reagent that completes immediately or retries has nothing to stand by
// for, and passing it to Dissolve is a misuse this panics on rather than
// silently drops. Whatever pool r published the catalyst into is expected
// to call [Catalyst.AbortAndWake] when a partner consumes it, which tears
// this instance down and immediately re-dissolves a fresh one in its
// place, so the standing offer survives its own discovery.
func Dissolve[A any](r Reagent[struct{}, A]) *Catalyst[A] {
	c := newCatalyst(r)
	out := r.TryReact(struct{}{}, Inert, c)
	if _, _, ok := out.Value(); ok || out.Backtrack() != Block {
		panic("reagent: dissolve: reagent did not block")
	}
	return c
}

// reinstate is what [Catalyst.AbortAndWake] calls in place of Dissolve: a
// catalyst being re-armed after a partner consumed it is expected to
// immediately find that partner's just-published offer and complete with a
// value — that is the whole point of waking it — so, unlike Dissolve,
// reinstate does not treat a value as misuse. It keeps re-trying with fresh
// catalysts for as long as each one completes, so a burst of partners
// arriving back to back all get drained before it finally blocks and leaves
// a live catalyst standing. A Retry is not expected (every reagent installed
// downstream of a rendezvous leaf must itself always commit, never
// backtrack, since the rendezvous side already committed irrevocably before
// its continuation runs) but is retried here rather than dropping the
// attempt silently.
func reinstate[A any](r Reagent[struct{}, A]) {
	for {
		c := newCatalyst(r)
		out := r.TryReact(struct{}{}, Inert, c)
		if _, _, ok := out.Value(); ok {
			continue
		}
		if out.Backtrack() == Block {
			return
		}
	}
}
