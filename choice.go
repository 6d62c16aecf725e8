// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// choiceReagent implements Choice: try r1, then r2, whether r1 backtracked
// with Retry or Block. A Block from r1 does not skip r2 — r1 has already
// published whatever offer it needed to, and r2 may still succeed
// synchronously this same attempt. If r1 only backtracked with Retry, the
// combined outcome is always Retry (r2's Block is not a reason to park on
// r1's behalf); if r1 Blocked, r2's own backtrack passes through unchanged.
type choiceReagent[A, B any] struct {
	r1, r2 Reagent[A, B]
}

// Choice builds a reagent that prefers r1, falling through to r2 whenever
// r1 backtracks. [Never] is Choice's identity element on either side.
func Choice[A, B any](r1, r2 Reagent[A, B]) Reagent[A, B] {
	return choiceReagent[A, B]{r1: r1, r2: r2}
}

func (r choiceReagent[A, B]) TryReact(a A, rx Reaction, offer Offer) Outcome[B] {
	out1 := r.r1.TryReact(a, rx, offer)
	if _, _, ok := out1.Value(); ok {
		return out1
	}
	out2 := r.r2.TryReact(a, rx, offer)
	if _, _, ok := out2.Value(); ok {
		return out2
	}
	// r1's Retry is transient and must be retried regardless of r2: r2's
	// Block gives no reason to park on r1's behalf. Only when r1 itself
	// blocked does r2's backtrack (Retry or Block) pass through unchanged.
	if out1.Backtrack() == Retry {
		return Backtracked[B](Retry)
	}
	return Backtracked[B](out2.Backtrack())
}

func (r choiceReagent[A, B]) AlwaysCommits() bool {
	return r.r1.AlwaysCommits() && r.r2.AlwaysCommits()
}

func (r choiceReagent[A, B]) MaySync() bool {
	return r.r1.MaySync() || r.r2.MaySync()
}

// Snoop favours r2 when it looks ready, mirroring the try-r1-then-r2 order
// of TryReact only loosely: a caller deciding whether to bother attempting
// at all wants to know if either side looks promising, and checking the
// fallback first costs nothing extra since both are cheap probes.
func (r choiceReagent[A, B]) Snoop(a A) bool {
	return r.r2.Snoop(a) || r.r1.Snoop(a)
}
