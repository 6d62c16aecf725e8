// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// selfCommitting is implemented by a leaf that may publish a rendezvous
// offer and therefore needs to know, at construction time, that it is the
// end of its chain: a leaf that blocks cannot discover its continuation
// from TryReact's arguments (there is no such argument), so it must commit
// its own reaction internally rather than rely on an externally appended
// [Commit] node. Compose recognises this interface when the continuation
// being composed in is exactly Commit, and swaps in the self-committing
// form instead of wrapping the leaf in a generic sequencing node.
type selfCommitting[A, B any] interface {
	Reagent[A, B]
	WithCommit() Reagent[A, B]
}

// composeReagent is the generic sequencing node used whenever neither
// operand needs special handling: it runs first, and if first produced a
// value it runs next with that value and the Reaction first left behind.
type composeReagent[A, B, C any] struct {
	first Reagent[A, B]
	next  Reagent[B, C]
}

func (r composeReagent[A, B, C]) TryReact(a A, rx Reaction, offer Offer) Outcome[C] {
	out := r.first.TryReact(a, rx, offer)
	if v, rx2, ok := out.Value(); ok {
		return r.next.TryReact(v, rx2, offer)
	}
	return Backtracked[C](out.Backtrack())
}

func (r composeReagent[A, B, C]) AlwaysCommits() bool {
	return r.first.AlwaysCommits() && r.next.AlwaysCommits()
}

func (r composeReagent[A, B, C]) MaySync() bool {
	return r.first.MaySync() || r.next.MaySync()
}

func (r composeReagent[A, B, C]) Snoop(a A) bool {
	return r.first.Snoop(a)
}

// Compose sequences r then k, feeding r's output into k. Compose special-
// cases three shapes of r so that composition behaves correctly rather than
// merely conveniently:
//
//   - if k is the terminal Commit and r knows how to commit itself
//     ([selfCommitting]), Compose asks r to do so instead of appending a
//     generic node a blocking leaf could never see past;
//   - if r is a [Choice], Compose distributes k into both branches, so a
//     partner discovering either branch's offer sees the same continuation;
//   - if r is a [Computed], Compose fuses k into the function that chooses
//     the sub-reagent, matching the role flat_map plays over a dynamically
//     chosen continuation.
//
// Otherwise Compose falls back to a generic sequencing node, which is
// correct for any r that cannot itself publish an offer (Ret, Lift, Never,
// PostCommit, and the non-blocking leaves of the cell package).
func Compose[A, B, C any](r Reagent[A, B], k Reagent[B, C]) Reagent[A, C] {
	if _, isCommit := any(k).(terminalCommit); isCommit {
		if sc, ok := any(r).(selfCommitting[A, B]); ok {
			if fused, ok2 := any(sc.WithCommit()).(Reagent[A, C]); ok2 {
				return fused
			}
		}
	}
	if cr, ok := any(r).(choiceReagent[A, B]); ok {
		return choiceReagent[A, C]{r1: Compose(cr.r1, k), r2: Compose(cr.r2, k)}
	}
	if cp, ok := any(r).(computedReagent[A, B]); ok {
		return computedReagent[A, C]{c: func(a A) Reagent[struct{}, C] {
			return Compose(cp.c(a), k)
		}}
	}
	return composeReagent[A, B, C]{first: r, next: k}
}

// FlatMap is Compose with its continuation built from f(b) rather than a
// fixed reagent: it is r followed by [Computed](f), expressed directly so
// callers need not name the intermediate type.
func FlatMap[A, B, C any](r Reagent[A, B], f func(B) Reagent[struct{}, C]) Reagent[A, C] {
	return Compose(r, Computed(f))
}

// Map lifts a pure function over a reagent's output.
func Map[A, B, C any](r Reagent[A, B], f func(B) C) Reagent[A, C] {
	return Compose(r, Lift(func(b B) (C, bool) { return f(b), true }))
}

// MapFilter is Map composed with a partial function: f returning false
// backtracks with Block rather than producing a value.
func MapFilter[A, B, C any](r Reagent[A, B], f func(B) (C, bool)) Reagent[A, C] {
	return Compose(r, Lift(f))
}

// WithFilter restricts r to inputs satisfying pred, backtracking with Block
// otherwise.
func WithFilter[A, B any](r Reagent[A, B], pred func(B) bool) Reagent[A, B] {
	return Compose(r, Lift(func(b B) (B, bool) { return b, pred(b) }))
}

// Then is an alias for Compose matching the source algebra's >=> operator.
func Then[A, B, C any](r Reagent[A, B], k Reagent[B, C]) Reagent[A, C] {
	return Compose(r, k)
}
