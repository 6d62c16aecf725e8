// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reagent provides a composable algebra of lock-free, blocking-friendly
// concurrent actions ("reagents") that can be chained, chosen between, and
// committed atomically as one reaction.
//
// A reagent is a first-class value from an input type A to an output type B.
// Reagents read, write, and rendezvous on shared mutable cells and channels;
// invoking one either produces a value or backtracks (Retry or Block), and
// the driver turns a backtrack into a retry loop or a parked wait.
//
// # Architecture
//
//   - Reaction: an immutable log of tentative compare-and-set operations and
//     post-commit callbacks, committed atomically by [Reaction.TryCommit].
//   - Offer: a published rendezvous handle, [*Waiter] (a stalled caller) or
//     [*Catalyst] (a reinstated background reagent).
//   - Reagent: the polymorphic action interface, implemented by [Ret], [Lift],
//     [Computed], the terminal [Commit], [Never], and the combinators built
//     from [Compose], [Choice], and [PostCommit].
//   - Driver: [React] and [Attempt] run the try-react/commit protocol, backing
//     off and parking through a [*Waiter] when a reagent blocks.
//
// # Extending
//
// The reagent family is closed at the protocol level but open at the leaf
// level: a collaborator package (such as this module's cell and rendezvous
// packages) implements [Reagent] directly for its own primitive actions,
// using [Reaction.WithCAS], [Reaction.CanCASImmediate], [*Slot], and the
// offer helpers ([WaiterConsumeAndContinue], [CatalystConsumeAndContinue]) to
// hook into the same commit protocol every built-in combinator uses.
//
// # Example
//
//	c := cell.New(3)
//	r := cell.Upd(c, func(v int) int { return v + 1 })
//	prev := reagent.React(r, struct{}{})
package reagent
