// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// commitReagent implements Commit: the terminal step of every reagent chain
// that must actually apply its accumulated CAS log.
type commitReagent[A any] struct{}

// Commit builds the terminal reagent: given a and the Reaction accumulated
// so far, it attempts rx.TryCommit() and, on success, returns a together
// with the empty [Inert] Reaction, since the log it was handed has now been
// applied and must not be applied again by a later Commit; on failure it
// returns Retry. Commit never itself publishes or consumes an offer —
// that happens in leaves upstream of it — so the offer it is handed simply
// passes through unused.
func Commit[A any]() Reagent[A, A] {
	return commitReagent[A]{}
}

func (commitReagent[A]) isTerminalCommit() {}

func (commitReagent[A]) TryReact(a A, rx Reaction, _ Offer) Outcome[A] {
	if rx.TryCommit() {
		return Committed(a, Inert)
	}
	return Backtracked[A](Retry)
}

func (commitReagent[A]) AlwaysCommits() bool { return true }
func (commitReagent[A]) MaySync() bool       { return false }
func (commitReagent[A]) Snoop(A) bool        { return true }
