// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// postCommitReagent implements PostCommit: identity on the value, but
// extends the Reaction with a side-effecting callback to run once the whole
// chain commits.
type postCommitReagent[A any] struct {
	fn func(A)
}

// PostCommit builds a reagent that passes its input through unchanged while
// registering fn to run, on the committing goroutine, only after the whole
// enclosing reaction has committed. fn must not touch any Slot.
func PostCommit[A any](fn func(A)) Reagent[A, A] {
	return postCommitReagent[A]{fn: fn}
}

func (r postCommitReagent[A]) TryReact(a A, rx Reaction, _ Offer) Outcome[A] {
	return Committed(a, rx.WithPostCommit(func() { r.fn(a) }))
}

func (postCommitReagent[A]) AlwaysCommits() bool { return true }
func (postCommitReagent[A]) MaySync() bool       { return false }
func (postCommitReagent[A]) Snoop(A) bool        { return true }
