// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// retReagent implements Ret: a constant reagent that always commits v
// regardless of the input.
type retReagent[A, B any] struct {
	v B
}

// Ret builds a reagent that ignores its input and always produces v.
func Ret[A, B any](v B) Reagent[A, B] {
	return retReagent[A, B]{v: v}
}

func (r retReagent[A, B]) TryReact(_ A, rx Reaction, _ Offer) Outcome[B] {
	return Committed(r.v, rx)
}

func (retReagent[A, B]) AlwaysCommits() bool { return true }
func (retReagent[A, B]) MaySync() bool       { return false }
func (retReagent[A, B]) Snoop(A) bool        { return true }

// liftReagent implements Lift: applies a partial function to the input.
type liftReagent[A, B any] struct {
	f func(A) (B, bool)
}

// Lift builds a reagent from a partial function f. Despite the name this
// does not always commit: f returning false yields Block.
func Lift[A, B any](f func(A) (B, bool)) Reagent[A, B] {
	return liftReagent[A, B]{f: f}
}

func (r liftReagent[A, B]) TryReact(a A, rx Reaction, _ Offer) Outcome[B] {
	if v, ok := r.f(a); ok {
		return Committed(v, rx)
	}
	return Backtracked[B](Block)
}

func (liftReagent[A, B]) AlwaysCommits() bool { return false }
func (liftReagent[A, B]) MaySync() bool       { return false }
func (r liftReagent[A, B]) Snoop(a A) bool {
	_, ok := r.f(a)
	return ok
}

// neverReagent implements Never: always blocks, the identity of Choice.
type neverReagent[A, B any] struct{}

// Never builds a reagent that always returns Block. It is the identity
// element of [Choice].
func Never[A, B any]() Reagent[A, B] {
	return neverReagent[A, B]{}
}

// identityReagent passes its input through unchanged, extending nothing.
type identityReagent[A any] struct{}

// Identity returns a reagent that commits its input unchanged.
func Identity[A any]() Reagent[A, A] { return identityReagent[A]{} }

func (identityReagent[A]) TryReact(a A, rx Reaction, _ Offer) Outcome[A] {
	return Committed(a, rx)
}
func (identityReagent[A]) AlwaysCommits() bool { return true }
func (identityReagent[A]) MaySync() bool       { return false }
func (identityReagent[A]) Snoop(A) bool        { return true }

func (neverReagent[A, B]) TryReact(A, Reaction, Offer) Outcome[B] {
	return Backtracked[B](Block)
}

func (neverReagent[A, B]) AlwaysCommits() bool { return false }
func (neverReagent[A, B]) MaySync() bool       { return false }
func (neverReagent[A, B]) Snoop(A) bool        { return false }
