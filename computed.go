// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

// computedReagent implements Computed: a dynamic continuation chosen from
// the input value.
type computedReagent[A, B any] struct {
	c func(A) Reagent[struct{}, B]
}

// Computed builds a reagent whose behaviour is chosen dynamically from the
// input: on TryReact it evaluates c(a) and forwards to the resulting
// reagent with input struct{}{}. Composing a Computed with a continuation
// does not wrap it in a generic sequencing node; [Compose] recognises the
// concrete computedReagent type and fuses the continuation directly into c,
// so the chosen sub-reagent sees the whole downstream chain when it decides
// whether to publish an offer. A bare, unfused Computed run standalone
// behaves identically; the fusion only changes how further composition is
// expressed.
func Computed[A, B any](c func(A) Reagent[struct{}, B]) Reagent[A, B] {
	return computedReagent[A, B]{c: c}
}

func (r computedReagent[A, B]) TryReact(a A, rx Reaction, offer Offer) Outcome[B] {
	return r.c(a).TryReact(struct{}{}, rx, offer)
}

func (computedReagent[A, B]) AlwaysCommits() bool { return false }
func (computedReagent[A, B]) MaySync() bool       { return true }
func (computedReagent[A, B]) Snoop(A) bool        { return false }
