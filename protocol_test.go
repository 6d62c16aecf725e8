// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

import (
	"sync"
	"sync/atomic"
	"testing"
)

// TestAtMostOneCompletion proves that for any Waiter, try_complete and the
// abort side of try_abort (the transition that reports "no answer" because
// it performed the Waiting→Aborted CAS itself) can never both win: exactly
// one of "completed" or "retracted" happens, whichever CAS gets there first.
func TestAtMostOneCompletion(t *testing.T) {
	const attempts = 2000
	for i := 0; i < attempts; i++ {
		w := newWaiter(false)

		var completed, retracted atomic.Bool
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if w.TryComplete("answer") {
				completed.Store(true)
			}
		}()
		go func() {
			defer wg.Done()
			if _, hadAnswer := w.TryAbort(); !hadAnswer {
				retracted.Store(true)
			}
		}()
		wg.Wait()

		if completed.Load() == retracted.Load() {
			t.Fatalf("iteration %d: completed=%v retracted=%v, want exactly one", i, completed.Load(), retracted.Load())
		}
	}
}

// TestIdempotentAbort proves that multiple TryAbort calls on the same
// Waiter return consistent results: the first call retracts it, every call
// (the retracting one and each later one) reports no answer, and the waiter
// ends up marked deleted.
func TestIdempotentAbort(t *testing.T) {
	w := newWaiter(false)

	first, hadFirst := w.TryAbort()
	if hadFirst {
		t.Fatalf("first TryAbort on a fresh waiter reported an answer: %v", first)
	}
	for i := 0; i < 5; i++ {
		answer, hadAnswer := w.TryAbort()
		if hadAnswer {
			t.Fatalf("repeated TryAbort on an aborted waiter reported an answer: %v", answer)
		}
	}
	if !w.IsDeleted() {
		t.Fatal("waiter should be marked deleted after abort")
	}
}

// TestTryCompleteThenAbortSeesAnswer proves a Waiter completed by a partner
// before being aborted hands that answer back to the aborting caller.
func TestTryCompleteThenAbortSeesAnswer(t *testing.T) {
	w := newWaiter(false)
	if !w.TryComplete(42) {
		t.Fatal("TryComplete on a fresh waiter should succeed")
	}
	if w.TryComplete(43) {
		t.Fatal("second TryComplete should not succeed")
	}
	answer, hadAnswer := w.TryAbort()
	if !hadAnswer || answer != 42 {
		t.Fatalf("got (%v, %v), want (42, true)", answer, hadAnswer)
	}
}

// TestCatalystReinstatement proves AbortAndWake retires a live catalyst
// (its alive flag goes from true to false while reinstate re-arms a fresh
// one in its place), and that a second AbortAndWake on the retired
// catalyst returns without panicking.
func TestCatalystReinstatement(t *testing.T) {
	r := Never[struct{}, int]()
	c := Dissolve[int](r)
	if !c.IsAlive() {
		t.Fatal("freshly dissolved catalyst should be alive")
	}

	c.AbortAndWake()
	if c.IsAlive() {
		t.Fatal("aborted catalyst should no longer be alive")
	}

	// A second AbortAndWake on the same, already-dead catalyst finds the
	// alive flag already cleared and so does not call reinstate again.
	c.AbortAndWake()
}

// TestDissolveRequiresBlock proves Dissolve panics if handed a reagent that
// does not immediately Block, rather than silently installing a catalyst
// nobody can ever legitimately discover.
func TestDissolveRequiresBlock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Dissolve should panic on a reagent that commits immediately")
		}
	}()
	Dissolve[int](Ret[struct{}, int](1))
}

// TestChoiceRetryRetriesRegardlessOfSecondBranch proves that when the
// first branch of a Choice only backtracks with Retry, the combined
// outcome is always Retry, even if the second branch blocked.
func TestChoiceRetryRetriesRegardlessOfSecondBranch(t *testing.T) {
	choice := choiceReagent[struct{}, int]{r1: retryLeaf[int]{}, r2: neverReagent[struct{}, int]{}}

	out := choice.TryReact(struct{}{}, Inert, nil)
	if out.Backtrack() != Retry {
		t.Fatalf("got %v, want Retry", out.Backtrack())
	}
}

// retryLeaf always backtracks with Retry, used only to exercise choice's
// Retry-dominates-Block rule.
type retryLeaf[B any] struct{}

func (retryLeaf[B]) TryReact(struct{}, Reaction, Offer) Outcome[B] {
	return Backtracked[B](Retry)
}
func (retryLeaf[B]) AlwaysCommits() bool { return false }
func (retryLeaf[B]) MaySync() bool       { return false }
func (retryLeaf[B]) Snoop(struct{}) bool { return false }
