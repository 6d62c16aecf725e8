// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rendezvous provides a reagent-composable synchronous channel: a
// Send and a Recv complete together, in the same atomic reaction, with
// neither side's value observable until both have committed.
package rendezvous

import (
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/reagent"
)

// sendEntry is what a blocked Send publishes: the value it wants to hand
// off, alongside the Waiter a discovering Recv must complete to release it.
type sendEntry[T any] struct {
	value T
	w     *reagent.Waiter
}

// Chan is a synchronous rendezvous point for values of type T. Unlike a
// buffered queue, a Chan never itself holds a value: Send and Recv only
// ever exchange one directly with each other, mediated by whichever side
// arrives second.
//
// pendingRecvCatalysts holds standing, dissolved Recv-side reagents (see
// [reagent.Dissolve]): a Catalyst carries no value slot of its own, so a
// Send that finds one cannot complete it directly the way it completes a
// Waiter. Instead it wakes the catalyst — AbortAndWake re-dissolves the
// underlying reagent, which re-scans pendingSends from scratch — after
// first publishing its own entry there, so the freshly re-dissolved Recv
// has something real to find. A dissolved Send has no such path: its value
// is fixed inside the closure Dissolve was given, and nothing in the
// abstract Offer this package holds can recover it, so only dissolving a
// Recv-rooted chain is supported.
type Chan[T any] struct {
	pendingSends         *lfq.MPMC[sendEntry[T]]
	pendingRecvs         *lfq.MPMC[*reagent.Waiter]
	pendingRecvCatalysts *lfq.MPMC[reagent.Offer]
}

// New allocates a Chan whose internal pools of stalled offers hold up to
// capacity entries before a blocked side must itself start backing off
// before publishing.
func New[T any](capacity int) *Chan[T] {
	return &Chan[T]{
		pendingSends:         lfq.NewMPMC[sendEntry[T]](capacity),
		pendingRecvs:         lfq.NewMPMC[*reagent.Waiter](capacity),
		pendingRecvCatalysts: lfq.NewMPMC[reagent.Offer](capacity),
	}
}

// Send returns a reagent that hands v to whichever Recv rendezvous with it,
// blocking (publishing an offer) until one does. Send is self-contained: it
// commits its own reaction internally and is not meant to be sequenced
// after other reagents' CAS operations via [reagent.Compose].
func Send[T any](ch *Chan[T], v T) reagent.Reagent[struct{}, struct{}] {
	return sendReagent[T]{ch: ch, v: v}
}

// Recv returns a reagent that receives whatever value a matching Send hands
// to it, blocking (publishing an offer) until one arrives. Recv is
// self-contained in the same sense as Send, and is also the one half of
// this package [reagent.Dissolve] can install as a standing catalyst.
//
// Recv commits the rendezvous itself, internally, the instant it finds a
// match — before any continuation composed after it (via [reagent.Compose]
// or [reagent.FlatMap]) runs. That continuation must therefore always
// itself commit rather than backtrack with Retry: the partner it rendezvous
// with has already been released by the time the continuation is even
// invoked, so there is no earlier state to retry back to.
func Recv[T any](ch *Chan[T]) reagent.Reagent[struct{}, T] {
	return recvReagent[T]{ch: ch}
}

type sendReagent[T any] struct {
	ch *Chan[T]
	v  T
}

func (s sendReagent[T]) TryReact(_ struct{}, rx reagent.Reaction, offer reagent.Offer) reagent.Outcome[struct{}] {
	for {
		w, err := s.ch.pendingRecvs.Dequeue()
		if lfq.IsWouldBlock(err) {
			break
		} else if err != nil {
			return reagent.Backtracked[struct{}](reagent.Retry)
		}
		if !w.IsActive() {
			continue
		}
		return reagent.WaiterConsumeAndContinue[struct{}, struct{}](
			w, s.v, struct{}{}, reagent.Commit[struct{}](), rx, offer,
		)
	}
	w, ok := offer.(*reagent.Waiter)
	if !ok {
		return reagent.Backtracked[struct{}](reagent.Retry)
	}
	entry := sendEntry[T]{value: s.v, w: w}
	if err := s.ch.pendingSends.Enqueue(&entry); err != nil {
		return reagent.Backtracked[struct{}](reagent.Retry)
	}
	s.wakeOneCatalyst()
	return reagent.Backtracked[struct{}](reagent.Block)
}

// wakeOneCatalyst nudges at most one standing Recv catalyst to re-scan
// pendingSends, now that this Send has just published an entry there.
func (s sendReagent[T]) wakeOneCatalyst() {
	c, err := s.ch.pendingRecvCatalysts.Dequeue()
	if err != nil {
		return
	}
	c.AbortAndWake()
}

func (sendReagent[T]) AlwaysCommits() bool { return false }
func (sendReagent[T]) MaySync() bool       { return true }

// Snoop always reports not-ready: lfq deliberately provides no peek or
// length query (an accurate count would need cross-core synchronization
// lfq is built to avoid), and a false negative here only costs one extra
// backoff step before TryReact is attempted anyway.
func (sendReagent[T]) Snoop(struct{}) bool { return false }

type recvReagent[T any] struct {
	ch *Chan[T]
}

func (r recvReagent[T]) TryReact(_ struct{}, rx reagent.Reaction, offer reagent.Offer) reagent.Outcome[T] {
	for {
		entry, err := r.ch.pendingSends.Dequeue()
		if lfq.IsWouldBlock(err) {
			break
		} else if err != nil {
			return reagent.Backtracked[T](reagent.Retry)
		}
		if !entry.w.IsActive() {
			continue
		}
		return reagent.WaiterConsumeAndContinue[T, T](
			entry.w, struct{}{}, entry.value, reagent.Commit[T](), rx, offer,
		)
	}
	if w, ok := offer.(*reagent.Waiter); ok {
		if err := r.ch.pendingRecvs.Enqueue(&w); err != nil {
			return reagent.Backtracked[T](reagent.Retry)
		}
		return reagent.Backtracked[T](reagent.Block)
	}
	// Not a Waiter: this call came from Dissolve (or a re-dissolve), so
	// offer is the Catalyst standing in for this whole chain. Publish it
	// where a Send looks for one, then Block as [reagent.Dissolve] requires.
	if err := r.ch.pendingRecvCatalysts.Enqueue(&offer); err != nil {
		return reagent.Backtracked[T](reagent.Retry)
	}
	return reagent.Backtracked[T](reagent.Block)
}

func (recvReagent[T]) AlwaysCommits() bool { return false }
func (recvReagent[T]) MaySync() bool       { return true }

// Snoop always reports not-ready; see sendReagent.Snoop.
func (recvReagent[T]) Snoop(struct{}) bool { return false }
