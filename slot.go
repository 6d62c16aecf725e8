// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

import "code.hybscloud.com/atomix"

// Slot is a compare-and-swappable memory cell holding an opaque value,
// augmented with a multi-word CAS descriptor protocol so a [Reaction] can
// commit several Slots atomically. Ref and Waiter are both built on Slot: a
// Ref-style collaborator needs plain single-cell CAS with occasional k-CAS
// membership, and a Waiter's status cell needs exactly the same shape.
type Slot struct {
	v atomix.Value[any]
}

// NewSlot returns a Slot holding initial.
func NewSlot(initial any) *Slot {
	s := &Slot{}
	s.v.Store(initial)
	return s
}

// Load returns the slot's current logical value, helping finish any
// in-flight descriptor it observes along the way.
func (s *Slot) Load() any {
	for {
		v := s.v.Load()
		d, ok := v.(*descriptor)
		if !ok {
			return v
		}
		resolve(d)
	}
}

// CompareAndSwap performs a single-slot CAS, helping finish any in-flight
// descriptor before comparing. Used both as the k=1 fast path of
// [Reaction.TryCommit] and directly by collaborators such as cell.Ref.
func (s *Slot) CompareAndSwap(expected, newValue any) bool {
	for {
		cur := s.Load()
		if cur != expected {
			return false
		}
		if s.v.CompareAndSwap(cur, newValue) {
			return true
		}
	}
}

// descStatus is the outcome of a multi-slot commit attempt.
type descStatus uint32

const (
	descUndecided descStatus = iota
	descSucceeded
	descFailed
)

// descEntry is one slot's contribution to a k-CAS.
type descEntry struct {
	slot     *Slot
	expected any
	newValue any
}

// descriptor is the shared record installed into every participating slot
// while a k-CAS is in flight. Its status word is the k-CAS's single
// linearization point: once status leaves descUndecided, every entry's
// logical value is decided, even before the detach loop below has
// physically overwritten each slot.
type descriptor struct {
	status  atomix.Uint32
	entries []descEntry
}

func (d *descriptor) load() descStatus {
	return descStatus(d.status.Load())
}

func (d *descriptor) decide(to descStatus) {
	d.status.CompareAndSwap(uint32(descUndecided), uint32(to))
}

// attach installs self (a *descriptor) into slot if slot's current logical
// value equals expected, helping resolve any foreign descriptor it finds
// first so progress by one goroutine helps every other.
func attach(slot *Slot, expected any, self *descriptor) bool {
	for {
		v := slot.v.Load()
		if fd, ok := v.(*descriptor); ok {
			if fd == self {
				return true
			}
			resolve(fd)
			continue
		}
		if v != expected {
			return false
		}
		if slot.v.CompareAndSwap(v, self) {
			return true
		}
	}
}

// resolve decides and then finishes descriptor d: any goroutine that
// observes d, whether the reaction's own committing goroutine or another
// thread whose CAS collided with d, can call resolve and make progress.
func resolve(d *descriptor) {
	if d.load() == descUndecided {
		ok := true
		for i := range d.entries {
			e := &d.entries[i]
			if !attach(e.slot, e.expected, d) {
				ok = false
				break
			}
		}
		if ok {
			d.decide(descSucceeded)
		} else {
			d.decide(descFailed)
		}
	}
	succeeded := d.load() == descSucceeded
	for i := range d.entries {
		e := &d.entries[i]
		final := e.expected
		if succeeded {
			final = e.newValue
		}
		e.slot.v.CompareAndSwap(d, final)
	}
}
