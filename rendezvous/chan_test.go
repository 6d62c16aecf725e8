// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendezvous_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/reagent"
	"code.hybscloud.com/reagent/rendezvous"
	"github.com/fortytw2/leaktest"
)

func TestRecvNeverAnswersWithoutASend(t *testing.T) {
	ch := rendezvous.New[int](4)
	if _, ok := reagent.Attempt(rendezvous.Recv(ch), struct{}{}); ok {
		t.Fatal("Recv answered with no Send present")
	}
}

func TestSendRecvRendezvous(t *testing.T) {
	defer leaktest.Check(t)()

	ch := rendezvous.New[string](4)
	recvd := make(chan string, 1)
	go func() {
		recvd <- reagent.React(rendezvous.Recv(ch), struct{}{})
	}()

	time.Sleep(5 * time.Millisecond) // let Recv publish its offer first
	reagent.React(rendezvous.Send(ch, "payload"), struct{}{})

	select {
	case got := <-recvd:
		if got != "payload" {
			t.Fatalf("got %q, want %q", got, "payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Recv never completed")
	}
}

func TestSendBlocksUntilRecv(t *testing.T) {
	defer leaktest.Check(t)()

	ch := rendezvous.New[int](4)
	sent := make(chan struct{})
	go func() {
		reagent.React(rendezvous.Send(ch, 7), struct{}{})
		close(sent)
	}()

	time.Sleep(5 * time.Millisecond) // let Send publish its offer first
	select {
	case <-sent:
		t.Fatal("Send completed before any Recv")
	default:
	}

	got := reagent.React(rendezvous.Recv(ch), struct{}{})
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("Send never unblocked after a matching Recv")
	}
}

func TestManyConcurrentSendRecvPairsExchangeAllValues(t *testing.T) {
	defer leaktest.Check(t)()

	ch := rendezvous.New[int](64)
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)
	var mu sync.Mutex
	seen := make(map[int]int)

	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			reagent.React(rendezvous.Send(ch, i), struct{}{})
		}()
		go func() {
			defer wg.Done()
			v := reagent.React(rendezvous.Recv(ch), struct{}{})
			mu.Lock()
			seen[v]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("got %d distinct values, want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("value %d delivered %d times, want exactly once", v, count)
		}
	}
}
