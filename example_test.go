// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent_test

import (
	"fmt"
	"runtime"
	"sync"

	"code.hybscloud.com/reagent/cell"
	"code.hybscloud.com/reagent"
	"code.hybscloud.com/reagent/rendezvous"
)

// A counter cell updated through cell.Upd.
func Example_cellUpd() {
	counter := cell.New(0)
	r := cell.Upd(counter, func(v int) int { return v + 1 })

	for i := 0; i < 3; i++ {
		reagent.React(r, struct{}{})
	}
	fmt.Println(reagent.React(cell.Get(counter), struct{}{}))
	// Output: 3
}

// A blocking Send and Recv pair meeting over a Chan.
func Example_rendezvous() {
	ch := rendezvous.New[string](1)

	var wg sync.WaitGroup
	wg.Add(1)
	var got string
	go func() {
		defer wg.Done()
		got = reagent.React(rendezvous.Recv(ch), struct{}{})
	}()

	reagent.React(rendezvous.Send(ch, "ping"), struct{}{})
	wg.Wait()

	fmt.Println(got)
	// Output: ping
}

// A dissolved Recv standing by in the background, draining whatever is
// sent to it and folding each value into a running total — without any
// goroutine ever blocked waiting for one.
func Example_dissolve() {
	ch := rendezvous.New[int](8)
	total := cell.New(0)

	drain := reagent.FlatMap(rendezvous.Recv(ch), func(v int) reagent.Reagent[struct{}, int] {
		return cell.Upd(total, func(acc int) int { return acc + v })
	})
	reagent.Dissolve(drain)

	var wg sync.WaitGroup
	for _, v := range []int{1, 2, 3, 4} {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			reagent.React(rendezvous.Send(ch, v), struct{}{})
		}(v)
	}
	wg.Wait()

	// The catalyst re-dissolves itself after every match, but the last
	// match's own fold may still be in flight; poll rather than sleep on
	// a clock, yielding the processor between checks.
	for reagent.React(cell.Get(total), struct{}{}) != 10 {
		runtime.Gosched()
	}
	fmt.Println(reagent.React(cell.Get(total), struct{}{}))
	// Output: 10
}
