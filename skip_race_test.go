// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package reagent_test

import "testing"

// skipRace skips tests that exercise the lock-free k-CAS descriptor protocol.
// The race detector tracks per-variable happens-before and cannot see the
// descriptor's cross-slot acquire-release ordering, producing false positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: k-CAS descriptor uses cross-variable memory ordering")
}
