// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reagent

import "code.hybscloud.com/atomix"

// atomicFlag is a one-way-then-CAS-guarded boolean: set is idempotent,
// clear reports whether this call was the one that transitioned it.
type atomicFlag struct {
	v atomix.Uint32
}

func (f *atomicFlag) set() {
	f.v.Store(1)
}

func (f *atomicFlag) get() bool {
	return f.v.Load() != 0
}

func (f *atomicFlag) clear() bool {
	return f.v.CompareAndSwap(1, 0)
}
