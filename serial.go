// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duplex

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing pairing identifier.
// Each call to Pair, Unbounded or Bounded assigns the next serial value.
type Serial = uint32

// counter is the global monotonic counter for pairing serials.
var counter atomix.Uint32

func nextSerial() Serial {
	return counter.Add(1)
}
