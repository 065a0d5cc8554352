// Copyright 2025 The RelaxGamingTest Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sampler

import (
	"math"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
)

const maxLUTCap uint64 = 10_000_000 // 約 80MB (int slice)

// LUT 是「以空間換取時間」的加權抽樣：
// 建表時直接展開所有權重，抽樣時只做一次 IntN。
//
// 舉例：三個物品權重 [3,5,0]，展開為 [0,0,0,1,1,1,1,1]，
// 從 slice 中均勻取一個值即符合抽樣分布。
//
// 時間/空間特性：
//   - 建表 O(sum(weights))，抽樣 O(1)。
//   - 記憶體與權重總和成正比。本引擎預設權重總和 1000，遠低於上限。
type LUT []int

// BuildLUT 根據權重列表建立查找表。
// 權重全零或為負回傳 Fatal；權重總和超過 maxLUTCap 視為設定寫錯。
func BuildLUT(weights []int) (LUT, error) {
	if len(weights) == 0 {
		return nil, errs.NewFatal("lut: empty weights")
	}

	acc := uint64(0)
	for i, v := range weights {
		if v < 0 {
			return nil, errs.Fatalf("lut: negative weight at %d: %d", i, v)
		}
		uv := uint64(v)
		if acc > math.MaxUint64-uv {
			return nil, errs.NewFatal("lut: total weight overflow uint64 range")
		}
		acc += uv
	}
	if acc == 0 {
		return nil, errs.NewFatal("lut: all weights are zero")
	}
	if acc > maxLUTCap {
		return nil, errs.Fatalf("lut: total weight %d exceeds limit %d", acc, maxLUTCap)
	}

	lut := make([]int, 0, int(acc))
	for i, v := range weights {
		// 將索引 i 重複寫入 v 次，建立展開後的查找表
		for j := 0; j < v; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// Pick 透過 Core 的 RNG 從 LUT 中隨機位置取一個值。
// 若 lut 為空，回傳 -1。
func (l LUT) Pick(c *core.Core) int {
	return c.Pick(l)
}
