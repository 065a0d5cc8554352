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

// Package sampler 提供加權抽樣演算法。
//
// 兩種實作、同一個分布：
//   - WeightTable：累加前綴走訪，O(N) 抽樣、零額外記憶體，行為直接對應
//     「uniform draw 落在哪一段累積權重」的定義，適合驗證與小目錄。
//   - LUT：展開查找表，O(1) 抽樣、記憶體與權重總和成正比，模擬熱路徑用。
//
// 兩者對同一份權重必須給出相同的機率分布（單元測試會交叉驗證）。
package sampler

import (
	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
)

// WeightTable 保存一組非負權重的累積前綴，以走訪方式抽樣。
//
// 抽樣定義：取 uniform r ∈ [0,total)，回傳第一個「累積權重 > r」的索引。
// 權重順序即建表順序，穩定不變。
type WeightTable struct {
	cum   []int // cum[i] = weights[0..i] 總和
	total int
}

// BuildWeightTable 由權重列表建表。
// 權重可為 0（該索引永不中選），總和必須為正，否則回傳 Fatal。
func BuildWeightTable(weights []int) (*WeightTable, error) {
	if len(weights) == 0 {
		return nil, errs.NewFatal("sampler: empty weights")
	}
	cum := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w < 0 {
			return nil, errs.Fatalf("sampler: negative weight at %d: %d", i, w)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, errs.NewFatal("sampler: total weight is zero")
	}
	return &WeightTable{cum: cum, total: total}, nil
}

// Total 回傳權重總和。
func (t *WeightTable) Total() int { return t.total }

// Pick 抽出一個索引。
func (t *WeightTable) Pick(c *core.Core) int {
	r := c.IntN(t.total)
	for i, acc := range t.cum {
		if r < acc {
			return i
		}
	}
	// total > 0 時走不到這裡
	panic("sampler: cumulative walk fell through")
}
