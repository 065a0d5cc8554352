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

package stats

const (
	maxLutMult int = 2000
	maxMult    int = 10000
)

// WinBuckets
//
// 用來快速定位得分 -> DistRecord 位置 O(1)
//
// 請勿修改預設值
//   - win區間: 贏倍區間 [0,0], (0,1), [1,2), [2,5), ..., [2000,10000), [10000, +inf)
type WinBuckets struct {
	winBucket    []int
	winBucketStr []string
	winBucketMap map[int]*WinBucket
}

type WinBucket struct {
	maxCheckWin      int
	lutMaxWin        int
	winBucketByScore []int
	winBucketLUT     []int
	justOverIdx      int
	maxIdx           int
}

// Buckets 全域贏分分桶定義；同一個押注單位共用同一份反查表。
var Buckets *WinBuckets = &WinBuckets{
	winBucket:    []int{0, 1, 2, 5, 10, 20, 50, 100, 300, 500, 1000, 2000, 10000},
	winBucketStr: []string{"[0,0]", "(0,1)", "[1,2)", "[2,5)", "[5,10)", "[10,20)", "[20,50)", "[50,100)", "[100,300)", "[300,500)", "[500,1000)", "[1000,2000)", "[2000,10000)", "[10000,+inf)"},
	winBucketMap: make(map[int]*WinBucket),
}

func (b *WinBuckets) WinBucketStr() []string {
	return b.winBucketStr
}

func (b *WinBuckets) GetBucketByBetUnit(bu int) *WinBucket {
	result, exist := b.winBucketMap[bu]
	if !exist {
		result = b.buildBucket(bu)
	}
	return result
}

func (b *WinBuckets) buildBucket(bu int) *WinBucket {
	// LUT 只建到 2000 倍，更高的落點用兩個邊界判斷
	maxLut := bu * maxLutMult
	maxCheckWin := bu * maxMult

	// 把「倍數邊界」轉成「贏分邊界」
	winGp := make([]int, len(b.winBucket))
	for i, v := range b.winBucket {
		winGp[i] = bu * v
	}

	// 建立LUT反查表
	lut := make([]int, maxLut) // lut[win] = idx

	// 由 (0,1) 這個區間開始
	idx := 1
	last := len(winGp) - 1

	lut[0] = 0
	for i := 1; i < maxLut; i++ {
		// 僅在還有更高邊界時才前進 idx，避免越界讀取
		for idx < last && i >= winGp[idx] {
			idx++
		}
		lut[i] = idx
	}

	result := &WinBucket{
		maxCheckWin:      maxCheckWin,
		lutMaxWin:        maxLut,
		winBucketByScore: winGp,
		winBucketLUT:     lut,
		justOverIdx:      len(winGp) - 1,
		maxIdx:           len(winGp),
	}

	b.winBucketMap[bu] = result
	return result
}

func (wb *WinBucket) Index(win int) int {
	if win >= wb.lutMaxWin {
		if win >= wb.maxCheckWin {
			return wb.maxIdx
		}
		return wb.justOverIdx
	}
	return wb.winBucketLUT[win]
}
