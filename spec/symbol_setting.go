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

package spec

import (
	"fmt"

	"github.com/Jas1212/RelaxGamingTest/errs"
)

// SymbolSetting 描述圖標抽樣權重與賠付表。
//
// YAML 欄位解碼後需呼叫 Init() 完成驗證與衍生資料建立；Init 完成後視為唯讀。
type SymbolSetting struct {
	// WeightsRaw 以圖標名稱 -> 權重描述抽樣分布；缺漏的目錄圖標權重視為 0。
	WeightsRaw map[string]int `yaml:"weights"     json:"weights"`
	// PayTable 是 8 x len(TierBreaks)+1 的賠付矩陣，列序 = 目錄中普通圖標的序數。
	PayTable [][]int `yaml:"pay_table"   json:"pay_table"`
	// TierBreaks 是 cluster 大小分級的上界（含），超過最後一級進入最高級。
	TierBreaks []int `yaml:"tier_breaks" json:"tier_breaks"`

	// 衍生資料（Init 建立）
	Weights     []int `yaml:"-" json:"-"` // 對齊 Catalog 順序的權重
	TotalWeight int   `yaml:"-" json:"-"`
	initFlag    bool
}

// DefaultSymbolSetting 回傳原始遊戲的固定設定：
// 十個非空圖標等權重 100，8x5 賠付表，分級斷點 8/12/16/20。
func DefaultSymbolSetting() SymbolSetting {
	w := make(map[string]int, len(Catalog))
	for _, s := range Catalog {
		w[s.String()] = 100
	}
	return SymbolSetting{
		WeightsRaw: w,
		PayTable: [][]int{
			{5, 6, 7, 8, 10},
			{4, 5, 6, 7, 9},
			{4, 5, 6, 7, 9},
			{3, 4, 5, 6, 7},
			{1, 2, 3, 4, 5},
			{1, 2, 3, 4, 5},
			{1, 2, 3, 4, 5},
			{1, 2, 3, 4, 5},
		},
		TierBreaks: []int{8, 12, 16, 20},
	}
}

// Init 檢查設定並建立衍生資料。重複呼叫為 no-op。
func (ss *SymbolSetting) Init() error {
	if ss.initFlag {
		return nil
	}

	// 權重對齊 Catalog 順序
	if len(ss.WeightsRaw) == 0 {
		return errs.NewFatal("symbol weights are empty")
	}
	ss.Weights = make([]int, len(Catalog))
	ss.TotalWeight = 0
	for name, w := range ss.WeightsRaw {
		if _, ok := ParseSymbol(name); !ok {
			return errs.Fatalf("unknown symbol in weights: %q", name)
		}
		if w < 0 {
			return errs.Fatalf("negative weight for symbol %q: %d", name, w)
		}
	}
	for i, s := range Catalog {
		w := ss.WeightsRaw[s.String()]
		ss.Weights[i] = w
		ss.TotalWeight += w
	}
	if ss.TotalWeight <= 0 {
		return errs.NewFatal("total symbol weight is zero")
	}

	// 賠付表：列數固定為普通圖標數，行數 = 分級數
	if len(ss.PayTable) != NumPaySymbols {
		return errs.Fatalf("pay_table must have %d rows, got %d", NumPaySymbols, len(ss.PayTable))
	}
	if len(ss.TierBreaks) == 0 {
		return errs.NewFatal("tier_breaks is empty")
	}
	for i := 1; i < len(ss.TierBreaks); i++ {
		if ss.TierBreaks[i] <= ss.TierBreaks[i-1] {
			return errs.Fatalf("tier_breaks must be strictly increasing: %v", ss.TierBreaks)
		}
	}
	tiers := len(ss.TierBreaks) + 1
	for r, row := range ss.PayTable {
		if len(row) != tiers {
			return errs.NewFatal(fmt.Sprintf("pay_table row %d has %d tiers, want %d", r, len(row), tiers))
		}
		for _, v := range row {
			if v < 0 {
				return errs.Fatalf("pay_table row %d has negative payout", r)
			}
		}
	}

	ss.initFlag = true
	return nil
}

// Tier 由 cluster 大小計算賠付分級：size <= TierBreaks[i] 落在第 i 級，
// 超過所有斷點落在最高級。
func (ss *SymbolSetting) Tier(size int) int {
	for i, b := range ss.TierBreaks {
		if size <= b {
			return i
		}
	}
	return len(ss.TierBreaks)
}

// Pay 查表取得 (普通圖標, cluster大小) 的賠付倍數。
func (ss *SymbolSetting) Pay(s Symbol, size int) int {
	idx := s.PayIndex()
	if idx < 0 {
		return 0
	}
	return ss.PayTable[idx][ss.Tier(size)]
}
