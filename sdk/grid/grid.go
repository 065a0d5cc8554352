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

// Package grid 實作 cluster-pays 消除引擎的盤面：
// 生成、找團（flood fill）、派彩、消除、掉落（avalanche）、補盤，
// 以及把這些串起來直到穩定的解算迴圈。
//
// 盤面以 row-major 的一維 []spec.Symbol 儲存（index = row*cols + col），
// 空格為零值，掉落與補盤都依賴這個慣例。
//
// 合約：
//   - 非並行安全。一面盤只屬於一條 spin 流程。
//   - 所有公開操作完成後盤面不留空格；空格只在消除與補盤之間短暫存在。
package grid

import (
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"github.com/Jas1212/RelaxGamingTest/sdk/sampler"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

// Sampler 是盤面取圖用的抽樣介面，回傳 spec.Catalog 的索引。
// sampler.LUT 與 *sampler.WeightTable 都滿足此介面。
type Sampler interface {
	Pick(*core.Core) int
}

// 編譯期檢查：兩種抽樣器都可直接餵給盤面。
var (
	_ Sampler = sampler.LUT(nil)
	_ Sampler = (*sampler.WeightTable)(nil)
)

// Grid 是固定維度的可變盤面，持有自己的抽樣器與工作緩衝。
type Grid struct {
	rows, cols int
	minCluster int
	symbols    *spec.SymbolSetting

	core    *core.Core
	sampler Sampler

	cells []spec.Symbol

	// flood fill 工作緩衝（跨回合重用，FindClusters 自行歸零）
	visited []bool
	queue   []int
}

// New 依設定建立盤面。抽樣器由權重建 LUT（模擬熱路徑的預設選擇）。
func New(gs *spec.GameSetting, c *core.Core) (*Grid, error) {
	if err := gs.Init(); err != nil {
		return nil, err
	}
	lut, err := sampler.BuildLUT(gs.Symbols.Weights)
	if err != nil {
		return nil, err
	}
	return NewWithSampler(gs, c, lut)
}

// NewWithSampler 以呼叫端提供的抽樣器建立盤面（測試可注入固定序列）。
func NewWithSampler(gs *spec.GameSetting, c *core.Core, s Sampler) (*Grid, error) {
	if err := gs.Init(); err != nil {
		return nil, err
	}
	size := gs.Grid.GridSize
	return &Grid{
		rows:       gs.Grid.Rows,
		cols:       gs.Grid.Columns,
		minCluster: gs.MinCluster,
		symbols:    &gs.Symbols,
		core:       c,
		sampler:    s,
		cells:      make([]spec.Symbol, size),
		visited:    make([]bool, size),
		queue:      make([]int, 0, size),
	}, nil
}

// Rows 回傳盤面列數。
func (g *Grid) Rows() int { return g.rows }

// Cols 回傳盤面行數。
func (g *Grid) Cols() int { return g.cols }

// At 回傳 (row, col) 的圖標。
func (g *Grid) At(row, col int) spec.Symbol {
	return g.cells[row*g.cols+col]
}

// Set 直接覆寫 (row, col) 的圖標。主要供測試佈盤使用。
func (g *Grid) Set(row, col int, s spec.Symbol) {
	g.cells[row*g.cols+col] = s
}

// Load 以整面盤覆寫目前內容，長度必須等於盤面大小。
func (g *Grid) Load(cells []spec.Symbol) {
	if len(cells) != len(g.cells) {
		panic("grid: load size mismatch")
	}
	copy(g.cells, cells)
}

// Generate 把每一格都填入一次獨立抽樣。
// 不做任何相鄰約束 —— 新盤可能直接帶著中獎團，由解算迴圈的第一個 round 清掉。
// 填入順序為 column-major（行外圈、列內圈），與抽樣消耗順序綁定。
func (g *Grid) Generate() {
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			g.cells[row*g.cols+col] = g.draw()
		}
	}
}

// Snapshot 回傳盤面的獨立快照，與活盤面不共享記憶體。
func (g *Grid) Snapshot() buf.Frame {
	cells := make([]spec.Symbol, len(g.cells))
	copy(cells, g.cells)
	return buf.Frame{Rows: g.rows, Cols: g.cols, Cells: cells}
}

// draw 消耗一次抽樣，回傳目錄圖標。
func (g *Grid) draw() spec.Symbol {
	idx := g.sampler.Pick(g.core)
	if idx < 0 || idx >= len(spec.Catalog) {
		panic("grid: sampler returned index outside catalog")
	}
	return spec.Catalog[idx]
}
