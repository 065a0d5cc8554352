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

package grid

import (
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

// Destroy 消除所有團成員並波及相鄰 Blocker，盤面上對應格子設為空。
//
// 回傳的紀錄順序固定：依團順序、團內成員順序，Blocker 緊跟在觸發它
// 的那顆成員之後（波及檢查順序為右、下、左、上）。同一顆 Blocker 不
// 會被記兩次 —— 第一次波及就變空格了。
//
// 團成員必須是 FindClusters 剛掃出來的結果；成員格若已是空格或
// Blocker，代表兩次呼叫之間盤面被動過，直接 panic。
func (g *Grid) Destroy(clusters []Cluster) []buf.Destroyed {
	var out []buf.Destroyed
	for ci := range clusters {
		for _, idx := range clusters[ci].Members {
			s := g.cells[idx]
			if s.IsEmpty() || s.IsBlocker() {
				panic("grid: destroy cluster member is empty or blocker")
			}
			row, col := idx/g.cols, idx%g.cols
			out = append(out, buf.Destroyed{Symbol: s, Row: row, Col: col})
			g.cells[idx] = spec.Empty

			for _, d := range neighbor4 {
				nr, nc := row+d[0], col+d[1]
				if nr < 0 || nr >= g.rows || nc < 0 || nc >= g.cols {
					continue
				}
				n := nr*g.cols + nc
				if g.cells[n].IsBlocker() {
					out = append(out, buf.Destroyed{Symbol: spec.Blocker, Row: nr, Col: nc})
					g.cells[n] = spec.Empty
				}
			}
		}
	}
	return out
}
