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

import "github.com/Jas1212/RelaxGamingTest/spec"

// Cluster 是一個達標的連通團。
//
// Members 是盤面一維索引，依 BFS 拜訪順序排列；Members[0] 必為一般圖標
// （團的 anchor），Wild 只會以成員身分出現。Base 是派彩判定用的圖標。
type Cluster struct {
	Base    spec.Symbol
	Members []int
}

// Size 回傳團的成員數（Wild 計入）。
func (c *Cluster) Size() int { return len(c.Members) }

// FindClusters 以 flood fill 掃出所有達標的團，依 anchor 的 row-major
// 順序回傳。盤面本身不被修改。
//
// 規則：
//   - 連通性為上下左右四方向。
//   - 只有一般圖標能當 anchor；Wild 可被任何團吸收，但不能自己起團。
//     掃描掃到 Wild 時直接跳過、不標 visited，之後仍可被別的團撿走。
//   - Blocker 與空格永不屬於任何團，也是 fill 的邊界。
//   - 同一次掃描中 visited 的格子不再被後續 fill 拜訪 —— 不論它所在的
//     連通塊是否達標。因此團彼此不相交；一顆 Wild 同時鄰接兩種圖標時，
//     歸屬由掃描順序決定。
func (g *Grid) FindClusters() []Cluster {
	for i := range g.visited {
		g.visited[i] = false
	}

	var out []Cluster
	for anchor, s := range g.cells {
		if g.visited[anchor] || !s.IsOrdinary() {
			continue
		}
		members := g.flood(anchor, s)
		if len(members) >= g.minCluster {
			out = append(out, Cluster{Base: s, Members: members})
		}
	}
	return out
}

// flood 從 anchor 做一次 BFS，收集與 base 同圖標（或 Wild）的連通塊。
// 拜訪到的格子一律標進 g.visited，連通塊未達標也不撤銷。
func (g *Grid) flood(anchor int, base spec.Symbol) []int {
	g.queue = g.queue[:0]
	g.queue = append(g.queue, anchor)
	g.visited[anchor] = true

	// queue 本身即拜訪結果：head 之前是已展開的成員，之後是待展開
	for head := 0; head < len(g.queue); head++ {
		idx := g.queue[head]
		row, col := idx/g.cols, idx%g.cols

		for _, d := range neighbor4 {
			nr, nc := row+d[0], col+d[1]
			if nr < 0 || nr >= g.rows || nc < 0 || nc >= g.cols {
				continue
			}
			n := nr*g.cols + nc
			if g.visited[n] {
				continue
			}
			ns := g.cells[n]
			if ns != base && !ns.IsWild() {
				continue
			}
			g.visited[n] = true
			g.queue = append(g.queue, n)
		}
	}

	members := make([]int, len(g.queue))
	copy(members, g.queue)
	return members
}

// 鄰格探索順序：右、下、左、上。消除時的波及判定沿用同一組位移。
var neighbor4 = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
