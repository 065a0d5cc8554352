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

// Avalanche 讓每一行的非空圖標往下壓實，空格集中到行頂。
//
// 逐行由下往上掃，用寫入指標原地搬移：讀到非空就寫到指標位置、指標
// 上移，掃完後指標以上全部清空。行內相對順序不變，不跨行移動，
// 已壓實的行再跑一次也不會動（冪等）。
func (g *Grid) Avalanche() {
	for col := 0; col < g.cols; col++ {
		write := g.rows - 1
		for row := g.rows - 1; row >= 0; row-- {
			if s := g.cells[row*g.cols+col]; !s.IsEmpty() {
				g.cells[write*g.cols+col] = s
				write--
			}
		}
		for ; write >= 0; write-- {
			g.cells[write*g.cols+col] = spec.Empty
		}
	}
}
