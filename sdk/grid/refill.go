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

// Refill 把盤面上所有空格填入新抽樣，非空格不動。
// 掃描順序 column-major，與 Generate 一致，抽樣消耗次數 = 空格數。
// 完成後盤面不留任何空格。
func (g *Grid) Refill() {
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			idx := row*g.cols + col
			if g.cells[idx].IsEmpty() {
				g.cells[idx] = g.draw()
			}
		}
	}
}
