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

// Payout 回傳單一團的派彩倍數。
//
// 派彩圖標取團內第一顆非 Wild 成員。全 Wild 或解析出的圖標不在派彩
// 目錄內時回傳 0 —— 依 FindClusters 的建構這走不到，但守住它，
// 免得上游規則改動後付錯彩。
func (g *Grid) Payout(cl *Cluster) int {
	base := spec.Empty
	for _, idx := range cl.Members {
		if s := g.cells[idx]; !s.IsWild() {
			base = s
			break
		}
	}
	if base.PayIndex() < 0 {
		return 0
	}
	return g.symbols.Pay(base, cl.Size())
}
