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

import "github.com/Jas1212/RelaxGamingTest/sdk/buf"

// Resolve 在現有盤面上跑解算迴圈直到無團可消：
//
//	找團 → 派彩 → 消除 → 掉落 → 補盤 → 落地 round → 重掃
//
// 每個 round 用的是「上一輪補盤後」的盤面，新補進來的圖標可以立刻
// 組團 —— 這是 avalanche 玩法的定義，不是 bug。理論上迴圈無上限，
// 由抽樣分布保證機率性收斂。
//
// 每個 round 的贏分已乘上 betMult；回傳值等於本次落進 session 的
// 贏分總和。無團時不落任何 round，回傳 0。
func (g *Grid) Resolve(session *buf.SessionResult, betMult int) int {
	total := 0
	for round := 1; ; round++ {
		clusters := g.FindClusters()
		if len(clusters) == 0 {
			break
		}

		win := 0
		for i := range clusters {
			win += g.Payout(&clusters[i])
		}
		win *= betMult

		destroyed := g.Destroy(clusters)
		g.Avalanche()
		g.Refill()

		session.LogRound(buf.RoundResult{
			Round:     round,
			Win:       win,
			Destroyed: destroyed,
			Snapshot:  g.Snapshot(),
		})
		total += win
	}
	return total
}
