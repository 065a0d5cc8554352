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

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================
// ** 結構宣告 **
// ============================================================

// ShardSpread 描述多 worker 模擬的分片間差異與事件比例。
//
// 分片 RTP 的分位數可以看出收斂狀況：分片夠大時 P10 與 P90 應該
// 貼著整體 RTP；事件比例則是把所有分片合併後做二項估計。
type ShardSpread struct {
	RtpMedian PointStat // 分片 RTP 中位數
	RtpP10    PointStat // 最差 10% 分片的 RTP
	RtpP90    PointStat // 最好 10% 分片的 RTP
	NoWinRate PointStat // 沒中獎 spin 的比例（合併估計）
	DeepRate  PointStat // 消除 3 輪以上 spin 的比例（合併估計）
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64
	CI  CI
}

// ============================================================
// ** 對外 : 分片評估 **
// ============================================================

// EstimatorShards 彙整多個 worker 的 StatReport：
//
// 1. RTP 敘事 : 分片 RTP 的中位數與 P10/P90 分位（附 CI）
//
// 2. Event 敘事 : 沒中獎比例與深消除比例的 Clopper-Pearson 區間
func EstimatorShards(sts []*StatReport) *ShardSpread {
	n := len(sts)
	out := &ShardSpread{}
	if n == 0 {
		return out
	}

	// ------------------------------------------------------------
	// 1) 分片 RTP 分位數
	// ------------------------------------------------------------
	rtp := make([]float64, n)
	for i, s := range sts {
		rtp[i] = s.Rtp()
	}

	medHat := quantilePoint(rtp, 0.5)
	medLo, medHi := quantileCI(rtp, 0.5, 0.95)
	p10Hat := quantilePoint(rtp, 0.10)
	p10Lo, p10Hi := quantileCI(rtp, 0.10, 0.95)
	p90Hat := quantilePoint(rtp, 0.90)
	p90Lo, p90Hi := quantileCI(rtp, 0.90, 0.95)

	out.RtpMedian = PointStat{Hat: medHat, CI: CI{Lo: medLo, Hi: medHi}}
	out.RtpP10 = PointStat{Hat: p10Hat, CI: CI{Lo: p10Lo, Hi: p10Hi}}
	out.RtpP90 = PointStat{Hat: p90Hat, CI: CI{Lo: p90Lo, Hi: p90Hi}}

	// ------------------------------------------------------------
	// 2) 事件比例（所有分片合併）
	// ------------------------------------------------------------
	var spins, noWin, deep int
	for _, s := range sts {
		spins += s.Summary.Spins
		noWin += s.Summary.NoWinSpins
		if s.Dist != nil {
			// DepthCollect 索引 3 起是 3 輪以上的 spin
			for i := 3; i < len(s.Dist.DepthCollect); i++ {
				deep += s.Dist.DepthCollect[i]
			}
		}
	}
	noWinHat, noWinCI := proportionCICP(noWin, spins, 0.95)
	deepHat, deepCI := proportionCICP(deep, spins, 0.95)
	out.NoWinRate = PointStat{Hat: noWinHat, CI: noWinCI}
	out.DeepRate = PointStat{Hat: deepHat, CI: deepCI}

	return out
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

// Clopper-Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// 估「第 q 分位」的上下界：把 order statistic 的秩視為二項，Beta 反推 p 範圍後轉回樣本索引。
// 回傳 (loValue, hiValue)
func quantileCI(data []float64, q, confidence float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}
	cp := make([]float64, n)
	copy(cp, data)
	sort.Float64s(cp)

	alpha := 1 - confidence
	k := int(q * float64(n))
	if k < 1 {
		k = 1
	} else if k > n-1 {
		k = n - 1
	}

	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	pLo := bLo.Quantile(alpha / 2)
	pHi := bHi.Quantile(1 - alpha/2)

	li := int(pLo * float64(n))
	ui := int(pHi * float64(n))
	if ui > 0 {
		ui -= 1
	}
	if li < 0 {
		li = 0
	}
	if li > n-1 {
		li = n - 1
	}
	if ui < 0 {
		ui = 0
	}
	if ui > n-1 {
		ui = n - 1
	}
	return cp[li], cp[ui]
}

// quantilePoint returns the empirical quantile point estimate at q.
func quantilePoint(data []float64, q float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, data)
	sort.Float64s(cp)
	// 最近秩法
	idx := int(q * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return cp[idx]
}

// ============================================================
// ** 輸出函數 **
// ============================================================

func (est *ShardSpread) Out() {
	keys := []string{
		"Median RTP",
		"P10 RTP",
		"P90 RTP",
		"NoWin Rate",
		"Deep Cascade Rate",
	}
	msg := map[string]string{
		"Median RTP":        fmtHatCIpct01(est.RtpMedian.Hat, est.RtpMedian.CI),
		"P10 RTP":           fmtHatCIpct01(est.RtpP10.Hat, est.RtpP10.CI),
		"P90 RTP":           fmtHatCIpct01(est.RtpP90.Hat, est.RtpP90.CI),
		"NoWin Rate":        fmtHatCIpct01(est.NoWinRate.Hat, est.NoWinRate.CI),
		"Deep Cascade Rate": fmtHatCIpct01(est.DeepRate.Hat, est.DeepRate.CI),
	}
	printTable("Shard Spread", keys, msg)
}

func printTable(title string, keys []string, msg map[string]string) {
	fmt.Println(title)
	maxKeyLen := 0
	for _, k := range keys {
		if len(k) > maxKeyLen {
			maxKeyLen = len(k)
		}
	}
	for _, k := range keys {
		fmt.Printf("  %-*s : %s\n", maxKeyLen, k, msg[k])
	}
}

func fmtPct01(x float64) string {
	return fmt.Sprintf("%.2f%%", x*100)
}

func fmtHatCIpct01(hat float64, ci CI) string {
	return fmt.Sprintf("%s [%s, %s]", fmtPct01(hat), fmtPct01(ci.Lo), fmtPct01(ci.Hi))
}
