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
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestWinBucketIndex(t *testing.T) {
	b := Buckets.GetBucketByBetUnit(1)
	cases := []struct{ win, idx int }{
		{0, 0},
		{1, 2},     // [1,2)
		{4, 3},     // [2,5)
		{99, 7},    // [50,100)
		{1999, 11}, // [1000,2000)
		{2000, 12}, // [2000,10000)
		{9999, 12},
		{10000, 13}, // [10000,+inf)
	}
	for _, c := range cases {
		if got := b.Index(c.win); got != c.idx {
			t.Fatalf("index(%d) = %d, want %d", c.win, got, c.idx)
		}
	}
}

func TestWinBucketScalesWithBetUnit(t *testing.T) {
	b := Buckets.GetBucketByBetUnit(5)
	// 押注單位 5，win 5 = 1 倍 -> [1,2)
	if got := b.Index(5); got != 2 {
		t.Fatalf("index(5) = %d, want 2", got)
	}
	if got := b.Index(4); got != 1 {
		t.Fatalf("index(4) = %d, want 1 ((0,1))", got)
	}
}

func newReport(spins, totalBet, totalWin, noWin int) *StatReport {
	return &StatReport{
		Summary: &SummaryReport{
			GameName:   "g",
			BetUnits:   []int{1},
			BetUnit:    1,
			TotalBet:   totalBet,
			TotalWin:   totalWin,
			NoWinSpins: noWin,
			Spins:      spins,
		},
		Mult: &MultReport{
			TotalWinMult:      float64(totalWin),
			TotalWinMultSqSum: float64(totalWin * totalWin),
		},
		Dist: &DistReport{
			DepthCollect: make([]int, len(DepthLabels)),
		},
	}
}

func TestStatReportDerived(t *testing.T) {
	r := newReport(100, 100, 95, 60)
	r.Done()

	if math.Abs(r.Summary.RTP-0.95) > 1e-9 {
		t.Fatalf("rtp = %f", r.Summary.RTP)
	}
	if math.Abs(r.Summary.HitRate-0.4) > 1e-9 {
		t.Fatalf("hit rate = %f", r.Summary.HitRate)
	}
	ci := r.Summary.RtpCI
	if ci.Lo > r.Summary.RTP || ci.Hi < r.Summary.RTP {
		t.Fatalf("ci %+v does not contain rtp", ci)
	}
	if ci.Lo < 0 {
		t.Fatalf("ci lower bound must clamp at 0: %+v", ci)
	}
}

func TestEstimatorShards(t *testing.T) {
	mk := func(win int) *StatReport {
		r := newReport(100, 100, win, 50)
		r.Dist.DepthCollect[3] = 10 // 每個分片 10 筆深消除
		return r
	}
	sts := []*StatReport{mk(90), mk(95), mk(100), mk(105), mk(110)}

	est := EstimatorShards(sts)
	if math.Abs(est.RtpMedian.Hat-1.0) > 1e-9 {
		t.Fatalf("median rtp = %f, want 1.0", est.RtpMedian.Hat)
	}
	if est.RtpP10.Hat > est.RtpMedian.Hat || est.RtpP90.Hat < est.RtpMedian.Hat {
		t.Fatalf("quantiles out of order: %+v", est)
	}
	if math.Abs(est.NoWinRate.Hat-0.5) > 1e-9 {
		t.Fatalf("no-win rate = %f, want 0.5", est.NoWinRate.Hat)
	}
	if math.Abs(est.DeepRate.Hat-0.1) > 1e-9 {
		t.Fatalf("deep rate = %f, want 0.1", est.DeepRate.Hat)
	}
	// CP 區間必須包住點估計
	if est.NoWinRate.CI.Lo > 0.5 || est.NoWinRate.CI.Hi < 0.5 {
		t.Fatalf("no-win ci %+v", est.NoWinRate.CI)
	}

	if e := EstimatorShards(nil); e == nil {
		t.Fatal("empty input should return zero-value spread")
	}
}

func TestRenderYAMLFlowStyle(t *testing.T) {
	r := newReport(10, 10, 5, 5)
	r.Dist.TotalWinCollect = []int{5, 3, 2}
	r.Dist.WinBucket = []string{"a", "b", "c"}

	var bb bytes.Buffer
	if err := r.WriteWith(&bb, &YAMLStatReportRender{}); err != nil {
		t.Fatalf("yaml render failed: %v", err)
	}
	out := bb.String()
	if !strings.Contains(out, "TotalWinCollect: [5, 3, 2]") {
		t.Fatalf("inner list should render in flow style:\n%s", out)
	}

	bb.Reset()
	if err := r.WriteWith(&bb, &JsonStatReportRender{}); err != nil {
		t.Fatalf("json render failed: %v", err)
	}
	if !strings.Contains(bb.String(), "\"RTP\":0.5") {
		t.Fatalf("json output missing rtp:\n%s", bb.String())
	}
}
