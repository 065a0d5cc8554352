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

package recorder

import (
	"fmt"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/stats"
)

// SessionRecorder 遊戲紀錄員
//
// 累積每次 spin 的 SessionResult，透過 Done 輸出統計報表。
// 紀錄過程只累積 int，所有浮點統計延後到 Done。
type SessionRecorder struct {
	GameName string
	BetUnits []int
	BetUnit  int
	BetMode  int
	Basic    *BasicRecord
	Dist     *DistRecord
}

// BasicRecord 基本遊戲資料紀錄
type BasicRecord struct {
	TotalBet      int
	TotalWin      int
	TotalWinSqSum int // 平方和
	Spins         int
	NoWinSpins    int
	Cascades      int // 消除輪總數
	MaxCascade    int
	Destroyed     int // 消除圖標總數（含波及）
	Blockers      int // 其中被波及的 Blocker
}

// DistRecord 分數與消除深度的落點統計
type DistRecord struct {
	Bucket          *stats.WinBucket
	TotalWinCollect []int
	DepthCollect    []int
}

func NewSessionRecorder(name string, betUnits []int, betMode int) (*SessionRecorder, error) {
	s := new(SessionRecorder)

	if len(betUnits) == 0 {
		return s, errs.NewFatal(fmt.Sprintf("betunits err %v", betUnits))
	}
	for _, v := range betUnits {
		if v <= 0 {
			return s, errs.NewFatal(fmt.Sprintf("betunits err %v", betUnits))
		}
	}
	if betMode < 0 || betMode >= len(betUnits) {
		return s, errs.NewFatal(fmt.Sprintf("betMode err %d", betMode))
	}

	s.GameName = name
	s.BetUnits = betUnits
	s.BetUnit = betUnits[betMode]
	s.BetMode = betMode
	s.Basic = new(BasicRecord)
	s.Dist = newDistRecord(s.BetUnit)

	return s, nil
}

// MergeSessionRecorder 合併多個 worker 的紀錄。
// 所有紀錄必須出自同一份遊戲設定與押注模式。
func MergeSessionRecorder(r []*SessionRecorder) (*SessionRecorder, error) {
	r0 := r[0]
	s, err := NewSessionRecorder(r0.GameName, r0.BetUnits, r0.BetMode)
	if err != nil {
		return s, err
	}
	for _, v := range r {
		if v.GameName != r0.GameName {
			return s, errs.NewFatal("merge session record err : different game name")
		}
		for i, b := range v.BetUnits {
			if b != r0.BetUnits[i] {
				return s, errs.NewFatal("merge session record err : different betunits")
			}
		}
		if v.BetMode != r0.BetMode {
			return s, errs.NewFatal("merge session record err : different betmode")
		}
		s.Basic.TotalBet += v.Basic.TotalBet
		s.Basic.TotalWin += v.Basic.TotalWin
		s.Basic.TotalWinSqSum += v.Basic.TotalWinSqSum
		s.Basic.Spins += v.Basic.Spins
		s.Basic.NoWinSpins += v.Basic.NoWinSpins
		s.Basic.Cascades += v.Basic.Cascades
		if v.Basic.MaxCascade > s.Basic.MaxCascade {
			s.Basic.MaxCascade = v.Basic.MaxCascade
		}
		s.Basic.Destroyed += v.Basic.Destroyed
		s.Basic.Blockers += v.Basic.Blockers

		for i := range v.Dist.TotalWinCollect {
			s.Dist.TotalWinCollect[i] += v.Dist.TotalWinCollect[i]
		}
		for i := range v.Dist.DepthCollect {
			s.Dist.DepthCollect[i] += v.Dist.DepthCollect[i]
		}
	}
	return s, nil
}

// Record 以單次 SessionResult 更新統計
func (s *SessionRecorder) Record(sr *buf.SessionResult) {
	w := sr.TotalWin
	depth := len(sr.Rounds)

	s.Basic.TotalBet += sr.Bet
	s.Basic.TotalWin += w
	s.Basic.TotalWinSqSum += w * w
	s.Basic.Spins++
	if w == 0 {
		s.Basic.NoWinSpins++
	}
	s.Basic.Cascades += depth
	if depth > s.Basic.MaxCascade {
		s.Basic.MaxCascade = depth
	}
	for i := range sr.Rounds {
		for _, d := range sr.Rounds[i].Destroyed {
			s.Basic.Destroyed++
			if d.Symbol.IsBlocker() {
				s.Basic.Blockers++
			}
		}
	}

	s.Dist.TotalWinCollect[s.Dist.Bucket.Index(w)]++
	s.Dist.DepthCollect[depthIndex(depth)]++
}

// Done 輸出統計報表。報表完成各項衍生統計的計算（呼叫端無須再 Done）。
func (s *SessionRecorder) Done() *stats.StatReport {
	bufloat := float64(s.BetUnit)
	bb := bufloat * bufloat

	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			GameName:   s.GameName,
			BetUnits:   s.BetUnits,
			BetUnit:    s.BetUnit,
			BetMode:    s.BetMode,
			TotalBet:   s.Basic.TotalBet,
			TotalWin:   s.Basic.TotalWin,
			NoWinSpins: s.Basic.NoWinSpins,
			Spins:      s.Basic.Spins,
			Cascades:   s.Basic.Cascades,
			MaxCascade: s.Basic.MaxCascade,
			Destroyed:  s.Basic.Destroyed,
			Blockers:   s.Basic.Blockers,
		},
		Mult: &stats.MultReport{
			TotalWinMult:      float64(s.Basic.TotalWin) / bufloat,
			TotalWinMultSqSum: float64(s.Basic.TotalWinSqSum) / bb,
		},
		Dist: &stats.DistReport{
			WinBucket:       stats.Buckets.WinBucketStr(),
			TotalWinCollect: s.Dist.TotalWinCollect,
			DepthBucket:     stats.DepthLabels,
			DepthCollect:    s.Dist.DepthCollect,
		},
	}

	if s.Basic.Spins > 0 {
		rf := float64(s.Basic.Spins)
		winDist := make([]float64, len(report.Dist.TotalWinCollect))
		for i, c := range report.Dist.TotalWinCollect {
			winDist[i] = float64(c) / rf
		}
		depthDist := make([]float64, len(report.Dist.DepthCollect))
		for i, c := range report.Dist.DepthCollect {
			depthDist[i] = float64(c) / rf
		}
		report.Dist.TotalWinDist = winDist
		report.Dist.DepthDist = depthDist
	}

	report.Done()
	return report
}

func depthIndex(depth int) int {
	if depth >= len(stats.DepthLabels) {
		return len(stats.DepthLabels) - 1
	}
	return depth
}

func newDistRecord(bu int) *DistRecord {
	d := new(DistRecord)
	d.Bucket = stats.Buckets.GetBucketByBetUnit(bu)
	d.TotalWinCollect = make([]int, len(stats.Buckets.WinBucketStr()))
	d.DepthCollect = make([]int, len(stats.DepthLabels))
	return d
}
