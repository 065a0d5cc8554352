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

// Package buf 定義一次押注會話（session）的結果緩衝。
//
// 一場 session 由多個 round 組成：每個 round 是一次「找團 → 派彩 → 消除 →
// 掉落 → 補盤」的循環。RoundResult 一旦被 LogRound 落地就視為不可變；
// SessionResult 只持有快照副本，永遠不引用活盤面。
package buf

import "github.com/Jas1212/RelaxGamingTest/spec"

const capRoundGrow = 8

// Destroyed 描述一顆被消除的圖標與其座標。
//
// 順序合約：同一個 cluster 內依 BFS 拜訪順序排列；因消除而受波及的
// Blocker 緊跟在觸發它的那顆圖標之後。
type Destroyed struct {
	Symbol spec.Symbol `json:"symbol"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
}

// Frame 是盤面的獨立快照，與活盤面不共享底層記憶體。
type Frame struct {
	Rows  int           `json:"rows"`
	Cols  int           `json:"cols"`
	Cells []spec.Symbol `json:"cells"` // row-major，長度 = Rows*Cols
}

// At 回傳 (row, col) 的圖標。
func (f *Frame) At(row, col int) spec.Symbol {
	return f.Cells[row*f.Cols+col]
}

// RoundResult 保存單一 round 的結果：序號（1-based）、消除紀錄、
// round 贏分與「補盤完成後」的盤面快照。
type RoundResult struct {
	Round     int         `json:"round"`
	Win       int         `json:"win"`
	Destroyed []Destroyed `json:"destroyed"`
	Snapshot  Frame       `json:"snapshot"`
}

// SessionResult 保存一次完整押注會話的結果。
type SessionResult struct {
	GameName string        `json:"game"`
	Bet      int           `json:"bet"`
	BetMult  int           `json:"bet_mult"`
	TotalWin int           `json:"total_win"`
	Rounds   []RoundResult `json:"rounds"`
	Seed     int64         `json:"seed,omitempty"` // 機台出生 seed，供審計追溯
	ended    bool
}

// NewSessionResult 建立 session 緩衝並預配 round 容量。
func NewSessionResult(gameName string) *SessionResult {
	return &SessionResult{
		GameName: gameName,
		Rounds:   make([]RoundResult, 0, capRoundGrow),
	}
}

// LogRound 落地一個完成的 round 並累加總贏分。
// round 序號必須嚴格遞增（上一round+1），否則是解算迴圈的 bug。
func (s *SessionResult) LogRound(r RoundResult) {
	if s.ended {
		panic("session already ended, but still log new round")
	}
	if r.Round != len(s.Rounds)+1 {
		panic("round number out of order")
	}
	s.TotalWin += r.Win
	s.Rounds = append(s.Rounds, r)
}

// End 結束 session，之後任何 LogRound 都會 panic。
func (s *SessionResult) End() {
	s.ended = true
}

// Ended 回傳 session 是否已結束。
func (s *SessionResult) Ended() bool { return s.ended }

// Reset 重置累積資料，保留已配置的內部切片容量。
func (s *SessionResult) Reset() {
	s.Bet = 0
	s.BetMult = 0
	s.TotalWin = 0
	s.Rounds = s.Rounds[:0]
	s.Seed = 0
	s.ended = false
}
