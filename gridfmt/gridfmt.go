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

// Package gridfmt 把盤面快照與會話結果排版成人可讀的文字，
// 供 CLI demo 模式與除錯輸出使用。所有圖標代號都是固定 2 字寬。
package gridfmt

import (
	"fmt"
	"strings"

	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
)

// Frame 把一張盤面快照排版成帶外框的文字方陣。
func Frame(f *buf.Frame) string {
	if f == nil || f.Rows == 0 || f.Cols == 0 {
		return ""
	}
	var sb strings.Builder
	border := "+" + strings.Repeat("-", f.Cols*3+1) + "+\n"
	sb.WriteString(border)
	for r := 0; r < f.Rows; r++ {
		sb.WriteString("|")
		for c := 0; c < f.Cols; c++ {
			sb.WriteString(" ")
			sb.WriteString(f.Cells[r*f.Cols+c].String())
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// Session 把一次押注會話的連鎖過程排版成逐輪紀錄：
// 每輪列出贏分、消除紀錄與消除後補滿的盤面快照。
func Session(s *buf.SessionResult) string {
	if s == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] bet=%d mult=%d win=%d rounds=%d\n",
		s.GameName, s.Bet, s.BetMult, s.TotalWin, len(s.Rounds))
	for i := range s.Rounds {
		r := &s.Rounds[i]
		fmt.Fprintf(&sb, "-- round %d: win=%d destroyed=%d\n", r.Round, r.Win, len(r.Destroyed))
		for _, d := range r.Destroyed {
			fmt.Fprintf(&sb, "   %s (%d,%d)\n", d.Symbol, d.Row, d.Col)
		}
		sb.WriteString(Frame(&r.Snapshot))
	}
	return sb.String()
}
