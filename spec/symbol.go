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

package spec

// Symbol 是盤面格子的封閉集合。
//
// Empty 刻意定為零值：重力壓縮與消除都沿用「screen[i] != 0 代表有圖標」的慣例，
// 新配置的盤面 buffer 天然就是全空。
//
// 序數規則（不可改動）：H1..L8 連續排列，PayIndex() 直接以序數對應賠付表的列，
// Wild / Blocker / Empty 永遠不作為賠付表索引。
type Symbol int16

const (
	Empty Symbol = iota // 空格，只在消除與補盤之間短暫存在

	// 高分圖標
	H1
	H2
	H3
	H4

	// 低分圖標
	L5
	L6
	L7
	L8

	WR      // Wild 百搭：可依附任何普通圖標的 cluster，但不能自己當起點
	Blocker // 阻擋圖標：永不進 cluster，消除時受波及移除
)

// NumPaySymbols 是會進賠付表的普通圖標數量（H1..L8）。
const NumPaySymbols = 8

// Catalog 是抽樣時的穩定順序：八個普通圖標、Wild、Blocker。
// Empty 不參與抽樣。
var Catalog = [...]Symbol{H1, H2, H3, H4, L5, L6, L7, L8, WR, Blocker}

var symbolName = map[Symbol]string{
	Empty:   "  ",
	H1:      "H1",
	H2:      "H2",
	H3:      "H3",
	H4:      "H4",
	L5:      "L5",
	L6:      "L6",
	L7:      "L7",
	L8:      "L8",
	WR:      "WR",
	Blocker: "##",
}

var symbolByName = map[string]Symbol{
	"H1": H1,
	"H2": H2,
	"H3": H3,
	"H4": H4,
	"L5": L5,
	"L6": L6,
	"L7": L7,
	"L8": L8,
	"WR": WR,
	"##": Blocker,
}

// String 回傳圖標的顯示名稱，Blocker 顯示為 "##"、Empty 為兩個空白。
func (s Symbol) String() string {
	if str, ok := symbolName[s]; ok {
		return str
	}
	return "??"
}

// ParseSymbol 由設定檔字串解析圖標。
func ParseSymbol(str string) (Symbol, bool) {
	s, ok := symbolByName[str]
	return s, ok
}

// IsEmpty 回傳是否為空格。
func (s Symbol) IsEmpty() bool { return s == Empty }

// IsHigh 回傳是否為高分圖標。
func (s Symbol) IsHigh() bool { return s >= H1 && s <= H4 }

// IsLow 回傳是否為低分圖標。
func (s Symbol) IsLow() bool { return s >= L5 && s <= L8 }

// IsOrdinary 回傳是否為普通圖標（可作為 cluster 起點、可索引賠付表）。
func (s Symbol) IsOrdinary() bool { return s >= H1 && s <= L8 }

// IsWild 回傳是否為 Wild。
func (s Symbol) IsWild() bool { return s == WR }

// IsBlocker 回傳是否為阻擋圖標。
func (s Symbol) IsBlocker() bool { return s == Blocker }

// PayIndex 回傳普通圖標在賠付表中的列索引（H1=0 .. L8=7）。
// 非普通圖標回傳 -1，呼叫端必須先以 IsOrdinary 篩過。
func (s Symbol) PayIndex() int {
	if !s.IsOrdinary() {
		return -1
	}
	return int(s) - int(H1)
}
