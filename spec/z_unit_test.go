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

import (
	"testing"
	"testing/fstest"
)

func TestSymbolPredicates(t *testing.T) {
	cases := []struct {
		s        Symbol
		ordinary bool
		payIdx   int
	}{
		{H1, true, 0},
		{H4, true, 3},
		{L5, true, 4},
		{L8, true, 7},
		{WR, false, -1},
		{Blocker, false, -1},
		{Empty, false, -1},
	}
	for _, c := range cases {
		if c.s.IsOrdinary() != c.ordinary {
			t.Fatalf("%v: IsOrdinary = %v", c.s, c.s.IsOrdinary())
		}
		if c.s.PayIndex() != c.payIdx {
			t.Fatalf("%v: PayIndex = %d, want %d", c.s, c.s.PayIndex(), c.payIdx)
		}
	}
}

func TestParseSymbolRoundTrip(t *testing.T) {
	for _, s := range Catalog {
		got, ok := ParseSymbol(s.String())
		if !ok || got != s {
			t.Fatalf("round trip failed for %v", s)
		}
	}
	if _, ok := ParseSymbol("XX"); ok {
		t.Fatal("unknown symbol should not parse")
	}
}

// 分級斷點 8/12/16/20 的邊界兩側都要落在正確的級
func TestTierBoundaries(t *testing.T) {
	ss := DefaultSymbolSetting()
	if err := ss.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	cases := []struct{ size, tier int }{
		{5, 0}, {8, 0}, {9, 1},
		{12, 1}, {13, 2},
		{16, 2}, {17, 3},
		{20, 3}, {21, 4}, {64, 4},
	}
	for _, c := range cases {
		if got := ss.Tier(c.size); got != c.tier {
			t.Fatalf("tier(%d) = %d, want %d", c.size, got, c.tier)
		}
	}
}

func TestPayLookup(t *testing.T) {
	ss := DefaultSymbolSetting()
	if err := ss.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	cases := []struct {
		s    Symbol
		size int
		want int
	}{
		{H1, 5, 5},
		{H1, 9, 6},
		{H1, 21, 10},
		{H2, 8, 4},
		{H4, 13, 5},
		{L5, 5, 1},
		{L8, 21, 5},
		{WR, 5, 0},
		{Blocker, 5, 0},
	}
	for _, c := range cases {
		if got := ss.Pay(c.s, c.size); got != c.want {
			t.Fatalf("pay(%v, %d) = %d, want %d", c.s, c.size, got, c.want)
		}
	}
}

func TestGameSettingInitErrors(t *testing.T) {
	bad := func(mutate func(*GameSetting)) *GameSetting {
		gs := DefaultGameSetting()
		mutate(gs)
		return gs
	}

	cases := []struct {
		name string
		gs   *GameSetting
	}{
		{"empty name", bad(func(g *GameSetting) { g.GameName = "" })},
		{"no bet units", bad(func(g *GameSetting) { g.BetUnits = nil })},
		{"zero bet unit", bad(func(g *GameSetting) { g.BetUnits = []int{0} })},
		{"min cluster too small", bad(func(g *GameSetting) { g.MinCluster = 1 })},
		{"min cluster exceeds grid", bad(func(g *GameSetting) { g.MinCluster = 65 })},
		{"zero rows", bad(func(g *GameSetting) { g.Grid.Rows = 0 })},
		{"unknown weight symbol", bad(func(g *GameSetting) { g.Symbols.WeightsRaw["XX"] = 1 })},
		{"negative weight", bad(func(g *GameSetting) { g.Symbols.WeightsRaw["H1"] = -1 })},
		{"short pay table", bad(func(g *GameSetting) { g.Symbols.PayTable = g.Symbols.PayTable[:7] })},
		{"ragged pay row", bad(func(g *GameSetting) { g.Symbols.PayTable[2] = []int{1, 2} })},
		{"non-increasing breaks", bad(func(g *GameSetting) { g.Symbols.TierBreaks = []int{8, 8, 16, 20} })},
	}
	for _, c := range cases {
		if err := c.gs.Init(); err == nil {
			t.Fatalf("%s: expected init error", c.name)
		}
	}
}

func TestDefaultSettingInit(t *testing.T) {
	gs := DefaultGameSetting()
	if err := gs.Init(); err != nil {
		t.Fatalf("default setting should init: %v", err)
	}
	if gs.Grid.GridSize != 64 {
		t.Fatalf("grid size = %d, want 64", gs.Grid.GridSize)
	}
	if gs.Symbols.TotalWeight != 1000 {
		t.Fatalf("total weight = %d, want 1000", gs.Symbols.TotalWeight)
	}
	// 重複 Init 是 no-op
	if err := gs.Init(); err != nil {
		t.Fatalf("re-init failed: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"mini.yaml": &fstest.MapFile{Data: []byte(`
game_name: mini
bet_units: [1, 2]
min_cluster: 2
grid:
  rows: 3
  columns: 3
symbols:
  weights: {H1: 1, H2: 1, H3: 1, H4: 1, L5: 1, L6: 1, L7: 1, L8: 1}
  tier_breaks: [4, 6]
  pay_table:
    - [5, 6, 7]
    - [4, 5, 6]
    - [4, 5, 6]
    - [3, 4, 5]
    - [1, 2, 3]
    - [1, 2, 3]
    - [1, 2, 3]
    - [1, 2, 3]
`)},
	}
	gs, err := Load(fsys, "mini.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if gs.GameName != "mini" || gs.Grid.GridSize != 9 {
		t.Fatalf("unexpected setting: %+v", gs)
	}
	if gs.Symbols.Tier(5) != 1 || gs.Symbols.Tier(7) != 2 {
		t.Fatal("custom tier breaks not applied")
	}
	// Wild / Blocker 權重缺漏視為 0
	if gs.Symbols.Weights[8] != 0 || gs.Symbols.Weights[9] != 0 {
		t.Fatalf("missing weights should default to 0: %v", gs.Symbols.Weights)
	}

	if _, err := Load(fsys, "absent.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
