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

import "github.com/Jas1212/RelaxGamingTest/errs"

// GameSetting 是單一機台的完整規格，由 YAML 設定檔解碼。
//
// 結構對應：
//   - GridSetting: 盤面維度
//   - SymbolSetting: 抽樣權重 + 賠付表 + 分級斷點
//   - MinCluster: 最低成團顆數
//   - BetUnits: 可用押注單位，贏分 = 賠付倍數 * 押注倍數
//
// Init 完成後視為唯讀；同一份 GameSetting 可被多台機台共用。
type GameSetting struct {
	GameName   string        `yaml:"game_name"   json:"game_name"`
	BetUnits   []int         `yaml:"bet_units"   json:"bet_units"`
	MinCluster int           `yaml:"min_cluster" json:"min_cluster"`
	Grid       GridSetting   `yaml:"grid"        json:"grid"`
	Symbols    SymbolSetting `yaml:"symbols"     json:"symbols"`
	initFlag   bool
}

// DefaultGameSetting 回傳原始遊戲的固定設定：8x8 盤面、最低 5 顆成團、等權重圖標。
func DefaultGameSetting() *GameSetting {
	return &GameSetting{
		GameName:   "relax_cascade",
		BetUnits:   []int{1, 2, 5, 10},
		MinCluster: 5,
		Grid:       DefaultGridSetting(),
		Symbols:    DefaultSymbolSetting(),
	}
}

// Init 驗證整份設定並初始化所有子設定。重複呼叫為 no-op。
func (gs *GameSetting) Init() error {
	if gs.initFlag {
		return nil
	}
	if gs.GameName == "" {
		return errs.NewFatal("game_name is required")
	}
	if len(gs.BetUnits) == 0 {
		return errs.NewFatal("bet_units is empty")
	}
	for _, b := range gs.BetUnits {
		if b <= 0 {
			return errs.Fatalf("bet_units must be positive: %v", gs.BetUnits)
		}
	}
	if gs.MinCluster < 2 {
		return errs.Fatalf("min_cluster must be >= 2, got %d", gs.MinCluster)
	}
	if err := gs.Grid.Init(); err != nil {
		return err
	}
	if err := gs.Symbols.Init(); err != nil {
		return err
	}
	// 成團門檻大於盤面大小的設定永遠不可能中獎，視為寫錯
	if gs.MinCluster > gs.Grid.GridSize {
		return errs.Fatalf("min_cluster %d exceeds grid size %d", gs.MinCluster, gs.Grid.GridSize)
	}
	gs.initFlag = true
	return nil
}
