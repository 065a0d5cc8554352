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

// GridSetting 描述盤面維度。
//
// Fields:
//   - Rows: 盤面列數
//   - Columns: 盤面行數
//
// GridSize 由 Init 衍生，為 Rows * Columns。
type GridSetting struct {
	Rows     int `yaml:"rows"    json:"rows"`
	Columns  int `yaml:"columns" json:"columns"`
	GridSize int `yaml:"-"       json:"-"`
	initFlag bool
}

// DefaultGridSetting 回傳原始遊戲固定的 8x8 盤面。
func DefaultGridSetting() GridSetting {
	return GridSetting{Rows: 8, Columns: 8}
}

// Init 檢查不合法的設定
func (gs *GridSetting) Init() error {
	if gs.initFlag {
		return nil
	}
	if gs.Rows < 1 || gs.Columns < 1 {
		return errs.Fatalf("grid dimensions must be positive: %dx%d", gs.Rows, gs.Columns)
	}
	gs.GridSize = gs.Rows * gs.Columns
	gs.initFlag = true
	return nil
}
