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

// Package cascade 是 cluster-pays 消除引擎的組裝入口（assembler）。
//
// Lab 把兩個地基組在一起，並提供建立 Machine / Simulator / MachinePool 的入口：
//  1. GameSetting：盤面維度、圖標權重、賠付表（由 fs.FS 注入的 YAML，或內建預設）。
//  2. PRNGFactory：亂數核心工廠，保證可重現（reproducible）與可審計（auditable）。
//
// 設定檔來源一律以 fs.FS 注入：go:embed 把 configs 編進 binary 最穩定，
// 本機開發用 os.DirFS 也行。Lab 不解析路徑，只認檔名。
//
// 典型使用情境：
//   - 後端服務（HTTP）：由 Lab 建立 MachinePool，pool 對外提供 Spin。
//   - 模擬器（sim）：由 Lab 建立 Simulator 進行大量模擬。
package cascade

import (
	"io/fs"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

// Lab 是組裝器：持有一份完成 Init 的遊戲設定與 RNG 工廠。
// 同一個 Lab 建出來的所有機台共用同一份設定（唯讀）與一致的 RNG 行為。
type Lab struct {
	gs *spec.GameSetting
	cf core.PRNGFactory
}

// New 由 fs.FS 內的 YAML 設定檔組裝 Lab。
func New(cf core.PRNGFactory, cfgs fs.FS, name string) (*Lab, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	if cfgs == nil {
		return nil, errs.NewFatal("configs required")
	}
	gs, err := spec.Load(cfgs, name)
	if err != nil {
		return nil, err
	}
	return &Lab{gs: gs, cf: cf}, nil
}

// NewDefault 以內建預設設定組裝 Lab（8x8 盤面、等權重圖標、固定賠付表）。
func NewDefault(cf core.PRNGFactory) (*Lab, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	gs := spec.DefaultGameSetting()
	if err := gs.Init(); err != nil {
		return nil, err
	}
	return &Lab{gs: gs, cf: cf}, nil
}

// Setting 回傳 Lab 持有的遊戲設定。呼叫端視為唯讀。
func (l *Lab) Setting() *spec.GameSetting {
	return l.gs
}

// NewMachine 建立一台機台，seed 由 crypto/rand 產生。
func (l *Lab) NewMachine() (*Machine, error) {
	return newMachine(l.gs, l.cf)
}

// NewMachineWithSeed 以指定 seed 建立機台。
// 同一份設定 + 同一個 seed，應得到一致的隨機序列（取決於 PRNG 實作）。
func (l *Lab) NewMachineWithSeed(seed int64) (*Machine, error) {
	return newMachineWithSeed(l.gs, l.cf, seed)
}

// NewSimulator 建立模擬器，seed 由 crypto/rand 產生。
func (l *Lab) NewSimulator() (*Simulator, error) {
	return newSimulator(l.gs, l.cf)
}

// NewSimulatorWithSeed 以指定 seed 建立可重現的模擬器。
func (l *Lab) NewSimulatorWithSeed(seed int64) (*Simulator, error) {
	return newSimulatorWithSeed(l.gs, l.cf, seed)
}

// NewMachinePool 建立 n 台機台的池，供對外服務的併發 Spin。
func (l *Lab) NewMachinePool(n int) (*MachinePool, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return newMachinePool(n, l.gs, l.cf, seed)
}
