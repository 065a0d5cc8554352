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

package cascade

import (
	"crypto/rand"
	"math"
	"math/big"
	"sync"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"github.com/Jas1212/RelaxGamingTest/sdk/grid"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

// Machine 封裝一台「可對外提供 Spin」的消除引擎機台。
//
// 對外：提供 Spin 入口（HTTP / 模擬器通常只操作 Machine）。
// 對內：持有 RNG（Core）、盤面（grid.Grid）與可重用的 session buffer。
//
// 並發語意：
//   - Machine 內含可重用的 session buffer（熱路徑），同一台 Machine 不應被
//     多 goroutine 同時 Spin；Spin 本身有 mutex 保底。
//   - 要併發就建多台 Machine 分散到 worker（見 Simulator / MachinePool）。
//
// Buffer 語意：
//   - SpinInternal 回傳的 SessionResult 是機台內部 buffer，下一次 spin 會覆寫；
//     需要保留就在下一次 spin 前取走欄位。Spin 則回傳獨立副本，安全持有。
//
// initseed 記錄出生 seed（追溯/重現的基礎資訊）；完整審計以 Core 的
// Snapshot/Restore 為準。
type Machine struct {
	gameName string
	core     *core.Core
	grid     *grid.Grid
	BetUnits []int
	session  *buf.SessionResult // 可重用的結果 buffer（熱路徑；每次 Spin 覆寫）
	mu       sync.Mutex
	initseed int64
}

// cryptoSeed 以 crypto/rand 產生機台出生 seed：
// 對外服務要避免可預測 RNG，同時保留可追溯性（seed 記錄於 initseed）。
func cryptoSeed() (int64, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return seed.Int64(), nil
}

func newMachine(gs *spec.GameSetting, cf core.PRNGFactory) (*Machine, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return newMachineWithSeed(gs, cf, seed)
}

func newMachineWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*Machine, error) {
	c := core.New(cf.New(seed))
	g, err := grid.New(gs, c)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		gameName: gs.GameName,
		core:     c,
		grid:     g,
		BetUnits: gs.BetUnits,
		session:  buf.NewSessionResult(gs.GameName),
		initseed: seed,
	}
	return m, nil
}

// Spin 為主要公開入口：驗證押注參數、生成新盤、跑解算迴圈直到穩定，
// 回傳獨立的 session 副本（與機台內部 buffer 不共享可變記憶體）。
//
// 贏分 = 賠付倍數 * betMult；bet = BetUnits[betMode] * betMult。
func (m *Machine) Spin(betMode int, betMult int) (*buf.SessionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if betMode < 0 || betMode >= len(m.BetUnits) {
		return nil, errs.NewWarn("bet mode out of range")
	}
	if betMult < 1 {
		return nil, errs.NewWarn("bet mult must >= 1")
	}

	m.spin(betMode, betMult)
	return m.cloneSession(), nil
}

// SpinInternal 直接取得內部 session buffer；模擬器熱路徑專用。
//
// 跳過所有檢查、固定 betMult 1，回傳值在下一次 spin 時被覆寫。
// 請勿在對外服務使用。
func (m *Machine) SpinInternal(betMode int) *buf.SessionResult {
	m.spin(betMode, 1)
	return m.session
}

// spin 在鎖內（或單執行緒）執行一次完整押注會話。
func (m *Machine) spin(betMode int, betMult int) {
	s := m.session
	s.Reset()
	s.Bet = m.BetUnits[betMode] * betMult
	s.BetMult = betMult
	s.Seed = m.initseed

	m.grid.Generate()
	m.grid.Resolve(s, betMult)
	s.End()
}

// cloneSession 複製 session。round 內的消除紀錄與快照每次 spin 都是新配置，
// 只需要複製 Rounds 表頭就能脫離內部 buffer 的生命週期。
func (m *Machine) cloneSession() *buf.SessionResult {
	src := m.session
	out := &buf.SessionResult{
		GameName: src.GameName,
		Bet:      src.Bet,
		BetMult:  src.BetMult,
		TotalWin: src.TotalWin,
		Rounds:   make([]buf.RoundResult, len(src.Rounds)),
		Seed:     src.Seed,
	}
	copy(out.Rounds, src.Rounds)
	out.End()
	return out
}

// SnapshotCore 取得 Core 狀態暫存，供審計/重現。
func (m *Machine) SnapshotCore() ([]byte, error) {
	return m.core.Snapshot()
}

// RestoreCore 恢復 Core 狀態暫存。
func (m *Machine) RestoreCore(src []byte) error {
	return m.core.Restore(src)
}

// InitSeed 回傳機台出生 seed。
func (m *Machine) InitSeed() int64 {
	return m.initseed
}

// GameName 回傳機台綁定的遊戲名稱。
func (m *Machine) GameName() string {
	return m.gameName
}
