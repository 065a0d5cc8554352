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
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

// MachinePool 管理一款遊戲的所有機台實例，供對外服務的併發 Spin。
// 它透過兩個通道管理機台生命週期：
//  1. pool：健康且可用的機台，供 Spin() 借出 / 歸還。
//  2. broken：運作過程發生 panic 或 fatal 的壞機台，送往此通道待檢。
//
// 機台於執行期間 panic 或 fatal 時會被送至 broken，並立即補上新機維持容量。
type MachinePool struct {
	gameName      string
	gs            *spec.GameSetting
	cf            core.PRNGFactory
	initSeed      int64
	seedMaker     *seedMaker
	pool          chan *Machine // 可用機台的通道，用於取得和歸還機台
	broken        chan *Machine // 壞掉機台的通道，用於送修或丟棄壞掉機台
	done          chan struct{} // 關閉訊號：關閉後不再允許借機/歸還/補機
	closeOnce     sync.Once
	poolsize      int
	rebuild       atomic.Int32 // 補機次數
	inflight      atomic.Int32 // 使用中
	panics        atomic.Int32 // panic 次數
	fatals        atomic.Int32 // fatal 次數（機台狀態不可信）
	closeReason   atomic.Value // string: 關閉原因
	closeInflight atomic.Int32 // 關閉當下 inflight（快照）
	closeAvail    atomic.Int32 // 關閉當下 pool 可用數量（len(pool) 快照）
	closeBroken   atomic.Int32 // 關閉當下 broken backlog（len(broken) 快照）
}

func newMachinePool(n int, gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*MachinePool, error) {
	n = max(1, n)
	p := &MachinePool{
		gameName:  gs.GameName,
		gs:        gs,
		cf:        cf,
		initSeed:  seed,
		seedMaker: newSeedMaker(seed),
		pool:      make(chan *Machine, n),
		broken:    make(chan *Machine, 100),
		done:      make(chan struct{}),
		poolsize:  n,
	}

	p.closeReason.Store("")
	p.closeInflight.Store(-1)
	p.closeAvail.Store(-1)
	p.closeBroken.Store(-1)

	// 上架機台，將 n 台新機台放入池中
	for i := 0; i < n; i++ {
		m, err := newMachineWithSeed(gs, cf, p.seedMaker.next())
		if err != nil {
			return nil, err
		}
		p.pool <- m
	}
	return p, nil
}

// Close 進入關閉狀態：之後所有 Spin() 直接回 error。
func (p *MachinePool) Close() {
	p.closeWithReason("closed")
}

// Closed 回報池是否已進入關閉狀態。
func (p *MachinePool) Closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// closeWithReason 進入關閉狀態並記錄原因（reason 只會被寫入一次）。
func (p *MachinePool) closeWithReason(reason string) {
	p.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		p.closeReason.Store(reason)
		// 關閉瞬間做一次快照，方便外部觀測與故障排查
		p.closeInflight.Store(p.inflight.Load())
		p.closeAvail.Store(int32(len(p.pool)))
		p.closeBroken.Store(int32(len(p.broken)))
		close(p.done)
	})
}

// isFatalErr 判斷本次錯誤是否代表「機台狀態不可信」需要淘汰/補機。
//
// 原則：
//   - panic 一律視為 broken（由 caller 端的 defer/recover 處理）
//   - request/validation 類錯誤不淘汰機台
//   - 只有錯誤型別明確宣告 fatal 時才視為 broken
func isFatalErr(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*errs.E); ok {
		if e.ErrLv == errs.Fatal {
			return true
		}
	}
	return false
}

// Spin 借出一台機台執行一次押注會話並歸還。
// ctx 取消/逾時與池關閉都會立即回傳，不會卡在借機上。
func (p *MachinePool) Spin(ctx context.Context, betMode int, betMult int) (result *buf.SessionResult, err error) {
	var m *Machine
	borrowed := false
	select {
	case <-p.done:
		return nil, errs.NewFatal("machine pool closed: " + p.ClosedReason())
	case <-ctx.Done():
		return nil, errs.NewWarn("spin canceled/timeout: " + ctx.Err().Error())
	case m = <-p.pool:
		borrowed = true
		p.inflight.Add(1)
	}

	// 理論上不會拿到 nil；若發生代表 pool 有嚴重問題。
	if m == nil {
		return nil, errs.NewFatal("machine pool got nil machine")
	}

	var isPanic bool

	defer func() {
		if borrowed {
			// 有借有還 再借不難
			p.inflight.Add(-1)
		}
		if r := recover(); r != nil {
			isPanic = true
			p.panics.Add(1)
			err = errs.NewFatal(fmt.Sprintf("machine %s panic : %v", m.gameName, r))
		}

		// 已關閉就直接丟棄機台（不歸還、不補機），避免 send 到已停止的系統
		if p.Closed() {
			return
		}

		// panic 或致命錯誤代表機台狀態不可信：送修並補機
		if isPanic || isFatalErr(err) {
			if !isPanic && isFatalErr(err) {
				p.fatals.Add(1)
			}
			// 1) 壞機台送入 broken（避免阻塞）
			select {
			case p.broken <- m:
			default:
				// broken 通道滿代表系統可能正在連續故障：關閉讓上層接管維護
				p.closeWithReason("overwhelmed_by_failures")
				if err == nil {
					err = errs.NewFatal("machine pool overwhelmed by failures")
				}
				return
			}

			// 2) 補一台新機台（維持容量）
			newM, buildErr := newMachineWithSeed(p.gs, p.cf, p.seedMaker.next())
			p.rebuild.Add(1)
			if buildErr != nil {
				err = errs.NewFatal(fmt.Sprintf("machine %s can not build", p.gameName))
				p.closeWithReason("rebuild_failed")
				return
			}

			// 補機前再看一次是否已關閉（避免並行 Close 後 send / block）
			select {
			case <-p.done:
				return
			case p.pool <- newM:
			}
			return
		}

		// 非致命錯誤（多半是 request/validation）：機台健康，歸還 pool，err 原樣回傳
		select {
		case <-p.done:
			return
		case p.pool <- m:
		}
	}()

	sr, spinErr := m.Spin(betMode, betMult)
	if spinErr != nil {
		err = spinErr
		return
	}

	result = sr
	return
}

func (mp *MachinePool) PoolSize() int {
	return mp.poolsize
}

func (mp *MachinePool) Inflight() int {
	return int(mp.inflight.Load())
}

func (mp *MachinePool) ReBuild() int {
	return int(mp.rebuild.Load())
}

func (mp *MachinePool) ClosedReason() string {
	if v := mp.closeReason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (mp *MachinePool) Panics() int {
	return int(mp.panics.Load())
}

func (mp *MachinePool) Fatals() int {
	return int(mp.fatals.Load())
}

// MachinePoolMetrics 是拉取式（pull）的觀測快照。
//
// 不綁任何 metrics SDK，由上層自己決定如何輸出。Available/BrokenBacklog
// 來自 len(chan)，高併發下是近似值，但足夠用於營運觀測。
type MachinePoolMetrics struct {
	GameName string `json:"game_name"`

	PoolSize      int    `json:"pool_size"`      // 目標容量（初始化指定）
	Available     int    `json:"available"`      // 當下可借出的機台數（len(pool)）
	Inflight      int    `json:"inflight"`       // 使用中（借出未歸還）
	BrokenBacklog int    `json:"broken_backlog"` // broken channel 當下 backlog
	Rebuild       int    `json:"rebuild"`        // 補機次數
	Panics        int    `json:"panics"`         // panic 次數
	Fatals        int    `json:"fatals"`         // fatal 次數
	Closed        bool   `json:"closed"`         // 是否已關閉
	CloseReason   string `json:"close_reason"`   // 關閉原因

	CloseInflight int `json:"close_inflight"` // Close() 當下 inflight（-1 表示尚未關閉）
	CloseAvail    int `json:"close_avail"`    // Close() 當下 available（-1 表示尚未關閉）
	CloseBroken   int `json:"close_broken"`   // Close() 當下 broken backlog（-1 表示尚未關閉）
}

// Metrics 回傳觀測快照；上層可用於 log、/metrics 或餵給 exporter。
func (mp *MachinePool) Metrics() MachinePoolMetrics {
	return MachinePoolMetrics{
		GameName:      mp.gameName,
		PoolSize:      mp.poolsize,
		Available:     len(mp.pool),
		Inflight:      int(mp.inflight.Load()),
		BrokenBacklog: len(mp.broken),
		Rebuild:       int(mp.rebuild.Load()),
		Panics:        int(mp.panics.Load()),
		Fatals:        int(mp.fatals.Load()),
		Closed:        mp.Closed(),
		CloseReason:   mp.ClosedReason(),
		CloseInflight: int(mp.closeInflight.Load()),
		CloseAvail:    int(mp.closeAvail.Load()),
		CloseBroken:   int(mp.closeBroken.Load()),
	}
}

// Available 回傳當下 pool 可用機台數（len(pool)）。高併發下為近似值。
func (mp *MachinePool) Available() int {
	return len(mp.pool)
}
