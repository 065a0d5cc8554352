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
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/recorder"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"github.com/Jas1212/RelaxGamingTest/spec"
	"github.com/Jas1212/RelaxGamingTest/stats"
	"github.com/cheggaaa/pb/v3"
)

const capPrepare int = 100

// Simulator 用於模擬消除引擎行為，可建立多台機台並平行紀錄統計。
type Simulator struct {
	GameName  string                      // 遊戲名稱
	gs        *spec.GameSetting           // 方便重用建立 recorder
	cf        core.PRNGFactory            // 亂數生成器
	initSeed  int64                       // 初始下的種子
	seedmaker *seedMaker                  // 種子生成器
	mBuf      []*Machine                  // 併發執行機台實例
	rBuf      []*recorder.SessionRecorder // 併發遊戲紀錄員
	sBuf      []*stats.StatReport         // 併發統計結果報表(僅 Shards 需要)
}

func newSimulator(gs *spec.GameSetting, cf core.PRNGFactory) (*Simulator, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, cf, seed)
}

func newSimulatorWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*Simulator, error) {
	s := &Simulator{
		GameName:  gs.GameName,
		gs:        gs,
		cf:        cf,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		mBuf:      make([]*Machine, 1, capPrepare),
		rBuf:      make([]*recorder.SessionRecorder, 0, capPrepare),
		sBuf:      make([]*stats.StatReport, 0, capPrepare),
	}
	m, err := newMachineWithSeed(gs, cf, s.initSeed)
	if err != nil {
		return nil, err
	}
	s.mBuf[0] = m
	return s, nil
}

// Sim 單線模擬器：以一台機台連續跑指定 spins 並回傳統計結果與用時
func (s *Simulator) Sim(betMode int, spins int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if betMode < 0 || betMode >= len(s.gs.BetUnits) {
		return nil, 0, errs.NewWarn("bet mode err: must >= 0 and < len(betunits)")
	}
	if spins < 1 {
		return nil, 0, errs.NewWarn("spins must > 0")
	}
	if len(s.rBuf) == 0 {
		r, err := recorder.NewSessionRecorder(s.GameName, s.gs.BetUnits, betMode)
		if err != nil {
			return nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}
	r := s.rBuf[0]
	m := s.mBuf[0]

	bar := pb.StartNew(spins)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < spins; i++ {
		sr := m.SpinInternal(betMode)
		r.Record(sr)
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()
	result := r.Done()

	return result, used, nil
}

// SimMP 平行執行多個機台，總計 spins*mp 次 spin，合併統計結果後回傳統計結果與用時
func (s *Simulator) SimMP(betMode int, spins int, mp int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if betMode < 0 || betMode >= len(s.gs.BetUnits) {
		return nil, 0, errs.NewWarn("bet mode err: must >= 0 and < len(betunits)")
	}
	if spins < 1 {
		return nil, 0, errs.NewWarn("spins must > 0")
	}
	for len(s.mBuf) < mp {
		m, err := newMachineWithSeed(s.gs, s.cf, s.seedmaker.next())
		if err != nil {
			return nil, 0, err
		}
		s.mBuf = append(s.mBuf, m)
	}

	for len(s.rBuf) < mp {
		r, err := recorder.NewSessionRecorder(s.GameName, s.gs.BetUnits, betMode)
		if err != nil {
			return nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}

	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := pb.StartNew(spins * mp)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < mp; i++ {
		go func(i int) {
			defer wg.Done()
			g := s.mBuf[i]
			st := s.rBuf[i]
			for r := 0; r < spins; r++ {
				sr := g.SpinInternal(betMode)
				st.Record(sr)
				bar.Increment()
			}
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	st, err := recorder.MergeSessionRecorder(s.rBuf)
	if err != nil {
		return nil, 0, err
	}
	result := st.Done()

	return result, used, nil
}

// SimShards 平行執行多個機台，除了合併的機台報表之外，另以「每個 worker 一個分片」
// 的角度產出分片離散度報表：分片間 RTP 分位數可以暴露單一大獎拉高整體 RTP 的情況，
// 這是合併後的單一 RTP 看不到的。
func (s *Simulator) SimShards(betMode int, spins int, mp int, showpb bool) (*stats.StatReport, *stats.ShardSpread, time.Duration, error) {
	defer s.reset()
	if mp <= 0 {
		return nil, nil, 0, errs.NewWarn("workers must > 0")
	}
	if betMode < 0 || betMode >= len(s.gs.BetUnits) {
		return nil, nil, 0, errs.NewWarn("bet mode err: must >= 0 and < len(betunits)")
	}
	if spins < 1 {
		return nil, nil, 0, errs.NewWarn("spins must > 0")
	}
	for len(s.mBuf) < mp {
		m, err := newMachineWithSeed(s.gs, s.cf, s.seedmaker.next())
		if err != nil {
			return nil, nil, 0, err
		}
		s.mBuf = append(s.mBuf, m)
	}
	for len(s.rBuf) < mp {
		r, err := recorder.NewSessionRecorder(s.GameName, s.gs.BetUnits, betMode)
		if err != nil {
			return nil, nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}

	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := pb.StartNew(spins * mp)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < mp; i++ {
		go sim(wg, s.mBuf[i], s.rBuf[i], betMode, spins, bar)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	// 機台基準報表（所有分片合併）
	record, err := recorder.MergeSessionRecorder(s.rBuf)
	if err != nil {
		return nil, nil, 0, err
	}
	st := record.Done()

	// 分片離散度報表
	s.sBuf = s.sBuf[:0]
	for _, r := range s.rBuf[:mp] {
		s.sBuf = append(s.sBuf, r.Done())
	}
	est := stats.EstimatorShards(s.sBuf)
	return st, est, used, nil
}

// SimExport 單線模擬並把每一次 session 以壓縮串流寫出（JSONL + zstd），
// 供離線分析或回放工具使用。回傳統計結果與用時。
//
// SpinInternal 的 buffer 下一次 spin 會被覆寫，但 SessionWriter 在 Write
// 當下即完成序列化，因此可以安全沿用熱路徑。
func (s *Simulator) SimExport(betMode int, spins int, w io.Writer, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if w == nil {
		return nil, 0, errs.NewWarn("export writer required")
	}
	if betMode < 0 || betMode >= len(s.gs.BetUnits) {
		return nil, 0, errs.NewWarn("bet mode err: must >= 0 and < len(betunits)")
	}
	if spins < 1 {
		return nil, 0, errs.NewWarn("spins must > 0")
	}
	if len(s.rBuf) == 0 {
		r, err := recorder.NewSessionRecorder(s.GameName, s.gs.BetUnits, betMode)
		if err != nil {
			return nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}
	sw, err := recorder.NewSessionWriter(w)
	if err != nil {
		return nil, 0, err
	}

	r := s.rBuf[0]
	m := s.mBuf[0]

	bar := pb.StartNew(spins)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < spins; i++ {
		sr := m.SpinInternal(betMode)
		r.Record(sr)
		if err := sw.Write(sr); err != nil {
			bar.Finish()
			return nil, 0, errs.Wrap(err, "session export write failed")
		}
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err := sw.Close(); err != nil {
		return nil, 0, errs.Wrap(err, "session export close failed")
	}
	result := r.Done()

	return result, used, nil
}

func sim(wg *sync.WaitGroup, m *Machine, r *recorder.SessionRecorder, betMode int, spins int, bar *pb.ProgressBar) {
	defer wg.Done()
	for i := 0; i < spins; i++ {
		sr := m.SpinInternal(betMode)
		r.Record(sr)
		bar.Increment()
	}
}

func (s *Simulator) reset() {
	s.rBuf = s.rBuf[:0]
	s.sBuf = s.sBuf[:0]
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// state 走全週期（不重複），再用可逆 mix63 打散
//
// 注意：此方法可能在併發環境下被多 goroutines 同時呼叫（例如 SimMP / MachinePool）。
// 因此 state 的推進必須是原子的：
//   - 使用 CAS（Compare-And-Swap）迴圈確保每次呼叫都會取得唯一的下一個 state。
//   - 回傳值使用推進後的 state 經 mix63 打散後的結果。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()                                            // always masked
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
