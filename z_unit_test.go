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
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Jas1212/RelaxGamingTest/recorder"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
)

func newTestLab(t *testing.T) *Lab {
	t.Helper()
	l, err := NewDefault(core.Default())
	if err != nil {
		t.Fatalf("new lab failed: %v", err)
	}
	return l
}

func TestLabNew(t *testing.T) {
	if _, err := NewDefault(nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
	l := newTestLab(t)
	if l.Setting().GameName != "relax_cascade" {
		t.Fatalf("game name = %q", l.Setting().GameName)
	}
}

func TestMachineDeterminism(t *testing.T) {
	l := newTestLab(t)
	m1, err := l.NewMachineWithSeed(42)
	if err != nil {
		t.Fatalf("new machine failed: %v", err)
	}
	m2, err := l.NewMachineWithSeed(42)
	if err != nil {
		t.Fatalf("new machine failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		a, err := m1.Spin(0, 1)
		if err != nil {
			t.Fatalf("spin failed: %v", err)
		}
		b, err := m2.Spin(0, 1)
		if err != nil {
			t.Fatalf("spin failed: %v", err)
		}
		if a.TotalWin != b.TotalWin || len(a.Rounds) != len(b.Rounds) {
			t.Fatalf("spin %d diverged: %d/%d vs %d/%d",
				i, a.TotalWin, len(a.Rounds), b.TotalWin, len(b.Rounds))
		}
	}
}

func TestMachineSpinValidation(t *testing.T) {
	l := newTestLab(t)
	m, err := l.NewMachineWithSeed(1)
	if err != nil {
		t.Fatalf("new machine failed: %v", err)
	}
	if _, err := m.Spin(-1, 1); err == nil {
		t.Fatal("expected error for negative bet mode")
	}
	if _, err := m.Spin(len(m.BetUnits), 1); err == nil {
		t.Fatal("expected error for bet mode out of range")
	}
	if _, err := m.Spin(0, 0); err == nil {
		t.Fatal("expected error for bet mult < 1")
	}
}

func TestMachineBetScaling(t *testing.T) {
	l := newTestLab(t)
	bu := l.Setting().BetUnits

	m1, _ := l.NewMachineWithSeed(7)
	m2, _ := l.NewMachineWithSeed(7)

	a, err := m1.Spin(1, 1)
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	b, err := m2.Spin(1, 3)
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if a.Bet != bu[1] || b.Bet != bu[1]*3 {
		t.Fatalf("bet = %d / %d, betunit %d", a.Bet, b.Bet, bu[1])
	}
	// 同 seed 同盤面，贏分照 betMult 線性放大
	if b.TotalWin != a.TotalWin*3 {
		t.Fatalf("total win %d, want %d * 3", b.TotalWin, a.TotalWin)
	}
}

func TestMachineCloneIsolation(t *testing.T) {
	l := newTestLab(t)
	m, _ := l.NewMachineWithSeed(99)

	a, err := m.Spin(0, 1)
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	wantWin := a.TotalWin
	wantRounds := len(a.Rounds)

	// 後續 spin 覆寫內部 buffer，不得影響先前回傳的副本
	for i := 0; i < 5; i++ {
		if _, err := m.Spin(0, 1); err != nil {
			t.Fatalf("spin failed: %v", err)
		}
	}
	if a.TotalWin != wantWin || len(a.Rounds) != wantRounds {
		t.Fatalf("clone mutated: %d/%d, want %d/%d",
			a.TotalWin, len(a.Rounds), wantWin, wantRounds)
	}
}

func TestSnapshotRestoreReplays(t *testing.T) {
	l := newTestLab(t)
	m, _ := l.NewMachineWithSeed(5)

	snap, err := m.SnapshotCore()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	a, _ := m.Spin(0, 1)
	winA, roundsA := a.TotalWin, len(a.Rounds)

	if err := m.RestoreCore(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	b, _ := m.Spin(0, 1)
	if b.TotalWin != winA || len(b.Rounds) != roundsA {
		t.Fatalf("replay diverged: %d/%d vs %d/%d",
			b.TotalWin, len(b.Rounds), winA, roundsA)
	}
}

func TestSimulatorSim(t *testing.T) {
	l := newTestLab(t)
	s, err := l.NewSimulatorWithSeed(123)
	if err != nil {
		t.Fatalf("new simulator failed: %v", err)
	}

	st, _, err := s.Sim(0, 200, false)
	if err != nil {
		t.Fatalf("sim failed: %v", err)
	}
	if st.Summary.Spins != 200 {
		t.Fatalf("spins = %d, want 200", st.Summary.Spins)
	}
	if st.Summary.TotalBet != 200*l.Setting().BetUnits[0] {
		t.Fatalf("total bet = %d", st.Summary.TotalBet)
	}

	if _, _, err := s.Sim(9, 10, false); err == nil {
		t.Fatal("expected error for bet mode out of range")
	}
	if _, _, err := s.Sim(0, 0, false); err == nil {
		t.Fatal("expected error for zero spins")
	}
}

func TestSimulatorSimMP(t *testing.T) {
	l := newTestLab(t)
	s, err := l.NewSimulatorWithSeed(456)
	if err != nil {
		t.Fatalf("new simulator failed: %v", err)
	}

	st, _, err := s.SimMP(0, 50, 4, false)
	if err != nil {
		t.Fatalf("simmp failed: %v", err)
	}
	if st.Summary.Spins != 200 {
		t.Fatalf("spins = %d, want 200", st.Summary.Spins)
	}

	if _, _, err := s.SimMP(0, 50, 0, false); err == nil {
		t.Fatal("expected error for zero workers")
	}
}

func TestSimulatorSimShards(t *testing.T) {
	l := newTestLab(t)
	s, err := l.NewSimulatorWithSeed(789)
	if err != nil {
		t.Fatalf("new simulator failed: %v", err)
	}

	st, est, _, err := s.SimShards(0, 50, 4, false)
	if err != nil {
		t.Fatalf("simshards failed: %v", err)
	}
	if st.Summary.Spins != 200 {
		t.Fatalf("spins = %d, want 200", st.Summary.Spins)
	}
	if est == nil {
		t.Fatal("shard spread missing")
	}
	if est.RtpP10.Hat > est.RtpMedian.Hat || est.RtpMedian.Hat > est.RtpP90.Hat {
		t.Fatalf("shard quantiles out of order: %+v", est)
	}
}

func TestSimulatorSimExport(t *testing.T) {
	l := newTestLab(t)
	s, err := l.NewSimulatorWithSeed(321)
	if err != nil {
		t.Fatalf("new simulator failed: %v", err)
	}

	var bb bytes.Buffer
	st, _, err := s.SimExport(0, 30, &bb, false)
	if err != nil {
		t.Fatalf("simexport failed: %v", err)
	}
	if st.Summary.Spins != 30 {
		t.Fatalf("spins = %d, want 30", st.Summary.Spins)
	}

	r, err := recorder.NewSessionReader(&bb)
	if err != nil {
		t.Fatalf("new session reader failed: %v", err)
	}
	defer r.Close()
	n := 0
	for {
		if _, err := r.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		n++
	}
	if n != 30 {
		t.Fatalf("exported sessions = %d, want 30", n)
	}
}

func TestSeedMakerUniqueNonNegative(t *testing.T) {
	sm := newSeedMaker(1)
	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		s := sm.next()
		if s < 0 {
			t.Fatalf("seed %d is negative", s)
		}
		if seen[s] {
			t.Fatalf("seed %d repeated", s)
		}
		seen[s] = true
	}
}

func TestMachinePoolSpin(t *testing.T) {
	l := newTestLab(t)
	p, err := l.NewMachinePool(2)
	if err != nil {
		t.Fatalf("new pool failed: %v", err)
	}
	defer p.Close()

	sr, err := p.Spin(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("pool spin failed: %v", err)
	}
	if sr.Bet != l.Setting().BetUnits[0] {
		t.Fatalf("bet = %d", sr.Bet)
	}
	if p.Available() != 2 {
		t.Fatalf("available = %d, want 2 after return", p.Available())
	}

	// validation error 不淘汰機台
	if _, err := p.Spin(context.Background(), -1, 1); err == nil {
		t.Fatal("expected error for bad bet mode")
	}
	if p.ReBuild() != 0 {
		t.Fatalf("rebuild = %d, want 0", p.ReBuild())
	}

	m := p.Metrics()
	if m.PoolSize != 2 || m.Closed {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestMachinePoolClose(t *testing.T) {
	l := newTestLab(t)
	p, err := l.NewMachinePool(1)
	if err != nil {
		t.Fatalf("new pool failed: %v", err)
	}
	p.Close()
	if !p.Closed() {
		t.Fatal("pool should be closed")
	}
	if p.ClosedReason() != "closed" {
		t.Fatalf("close reason = %q", p.ClosedReason())
	}
	if _, err := p.Spin(context.Background(), 0, 1); err == nil {
		t.Fatal("expected error after close")
	}
}

func TestMachinePoolContextCanceled(t *testing.T) {
	l := newTestLab(t)
	p, err := l.NewMachinePool(1)
	if err != nil {
		t.Fatalf("new pool failed: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 借走唯一一台，讓下一次 Spin 只能等 ctx
	m := <-p.pool
	if _, err := p.Spin(ctx, 0, 1); err == nil {
		t.Fatal("expected error for canceled context")
	}
	p.pool <- m
}
