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

package recorder

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

func winSession(bet, win, depth int) *buf.SessionResult {
	s := buf.NewSessionResult("g")
	s.Bet = bet
	s.BetMult = 1
	for i := 1; i <= depth; i++ {
		w := 0
		if i == 1 {
			w = win
		}
		s.LogRound(buf.RoundResult{
			Round: i,
			Win:   w,
			Destroyed: []buf.Destroyed{
				{Symbol: spec.H1, Row: 0, Col: 0},
				{Symbol: spec.Blocker, Row: 0, Col: 1},
			},
		})
	}
	s.End()
	return s
}

func TestNewSessionRecorderErrors(t *testing.T) {
	if _, err := NewSessionRecorder("g", nil, 0); err == nil {
		t.Fatal("expected error for empty bet units")
	}
	if _, err := NewSessionRecorder("g", []int{0}, 0); err == nil {
		t.Fatal("expected error for zero bet unit")
	}
	if _, err := NewSessionRecorder("g", []int{1}, 1); err == nil {
		t.Fatal("expected error for bet mode out of range")
	}
}

func TestRecorderBasics(t *testing.T) {
	r, err := NewSessionRecorder("g", []int{1, 2}, 0)
	if err != nil {
		t.Fatalf("new recorder failed: %v", err)
	}

	r.Record(winSession(1, 10, 2))
	noWin := buf.NewSessionResult("g")
	noWin.Bet = 1
	r.Record(noWin)

	rep := r.Done()
	s := rep.Summary
	if s.Spins != 2 || s.TotalBet != 2 || s.TotalWin != 10 {
		t.Fatalf("summary = %+v", s)
	}
	if s.NoWinSpins != 1 {
		t.Fatalf("no-win spins = %d, want 1", s.NoWinSpins)
	}
	if math.Abs(s.HitRate-0.5) > 1e-9 {
		t.Fatalf("hit rate = %f, want 0.5", s.HitRate)
	}
	if math.Abs(s.RTP-5.0) > 1e-9 {
		t.Fatalf("rtp = %f, want 5.0", s.RTP)
	}
	if s.Cascades != 2 || s.MaxCascade != 2 {
		t.Fatalf("cascades = %d max = %d", s.Cascades, s.MaxCascade)
	}
	if s.Destroyed != 4 || s.Blockers != 2 {
		t.Fatalf("destroyed = %d blockers = %d", s.Destroyed, s.Blockers)
	}

	// 深度分布：1 筆深度 2、1 筆深度 0
	if rep.Dist.DepthCollect[0] != 1 || rep.Dist.DepthCollect[2] != 1 {
		t.Fatalf("depth collect = %v", rep.Dist.DepthCollect)
	}
}

func TestDepthIndexCap(t *testing.T) {
	r, err := NewSessionRecorder("g", []int{1}, 0)
	if err != nil {
		t.Fatalf("new recorder failed: %v", err)
	}
	r.Record(winSession(1, 1, 9))
	rep := r.Done()
	last := len(rep.Dist.DepthCollect) - 1
	if rep.Dist.DepthCollect[last] != 1 {
		t.Fatalf("depth 9 should land in last bucket: %v", rep.Dist.DepthCollect)
	}
}

func TestMergeSessionRecorder(t *testing.T) {
	a, _ := NewSessionRecorder("g", []int{1}, 0)
	b, _ := NewSessionRecorder("g", []int{1}, 0)
	a.Record(winSession(1, 3, 1))
	b.Record(winSession(1, 7, 4))

	m, err := MergeSessionRecorder([]*SessionRecorder{a, b})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if m.Basic.Spins != 2 || m.Basic.TotalWin != 10 || m.Basic.MaxCascade != 4 {
		t.Fatalf("merged basic = %+v", m.Basic)
	}
	if m.Basic.TotalWinSqSum != 3*3+7*7 {
		t.Fatalf("sq sum = %d", m.Basic.TotalWinSqSum)
	}

	c, _ := NewSessionRecorder("other", []int{1}, 0)
	if _, err := MergeSessionRecorder([]*SessionRecorder{a, c}); err == nil {
		t.Fatal("expected error merging different games")
	}
}

func TestSessionExportRoundTrip(t *testing.T) {
	var bb bytes.Buffer
	w, err := NewSessionWriter(&bb)
	if err != nil {
		t.Fatalf("new writer failed: %v", err)
	}

	in := []*buf.SessionResult{
		winSession(1, 5, 1),
		winSession(2, 0, 0),
	}
	for _, s := range in {
		if err := w.Write(s); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	r, err := NewSessionReader(&bb)
	if err != nil {
		t.Fatalf("new reader failed: %v", err)
	}
	defer r.Close()

	for i, want := range in {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("next %d failed: %v", i, err)
		}
		if got.Bet != want.Bet || got.TotalWin != want.TotalWin || len(got.Rounds) != len(want.Rounds) {
			t.Fatalf("session %d mismatch: got %+v want %+v", i, got, want)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}
