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

package buf

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionAccumulates(t *testing.T) {
	s := NewSessionResult("g")
	s.LogRound(RoundResult{Round: 1, Win: 10})
	s.LogRound(RoundResult{Round: 2, Win: 5})
	if s.TotalWin != 15 {
		t.Fatalf("total = %d, want 15", s.TotalWin)
	}
	if len(s.Rounds) != 2 {
		t.Fatalf("rounds = %d, want 2", len(s.Rounds))
	}
}

func TestSessionRoundOrderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-order round")
		}
	}()
	s := NewSessionResult("g")
	s.LogRound(RoundResult{Round: 2, Win: 1})
}

func TestSessionEndedPanics(t *testing.T) {
	s := NewSessionResult("g")
	s.LogRound(RoundResult{Round: 1})
	s.End()
	if !s.Ended() {
		t.Fatal("session should be ended")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on log after end")
		}
	}()
	s.LogRound(RoundResult{Round: 2})
}

func TestSessionReset(t *testing.T) {
	s := NewSessionResult("g")
	s.Bet = 3
	s.BetMult = 2
	s.Seed = 99
	s.LogRound(RoundResult{Round: 1, Win: 7})
	s.End()

	s.Reset()
	if s.Bet != 0 || s.BetMult != 0 || s.TotalWin != 0 || s.Seed != 0 {
		t.Fatalf("reset incomplete: %+v", s)
	}
	if len(s.Rounds) != 0 || s.Ended() {
		t.Fatal("reset should clear rounds and ended flag")
	}
	if s.GameName != "g" {
		t.Fatal("reset should keep game name")
	}
	// 重置後可直接續用
	s.LogRound(RoundResult{Round: 1, Win: 2})
	if s.TotalWin != 2 {
		t.Fatalf("total after reuse = %d", s.TotalWin)
	}
}

func TestDecodeSpinRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/spin?uid=u1&bet_mode=1&bet_mult=2", nil)
	req, err := DecodeSpinRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.UID != "u1" || req.BetMode != 1 || req.BetMult != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}

	// bet_mult 省略時預設 1
	r = httptest.NewRequest(http.MethodGet, "/spin?bet_mode=0", nil)
	req, err = DecodeSpinRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.BetMult != 1 {
		t.Fatalf("default bet_mult = %d, want 1", req.BetMult)
	}
}

func TestDecodeSpinRequestPOST(t *testing.T) {
	data := []byte(`{"uid":"u2","bet_mode":2,"bet_mult":3}`)
	r := httptest.NewRequest(http.MethodPost, "/spin", bytes.NewReader(data))
	req, err := DecodeSpinRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.UID != "u2" || req.BetMode != 2 || req.BetMult != 3 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestDecodeSpinRequestRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"bet_mode":0,"bet_mult":1,"unknown":true}`)
	r := httptest.NewRequest(http.MethodPost, "/spin", bytes.NewReader(data))
	if _, err := DecodeSpinRequest(r); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
