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

package gridfmt

import (
	"strings"
	"testing"

	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/spec"
)

func TestFrame(t *testing.T) {
	f := &buf.Frame{
		Rows: 2,
		Cols: 3,
		Cells: []spec.Symbol{
			spec.H1, spec.WR, spec.Blocker,
			spec.L5, spec.Empty, spec.L8,
		},
	}
	out := Frame(f)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4:\n%s", len(lines), out)
	}
	if lines[1] != "| H1 WR ## |" {
		t.Fatalf("row 0 = %q", lines[1])
	}
	if lines[2] != "| L5    L8 |" {
		t.Fatalf("row 1 = %q", lines[2])
	}
	// 所有行等寬
	for _, l := range lines {
		if len(l) != len(lines[0]) {
			t.Fatalf("ragged output:\n%s", out)
		}
	}

	if Frame(nil) != "" {
		t.Fatal("nil frame should render empty")
	}
}

func TestSession(t *testing.T) {
	s := buf.NewSessionResult("g")
	s.Bet = 2
	s.BetMult = 1
	s.LogRound(buf.RoundResult{
		Round: 1,
		Win:   5,
		Destroyed: []buf.Destroyed{
			{Symbol: spec.H1, Row: 0, Col: 0},
		},
		Snapshot: buf.Frame{Rows: 1, Cols: 1, Cells: []spec.Symbol{spec.L5}},
	})
	s.End()

	out := Session(s)
	for _, want := range []string{"win=5", "round 1", "H1 (0,0)", "| L5 |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
