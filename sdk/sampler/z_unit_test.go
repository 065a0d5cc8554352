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

package sampler

import (
	"math"
	"testing"

	"github.com/Jas1212/RelaxGamingTest/sdk/core"
)

func TestBuildWeightTableErrors(t *testing.T) {
	if _, err := BuildWeightTable(nil); err == nil {
		t.Fatal("expected error for empty weights")
	}
	if _, err := BuildWeightTable([]int{0, 0}); err == nil {
		t.Fatal("expected error for zero total")
	}
	if _, err := BuildWeightTable([]int{1, -1}); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestBuildLUTErrors(t *testing.T) {
	if _, err := BuildLUT(nil); err == nil {
		t.Fatal("expected error for empty weights")
	}
	if _, err := BuildLUT([]int{0}); err == nil {
		t.Fatal("expected error for zero total")
	}
	if _, err := BuildLUT([]int{-2}); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestLUTExpansion(t *testing.T) {
	lut, err := BuildLUT([]int{3, 5, 0})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []int{0, 0, 0, 1, 1, 1, 1, 1}
	if len(lut) != len(want) {
		t.Fatalf("unexpected lut length: %d", len(lut))
	}
	for i, v := range want {
		if lut[i] != v {
			t.Fatalf("lut[%d] = %d, want %d", i, lut[i], v)
		}
	}
}

// 零權重永不中選，且兩種抽樣器對同一份權重收斂到同一個分布。
func TestDistributionAgreement(t *testing.T) {
	weights := []int{1, 0, 3, 6}
	const draws = 200_000

	wt, err := BuildWeightTable(weights)
	if err != nil {
		t.Fatalf("weight table build failed: %v", err)
	}
	lut, err := BuildLUT(weights)
	if err != nil {
		t.Fatalf("lut build failed: %v", err)
	}

	cw := core.New(core.Default().New(1234))
	cl := core.New(core.Default().New(1234))

	var cntW, cntL [4]int
	for i := 0; i < draws; i++ {
		cntW[wt.Pick(cw)]++
		cntL[lut.Pick(cl)]++
	}
	if cntW[1] != 0 || cntL[1] != 0 {
		t.Fatalf("zero-weight index was picked: wt=%d lut=%d", cntW[1], cntL[1])
	}

	total := float64(wt.Total())
	for i, w := range weights {
		expect := float64(w) / total
		gotW := float64(cntW[i]) / draws
		gotL := float64(cntL[i]) / draws
		if math.Abs(gotW-expect) > 0.01 {
			t.Fatalf("weight table idx %d: got %.4f want %.4f", i, gotW, expect)
		}
		if math.Abs(gotL-expect) > 0.01 {
			t.Fatalf("lut idx %d: got %.4f want %.4f", i, gotL, expect)
		}
	}
}
