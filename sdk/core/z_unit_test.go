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

package core

import "testing"

func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 16; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.UintN(10) != c2.UintN(10) {
		t.Fatalf("UintN mismatch")
	}
}

func TestCoreBounds(t *testing.T) {
	c := New(Default().New(9))
	if got := c.IntN(0); got != -1 {
		t.Fatalf("IntN(0) should return -1, got %d", got)
	}
	if got := c.UintN(0); got != 0 {
		t.Fatalf("UintN(0) should return 0, got %d", got)
	}
	for i := 0; i < 1000; i++ {
		if v := c.IntN(7); v < 0 || v >= 7 {
			t.Fatalf("IntN(7) out of range: %d", v)
		}
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestCorePick(t *testing.T) {
	c := New(Default().New(3))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}
	src := []int{5, 5, 5}
	if got := c.Pick(src); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	c := New(Default().New(42))
	_ = c.Uint64()

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	want := []uint64{c.Uint64(), c.Uint64(), c.Uint64()}

	if err := c.Restore(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	for i, w := range want {
		if got := c.Uint64(); got != w {
			t.Fatalf("sequence diverged after restore at %d: got %d want %d", i, got, w)
		}
	}
}
