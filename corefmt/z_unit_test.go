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

package corefmt

import (
	"bytes"
	"testing"
)

func TestBase64URLRoundTrip(t *testing.T) {
	in := []byte{0x00, 0xff, 0x10, 0x20, 0xfe}
	s := EncodeBase64URL(in)
	out, err := DecodeBase64URL(s)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip mismatch: %v vs %v", in, out)
	}
	if _, err := DecodeBase64URL("!!not base64!!"); err == nil {
		t.Fatal("expected error for invalid input")
	}
}

func TestBlobFrameRoundTrip(t *testing.T) {
	payload := []byte("snapshot-bytes")
	var bb bytes.Buffer
	if err := WriteBlobFrame(&bb, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out, err := ReadBlobFrame(&bb, 1<<20)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(payload, out) {
		t.Fatalf("round trip mismatch: %q vs %q", payload, out)
	}
}

func TestBlobFrameMaxBytes(t *testing.T) {
	var bb bytes.Buffer
	if err := WriteBlobFrame(&bb, make([]byte, 100)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := ReadBlobFrame(&bb, 10); err == nil {
		t.Fatal("expected error when payload exceeds maxBytes")
	}
}
