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
	"encoding/json"
	"errors"
	"io"

	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/klauspost/compress/zstd"
)

// SessionWriter 把 SessionResult 逐筆寫成 zstd 壓縮的 JSON Lines。
//
// 設計給長時間模擬落地完整 session 明細用：一筆一行，邊跑邊寫，
// 不需要在記憶體裡囤整批結果。用完必須 Close，否則壓縮尾塊不落地。
type SessionWriter struct {
	zw  *zstd.Encoder
	enc *json.Encoder
}

func NewSessionWriter(w io.Writer) (*SessionWriter, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, errs.Wrap(err, "create zstd writer failed")
	}
	return &SessionWriter{zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Write 落地一筆 session。json.Encoder 自帶換行，天然就是 JSONL。
func (w *SessionWriter) Write(sr *buf.SessionResult) error {
	if err := w.enc.Encode(sr); err != nil {
		return errs.Wrap(err, "encode session failed")
	}
	return nil
}

func (w *SessionWriter) Close() error {
	return w.zw.Close()
}

// SessionReader 逐筆讀回 SessionWriter 的輸出。
type SessionReader struct {
	zr  *zstd.Decoder
	dec *json.Decoder
}

func NewSessionReader(r io.Reader) (*SessionReader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(err, "create zstd reader failed")
	}
	return &SessionReader{zr: zr, dec: json.NewDecoder(zr)}, nil
}

// Next 讀出下一筆 session，讀完回傳 io.EOF。
func (r *SessionReader) Next() (*buf.SessionResult, error) {
	sr := new(buf.SessionResult)
	if err := r.dec.Decode(sr); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, errs.Wrap(err, "decode session failed")
	}
	return sr, nil
}

func (r *SessionReader) Close() {
	r.zr.Close()
}
