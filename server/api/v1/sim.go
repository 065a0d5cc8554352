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

package v1

import (
	"crypto/rand"
	"encoding/json"
	"math"
	"math/big"
	"net/http"
	"strconv"

	cascade "github.com/Jas1212/RelaxGamingTest"
	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/server/httperr"
	"github.com/Jas1212/RelaxGamingTest/stats"
)

type SimHandler struct {
	Lab *cascade.Lab
}

func NewSimHandler(lab *cascade.Lab) (*SimHandler, error) {
	return &SimHandler{Lab: lab}, nil
}

// simRequest 內部結構 不影響外部 也不被外部使用
type simRequest struct {
	BetMode int    `json:"bet_mode"`
	Spins   int    `json:"spins"`
	Workers int    `json:"workers,omitempty"`
	Seed    *int64 `json:"seed,omitempty"`
}

// decodeSimRequest 解析 GET query 或 POST JSON body 為 simRequest。
// bet_mode 與 spins 必填；workers 與 seed 選填。
func decodeSimRequest(q *http.Request) (*simRequest, error) {
	req := new(simRequest)
	if q.Method == http.MethodGet {
		// bet_mode
		if m := q.URL.Query().Get("bet_mode"); m != "" {
			u, err := strconv.Atoi(m)
			if err != nil {
				return nil, errs.NewWarn("bet_mode must be integer")
			}
			req.BetMode = u
		} else {
			return nil, errs.NewWarn("bet_mode is required")
		}

		// spins
		if r := q.URL.Query().Get("spins"); r != "" {
			u, err := strconv.Atoi(r)
			if err != nil {
				return nil, errs.NewWarn("spins must be integer")
			}
			req.Spins = u
		} else {
			return nil, errs.NewWarn("spins is required")
		}

		// workers
		if s := q.URL.Query().Get("workers"); s != "" {
			u, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn("workers must be integer")
			}
			req.Workers = u
		}

		// seed
		if s := q.URL.Query().Get("seed"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errs.NewWarn("seed must be int64")
			}
			v := u
			req.Seed = &v
		}
		return req, nil
	}

	if err := json.NewDecoder(q.Body).Decode(req); err != nil {
		return nil, errs.NewWarn("invalid json:" + err.Error())
	}
	return req, nil
}

// fillSeed 未帶 seed 時以 crypto/rand 補一個。
func fillSeed(req *simRequest) error {
	if req.Seed != nil {
		return nil
	}
	rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return errs.NewWarn("seed generate failed")
	}
	v := rnd.Int64()
	req.Seed = &v
	return nil
}

func (sh *SimHandler) Sim(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type SimResponse struct {
		Stats    *stats.StatReport `json:"stats"`
		UsedTime int64             `json:"used_ms"`
	}
	// ---
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := decodeSimRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	// 業務檢驗
	if req.BetMode < 0 {
		httperr.Errs(w, errs.NewWarn("bet_mode must be non-negative integer"))
		return
	}
	if req.Spins < 1 || req.Spins > 1000000 {
		httperr.Errs(w, errs.NewWarn("spins must be between 1 to 1,000,000"))
		return
	}
	if err := fillSeed(req); err != nil {
		httperr.Errs(w, err)
		return
	}
	sim, err := sh.Lab.NewSimulatorWithSeed(*req.Seed)
	if err != nil {
		// 這裡的錯誤是來自 Lab 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "build simulator err"))
		return
	}
	st, used, err := sim.Sim(req.BetMode, req.Spins, false)
	if err != nil {
		// 這裡的錯誤來自 simulator 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "simulate err"))
		return
	}
	resp := SimResponse{
		Stats:    st,
		UsedTime: used.Milliseconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (sh *SimHandler) SimShards(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type SimShardsResponse struct {
		Stats    *stats.StatReport  `json:"stats"`
		Spread   *stats.ShardSpread `json:"spread"`
		UsedTime int64              `json:"used_ms"`
	}
	// ---
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := decodeSimRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if req.Workers == 0 {
		req.Workers = 4
	}
	// 業務檢驗
	if req.BetMode < 0 {
		httperr.Errs(w, errs.NewWarn("bet_mode must be non-negative integer"))
		return
	}
	if req.Spins < 1 || req.Spins > 100000 {
		httperr.Errs(w, errs.NewWarn("spins must be between 1 to 100,000 per worker"))
		return
	}
	if req.Workers < 1 || req.Workers > 64 {
		httperr.Errs(w, errs.NewWarn("workers must be between 1 and 64"))
		return
	}
	if err := fillSeed(req); err != nil {
		httperr.Errs(w, err)
		return
	}
	sim, err := sh.Lab.NewSimulatorWithSeed(*req.Seed)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "build simulator err"))
		return
	}
	st, spread, used, err := sim.SimShards(req.BetMode, req.Spins, req.Workers, false)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "simulate err"))
		return
	}
	resp := &SimShardsResponse{
		Stats:    st,
		Spread:   spread,
		UsedTime: used.Milliseconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
