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
	"encoding/json"
	"net/http"
	"sync"

	cascade "github.com/Jas1212/RelaxGamingTest"
	"github.com/Jas1212/RelaxGamingTest/corefmt"
	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/server/httperr"
)

// AuditHandler 提供可回放（replay）的 spin：
//   - /audit/spin：spin 前先取 RNG 快照（base64url），連同結果一起回傳。
//   - /audit/replay：貼回快照還原 RNG，重跑一次 spin，應得到一致的結果。
//
// 這不是 production 下注入口；它持有一台獨立的審計機台，與 MachinePool 無關。
// 行為偏向 debug / tooling，但回放結論必須是 deterministic 的。
type AuditHandler struct {
	m  *cascade.Machine
	mu sync.Mutex
}

func NewAuditHandler(lab *cascade.Lab) (*AuditHandler, error) {
	m, err := lab.NewMachine()
	if err != nil {
		return nil, errs.Wrap(err, "build audit handler error")
	}
	return &AuditHandler{m: m}, nil
}

type auditResponse struct {
	Rng    string             `json:"rng"` // spin 前的 RNG 快照（base64url）
	Result *buf.SessionResult `json:"result"`
}

func (a *AuditHandler) Spin(w http.ResponseWriter, q *http.Request) {
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := buf.DecodeSpinRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	snap, err := a.m.SnapshotCore()
	if err != nil {
		a.mu.Unlock()
		httperr.Errs(w, errs.Wrap(err, "snapshot core failed"))
		return
	}
	result, err := a.m.Spin(req.BetMode, req.BetMult)
	a.mu.Unlock()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&auditResponse{
		Rng:    corefmt.EncodeBase64URL(snap),
		Result: result,
	})
}

func (a *AuditHandler) Replay(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type replayRequest struct {
		Rng     string `json:"rng"`
		BetMode int    `json:"bet_mode"`
		BetMult int    `json:"bet_mult"`
	}
	// ---
	if q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req := new(replayRequest)
	if err := json.NewDecoder(q.Body).Decode(req); err != nil {
		httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
		return
	}
	if req.Rng == "" {
		httperr.Errs(w, errs.NewWarn("rng is required"))
		return
	}
	if req.BetMult == 0 {
		req.BetMult = 1
	}
	snap, err := corefmt.DecodeBase64URL(req.Rng)
	if err != nil {
		httperr.Errs(w, errs.NewWarn("rng must be base64url snapshot"))
		return
	}

	a.mu.Lock()
	if err := a.m.RestoreCore(snap); err != nil {
		a.mu.Unlock()
		httperr.Errs(w, errs.NewWarn("restore core failed: "+err.Error()))
		return
	}
	result, err := a.m.Spin(req.BetMode, req.BetMult)
	a.mu.Unlock()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&auditResponse{
		Rng:    req.Rng,
		Result: result,
	})
}
