package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	cascade "github.com/Jas1212/RelaxGamingTest"
	"github.com/Jas1212/RelaxGamingTest/errs"
	"github.com/Jas1212/RelaxGamingTest/sdk/buf"
	"github.com/Jas1212/RelaxGamingTest/server/httperr"
	"github.com/Jas1212/RelaxGamingTest/server/svrcfg"
)

func (c *SpinHandler) Spin(w http.ResponseWriter, q *http.Request) {
	// 請求方法、結構體校驗
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := buf.DecodeSpinRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// 請求解析完成，設置超時 context
	ctx := q.Context()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// 開始 Spin
	result, err := c.pool.Spin(ctx, req.BetMode, req.BetMult)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		httperr.Errs(w, err)
		return
	}
}

// Metrics 回傳機台池觀測快照（pull 式；log/exporter 由呼叫端決定）。
func (c *SpinHandler) Metrics(w http.ResponseWriter, q *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.pool.Metrics()); err != nil {
		httperr.Errs(w, err)
		return
	}
}

// ============================================================
// ** SpinHandler **
// ============================================================

type SpinHandler struct {
	pool *cascade.MachinePool
}

func NewSpinHandler(sCfg *svrcfg.SvrCfg) (*SpinHandler, error) {
	pool, err := sCfg.Lab.NewMachinePool(sCfg.PoolSize)
	if err != nil {
		return nil, errs.Wrap(err, "build spin handler error")
	}
	return &SpinHandler{pool: pool}, nil
}
