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

// Package index 提供服務主頁：列出可用 endpoint，方便開發期快速對照。
package index

import (
	"net/http"
)

const indexBody = `cascade engine
---------------
GET  /v1/spin       ?bet_mode=&bet_mult=
POST /v1/spin       {"bet_mode":0,"bet_mult":1}
GET  /v1/sim        ?bet_mode=&spins=&seed=
GET  /v1/simshards  ?bet_mode=&spins=&workers=&seed=
GET  /v1/metrics
GET  /v1/audit/spin ?bet_mode=&bet_mult=
POST /v1/audit/replay {"rng":"<base64url>","bet_mode":0,"bet_mult":1}
`

func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(indexBody))
}
