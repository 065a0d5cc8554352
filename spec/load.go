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

package spec

import (
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/Jas1212/RelaxGamingTest/errs"
)

// Load 由注入的 fs.FS 讀取並解碼一份 GameSetting，完成 Init 後回傳。
//
// 設定來源一律以 fs.FS 注入：
//   - 部署時用 go:embed 把設定編進 binary，不依賴工作目錄。
//   - 本機開發可用 os.DirFS 讀取目錄。
func Load(fsys fs.FS, name string) (*GameSetting, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read game setting failed: "+name)
	}
	return Decode(b)
}

// Decode 解碼一份 YAML bytes 為 GameSetting 並完成 Init。
func Decode(b []byte) (*GameSetting, error) {
	gs := new(GameSetting)
	if err := yaml.Unmarshal(b, gs); err != nil {
		return nil, errs.Wrap(err, "decode game setting failed")
	}
	if err := gs.Init(); err != nil {
		return nil, err
	}
	return gs, nil
}
