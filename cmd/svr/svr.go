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

package main

import (
	"flag"
	"fmt"

	cascade "github.com/Jas1212/RelaxGamingTest"
	"github.com/Jas1212/RelaxGamingTest/configs"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"github.com/Jas1212/RelaxGamingTest/server"
	"github.com/Jas1212/RelaxGamingTest/server/logger"
	"github.com/Jas1212/RelaxGamingTest/server/svrcfg"
)

// This command is intentionally a "lab server" entrypoint for this repo.
// For production deployments, use a separate scaffold project and run ModeProd.
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Println(err)
		return
	}
	server.Run(cfg)
}

type config struct {
	LogMode  string
	PoolSize int
	CfgName  string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.IntVar(&cfg.PoolSize, "pool", 4, "number of machine instances in the pool")
	flag.StringVar(&cfg.CfgName, "config", "cascade_8x8.yaml", "game setting yaml (embedded)")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	lab, err := cascade.New(core.Default(), configs.FS, cfg.CfgName)
	if err != nil {
		return nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:      log,
		PoolSize: cfg.PoolSize,
		Lab:      lab,
	}
	return sCfg, nil
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
