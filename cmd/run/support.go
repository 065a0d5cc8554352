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
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math"
	"math/big"
	"os"

	cascade "github.com/Jas1212/RelaxGamingTest"
	"github.com/Jas1212/RelaxGamingTest/configs"
	"github.com/Jas1212/RelaxGamingTest/gridfmt"
	"github.com/Jas1212/RelaxGamingTest/sdk/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	cfgName   string
	worker    int
	spins     int
	betMode   int
	seed      int64
	shards    bool
	export    string
	demo      bool
	pprofmode string
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.StringVar(&cfg.cfgName, "config", "cascade_8x8.yaml", "game setting yaml (embedded)")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.spins, "spins", 10000000, "spins per worker")
	flag.IntVar(&cfg.betMode, "mode", 0, "bet mode index")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.BoolVar(&cfg.shards, "shards", false, "report per-worker rtp spread")
	flag.StringVar(&cfg.export, "export", "", "export sessions to file (jsonl + zstd)")
	flag.BoolVar(&cfg.demo, "demo", false, "spin once and print the cascade chain")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illegal -> default seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

// 這裡解析並分支要執行的模擬器
func executeSimulator() {
	cfg.valid() // 基本檢查

	lab, err := cascade.New(core.Default(), configs.FS, cfg.cfgName)
	if err != nil {
		log.Fatal(err)
	}

	// demo 模式：一次 spin，印出整條消除連鎖
	if cfg.demo {
		m, err := lab.NewMachineWithSeed(cfg.seed)
		if err != nil {
			log.Fatal(err)
		}
		sr, err := m.Spin(cfg.betMode, 1)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(gridfmt.Session(sr))
		return
	}

	s, err := lab.NewSimulatorWithSeed(cfg.seed)
	if err != nil {
		log.Fatal(err)
	}
	name := lab.Setting().GameName
	// 至此確保可執行
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	// export 模式：單線模擬並把每個 session 寫出成壓縮串流
	if cfg.export != "" {
		f, err := os.Create(cfg.export)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		p.Printf("%s[GAME:%s] [PLAYMODE:%d] [SPINS:%d] [EXPORT:%s]%s\n", green, name, cfg.betMode, cfg.spins, cfg.export, reset)
		st, used, err := s.SimExport(cfg.betMode, cfg.spins, f, true)
		if err != nil {
			log.Fatal(err)
		}
		st.StdOut(used)
		return
	}

	if cfg.shards { // 分片離散度報表
		p.Printf("%s[WORKERS:%d] [GAME:%s] [PLAYMODE:%d] [SPINS:%d]%s\n", green, cfg.worker, name, cfg.betMode, cfg.worker*cfg.spins, reset)
		st, est, used, _ := s.SimShards(cfg.betMode, cfg.spins, cfg.worker, true)
		st.StdOut(used)
		est.Out()
		return
	}

	if cfg.worker == 1 { // 單線程
		p.Printf("%s[GAME:%s] [PLAYMODE:%d] [SPINS:%d]%s\n", green, name, cfg.betMode, cfg.spins, reset)
		st, used, _ := s.Sim(cfg.betMode, cfg.spins, true)
		st.StdOut(used)
	} else {
		p.Printf("%s[WORKERS:%d] [GAME:%s] [PLAYMODE:%d] [SPINS:%d]%s\n", green, cfg.worker, name, cfg.betMode, cfg.worker*cfg.spins, reset)
		st, used, _ := s.SimMP(cfg.betMode, cfg.spins, cfg.worker, true) // 併發
		st.StdOut(used)
	}
}

func (cfg *config) valid() {
	p := message.NewPrinter(language.English)

	// 工作協程檢查(併發數)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if cfg.worker > 64 {
		p.Printf("too many workers: %d resized to 64\n", cfg.worker)
		cfg.worker = 64
	}

	// 轉數檢查
	if cfg.spins < 1 {
		log.Fatal("value err : spins must > 0")
	}
}
