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

package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// StatReport 遊戲統計報告
type StatReport struct {
	Summary *SummaryReport `json:"Summary"`
	Mult    *MultReport    `json:"Mult"`
	Dist    *DistReport    `json:"Dist"`
	isDone  bool
}

type SummaryReport struct {
	GameName   string  `json:"GameName"`
	BetUnits   []int   `json:"BetUnits"`
	BetUnit    int     `json:"BetUnit"`
	BetMode    int     `json:"BetMode"`
	TotalBet   int     `json:"TotalBet"`
	TotalWin   int     `json:"TotalWin"`
	RTP        float64 `json:"RTP"`
	RtpCI      CI      `json:"RtpCI"`
	Std        float64 `json:"Std"`
	Cv         float64 `json:"Cv"`
	NoWinSpins int     `json:"NoWinSpins"`
	HitRate    float64 `json:"HitRate"`
	Spins      int     `json:"Spins"`
	Cascades   int     `json:"Cascades"`   // 所有 spin 的消除輪總數
	MaxCascade int     `json:"MaxCascade"` // 單一 spin 的最深消除輪數
	AvgCascade float64 `json:"AvgCascade"`
	Destroyed  int     `json:"Destroyed"` // 被消除的圖標總數（含波及）
	Blockers   int     `json:"Blockers"`  // 其中被波及移除的 Blocker 數
}

// MultReport 贏倍統計
//
// 紀錄過程只累積 int，Done() 時才轉成倍數，避免熱路徑的轉型成本
type MultReport struct {
	TotalWinMult      float64 `json:"TotalWinMult"`
	TotalWinMultSqSum float64 `json:"TotalWinMultSqSum"` // 平方和
}

// DistReport 分數與消除深度的落點統計
type DistReport struct {
	WinBucket       []string  `json:"WinBucket"`
	TotalWinCollect []int     `json:"TotalWinCollect"`
	TotalWinDist    []float64 `json:"TotalWinDist"`
	DepthBucket     []string  `json:"DepthBucket"`
	DepthCollect    []int     `json:"DepthCollect"`
	DepthDist       []float64 `json:"DepthDist"`
}

// DepthLabels 是消除深度的分桶標籤：0 輪（沒中）到 5 輪以上。
// 深度 d 的落點為 min(d, 5)。
var DepthLabels = []string{"0", "1", "2", "3", "4", "5+"}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
//
// 統計過程只處理 int 紀錄，完成後呼叫 Done 一次性計算衍生統計量。
func (s *StatReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.RTP = s.Rtp()
	s.Summary.RtpCI = s.Ci()
	s.Summary.Std = s.Std()
	s.Summary.Cv = s.Cv()
	if s.Summary.Spins > 0 {
		s.Summary.AvgCascade = float64(s.Summary.Cascades) / float64(s.Summary.Spins)
		s.Summary.HitRate = 1.0 - float64(s.Summary.NoWinSpins)/float64(s.Summary.Spins)
	}
	s.isDone = true
}

// Rtp 回傳整體 RTP（總贏分 / 總押注）
func (s *StatReport) Rtp() float64 {
	if s.Summary.TotalBet == 0 {
		return 0
	}
	return float64(s.Summary.TotalWin) / float64(s.Summary.TotalBet)
}

// Std 回傳單局贏分的標準差（以投注單位為基礎）
func (s *StatReport) Std() float64 {
	if s.Summary.Spins < 2 || s.Summary.BetUnit == 0 {
		return 0
	}
	spins := float64(s.Summary.Spins)

	winMultPow := s.Mult.TotalWinMult * s.Mult.TotalWinMult
	variance := (s.Mult.TotalWinMultSqSum - winMultPow/spins) / (spins - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Cv 回傳單局贏分的變異係數
func (s *StatReport) Cv() float64 {
	rtp := s.Rtp()
	std := s.Std()
	if rtp <= 0 {
		return 0
	}
	return std / rtp
}

// Ci 回傳(95% Rtp)信賴區間
func (s *StatReport) Ci() CI {
	rtp := s.Rtp()
	std := s.Std()
	rtpSe := float64(0)
	if s.Summary.Spins > 1 {
		rtpSe = std / math.Sqrt(float64(s.Summary.Spins))
	}
	return CI{
		Lo: max(rtp-1.96*rtpSe, 0.0),
		Hi: rtp + 1.96*rtpSe,
	}
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

func (s *StatReport) StdOut(ut time.Duration) {
	s.Done()
	formatDuration(ut, s.Summary.Spins)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.GameName, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, spins int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(spins) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nsps : %d spins/sec\n", sec, sps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\nsps : %d spins/sec\n", m, s, sps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nsps : %d spins/sec\n", h, m, s, sps)
}

// StdOut

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Game Name":    p.Sprintf("%s", s.Summary.GameName),
		"Total Spins":  p.Sprintf("%d", s.Summary.Spins),
		"Total RTP":    p.Sprintf("%.2f %%", 100.0*s.Summary.RTP),
		"RTP 95% CI":   p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.Summary.RtpCI.Lo, 100.0*s.Summary.RtpCI.Hi),
		"Total Bet":    p.Sprintf("%d", s.Summary.TotalBet),
		"Total Win":    p.Sprintf("%d", s.Summary.TotalWin),
		"NoWin Spins":  p.Sprintf("%d", s.Summary.NoWinSpins),
		"Hit Rate":     p.Sprintf("%.2f %%", 100.0*s.Summary.HitRate),
		"Cascades":     p.Sprintf("%d", s.Summary.Cascades),
		"Max Cascade":  p.Sprintf("%d", s.Summary.MaxCascade),
		"Avg Cascade":  p.Sprintf("%.3f", s.Summary.AvgCascade),
		"Destroyed":    p.Sprintf("%d", s.Summary.Destroyed),
		"Blockers Hit": p.Sprintf("%d", s.Summary.Blockers),
		"STD":          p.Sprintf("%.3f", s.Summary.Std),
		"CV":           p.Sprintf("%.3f", s.Summary.Cv),
	}
	keys := []string{"Game Name", "Total Spins", "Total RTP", "RTP 95% CI", "Total Bet", "Total Win", "NoWin Spins", "Hit Rate", "Cascades", "Max Cascade", "Avg Cascade", "Destroyed", "Blockers Hit", "STD", "CV"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
