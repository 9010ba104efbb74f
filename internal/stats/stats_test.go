package stats

import (
	"math"
	"testing"

	"dota-tracker/internal/domain"
)

func TestWinRate_ZeroGames(t *testing.T) {
	for _, wins := range []int{0, 1, 5, 100} {
		if got := WinRate(wins, 0); got != 0 {
			t.Errorf("WinRate(%d, 0) = %v, want 0", wins, got)
		}
	}
}

func TestWinRate_NeverNaNOrInf(t *testing.T) {
	cases := [][2]int{{0, 0}, {5, 0}, {0, 5}, {3, 5}, {5, 5}}
	for _, c := range cases {
		got := WinRate(c[0], c[1])
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("WinRate(%d, %d) = %v, want finite", c[0], c[1], got)
		}
	}
}

func TestWinRate_Fraction(t *testing.T) {
	if got := WinRate(3, 5); got != 0.6 {
		t.Errorf("WinRate(3, 5) = %v, want 0.6", got)
	}
}

func TestKDA_ZeroDeaths(t *testing.T) {
	if got := KDA(7, 0, 3); got != 10 {
		t.Errorf("KDA(7, 0, 3) = %v, want 10", got)
	}
}

func TestKDA_WithDeaths(t *testing.T) {
	if got := KDA(6, 4, 2); got != 2 {
		t.Errorf("KDA(6, 4, 2) = %v, want 2", got)
	}
}

// Chronologically: 3 wins, then 2 losses. Most-recent-first that is
// [L, L, W, W, W]; the active run is two losses, so Current is -2.
func TestStreaks_SignConvention(t *testing.T) {
	results := []domain.Result{
		domain.ResultLost, domain.ResultLost,
		domain.ResultWon, domain.ResultWon, domain.ResultWon,
	}
	s := Streaks(results)
	if s.Current != -2 {
		t.Errorf("Current = %d, want -2", s.Current)
	}
	if s.LongestWin != 3 {
		t.Errorf("LongestWin = %d, want 3", s.LongestWin)
	}
	if s.LongestLoss != 2 {
		t.Errorf("LongestLoss = %d, want 2", s.LongestLoss)
	}
}

func TestStreaks_ActiveWinRun(t *testing.T) {
	results := []domain.Result{domain.ResultWon, domain.ResultWon, domain.ResultLost}
	s := Streaks(results)
	if s.Current != 2 {
		t.Errorf("Current = %d, want 2", s.Current)
	}
	if s.LongestWin != 2 || s.LongestLoss != 1 {
		t.Errorf("longest = (%d, %d), want (2, 1)", s.LongestWin, s.LongestLoss)
	}
}

func TestStreaks_Empty(t *testing.T) {
	s := Streaks(nil)
	if s.Current != 0 || s.LongestWin != 0 || s.LongestLoss != 0 {
		t.Errorf("Streaks(nil) = %+v, want zero value", s)
	}
}

func TestTrend_Improving(t *testing.T) {
	// Recent window mean 1.0 vs older 0.0.
	values := []float64{1, 1, 0, 0}
	if got := Trend(values, 2, 0.05); got != domain.TrendImproving {
		t.Errorf("Trend = %v, want improving", got)
	}
}

func TestTrend_Declining(t *testing.T) {
	values := []float64{0, 0, 1, 1}
	if got := Trend(values, 2, 0.05); got != domain.TrendDeclining {
		t.Errorf("Trend = %v, want declining", got)
	}
}

func TestTrend_StableWithinThreshold(t *testing.T) {
	values := []float64{0.52, 0.50, 0.50, 0.48}
	if got := Trend(values, 2, 0.05); got != domain.TrendStable {
		t.Errorf("Trend = %v, want stable", got)
	}
}

// Fewer than 2*window matches is not enough signal.
func TestTrend_TooFewValues(t *testing.T) {
	values := []float64{1, 1, 1}
	if got := Trend(values, 2, 0.05); got != domain.TrendStable {
		t.Errorf("Trend = %v, want stable for short input", got)
	}
}

func TestTierFor_Cutoffs(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Tier
	}{
		{100, domain.TierS},
		{71, domain.TierS},
		{70, domain.TierA}, // cutoff is strict
		{61, domain.TierA},
		{60, domain.TierB},
		{51, domain.TierB},
		{50, domain.TierC},
		{41, domain.TierC},
		{40, domain.TierD},
		{0, domain.TierD},
	}
	for _, c := range cases {
		if got := TierFor(c.score); got != c.want {
			t.Errorf("TierFor(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}
