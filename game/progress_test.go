package game

import (
	"math"
	"testing"
	"time"

	"github.com/caasmo/balancescale/db"
)

// almostEqual compares floats computed from integer ratios; constant folding
// happens in exact precision, so bit-level equality is too strict here.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeProgressEmpty(t *testing.T) {
	progress := ComputeProgress(nil)

	if progress.TotalGames != 0 || progress.TotalScore != 0 {
		t.Errorf("expected zeroed totals, got %+v", progress)
	}
	if progress.AccuracyPercentage != 0 || progress.AverageTimeSeconds != 0 {
		t.Errorf("expected zeroed averages, got %+v", progress)
	}
	if len(progress.DifficultyStats) != 3 {
		t.Errorf("expected stats for all three difficulties, got %v", progress.DifficultyStats)
	}
	if progress.RecentSessions == nil || len(progress.RecentSessions) != 0 {
		t.Errorf("expected empty, non-nil recent list, got %v", progress.RecentSessions)
	}
}

func TestComputeProgress(t *testing.T) {
	now := time.Now().UTC()
	// newest first, like the store returns them
	sessions := []*db.GameSession{
		{ID: 6, Difficulty: db.DifficultyHard, TargetNumber: 60, IsCorrect: false, Score: 0, Created: now},
		{ID: 5, Difficulty: db.DifficultyMedium, TargetNumber: 30, IsCorrect: true, Score: 20, TimeSpentSeconds: 40, Created: now.Add(-1 * time.Minute)},
		{ID: 4, Difficulty: db.DifficultyMedium, TargetNumber: 25, IsCorrect: true, Score: 25, TimeSpentSeconds: 20, Created: now.Add(-2 * time.Minute)},
		{ID: 3, Difficulty: db.DifficultyEasy, TargetNumber: 12, IsCorrect: false, Score: 0, Created: now.Add(-3 * time.Minute)},
		{ID: 2, Difficulty: db.DifficultyEasy, TargetNumber: 8, IsCorrect: true, Score: 15, TimeSpentSeconds: 15, Created: now.Add(-4 * time.Minute)},
		{ID: 1, Difficulty: db.DifficultyEasy, TargetNumber: 10, IsCorrect: true, Score: 10, TimeSpentSeconds: 45, Created: now.Add(-5 * time.Minute)},
	}

	progress := ComputeProgress(sessions)

	if progress.TotalGames != 6 {
		t.Errorf("expected 6 games, got %d", progress.TotalGames)
	}
	if progress.CorrectGames != 4 {
		t.Errorf("expected 4 correct, got %d", progress.CorrectGames)
	}
	if progress.TotalScore != 70 {
		t.Errorf("expected total score 70, got %d", progress.TotalScore)
	}
	wantAccuracy := 4.0 / 6.0 * 100
	if !almostEqual(progress.AccuracyPercentage, wantAccuracy) {
		t.Errorf("expected accuracy %.2f, got %.2f", wantAccuracy, progress.AccuracyPercentage)
	}
	// only the four timed sessions count
	wantAverage := (40.0 + 20.0 + 15.0 + 45.0) / 4.0
	if !almostEqual(progress.AverageTimeSeconds, wantAverage) {
		t.Errorf("expected average time %.2f, got %.2f", wantAverage, progress.AverageTimeSeconds)
	}

	easy := progress.DifficultyStats[db.DifficultyEasy]
	if easy.Played != 3 || easy.Correct != 2 {
		t.Errorf("unexpected easy stats: %+v", easy)
	}
	wantEasyAccuracy := 2.0 / 3.0 * 100
	if !almostEqual(easy.Accuracy, wantEasyAccuracy) {
		t.Errorf("expected easy accuracy %.2f, got %.2f", wantEasyAccuracy, easy.Accuracy)
	}

	hard := progress.DifficultyStats[db.DifficultyHard]
	if hard.Played != 1 || hard.Correct != 0 || hard.Accuracy != 0 {
		t.Errorf("unexpected hard stats: %+v", hard)
	}

	if len(progress.RecentSessions) != 5 {
		t.Fatalf("expected 5 recent sessions, got %d", len(progress.RecentSessions))
	}
	if progress.RecentSessions[0].ID != 6 {
		t.Errorf("expected newest session first, got id %d", progress.RecentSessions[0].ID)
	}
	if progress.RecentSessions[0].CreatedAt != db.TimeFormat(now) {
		t.Errorf("expected formatted created_at, got %q", progress.RecentSessions[0].CreatedAt)
	}
}
