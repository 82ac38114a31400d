package game

import (
	"github.com/caasmo/balancescale/db"
)

const recentSessionCount = 5

type DifficultyStats struct {
	Played   int     `json:"played"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type RecentSession struct {
	ID           int64  `json:"id"`
	Difficulty   string `json:"difficulty"`
	TargetNumber int    `json:"target_number"`
	IsCorrect    bool   `json:"is_correct"`
	Score        int    `json:"score"`
	CreatedAt    string `json:"created_at"`
}

type Progress struct {
	TotalGames         int                        `json:"total_games"`
	CorrectGames       int                        `json:"correct_games"`
	AccuracyPercentage float64                    `json:"accuracy_percentage"`
	TotalScore         int                        `json:"total_score"`
	AverageTimeSeconds float64                    `json:"average_time_seconds"`
	DifficultyStats    map[string]DifficultyStats `json:"difficulty_stats"`
	RecentSessions     []RecentSession            `json:"recent_sessions"`
}

// ComputeProgress aggregates a player's sessions into overall and
// per-difficulty statistics. Sessions must be ordered newest first; the
// recent list is the head of that order. Sessions without a reported time
// are excluded from the time average.
func ComputeProgress(sessions []*db.GameSession) Progress {
	progress := Progress{
		DifficultyStats: map[string]DifficultyStats{
			db.DifficultyEasy:   {},
			db.DifficultyMedium: {},
			db.DifficultyHard:   {},
		},
		RecentSessions: []RecentSession{},
	}

	if len(sessions) == 0 {
		return progress
	}

	timedSum := 0
	timedCount := 0
	for _, s := range sessions {
		progress.TotalGames++
		progress.TotalScore += s.Score
		if s.IsCorrect {
			progress.CorrectGames++
		}
		if s.TimeSpentSeconds > 0 {
			timedSum += s.TimeSpentSeconds
			timedCount++
		}

		stats := progress.DifficultyStats[s.Difficulty]
		stats.Played++
		if s.IsCorrect {
			stats.Correct++
		}
		progress.DifficultyStats[s.Difficulty] = stats
	}

	progress.AccuracyPercentage = float64(progress.CorrectGames) / float64(progress.TotalGames) * 100
	if timedCount > 0 {
		progress.AverageTimeSeconds = float64(timedSum) / float64(timedCount)
	}

	for difficulty, stats := range progress.DifficultyStats {
		if stats.Played > 0 {
			stats.Accuracy = float64(stats.Correct) / float64(stats.Played) * 100
			progress.DifficultyStats[difficulty] = stats
		}
	}

	for _, s := range sessions[:min(recentSessionCount, len(sessions))] {
		progress.RecentSessions = append(progress.RecentSessions, RecentSession{
			ID:           s.ID,
			Difficulty:   s.Difficulty,
			TargetNumber: s.TargetNumber,
			IsCorrect:    s.IsCorrect,
			Score:        s.Score,
			CreatedAt:    db.TimeFormat(s.Created),
		})
	}

	return progress
}
