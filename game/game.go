package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/caasmo/balancescale/db"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty level")

// params defines the playing field for one difficulty level.
type params struct {
	minValue   int
	maxValue   int
	targetMin  int
	targetMax  int
	maxAddends int
	hints      bool
}

var difficultyParams = map[string]params{
	db.DifficultyEasy:   {minValue: 1, maxValue: 10, targetMin: 5, targetMax: 20, maxAddends: 3, hints: true},
	db.DifficultyMedium: {minValue: 1, maxValue: 20, targetMin: 10, targetMax: 50, maxAddends: 4, hints: true},
	db.DifficultyHard:   {minValue: 1, maxValue: 50, targetMin: 20, targetMax: 100, maxAddends: 5, hints: false},
}

// Config is one round of the balance scale game: the player picks addends
// between MinValue and MaxValue to hit TargetNumber.
type Config struct {
	TargetNumber int    `json:"target_number"`
	Difficulty   string `json:"difficulty"`
	MinValue     int    `json:"min_value"`
	MaxValue     int    `json:"max_value"`
	MaxAddends   int    `json:"max_addends"`
	HintsEnabled bool   `json:"hints_enabled"`
}

// NewConfig generates a round for the given difficulty with a random target.
func NewConfig(difficulty string) (*Config, error) {
	p, ok := difficultyParams[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDifficulty, difficulty)
	}

	return &Config{
		TargetNumber: p.targetMin + rand.IntN(p.targetMax-p.targetMin+1),
		Difficulty:   difficulty,
		MinValue:     p.minValue,
		MaxValue:     p.maxValue,
		MaxAddends:   p.maxAddends,
		HintsEnabled: p.hints,
	}, nil
}

func ValidDifficulty(difficulty string) bool {
	_, ok := difficultyParams[difficulty]
	return ok
}

// Result is the outcome of checking a submitted answer against the target.
type Result struct {
	IsCorrect  bool
	UserSum    int
	Difference int
	Feedback   string
}

// Evaluate sums the answer and produces player-facing feedback. The
// difference is signed: positive means the scale tips toward the answer.
func Evaluate(targetNumber int, userAnswer []int) Result {
	sum := 0
	for _, n := range userAnswer {
		sum += n
	}
	difference := sum - targetNumber

	var feedback string
	switch {
	case difference == 0:
		feedback = "Perfect! You balanced the scale! 🎉"
	case difference > 0 && difference <= 2:
		feedback = "So close! Try adjusting by a small amount."
	case difference < 0 && difference >= -2:
		feedback = "Almost there! Add a bit more."
	case difference > 0:
		feedback = fmt.Sprintf("Too heavy! Your sum is %d more than the target. Remove some weight.", difference)
	default:
		feedback = fmt.Sprintf("Too light! Your sum is %d less than the target. Add more weight.", -difference)
	}

	return Result{
		IsCorrect:  difference == 0,
		UserSum:    sum,
		Difference: difference,
		Feedback:   feedback,
	}
}

var baseScores = map[string]int{
	db.DifficultyEasy:   10,
	db.DifficultyMedium: 20,
	db.DifficultyHard:   30,
}

const (
	speedBonus          = 5
	speedBonusMaxTime   = 30 // seconds
	retryPenaltyPerRun  = 2
	minimumCorrectScore = 1
)

// CalculateScore scores a round. Wrong answers score zero; correct answers
// earn the difficulty's base score, a bonus for answers under thirty
// seconds, and lose points per extra attempt, but never drop below one.
// A timeSpentSeconds of zero means the client did not report a time.
func CalculateScore(isCorrect bool, difficulty string, timeSpentSeconds, attempts int) int {
	if !isCorrect {
		return 0
	}

	score := baseScores[difficulty]

	if timeSpentSeconds > 0 && timeSpentSeconds < speedBonusMaxTime {
		score += speedBonus
	}

	score -= (attempts - 1) * retryPenaltyPerRun
	if score < minimumCorrectScore {
		score = minimumCorrectScore
	}
	return score
}
