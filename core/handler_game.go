package core

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/caasmo/balancescale/db"
	"github.com/caasmo/balancescale/game"
)

const (
	CodeOkGameConfig   = "ok_game_config"
	CodeOkGameResult   = "ok_game_result"
	CodeOkGameProgress = "ok_game_progress"
	CodeOkGameHistory  = "ok_game_history"
)

// GameConfigHandler generates a fresh round for the requested difficulty.
// Endpoint: POST /api/game/config
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) GameConfigHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	cfg, err := game.NewConfig(req.Difficulty)
	if err != nil {
		writeJsonError(w, errorInvalidDifficulty)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkGameConfig,
			Message: "Game configuration generated",
		},
		Data: cfg,
	}
	writeJsonWithData(w, response)
}

type submitAnswerRequest struct {
	Difficulty       string `json:"difficulty"`
	TargetNumber     int    `json:"target_number"`
	UserAnswer       []int  `json:"user_answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

type submitAnswerData struct {
	SessionID    int64  `json:"session_id"`
	IsCorrect    bool   `json:"is_correct"`
	UserSum      int    `json:"user_sum"`
	TargetNumber int    `json:"target_number"`
	Difference   int    `json:"difference"`
	Feedback     string `json:"feedback"`
	Score        int    `json:"score"`
}

// SubmitAnswerHandler checks a submitted answer, scores it and persists the
// session. Every submission counts as a single attempt; retries arrive as
// separate submissions.
// Endpoint: POST /api/game/submit
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if resp, ok := a.ValidateContentType(r, MimeTypeJSON); !ok {
		writeJsonError(w, resp)
		return
	}

	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if !game.ValidDifficulty(req.Difficulty) {
		writeJsonError(w, errorInvalidDifficulty)
		return
	}
	if len(req.UserAnswer) == 0 {
		writeJsonError(w, errorMissingFields)
		return
	}

	result := game.Evaluate(req.TargetNumber, req.UserAnswer)
	score := game.CalculateScore(result.IsCorrect, req.Difficulty, req.TimeSpentSeconds, 1)

	session, err := a.DbGame().InsertGameSession(db.GameSession{
		UserID:           user.ID,
		Difficulty:       req.Difficulty,
		TargetNumber:     req.TargetNumber,
		UserAnswer:       req.UserAnswer,
		IsCorrect:        result.IsCorrect,
		Attempts:         1,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Score:            score,
	})
	if err != nil {
		a.Logger().Error("failed to persist game session", "user_id", user.ID, "error", err)
		writeJsonError(w, errorGameDatabaseError)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkGameResult,
			Message: result.Feedback,
		},
		Data: submitAnswerData{
			SessionID:    session.ID,
			IsCorrect:    result.IsCorrect,
			UserSum:      result.UserSum,
			TargetNumber: req.TargetNumber,
			Difference:   result.Difference,
			Feedback:     result.Feedback,
			Score:        score,
		},
	}
	writeJsonWithData(w, response)
}

// GameProgressHandler aggregates the user's full session history into
// progress statistics.
// Endpoint: GET /api/game/progress
// Authenticated: Yes
func (a *App) GameProgressHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	sessions, err := a.DbGame().GetGameSessions(user.ID, 0)
	if err != nil {
		a.Logger().Error("failed to load game sessions", "user_id", user.ID, "error", err)
		writeJsonError(w, errorGameDatabaseError)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkGameProgress,
			Message: "Progress computed",
		},
		Data: game.ComputeProgress(sessions),
	}
	writeJsonWithData(w, response)
}

// GameHistoryHandler lists the user's recent sessions, newest first. The
// optional limit query parameter caps the result; it defaults from config.
// Endpoint: GET /api/game/history
// Authenticated: Yes
func (a *App) GameHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	limit := a.Config().Game.HistoryDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJsonError(w, errorInvalidRequest)
			return
		}
		limit = parsed
	}

	sessions, err := a.DbGame().GetGameSessions(user.ID, limit)
	if err != nil {
		a.Logger().Error("failed to load game history", "user_id", user.ID, "error", err)
		writeJsonError(w, errorGameDatabaseError)
		return
	}
	if sessions == nil {
		sessions = []*db.GameSession{}
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkGameHistory,
			Message: "History loaded",
		},
		Data: struct {
			Sessions []*db.GameSession `json:"sessions"`
		}{Sessions: sessions},
	}
	writeJsonWithData(w, response)
}
