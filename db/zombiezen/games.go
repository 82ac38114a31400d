package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/caasmo/balancescale/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const gameSessionColumns = `id, user_id, difficulty, target_number, user_answer, is_correct, attempts, time_spent_seconds, score, created`

func newGameSessionFromStmt(stmt *sqlite.Stmt) (*db.GameSession, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	var answer []int
	if raw := stmt.GetText("user_answer"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &answer); err != nil {
			return nil, fmt.Errorf("error parsing user_answer: %w", err)
		}
	}

	return &db.GameSession{
		ID:               stmt.GetInt64("id"),
		UserID:           stmt.GetInt64("user_id"),
		Difficulty:       stmt.GetText("difficulty"),
		TargetNumber:     int(stmt.GetInt64("target_number")),
		UserAnswer:       answer,
		IsCorrect:        stmt.GetInt64("is_correct") != 0,
		Attempts:         int(stmt.GetInt64("attempts")),
		TimeSpentSeconds: int(stmt.GetInt64("time_spent_seconds")),
		Score:            int(stmt.GetInt64("score")),
		Created:          created,
	}, nil
}

// InsertGameSession persists one answered round and returns the stored row.
func (d *Db) InsertGameSession(session db.GameSession) (*db.GameSession, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	answer, err := json.Marshal(session.UserAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user_answer: %w", err)
	}

	var created *db.GameSession
	err = sqlitex.Execute(conn,
		`INSERT INTO game_sessions (user_id, difficulty, target_number, user_answer, is_correct, attempts, time_spent_seconds, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+gameSessionColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newGameSessionFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				session.UserID,
				session.Difficulty,
				session.TargetNumber,
				string(answer),
				session.IsCorrect,
				session.Attempts,
				session.TimeSpentSeconds,
				session.Score,
			},
		})

	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetGameSessions returns the user's sessions, newest first. A limit of 0 or
// less returns all sessions.
func (d *Db) GetGameSessions(userID int64, limit int) ([]*db.GameSession, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if limit <= 0 {
		limit = -1 // sqlite: LIMIT -1 means no limit
	}

	var sessions []*db.GameSession
	err = sqlitex.Execute(conn,
		`SELECT `+gameSessionColumns+`
		FROM game_sessions
		WHERE user_id = ?
		ORDER BY created DESC, id DESC
		LIMIT ?`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				s, err := newGameSessionFromStmt(stmt)
				if err != nil {
					return err
				}
				sessions = append(sessions, s)
				return nil
			},
			Args: []interface{}{userID, limit},
		})

	if err != nil {
		return nil, err
	}

	return sessions, nil
}
