package mock

import (
	"github.com/caasmo/balancescale/db"
)

// Compile-time check to ensure Db implements the DbApp interface
var _ db.DbApp = (*Db)(nil)

// Db implements db.DbApp for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	// --- Mock DbAuth Methods ---
	GetUserByEmailFunc            func(email string) (*db.User, error)
	GetUserByIdFunc               func(id int64) (*db.User, error)
	GetUserByFederatedSubjectFunc func(subject string) (*db.User, error)
	CreateUserWithPasswordFunc    func(user db.User) (*db.User, error)
	CreateUserWithFederatedFunc   func(user db.User) (*db.User, error)
	UpdateRoleFunc                func(userID int64, role string) (*db.User, error)
	SetActiveFunc                 func(userID int64, active bool) error

	// --- Mock DbGame Methods ---
	InsertGameSessionFunc func(session db.GameSession) (*db.GameSession, error)
	GetGameSessionsFunc   func(userID int64, limit int) ([]*db.GameSession, error)
}

// --- Implement DbAuth ---

func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetUserById(id int64) (*db.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(id)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetUserByFederatedSubject(subject string) (*db.User, error) {
	if m.GetUserByFederatedSubjectFunc != nil {
		return m.GetUserByFederatedSubjectFunc(subject)
	}
	return nil, nil // Default: not found
}

func (m *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	if m.CreateUserWithPasswordFunc != nil {
		return m.CreateUserWithPasswordFunc(user)
	}
	// Default: return the user passed in, assuming success
	user.ID = 1
	return &user, nil
}

func (m *Db) CreateUserWithFederated(user db.User) (*db.User, error) {
	if m.CreateUserWithFederatedFunc != nil {
		return m.CreateUserWithFederatedFunc(user)
	}
	user.ID = 1
	return &user, nil
}

func (m *Db) UpdateRole(userID int64, role string) (*db.User, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(userID, role)
	}
	return nil, db.ErrUserNotFound
}

func (m *Db) SetActive(userID int64, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(userID, active)
	}
	return db.ErrUserNotFound
}

// --- Implement DbGame ---

func (m *Db) InsertGameSession(session db.GameSession) (*db.GameSession, error) {
	if m.InsertGameSessionFunc != nil {
		return m.InsertGameSessionFunc(session)
	}
	session.ID = 1
	return &session, nil
}

func (m *Db) GetGameSessions(userID int64, limit int) ([]*db.GameSession, error) {
	if m.GetGameSessionsFunc != nil {
		return m.GetGameSessionsFunc(userID, limit)
	}
	return nil, nil
}
