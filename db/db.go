package db

import "errors"

var (
	// ErrUserNotFound is returned by mutations targeting a nonexistent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailConflict is returned when an insert would duplicate an email,
	// regardless of which auth provider owns the existing row.
	ErrEmailConflict = errors.New("email already registered")
	// ErrInvalidRole is returned when a role name is not part of the hierarchy.
	ErrInvalidRole = errors.New("invalid role")
)

// DbAuth defines the persistence operations of the identity subsystem.
// Lookups return (nil, nil) when no matching row exists; an error always
// means a database failure.
type DbAuth interface {
	GetUserByEmail(email string) (*User, error)
	GetUserById(id int64) (*User, error)
	GetUserByFederatedSubject(subject string) (*User, error)

	// CreateUserWithPassword inserts a local user. Returns ErrEmailConflict
	// when the email exists, whether the owner is local or federated: a
	// registration never silently takes over a federated account.
	CreateUserWithPassword(user User) (*User, error)

	// CreateUserWithFederated inserts a federated user or, when the email
	// already exists, links the existing row to the federated subject in the
	// same statement. The upsert makes concurrent reconciliations for one
	// identity land on a single row without an explicit transaction. An
	// existing federated link is never overwritten.
	CreateUserWithFederated(user User) (*User, error)

	// UpdateRole sets the role of a user. Returns ErrUserNotFound when no
	// row matched. Outstanding session tokens keep the embedded old role
	// until re-issuance.
	UpdateRole(userID int64, role string) (*User, error)

	// SetActive toggles the account. Returns ErrUserNotFound when no row
	// matched.
	SetActive(userID int64, active bool) error
}

// DbGame defines the persistence operations of the game subsystem.
type DbGame interface {
	InsertGameSession(session GameSession) (*GameSession, error)
	// GetGameSessions returns the user's sessions, newest first. A limit of
	// 0 or less returns all of them.
	GetGameSessions(userID int64, limit int) ([]*GameSession, error)
}

// DbApp combines the database roles the application requires. The concrete
// implementation (e.g. *zombiezen.Db) must satisfy this interface.
type DbApp interface {
	DbAuth
	DbGame
}
