package db

import "time"

// Auth provider tags. A user created with a password is local; a federated
// login for the same email upgrades the account to federated while keeping
// any existing password hash. The transition never runs the other way.
const (
	ProviderLocal     = "local"
	ProviderFederated = "federated"
)

// Role names, ordered by privilege.
const (
	RoleUser    = "user"
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// roleLevels is the single role hierarchy. Roles absent from this table map
// to level 0: an unrecognized role never gains access.
var roleLevels = map[string]int{
	RoleUser:    0,
	RoleStudent: 1,
	RoleTeacher: 2,
	RoleAdmin:   3,
}

// RoleLevel returns the privilege level of a role. Unknown roles are level 0.
func RoleLevel(role string) int {
	return roleLevels[role]
}

// HasRole reports whether userRole grants at least the privilege of required.
func HasRole(userRole, required string) bool {
	return RoleLevel(userRole) >= RoleLevel(required)
}

// ValidRole reports whether the role name is part of the hierarchy.
func ValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}

// User represents a user from the database.
// Timestamps (Created and Updated) use RFC3339 format in UTC timezone.
// Example: "2024-03-07T15:04:05Z"
type User struct {
	ID    int64
	Email string
	// Name is the optional display name.
	Name string
	// Password holds the bcrypt digest. Empty for purely federated users;
	// such an account can never authenticate with a password.
	Password string
	// Role is one of the hierarchy names. Changed only through UpdateRole,
	// never by the user themself.
	Role string
	// AuthProvider is ProviderLocal or ProviderFederated.
	AuthProvider string
	// FederatedSubject is the stable subject id asserted by the identity
	// provider. Empty until a federated link exists, immutable afterwards.
	FederatedSubject string
	// Active gates session issuance and acceptance. An inactive user cannot
	// obtain or use a session regardless of credential validity.
	Active bool
	// Verified records whether the email address is known good. Set from the
	// federated assertion on federated creation, false for local signups.
	Verified bool
	Created  time.Time
	Updated  time.Time
}

// Game difficulty names.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// GameSession is one answered round of the balance scale game.
type GameSession struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Difficulty   string `json:"difficulty"`
	TargetNumber int    `json:"target_number"`
	UserAnswer   []int  `json:"user_answer"`
	IsCorrect    bool   `json:"is_correct"`
	Attempts     int    `json:"attempts"`
	// TimeSpentSeconds is 0 when the client did not report a duration.
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	Score            int       `json:"score"`
	Created          time.Time `json:"created_at"`
}

// TimeFormat renders a timestamp the way the stores persist it: RFC3339, UTC.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses a stored RFC3339 timestamp.
func TimeParse(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
