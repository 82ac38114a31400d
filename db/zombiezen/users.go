package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/balancescale/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const userColumns = `id, email, name, password, role, auth_provider, federated_subject, active, verified, created, updated`

// newUserFromStmt creates a User struct from a SQLite statement
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	return &db.User{
		ID:               stmt.GetInt64("id"),
		Email:            stmt.GetText("email"),
		Name:             stmt.GetText("name"),
		Password:         stmt.GetText("password"),
		Role:             stmt.GetText("role"),
		AuthProvider:     stmt.GetText("auth_provider"),
		FederatedSubject: stmt.GetText("federated_subject"),
		Active:           stmt.GetInt64("active") != 0,
		Verified:         stmt.GetInt64("verified") != 0,
		Created:          created,
		Updated:          updated,
	}, nil
}

// getUserWhere runs a single-row user query. A nil user with nil error means
// no matching record was found; errors are database errors only.
func (d *Db) getUserWhere(where string, args ...interface{}) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User // Will remain nil if no rows found
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE `+where+` LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: args,
		})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address. The lookup is
// case-sensitive as stored.
func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	return d.getUserWhere(`email = ?`, email)
}

func (d *Db) GetUserById(id int64) (*db.User, error) {
	return d.getUserWhere(`id = ?`, id)
}

// GetUserByFederatedSubject retrieves a user by the subject id of its
// federated identity link.
func (d *Db) GetUserByFederatedSubject(subject string) (*db.User, error) {
	return d.getUserWhere(`federated_subject = ?`, subject)
}

// CreateUserWithPassword inserts a local user. The UNIQUE constraint on email
// is the concurrency control: whichever of two racing registrations commits
// second gets db.ErrEmailConflict, the same outcome a transaction would give.
func (d *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var createdUser *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (email, name, password, role, auth_provider, active, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				createdUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.Email,
				user.Name,
				user.Password,
				db.RoleUser,
				db.ProviderLocal,
				true,
				user.Verified,
			},
		})

	if err != nil {
		if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
			return nil, db.ErrEmailConflict
		}
		return nil, err
	}

	return createdUser, nil
}

// CreateUserWithFederated inserts a federated user. When the email already
// belongs to a row, the same statement links that row to the federated
// subject instead (one-way local to federated upgrade; an existing password
// hash and an existing federated link are both left untouched). With sqlite's
// single writer this upsert keeps concurrent reconciliations for the same
// identity on one row without a transaction.
func (d *Db) CreateUserWithFederated(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var createdUser *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (email, name, password, role, auth_provider, federated_subject, active, verified)
		VALUES (?, ?, '', ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			federated_subject = COALESCE(federated_subject, excluded.federated_subject),
			auth_provider = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				createdUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.Email,
				user.Name,
				db.RoleUser,
				db.ProviderFederated,
				user.FederatedSubject,
				true,
				user.Verified,
				db.ProviderFederated,
			},
		})

	if err != nil {
		return nil, err
	}

	return createdUser, nil
}

// UpdateRole sets the role of a user and touches the updated timestamp.
func (d *Db) UpdateRole(userID int64, role string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	var updatedUser *db.User
	err = sqlitex.Execute(conn,
		`UPDATE users
		SET role = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				updatedUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{role, userID},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if updatedUser == nil {
		return nil, db.ErrUserNotFound
	}

	return updatedUser, nil
}

// SetActive toggles the account on or off.
func (d *Db) SetActive(userID int64, active bool) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	found := false
	err = sqlitex.Execute(conn,
		`UPDATE users
		SET active = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?
		RETURNING id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				return nil
			},
			Args: []interface{}{active, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to set active: %w", err)
	}
	if !found {
		return db.ErrUserNotFound
	}

	return nil
}
