package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"movieBrowser/internal/password"
	"movieBrowser/models"
)

const (
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
)

// usersSchema mirrors migrations/0001_create_users.up.sql so that Initialize
// also works on a handle that was opened without migrations.
const usersSchema = `CREATE TABLE IF NOT EXISTS users (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT    NOT NULL UNIQUE,
    password TEXT    NOT NULL,
    role     TEXT    NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user'))
)`

type UserRepository struct {
	db     DBTX
	hasher password.Hasher
}

// NewUserRepository builds a repository over db. A nil hasher selects SHA-256.
func NewUserRepository(db DBTX, hasher password.Hasher) *UserRepository {
	if hasher == nil {
		hasher = password.SHA256{}
	}
	return &UserRepository{db: db, hasher: hasher}
}

// writeContext detaches writes from caller cancellation: once issued, a write
// runs to completion or failure within writeTimeout.
func writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
}

// Initialize creates the users table if needed and seeds the bootstrap
// administrator. Safe to call on every start: an existing id=1 row is kept as is.
func (r *UserRepository) Initialize(ctx context.Context) error {
	ctx, cancel := writeContext(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, usersSchema); err != nil {
		return mapStorageErr("create users table", err)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, username, password, role) VALUES (?, ?, ?, ?)`,
		models.BootstrapAdminID, models.BootstrapAdminUsername, r.hasher.Hash(models.BootstrapAdminPassword), models.RoleAdmin)
	return mapStorageErr("seed admin", err)
}

// Create inserts a new user and returns it with its generated ID.
// Role defaults to 'user'.
func (r *UserRepository) Create(ctx context.Context, username, plaintext string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if username == "" || plaintext == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := writeContext(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, password, role) VALUES (?, ?, ?)`,
		username, r.hasher.Hash(plaintext), role)
	if err != nil {
		return nil, mapStorageErr("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapStorageErr("create user", err)
	}
	return &models.User{ID: id, Username: username, Role: role}, nil
}

// FindByCredentials returns the user whose username and password digest both
// match, or nil. Unknown usernames and wrong passwords are indistinguishable.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, plaintext string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var (
		u      models.User
		digest string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, username, role, password FROM users WHERE username = ? LIMIT 1`, username).
		Scan(&u.ID, &u.Username, &u.Role, &digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStorageErr("find by credentials", err)
	}
	if !r.hasher.Verify(plaintext, digest) {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT id, username, role FROM users WHERE id = ?`, id).Scan(&u.ID, &u.Username, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStorageErr("get user", err)
	}
	return &u, nil
}

// List returns every user ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, role FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, mapStorageErr("list users", err)
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
			return nil, mapStorageErr("list users", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStorageErr("list users", err)
	}
	return out, nil
}

// Update writes the fields present in upd. Without fields nothing is executed
// and Updated is false. A demotion of the bootstrap administrator is coerced
// back to admin and reported via RoleCoerced.
func (r *UserRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) (UpdateResult, error) {
	var res UpdateResult
	if upd.Empty() {
		return res, nil
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Username != nil && *upd.Username != "" {
		sets = append(sets, "username = ?")
		args = append(args, *upd.Username)
	}
	if upd.Password != nil && *upd.Password != "" {
		sets = append(sets, "password = ?")
		args = append(args, r.hasher.Hash(*upd.Password))
	}
	if upd.Role != nil && *upd.Role != "" {
		role := *upd.Role
		if !role.Valid() {
			return res, ErrInvalidRole
		}
		if models.IsBootstrapAdmin(id) && role != models.RoleAdmin {
			role = models.RoleAdmin
			res.RoleCoerced = true
		}
		sets = append(sets, "role = ?")
		args = append(args, role)
	}
	args = append(args, id)

	ctx, cancel := writeContext(ctx)
	defer cancel()

	out, err := r.db.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return UpdateResult{}, mapStorageErr("update user", err)
	}
	n, err := out.RowsAffected()
	if err != nil {
		return UpdateResult{}, mapStorageErr("update user", err)
	}
	res.Updated = n > 0
	if !res.Updated {
		res.RoleCoerced = false
	}
	return res, nil
}

// Delete removes the user and reports whether a row was removed. The bootstrap
// administrator is refused before any statement is issued.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if models.IsBootstrapAdmin(id) {
		return false, ErrProtectedRecord
	}

	ctx, cancel := writeContext(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, mapStorageErr("delete user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapStorageErr("delete user", err)
	}
	return n > 0, nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, mapStorageErr("count users", err)
	}
	return n, nil
}
