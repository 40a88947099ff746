package repository

import (
	"context"
	"database/sql"

	"movieBrowser/models"
)

// DBTX is the only storage surface the repositories use. *sql.DB and *sql.Tx
// both satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Initialize(ctx context.Context) error
	Create(ctx context.Context, username, password string, role models.Role) (*models.User, error)
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (UpdateResult, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// UpdateResult reports the outcome of an update.
type UpdateResult struct {
	// Updated is true when a row was affected.
	Updated bool
	// RoleCoerced is true when a requested demotion was replaced by the admin role.
	RoleCoerced bool
}

var _ UserRepositoryI = (*UserRepository)(nil)
