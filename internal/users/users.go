// Package users applies the administrative rules that depend on who is acting:
// an admin can never demote or delete themselves, and the bootstrap
// administrator can never be deleted.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movieBrowser/models"
	"movieBrowser/repository"
)

// ErrSelfDelete is returned when an admin tries to delete their own account.
var ErrSelfDelete = errors.New("cannot delete your own account")

// Manager wraps the user store for admin-initiated changes.
type Manager struct {
	store repository.UserRepositoryI
}

func NewManager(store repository.UserRepositoryI) *Manager {
	return &Manager{store: store}
}

// List returns every identity ordered by id.
func (m *Manager) List(ctx context.Context) ([]models.User, error) {
	return m.store.List(ctx)
}

// Create adds an account. The username is trimmed; the role defaults to user.
func (m *Manager) Create(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", repository.ErrInvalidInput)
	}
	return m.store.Create(ctx, username, password, role)
}

// Update applies upd to record id on behalf of actor. When an admin edits their
// own record, a role other than admin is replaced by admin and the result
// reports the coercion instead of failing.
func (m *Manager) Update(ctx context.Context, actor *models.User, id int64, upd models.UserUpdate) (repository.UpdateResult, error) {
	if upd.Username != nil {
		trimmed := strings.TrimSpace(*upd.Username)
		upd.Username = &trimmed
	}
	coerced := false
	if actor.IsAdmin() && actor.ID == id && upd.Role != nil && *upd.Role != "" && *upd.Role != models.RoleAdmin {
		if !upd.Role.Valid() {
			return repository.UpdateResult{}, repository.ErrInvalidRole
		}
		admin := models.RoleAdmin
		upd.Role = &admin
		coerced = true
	}
	res, err := m.store.Update(ctx, id, upd)
	if err != nil {
		return res, err
	}
	res.RoleCoerced = res.Updated && (res.RoleCoerced || coerced)
	return res, nil
}

// Delete removes record id on behalf of actor.
func (m *Manager) Delete(ctx context.Context, actor *models.User, id int64) (bool, error) {
	if models.IsBootstrapAdmin(id) {
		return false, repository.ErrProtectedRecord
	}
	if actor != nil && actor.ID == id {
		return false, ErrSelfDelete
	}
	return m.store.Delete(ctx, id)
}
