package models

// The bootstrap administrator is seeded on first initialization and can never
// be deleted or demoted.
const (
	BootstrapAdminID       int64  = 1
	BootstrapAdminUsername        = "admin"
	BootstrapAdminPassword        = "1234"
)

// IsBootstrapAdmin reports whether id refers to the protected admin record.
func IsBootstrapAdmin(id int64) bool {
	return id == BootstrapAdminID
}

// NewBootstrapAdmin returns the identity of the seeded administrator.
func NewBootstrapAdmin() *User {
	return &User{ID: BootstrapAdminID, Username: BootstrapAdminUsername, Role: RoleAdmin}
}
