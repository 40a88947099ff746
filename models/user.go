package models

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the persisted roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the identity of an account: everything in the `users` table except
// the password digest, which never leaves the repository.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Role     Role   `db:"role" json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserUpdate carries the optional fields of an update. Nil or empty fields are
// left untouched.
type UserUpdate struct {
	Username *string
	Password *string
	Role     *Role
}

// Empty reports whether no field would be written.
func (u UserUpdate) Empty() bool {
	return isBlank(u.Username) && isBlank(u.Password) && (u.Role == nil || *u.Role == "")
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
