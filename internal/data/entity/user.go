package entity

import (
	"database/sql/driver"
	"fmt"
)

// Role is the closed set of account roles.
type Role int

const (
	RoleClient Role = iota + 1
	RoleAdmin
)

const (
	roleClientName = "client"
	roleAdminName  = "admin"
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return roleClientName
	case RoleAdmin:
		return roleAdminName
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole maps the persisted tag back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleClientName:
		return RoleClient, nil
	case roleAdminName:
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return r.String(), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}
}

type User struct {
	Base
	Username     string         `db:"username"`
	PasswordHash CredentialHash `db:"password"`
	Role         Role           `db:"role"`
}

// Identity is the authenticated view of a user handed to callers.
type Identity struct {
	ID       int64
	Username string
	Role     Role
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
