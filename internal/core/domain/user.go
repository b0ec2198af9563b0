package domain

import "time"

// Role is the job function of a team member.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleAccountManager   Role = "account_manager"
	RoleCreativeDirector Role = "creative_director"
	RoleCopywriter       Role = "copywriter"
	RoleDesigner         Role = "designer"
	RoleAnalyst          Role = "analyst"
)

// AllRoles lists every role in declaration order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleAccountManager, RoleCreativeDirector, RoleCopywriter, RoleDesigner, RoleAnalyst}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAccountManager, RoleCreativeDirector, RoleCopywriter, RoleDesigner, RoleAnalyst:
		return true
	}
	return false
}

// User models a team member. PasswordHash never leaves the process.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	AvatarURL    *string    `json:"avatar_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	IsActive     bool       `json:"is_active"`
	PasswordHash string     `json:"-"`

	UnparsedTimestamps map[string]string `json:"unparsed_timestamps,omitempty"`
}

// UserUpdate enumerates the mutable fields of a team member. Nil fields are
// left untouched.
type UserUpdate struct {
	Name      *string
	Email     *string
	Role      *Role
	AvatarURL *string
	IsActive  *bool
}

// Empty reports whether no field is set.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.AvatarURL == nil && u.IsActive == nil
}
