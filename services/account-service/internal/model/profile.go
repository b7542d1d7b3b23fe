package model

import "time"

// Role is the privilege level of a profile.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// UserProfile is the application-level record of a registered identity,
// keyed by the identity's uid.
type UserProfile struct {
	ID            string     `bson:"uid"           json:"id"`
	Email         string     `bson:"email"         json:"email"`
	DisplayName   string     `bson:"displayName"   json:"displayName"`
	Role          Role       `bson:"role"          json:"role"`
	IsBanned      bool       `bson:"isBanned"      json:"isBanned"`
	BannedAt      *time.Time `bson:"bannedAt"      json:"bannedAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt"     json:"createdAt"`
	LastLoginAt   time.Time  `bson:"lastLoginAt"   json:"lastLoginAt"`
	EmailVerified bool       `bson:"emailVerified" json:"emailVerified"`
}

// IsAdmin reports whether the profile holds the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
