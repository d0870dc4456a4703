package domain

import "time"

// Role is a profile role
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// IsStaff reports whether the role may moderate forum content
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

// Profile is a community member. ID comes from the external auth service.
type Profile struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Username    string    `gorm:"column:username;type:varchar(50);index" json:"username"`
	DisplayName string    `gorm:"column:display_name;type:varchar(100)" json:"display_name,omitempty"`
	AvatarURL   string    `gorm:"column:avatar_url;type:varchar(500)" json:"avatar_url,omitempty"`
	Role        Role      `gorm:"column:role;type:varchar(20);default:'user'" json:"role"`
	PostCount   int       `gorm:"column:post_count;default:0" json:"post_count"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// Actor is the authenticated caller of a request, taken from token claims
type Actor struct {
	UserID   string
	Username string
	Role     Role
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Profile returns the profile row the actor should own
func (a Actor) Profile() *Profile {
	role := a.Role
	if role == "" {
		role = RoleUser
	}
	return &Profile{ID: a.UserID, Username: a.Username, DisplayName: a.Username, Role: role}
}
