package model

// UserRole assigns a user to a role. Username and RoleName are copies taken
// at assignment time; the repositories keep them in step with renames.
type UserRole struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_roles_user_role"`
	RoleID   uint   `json:"role_id" gorm:"not null;uniqueIndex:idx_user_roles_user_role;index"`
	Username string `json:"username" gorm:"size:255;not null"`
	RoleName string `json:"rolename" gorm:"column:rolename;size:255;not null;index"`
}

// TableName overrides the pluralized default.
func (UserRole) TableName() string {
	return "user_roles"
}
