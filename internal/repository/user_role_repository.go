package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rbacauth/internal/model"
)

// UserRoleRepository defines user-role assignment operations.
type UserRoleRepository interface {
	// Assign inserts an assignment. Assigning an existing pair again is a no-op.
	Assign(ctx context.Context, assignment *model.UserRole) error
	Unassign(ctx context.Context, userID, roleID uint) (int64, error)
	ListUsersByRole(ctx context.Context, role *model.Role) ([]model.User, error)
}

type userRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository creates a new assignment repository.
func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) Assign(ctx context.Context, assignment *model.UserRole) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(assignment).Error
}

func (r *userRoleRepository) Unassign(ctx context.Context, userID, roleID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRole{})
	return res.RowsAffected, res.Error
}

// ListUsersByRole returns the users assigned to role, matching assignments by
// rolename or by role id.
func (r *userRoleRepository) ListUsersByRole(ctx context.Context, role *model.Role) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).
		Select("DISTINCT users.*").
		Joins("JOIN user_roles ON users.id = user_roles.user_id").
		Where("user_roles.rolename = ? OR user_roles.role_id = ?", role.Name, role.ID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
