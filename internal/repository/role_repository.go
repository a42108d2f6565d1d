package repository

import (
	"context"

	"gorm.io/gorm"

	"rbacauth/internal/model"
)

// RoleRepository defines role persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	// NameTaken reports whether a role other than excludeID is called name.
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]model.Role, error)
	Rename(ctx context.Context, role *model.Role, newName string) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// Create creates a new role.
func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// FindByID finds a role by ID.
func (r *roleRepository) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByName finds a role by its unique name.
func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns every role ordered by id.
func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	roles := []model.Role{}
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Rename changes the role name and the rolename copy on every assignment of
// the role in one transaction. Assignments are matched by role id or by the
// old name.
func (r *roleRepository) Rename(ctx context.Context, role *model.Role, newName string) error {
	oldName := role.Name
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Role{}).
			Where("id = ?", role.ID).
			Update("name", newName).Error; err != nil {
			return err
		}
		return tx.Model(&model.UserRole{}).
			Where("role_id = ? OR rolename = ?", role.ID, oldName).
			Update("rolename", newName).Error
	})
	if err != nil {
		return err
	}
	role.Name = newName
	return nil
}

// Delete removes the role and its assignments and returns the number of
// roles removed.
func (r *roleRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Role{}, id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("role_id = ?", id).Delete(&model.UserRole{}).Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
