package repository

import (
	"context"

	"go-file-share/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// 创建新群组
func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Omit("Users").Create(group).Error
}

// 根据ID查找群组，并预加载成员
func (r *GroupRepository) FindByID(ctx context.Context, groupID uint) (*model.Group, error) {
	return findGroup(r.db.WithContext(ctx), groupID)
}

func findGroup(tx *gorm.DB, groupID uint) (*model.Group, error) {
	var group model.Group
	if err := tx.Preload("Users", orderByID).First(&group, groupID).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// 列出所有群组及其成员，name 非空时按名称过滤
func (r *GroupRepository) List(ctx context.Context, name string) ([]model.Group, error) {
	groups := []model.Group{}
	err := filterByName(r.db.WithContext(ctx), name).
		Preload("Users", orderByID).
		Order("id").
		Find(&groups).Error
	return groups, err
}
