package repository

import (
	"context"

	"go-file-share/internal/model"

	"gorm.io/gorm"
)

// UserRepository 处理用户数据持久化
type UserRepository struct {
	db *gorm.DB
}

// 创建一个新的用户存储库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// 新建用户，ID 由数据库分配
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// 通过ID查找用户，不存在时返回 gorm.ErrRecordNotFound
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// 列出所有用户，name 非空时按名称过滤
func (r *UserRepository) List(ctx context.Context, name string) ([]model.User, error) {
	users := []model.User{}
	err := filterByName(r.db.WithContext(ctx), name).Order("id").Find(&users).Error
	return users, err
}
