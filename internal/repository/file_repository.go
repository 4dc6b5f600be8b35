package repository

import (
	"context"

	"go-file-share/internal/model"

	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Omit("Users", "Groups").Create(file).Error
}

// 根据ID查找文件，预加载直接分享的用户、分享到的群组以及群组成员
func (r *FileRepository) FindByID(ctx context.Context, fileID uint) (*model.File, error) {
	return findFile(r.db.WithContext(ctx), fileID)
}

func preloadFileShares(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Users", orderByID).
		Preload("Groups", orderByID).
		Preload("Groups.Users", orderByID)
}

func findFile(tx *gorm.DB, fileID uint) (*model.File, error) {
	var file model.File
	if err := preloadFileShares(tx).First(&file, fileID).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) List(ctx context.Context, name string) ([]model.File, error) {
	files := []model.File{}
	err := preloadFileShares(filterByName(r.db.WithContext(ctx), name)).
		Order("id").
		Find(&files).Error
	return files, err
}
