package repository

import (
	"context"

	"go-file-share/internal/apperror"
	"go-file-share/internal/model"
	"go-file-share/internal/visibility"

	"gorm.io/gorm"
)

// FileShareRepository 管理 file_user 与 file_group 两张连接表，
// 同时提供可见性计算所需的查询。
type FileShareRepository struct {
	db *gorm.DB
}

var _ visibility.ShareSource = (*FileShareRepository)(nil)

func NewFileShareRepository(db *gorm.DB) *FileShareRepository {
	return &FileShareRepository{db: db}
}

// 将文件直接分享给用户，返回刷新后的文件
func (r *FileShareRepository) ShareWithUser(ctx context.Context, fileID, userID uint) (*model.File, error) {
	var file *model.File
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.File{}, fileID, "file"); err != nil {
			return err
		}
		if err := mustExist(tx, &model.User{}, userID, "user"); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&model.FileUser{}).
			Where("file_id = ? AND user_id = ?", fileID, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("file %d is already shared with user %d", fileID, userID)
		}

		if err := tx.Create(&model.FileUser{FileID: fileID, UserID: userID}).Error; err != nil {
			return err
		}

		file, err = findFile(tx, fileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// 将文件分享给群组，返回刷新后的文件。只写 file_group，不触碰用户分享列表。
func (r *FileShareRepository) ShareWithGroup(ctx context.Context, fileID, groupID uint) (*model.File, error) {
	var file *model.File
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.File{}, fileID, "file"); err != nil {
			return err
		}
		if err := mustExist(tx, &model.Group{}, groupID, "group"); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&model.FileGroup{}).
			Where("file_id = ? AND group_id = ?", fileID, groupID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("file %d is already shared with group %d", fileID, groupID)
		}

		if err := tx.Create(&model.FileGroup{FileID: fileID, GroupID: groupID}).Error; err != nil {
			return err
		}

		file, err = findFile(tx, fileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (r *FileShareRepository) FileExists(ctx context.Context, fileID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.File{}).Where("id = ?", fileID).Count(&count).Error
	return count > 0, err
}

// 查找文件直接分享的用户ID
func (r *FileShareRepository) DirectUserIDs(ctx context.Context, fileID uint) ([]uint, error) {
	userIDs := []uint{}
	err := r.db.WithContext(ctx).Model(&model.FileUser{}).
		Where("file_id = ?", fileID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// 查找文件分享到的群组ID
func (r *FileShareRepository) GroupShareIDs(ctx context.Context, fileID uint) ([]uint, error) {
	groupIDs := []uint{}
	err := r.db.WithContext(ctx).Model(&model.FileGroup{}).
		Where("file_id = ?", fileID).
		Order("group_id").
		Pluck("group_id", &groupIDs).Error
	return groupIDs, err
}

func (r *FileShareRepository) GroupMemberIDs(ctx context.Context, groupID uint) ([]uint, error) {
	return groupMemberIDs(r.db.WithContext(ctx), groupID)
}

// Snapshot 在一个事务内读取所有文件、用户和三张连接表，保证排名基于一致的数据
func (r *FileShareRepository) Snapshot(ctx context.Context) (*visibility.Snapshot, error) {
	snap := &visibility.Snapshot{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id", "name", "risk").Order("id").Find(&snap.Files).Error; err != nil {
			return err
		}
		if err := tx.Select("id", "name").Order("id").Find(&snap.Users).Error; err != nil {
			return err
		}
		if err := tx.Find(&snap.FileUsers).Error; err != nil {
			return err
		}
		if err := tx.Find(&snap.FileGroups).Error; err != nil {
			return err
		}
		return tx.Find(&snap.Memberships).Error
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
