package repository

import (
	"context"
	"errors"

	"go-file-share/internal/apperror"
	"go-file-share/internal/model"

	"gorm.io/gorm"
)

type GroupMemberRepository struct {
	db *gorm.DB
}

func NewGroupMemberRepository(db *gorm.DB) *GroupMemberRepository {
	return &GroupMemberRepository{db: db}
}

// 将用户添加到群组，返回刷新后的群组。群组或用户不存在时返回 NotFound，
// 已经是成员时返回 Conflict。整个过程在一个事务中完成。
func (r *GroupMemberRepository) AddMember(ctx context.Context, groupID, userID uint) (*model.Group, error) {
	var group *model.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Group{}, groupID, "group"); err != nil {
			return err
		}
		if err := mustExist(tx, &model.User{}, userID, "user"); err != nil {
			return err
		}

		member, err := findMember(tx, groupID, userID)
		if err != nil {
			return err
		}
		if member != nil {
			return apperror.Conflict("user %d is already a member of group %d", userID, groupID)
		}

		// 并发插入同一对时由联合主键保证只有一个成功
		if err := tx.Create(&model.UserGroup{UserID: userID, GroupID: groupID}).Error; err != nil {
			return err
		}

		group, err = findGroup(tx, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// 查找特定群组的特定成员，不是成员时返回 nil, nil
func (r *GroupMemberRepository) FindMember(ctx context.Context, groupID, userID uint) (*model.UserGroup, error) {
	return findMember(r.db.WithContext(ctx), groupID, userID)
}

func findMember(tx *gorm.DB, groupID, userID uint) (*model.UserGroup, error) {
	var member model.UserGroup
	err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// 获取群组所有成员的ID列表
func (r *GroupMemberRepository) FindGroupMemberIDs(ctx context.Context, groupID uint) ([]uint, error) {
	return groupMemberIDs(r.db.WithContext(ctx), groupID)
}

func groupMemberIDs(tx *gorm.DB, groupID uint) ([]uint, error) {
	userIDs := []uint{}
	err := tx.Model(&model.UserGroup{}).
		Where("group_id = ?", groupID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// mustExist 检查 id 对应的行存在，不存在时返回带实体名称的 NotFound
func mustExist(tx *gorm.DB, dest interface{}, id uint, entity string) error {
	var count int64
	if err := tx.Model(dest).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.NotFound("%s %d not found", entity, id)
	}
	return nil
}
