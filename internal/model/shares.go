package model

import "time"

// FileUser 表示文件直接分享给某个用户，(file_id, user_id) 为联合主键
type FileUser struct {
	FileID    uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (FileUser) TableName() string {
	return "file_user"
}

// FileGroup 表示文件分享给某个群组，(file_id, group_id) 为联合主键
type FileGroup struct {
	FileID    uint `gorm:"primaryKey;autoIncrement:false"`
	GroupID   uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (FileGroup) TableName() string {
	return "file_group"
}

// UserGroup 表示群组成员关系，(user_id, group_id) 为联合主键
type UserGroup struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	GroupID   uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (UserGroup) TableName() string {
	return "user_group"
}
