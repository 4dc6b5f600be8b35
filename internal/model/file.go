package model

import "time"

const (
	MinRisk = 0
	MaxRisk = 100
)

type File struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;index"`
	Risk      int    `gorm:"not null;check:chk_file_risk,risk >= 0 AND risk <= 100"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 直接分享的用户
	Users []User `gorm:"many2many:file_user"`
	// 分享到的群组；与 Users 是两张独立的连接表
	Groups []Group `gorm:"many2many:file_group"`
}

func (File) TableName() string {
	return "file"
}
