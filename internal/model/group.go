package model

import "time"

type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 组成员，经由 user_group 连接表
	Users []User `gorm:"many2many:user_group"`
}

func (Group) TableName() string {
	return "group"
}
