package repository

import "gorm.io/gorm"

// 关联列表按 id 升序返回
func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// 可选的按名称精确过滤
func filterByName(db *gorm.DB, name string) *gorm.DB {
	if name == "" {
		return db
	}
	return db.Where("name = ?", name)
}
