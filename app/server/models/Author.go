package models

import "gorm.io/gorm"

type Author struct {
	gorm.Model

	Name      string `gorm:"column:name"`       // 作者名字
	Bio       string `gorm:"column:bio"`        // 简介
	CreatedBy string `gorm:"column:created_by"` // 创建者的显示名称

	Books []Book `gorm:"foreignKey:AuthorID"` // 作者的书
}
