package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model

	Name      string `gorm:"column:name"`       // 分类名称
	Priority  string `gorm:"column:priority"`   // 排序用的优先级
	CreatedBy string `gorm:"column:created_by"` // 创建者的显示名称

	Books []Book `gorm:"many2many:book_categories;"` // 删除分类前需要先解除关联
}
