package models

import "gorm.io/gorm"

type Book struct {
	gorm.Model

	Name        string `gorm:"column:name"`        // 书名
	Description string `gorm:"column:description"` // 描述
	Image       string `gorm:"column:image"`       // 封面图片地址，最后一段为 blob 名称
	CreatedBy   string `gorm:"column:created_by"`  // 创建者的显示名称

	AuthorID uint `gorm:"column:author_id;index"` // 作者 ID

	// 连接模型时使用
	Author     *Author    `gorm:"foreignKey:AuthorID"`
	Categories []Category `gorm:"many2many:book_categories;"`
}
