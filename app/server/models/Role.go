package models

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex" json:"name"` // 角色名称
}
