package model

import "time"

// Organization 组织表 — 对应 organizations（导入的归属单位）
type Organization struct {
	BaseModel
	Name      string    `gorm:"type:varchar(200);not null"         json:"name"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Organization) TableName() string { return "organizations" }
