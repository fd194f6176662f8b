package model

import "time"

// Block 时间块表 — 对应 blocks，(date, start_time, end_time) 唯一
type Block struct {
	BaseModel
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"` // HH:MM:SS
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
}

// TableName 指定表名
func (Block) TableName() string { return "blocks" }
