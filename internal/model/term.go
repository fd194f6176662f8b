package model

import "time"

// Term 学期表 — 对应 terms，自然键为 (start_date, end_date)
type Term struct {
	BaseModel
	Name      string    `gorm:"type:varchar(100);not null;default:''" json:"name"`
	StartDate time.Time `gorm:"type:date;not null"                    json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                    json:"end_date"`
}

// TableName 指定表名
func (Term) TableName() string { return "terms" }

// Contains 判断日期是否落在学期内（含首尾）
func (t *Term) Contains(d time.Time) bool {
	return !d.Before(t.StartDate) && !d.After(t.EndDate)
}
