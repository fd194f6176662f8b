package model

import "gorm.io/datatypes"

// Period 时间栅格中的一节课
type Period struct {
	StartTime string `json:"start_time"` // HH:MM:SS
	EndTime   string `json:"end_time"`
	Label     string `json:"label,omitempty"` // 课间休息等标签
}

// GridPeriods 节次号 → 时间段
type GridPeriods map[int]Period

// Grid 时间栅格表 — 对应 grids，按 Untis 栅格名称只创建一次，不覆盖
type Grid struct {
	BaseModel
	Code     string                          `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	Periods  datatypes.JSONType[GridPeriods] `gorm:"type:jsonb;not null"                   json:"periods"`
	FirstDay int                             `gorm:"type:smallint;not null;default:1"      json:"first_day"` // 1=Monday
	LastDay  int                             `gorm:"type:smallint;not null;default:6"      json:"last_day"`
}

// TableName 指定表名
func (Grid) TableName() string { return "grids" }

// Period 按节次号查找时间段
func (g *Grid) Period(number int) (Period, bool) {
	p, ok := g.Periods.Data()[number]
	return p, ok
}
