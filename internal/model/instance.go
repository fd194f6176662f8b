package model

// Instance 课程实例表 — 对应 instances，(block, event, unit) 唯一
type Instance struct {
	BaseModel
	BlockID  int64  `gorm:"not null" json:"block_id"`
	EventID  int64  `gorm:"not null" json:"event_id"`
	UnitID   int64  `gorm:"not null" json:"unit_id"`
	MethodID *int64 `json:"method_id,omitempty"`
	DeltaModel
}

// TableName 指定表名
func (Instance) TableName() string { return "instances" }

// InstancePerson 实例-教师关联 — 对应 instance_persons
type InstancePerson struct {
	BaseModel
	InstanceID int64 `gorm:"not null"          json:"instance_id"`
	PersonID   int64 `gorm:"not null"          json:"person_id"`
	RoleID     int   `gorm:"not null;default:1" json:"role_id"`
	DeltaModel
}

// TableName 指定表名
func (InstancePerson) TableName() string { return "instance_persons" }

// InstanceGroup 关联-班级 — 对应 instance_groups，挂在 InstancePerson 之下
type InstanceGroup struct {
	BaseModel
	AssocID int64 `gorm:"not null" json:"assoc_id"`
	GroupID int64 `gorm:"not null" json:"group_id"`
	DeltaModel
}

// TableName 指定表名
func (InstanceGroup) TableName() string { return "instance_groups" }

// InstanceRoom 关联-教室 — 对应 instance_rooms
type InstanceRoom struct {
	BaseModel
	AssocID int64 `gorm:"not null" json:"assoc_id"`
	RoomID  int64 `gorm:"not null" json:"room_id"`
	DeltaModel
}

// TableName 指定表名
func (InstanceRoom) TableName() string { return "instance_rooms" }
