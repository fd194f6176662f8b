package model

// Room 教室表 — 对应 rooms（RM_ 前缀）
type Room struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                              json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"             json:"code"`
	Name           string `gorm:"type:varchar(100);not null;default:''" json:"name"`
	RoomTypeID     *int64 `json:"room_type_id,omitempty"`
	BuildingID     *int64 `json:"building_id,omitempty"`
	Capacity       int    `gorm:"not null;default:0"                    json:"capacity"`
	ExternalID     string `gorm:"type:varchar(100);not null;default:''" json:"external_id"`
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// RoomType 教室类型表 — 对应 room_types（descriptions 中标记 R 的条目）
type RoomType struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                              json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"             json:"code"`
	Name           string `gorm:"type:varchar(200);not null;default:''" json:"name"`
}

// TableName 指定表名
func (RoomType) TableName() string { return "room_types" }

// Building 楼宇表 — 对应 buildings，由教室编码推断
type Building struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                  json:"organization_id"`
	Name           string `gorm:"type:varchar(60);not null" json:"name"`
}

// TableName 指定表名
func (Building) TableName() string { return "buildings" }
