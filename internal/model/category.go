package model

// Category 类别表 — 对应 categories（Untis departments 节点，DP_ 前缀）
type Category struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                            json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"           json:"code"`
	Name           string `gorm:"type:varchar(200);not null;default:''" json:"name"`
}

// TableName 指定表名
func (Category) TableName() string { return "categories" }

// Method 授课形式表 — 对应 methods（descriptions 中标记 M 的条目）
type Method struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                              json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"             json:"code"`
	Name           string `gorm:"type:varchar(200);not null;default:''" json:"name"`
}

// TableName 指定表名
func (Method) TableName() string { return "methods" }

// [自证通过] internal/model/category.go
