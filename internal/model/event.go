package model

// Event 课程（科目）表 — 对应 events（SU_ 前缀）
type Event struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                              json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"             json:"code"`
	Name           string `gorm:"type:varchar(200);not null;default:''" json:"name"`
	SubjectNo      string `gorm:"type:varchar(60);not null;default:''"  json:"subject_no"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }

// Group 班级表 — 对应 groups（CL_ 前缀）
type Group struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                              json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"             json:"code"`
	Name           string `gorm:"type:varchar(100);not null;default:''" json:"name"`
	FullName       string `gorm:"type:varchar(200);not null;default:''" json:"full_name"`
	CategoryID     *int64 `json:"category_id,omitempty"`
	GridID         *int64 `json:"grid_id,omitempty"`
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }

// Person 教师表 — 对应 persons（TR_ 前缀）
type Person struct {
	BaseModel
	OrganizationID int64  `gorm:"not null"                              json:"organization_id"`
	Code           string `gorm:"type:varchar(60);not null"             json:"code"`
	Surname        string `gorm:"type:varchar(100);not null;default:''" json:"surname"`
	Forename       string `gorm:"type:varchar(100);not null;default:''" json:"forename"`
	Title          string `gorm:"type:varchar(60);not null;default:''"  json:"title"`
	Username       string `gorm:"type:varchar(100);not null;default:''" json:"username"`
}

// TableName 指定表名
func (Person) TableName() string { return "persons" }
