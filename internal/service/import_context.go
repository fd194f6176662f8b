package service

import (
	"time"

	"organizer/backend/internal/model"
	"organizer/backend/internal/untis"
)

// Stats 本次导入各表新建/更新的行数
type Stats struct {
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
}

func newStats() Stats {
	return Stats{Created: map[string]int{}, Updated: map[string]int{}}
}

// CreatedTotal 新建行总数
func (s Stats) CreatedTotal() int { return sum(s.Created) }

// UpdatedTotal 更新行总数
func (s Stats) UpdatedTotal() int { return sum(s.Updated) }

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

type rowKey struct {
	table string
	id    int64
}

// ImportContext 一次导入运行的共享状态
//
// 参考数据按 Untis 编号（已去前缀）存放，后续节点只通过编号引用，
// 解析后的候选对象带有数据库 ID。
type ImportContext struct {
	OrganizationID int64
	Term           *model.Term

	SchoolYearStart time.Time
	SchoolYearEnd   time.Time
	CreationDate    time.Time
	CreationTime    string    // HH:MM:SS
	Modified        time.Time // 写入每行 modified 的时间戳

	Report *Report
	Stats  Stats

	Categories map[string]*model.Category
	Methods    map[string]*model.Method
	RoomTypes  map[string]*model.RoomType
	Buildings  map[string]*model.Building // 按楼宇名称
	Grids      map[string]*model.Grid     // 按栅格名称
	Events     map[string]*model.Event
	Groups     map[string]*model.Group
	Persons    map[string]*model.Person
	Rooms      map[string]*model.Room

	// 节内草稿：多个节点汇总后在 Finish 阶段处理
	gridDrafts   map[string]*gridDraft
	gridOrder    []string
	unitDrafts   map[string]*unitDraft
	unitOrder    []string
	noExternalID []string
	noMethod     int

	touched map[rowKey]struct{}
}

// NewImportContext 创建空的导入上下文
func NewImportContext(organizationID int64) *ImportContext {
	return &ImportContext{
		OrganizationID: organizationID,
		Report:         &Report{},
		Stats:          newStats(),
		Categories:     map[string]*model.Category{},
		Methods:        map[string]*model.Method{},
		RoomTypes:      map[string]*model.RoomType{},
		Buildings:      map[string]*model.Building{},
		Grids:          map[string]*model.Grid{},
		Events:         map[string]*model.Event{},
		Groups:         map[string]*model.Group{},
		Persons:        map[string]*model.Person{},
		Rooms:          map[string]*model.Room{},
		gridDrafts:     map[string]*gridDraft{},
		unitDrafts:     map[string]*unitDraft{},
		touched:        map[rowKey]struct{}{},
	}
}

// AddError 记录阻断错误
func (ic *ImportContext) AddError(category, messageID string, data map[string]any) {
	ic.Report.AddError(category, messageID, data)
}

// AddWarning 记录警告
func (ic *ImportContext) AddWarning(category, messageID string, data map[string]any) {
	ic.Report.AddWarning(category, messageID, data)
}

// requireID 节点缺少编号时记录错误
func (ic *ImportContext) requireID(section string, node untis.Node, prefix string) (string, bool) {
	code := untis.StripPrefix(node.ID(), prefix)
	if code == "" {
		ic.AddError(section, MsgNodeMissingID, map[string]any{"Section": section})
		return "", false
	}
	return code, true
}

func (ic *ImportContext) markTouched(table string, id int64) {
	ic.touched[rowKey{table, id}] = struct{}{}
}

func (ic *ImportContext) isTouched(table string, id int64) bool {
	_, ok := ic.touched[rowKey{table, id}]
	return ok
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
