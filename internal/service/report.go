package service

import (
	"organizer/backend/pkg/i18n"
)

// Severity 报告条目级别
type Severity string

const (
	SeverityError   Severity = "error"   // 阻断：导入判定为失败
	SeverityWarning Severity = "warning" // 非阻断
)

// ── 报告消息 ID ──

const (
	MsgScheduleExists         = "Import.Errors.ScheduleExists"
	MsgStampMissing           = "Import.Errors.StampMissing"
	MsgSchoolYearMissing      = "Import.Errors.SchoolYearMissing"
	MsgTermMissing            = "Import.Errors.TermMissing"
	MsgTermInvalid            = "Import.Errors.TermInvalid"
	MsgNodeMissingID          = "Import.Errors.NodeMissingID"
	MsgCategoryNameMissing    = "Import.Errors.CategoryNameMissing"
	MsgDescriptionNameMissing = "Import.Errors.DescriptionNameMissing"
	MsgGridPeriodsInvalid     = "Import.Errors.GridPeriodsInvalid"
	MsgEventNameMissing       = "Import.Errors.EventNameMissing"
	MsgGroupNameMissing       = "Import.Errors.GroupNameMissing"
	MsgGroupCategoryUnknown   = "Import.Errors.GroupCategoryUnknown"
	MsgGroupGridUnknown       = "Import.Errors.GroupGridUnknown"
	MsgPersonSurnameMissing   = "Import.Errors.PersonSurnameMissing"
	MsgRoomTypeUnknown        = "Import.Errors.RoomTypeUnknown"
	MsgUnitEventMissing       = "Import.Errors.UnitEventMissing"
	MsgUnitEventUnknown       = "Import.Errors.UnitEventUnknown"
	MsgUnitPersonMissing      = "Import.Errors.UnitPersonMissing"
	MsgUnitPersonUnknown      = "Import.Errors.UnitPersonUnknown"
	MsgUnitGroupsMissing      = "Import.Errors.UnitGroupsMissing"
	MsgUnitGridMissing        = "Import.Errors.UnitGridMissing"
	MsgUnitDatesMissing       = "Import.Errors.UnitDatesMissing"
	MsgUnitStartAfterEnd      = "Import.Errors.UnitStartAfterEnd"
	MsgUnitOutsideSchoolYear  = "Import.Errors.UnitOutsideSchoolYear"
	MsgUnitTimesInvalid       = "Import.Errors.UnitTimesInvalid"

	MsgMethodsMissing         = "Import.Warnings.MethodsMissing"
	MsgRoomsExternalIDMissing = "Import.Warnings.RoomsExternalIDMissing"
	MsgRoomCapacityInvalid    = "Import.Warnings.RoomCapacityInvalid"
	MsgUnitRoomsMissing       = "Import.Warnings.UnitRoomsMissing"
	MsgUnitRoomsInvalid       = "Import.Warnings.UnitRoomsInvalid"
	MsgUnitGroupsInvalid      = "Import.Warnings.UnitGroupsInvalid"
)

// Entry 报告条目，文本在渲染时才生成
type Entry struct {
	Severity  Severity       `json:"severity"`
	Category  string         `json:"category"`
	MessageID string         `json:"message_id"`
	Data      map[string]any `json:"data,omitempty"`
}

// Report 一次导入累积的错误与警告
type Report struct {
	entries []Entry
}

// AddError 记录阻断错误
func (r *Report) AddError(category, messageID string, data map[string]any) {
	r.entries = append(r.entries, Entry{SeverityError, category, messageID, data})
}

// AddWarning 记录警告
func (r *Report) AddWarning(category, messageID string, data map[string]any) {
	r.entries = append(r.entries, Entry{SeverityWarning, category, messageID, data})
}

// HasErrors 是否存在阻断错误
func (r *Report) HasErrors() bool {
	for _, e := range r.entries {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Entries 按记录顺序返回全部条目
func (r *Report) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Errors 渲染全部阻断错误
func (r *Report) Errors(tr i18n.Translator) []string {
	return r.render(tr, SeverityError)
}

// Warnings 渲染全部警告
func (r *Report) Warnings(tr i18n.Translator) []string {
	return r.render(tr, SeverityWarning)
}

func (r *Report) render(tr i18n.Translator, sev Severity) []string {
	out := []string{}
	for _, e := range r.entries {
		if e.Severity == sev {
			out = append(out, tr.T(e.MessageID, e.Data))
		}
	}
	return out
}
