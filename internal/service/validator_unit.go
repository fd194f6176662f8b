package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/untis"
)

// unitDraft 同一单元编号下的全部课程节点（每位教师一个）
type unitDraft struct {
	code    string
	lessons []untis.Lesson
}

// unitPlan 校验通过、可以落库的单元
type unitPlan struct {
	code     string
	event    *model.Event
	groups   []*model.Group
	grid     *model.Grid
	methodID *int64
	roleID   int
	comment  string
	start    time.Time // 已裁剪到学期
	end      time.Time
	teachers []teacherPlan
}

// teacherPlan 一位教师的时间模板；templates 与 slots 一一对应
type teacherPlan struct {
	person     *model.Person
	roleID     int
	occurrence string
	templates  []untis.Template
	slots      []slot
}

type slot struct {
	start string // HH:MM:SS
	end   string
	rooms []string
}

// ── Units（lessons） ──

type unitValidator struct {
	repo  *repository.Repository
	grids *gridValidator
}

// Validate 只按单元编号归集课程节点，校验与落库在 Finish 中进行
func (v *unitValidator) Validate(_ context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Lesson)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code := untis.UnitCode(n.ID())
	if code == "" {
		ic.AddError(untis.SectionUnits, MsgNodeMissingID, map[string]any{"Section": untis.SectionUnits})
		return nil
	}
	draft, ok := ic.unitDrafts[code]
	if !ok {
		draft = &unitDraft{code: code}
		ic.unitDrafts[code] = draft
		ic.unitOrder = append(ic.unitOrder, code)
	}
	draft.lessons = append(draft.lessons, n)
	return nil
}

// Resolve 校验一个单元并同步其全部实例
func (v *unitValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	draft, ok := ic.unitDrafts[code]
	if !ok {
		return nil
	}
	plan, err := v.plan(ctx, ic, draft)
	if err != nil || plan == nil {
		return err
	}
	return v.reconcile(ctx, ic, plan)
}

// Finish 按出现顺序处理全部单元，最后汇总缺少授课形式的数量
func (v *unitValidator) Finish(ctx context.Context, ic *ImportContext) error {
	for _, code := range ic.unitOrder {
		if err := v.Resolve(ctx, ic, code); err != nil {
			return err
		}
	}
	if ic.noMethod > 0 {
		ic.AddWarning(untis.SectionUnits, MsgMethodsMissing, map[string]any{"Count": ic.noMethod})
	}
	return nil
}

// plan 校验单元。返回 nil 表示该单元不落库：存在阻断错误，或完全不在学期内。
func (v *unitValidator) plan(ctx context.Context, ic *ImportContext, draft *unitDraft) (*unitPlan, error) {
	primary := draft.lessons[0]
	code := draft.code
	addError := func(msg string, extra map[string]any) {
		data := map[string]any{"Code": code}
		for k, val := range extra {
			data[k] = val
		}
		ic.AddError(untis.SectionUnits, msg, data)
	}

	// ── 日期 ──
	start, errStart := untis.ParseDate(primary.BeginDate)
	end, errEnd := untis.ParseDate(primary.EndDate)
	if errStart != nil || errEnd != nil {
		addError(MsgUnitDatesMissing, nil)
		return nil, nil
	}
	dates := map[string]any{"Start": formatDate(start), "End": formatDate(end)}
	if start.After(end) {
		addError(MsgUnitStartAfterEnd, dates)
		return nil, nil
	}
	if start.Before(ic.SchoolYearStart) || end.After(ic.SchoolYearEnd) {
		addError(MsgUnitOutsideSchoolYear, dates)
		return nil, nil
	}
	if end.Before(ic.Term.StartDate) || start.After(ic.Term.EndDate) {
		return nil, nil
	}
	if start.Before(ic.Term.StartDate) {
		start = ic.Term.StartDate
	}
	if end.After(ic.Term.EndDate) {
		end = ic.Term.EndDate
	}

	plan := &unitPlan{
		code:    code,
		start:   start,
		end:     end,
		comment: strings.TrimSpace(primary.Text),
		roleID:  parseRole(primary.Teacher.Role),
	}
	failed := false

	// ── 科目 ──
	if ev := primary.Subject.First(untis.PrefixEvent); ev == "" {
		addError(MsgUnitEventMissing, nil)
		failed = true
	} else if e, ok := ic.Events[ev]; !ok {
		addError(MsgUnitEventUnknown, map[string]any{"Event": ev})
		failed = true
	} else {
		plan.event = e
	}

	// ── 班级：至少一个可解析，其余汇总为警告 ──
	var invalidGroups []string
	for _, gc := range primary.Classes.Codes(untis.PrefixGroup) {
		if g, ok := ic.Groups[gc]; ok {
			plan.groups = append(plan.groups, g)
		} else {
			invalidGroups = append(invalidGroups, gc)
		}
	}
	if len(plan.groups) == 0 {
		addError(MsgUnitGroupsMissing, nil)
		failed = true
	} else if len(invalidGroups) > 0 {
		ic.AddWarning(untis.SectionUnits, MsgUnitGroupsInvalid, map[string]any{"Code": code, "Codes": joinSorted(invalidGroups)})
	}

	// ── 时间栅格：课程自身声明，否则取第一个班级的栅格 ──
	gridName := strings.TrimSpace(primary.TimeGrid)
	if gridName != "" {
		g, err := v.grids.lookup(ctx, ic, gridName)
		if err != nil {
			return nil, err
		}
		plan.grid = g
	} else if len(plan.groups) > 0 && plan.groups[0].GridID != nil {
		g, err := v.grids.byID(ctx, ic, *plan.groups[0].GridID)
		if err != nil {
			return nil, err
		}
		plan.grid = g
	}
	if plan.grid == nil && (gridName != "" || len(plan.groups) > 0) {
		addError(MsgUnitGridMissing, nil)
	}
	if plan.grid == nil {
		failed = true
	}

	// ── 教师与时间模板 ──
	for _, lesson := range draft.lessons {
		tp := teacherPlan{roleID: parseRole(lesson.Teacher.Role), occurrence: lesson.Occurrence}
		if tp.occurrence == "" {
			tp.occurrence = primary.Occurrence
		}

		pc := untis.Ref{IDs: lesson.Teacher.IDs}.First(untis.PrefixPerson)
		if pc == "" {
			addError(MsgUnitPersonMissing, nil)
			failed = true
		} else if p, ok := ic.Persons[pc]; !ok {
			addError(MsgUnitPersonUnknown, map[string]any{"Person": pc})
			failed = true
		} else {
			tp.person = p
		}

		for _, t := range lesson.Times {
			tpl, s, ok := buildTemplate(t, plan.grid)
			if !ok {
				// 没有栅格时节次必然无法解析，栅格错误已报告
				if plan.grid != nil {
					addError(MsgUnitTimesInvalid, map[string]any{"Day": t.AssignedDay, "Period": t.AssignedPeriod})
				}
				failed = true
				continue
			}
			tp.templates = append(tp.templates, tpl)
			tp.slots = append(tp.slots, s)
		}
		plan.teachers = append(plan.teachers, tp)
	}

	if failed {
		return nil, nil
	}

	// ── 授课形式：缺失不阻断，只计数 ──
	if m := ic.methodByRef(primary.Description); m != nil {
		plan.methodID = ref(m.ID)
	} else {
		ic.noMethod++
	}
	return plan, nil
}

// buildTemplate 解析一个时间模板；未给出起止时间时按栅格节次补齐
func buildTemplate(t untis.Time, grid *model.Grid) (untis.Template, slot, bool) {
	var tpl untis.Template
	day, _ := strconv.Atoi(strings.TrimSpace(t.AssignedDay))
	if raw := strings.TrimSpace(t.AssignedDate); raw != "" {
		d, err := untis.ParseDate(raw)
		if err != nil {
			return tpl, slot{}, false
		}
		tpl.Date = d
		if day == 0 {
			day = untis.ISOWeekday(d)
		}
	}
	if day < 1 || day > 7 {
		return tpl, slot{}, false
	}
	tpl.Weekday = day

	s := slot{rooms: t.AssignedRoom.Codes(untis.PrefixRoom)}
	start, errStart := untis.ParseClock(t.AssignedStartTime)
	end, errEnd := untis.ParseClock(t.AssignedEndTime)
	switch {
	case errStart == nil && errEnd == nil:
		s.start, s.end = start, end
	case grid != nil:
		number, err := strconv.Atoi(strings.TrimSpace(t.AssignedPeriod))
		if err != nil {
			return tpl, slot{}, false
		}
		p, ok := grid.Period(number)
		if !ok {
			return tpl, slot{}, false
		}
		s.start, s.end = p.StartTime, p.EndTime
	default:
		return tpl, slot{}, false
	}
	if s.end <= s.start {
		return tpl, slot{}, false
	}
	return tpl, s, true
}

// parseRole 缺省或非法时为 1（授课教师）
func parseRole(raw string) int {
	role, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || role < 1 {
		return 1
	}
	return role
}
