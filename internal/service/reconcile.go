package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"organizer/backend/internal/model"
	"organizer/backend/internal/untis"
)

// ═══════════════════════════════════════════════════════════
// 单元 / 实例同步
// ═══════════════════════════════════════════════════════════

// reconcile 写入单元，并为每个展开的上课日期同步 Block、Instance 及其关联
//
// 本次导入中缺席的关联不在这里标记 removed。
func (v *unitValidator) reconcile(ctx context.Context, ic *ImportContext, plan *unitPlan) error {
	start, end := plan.start, plan.end
	unit, err := track(ctx, ic, v.repo.Units,
		map[string]any{"organization_id": ic.OrganizationID, "term_id": ic.Term.ID, "code": plan.code},
		&model.Unit{
			OrganizationID: ic.OrganizationID,
			TermID:         ic.Term.ID,
			Code:           plan.code,
			EventID:        ref(plan.event.ID),
			GridID:         ref(plan.grid.ID),
			RoleID:         plan.roleID,
			Comment:        plan.comment,
			StartDate:      &start,
			EndDate:        &end,
		},
		diffUnit,
	)
	if err != nil {
		return err
	}

	missingDates := map[string]struct{}{}
	invalidRooms := map[string]struct{}{}

	for _, tp := range plan.teachers {
		for _, occ := range untis.Expand(tp.occurrence, ic.SchoolYearStart, start, end, tp.templates) {
			s := tp.slots[occ.Template]
			assoc, err := v.reconcileInstance(ctx, ic, plan, unit, tp, occ.Date, s)
			if err != nil {
				return err
			}

			for _, g := range plan.groups {
				_, err := track(ctx, ic, v.repo.InstanceGroups,
					map[string]any{"assoc_id": assoc.ID, "group_id": g.ID},
					&model.InstanceGroup{AssocID: assoc.ID, GroupID: g.ID},
					nil,
				)
				if err != nil {
					return err
				}
			}

			if len(s.rooms) == 0 {
				missingDates[formatDate(occ.Date)] = struct{}{}
			}
			for _, rc := range s.rooms {
				room, ok := ic.Rooms[rc]
				if !ok {
					invalidRooms[rc] = struct{}{}
					continue
				}
				_, err := track(ctx, ic, v.repo.InstanceRooms,
					map[string]any{"assoc_id": assoc.ID, "room_id": room.ID},
					&model.InstanceRoom{AssocID: assoc.ID, RoomID: room.ID},
					nil,
				)
				if err != nil {
					return err
				}
			}
		}
	}

	// 每个单元最多两条教室警告
	if len(missingDates) > 0 {
		ic.AddWarning(untis.SectionUnits, MsgUnitRoomsMissing, map[string]any{"Code": plan.code, "Dates": joinKeys(missingDates)})
	}
	if len(invalidRooms) > 0 {
		ic.AddWarning(untis.SectionUnits, MsgUnitRoomsInvalid, map[string]any{"Code": plan.code, "Codes": joinKeys(invalidRooms)})
	}
	return nil
}

// reconcileInstance 同步一次上课的 Block、Instance 与教师关联，返回关联行
func (v *unitValidator) reconcileInstance(
	ctx context.Context,
	ic *ImportContext,
	plan *unitPlan,
	unit *model.Unit,
	tp teacherPlan,
	date time.Time,
	s slot,
) (*model.InstancePerson, error) {
	block := &model.Block{Date: date, StartTime: s.start, EndTime: s.end}
	blockKeys := map[string]any{"date": date, "start_time": s.start, "end_time": s.end}
	if err := resolve(ctx, ic, v.repo.Blocks, blockKeys, block, nil); err != nil {
		return nil, err
	}

	instance, err := track(ctx, ic, v.repo.Instances,
		map[string]any{"block_id": block.ID, "event_id": plan.event.ID, "unit_id": unit.ID},
		&model.Instance{BlockID: block.ID, EventID: plan.event.ID, UnitID: unit.ID, MethodID: plan.methodID},
		func(stored, candidate *model.Instance) changes {
			c := changes{}
			c.setRef("method_id", &stored.MethodID, candidate.MethodID)
			return c
		},
	)
	if err != nil {
		return nil, err
	}

	return track(ctx, ic, v.repo.InstancePersons,
		map[string]any{"instance_id": instance.ID, "person_id": tp.person.ID},
		&model.InstancePerson{InstanceID: instance.ID, PersonID: tp.person.ID, RoleID: tp.roleID},
		func(stored, candidate *model.InstancePerson) changes {
			c := changes{}
			c.setInt("role_id", &stored.RoleID, candidate.RoleID)
			return c
		},
	)
}

func diffUnit(stored, candidate *model.Unit) changes {
	c := changes{}
	c.setRef("event_id", &stored.EventID, candidate.EventID)
	c.setRef("grid_id", &stored.GridID, candidate.GridID)
	c.setInt("role_id", &stored.RoleID, candidate.RoleID)
	c.setString("comment", &stored.Comment, candidate.Comment)
	c.setDate("start_date", &stored.StartDate, candidate.StartDate)
	c.setDate("end_date", &stored.EndDate, candidate.EndDate)
	return c
}

func joinKeys(set map[string]struct{}) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func joinSorted(items []string) string {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return joinKeys(set)
}
