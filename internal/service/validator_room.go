package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/untis"
)

// ── Rooms ──

type roomValidator struct {
	repo            *repository.Repository
	buildingPattern *regexp.Regexp // 第一个捕获组为楼宇名称；nil 表示不推断
}

func (v *roomValidator) Validate(ctx context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Room)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code, ok := ic.requireID(untis.SectionRooms, n, untis.PrefixRoom)
	if !ok {
		return nil
	}

	var roomTypeID *int64
	if desc := n.Description.First(untis.PrefixDescription); desc != "" {
		rt, ok := ic.RoomTypes[desc]
		if !ok {
			ic.AddError(untis.SectionRooms, MsgRoomTypeUnknown, map[string]any{"Code": code, "RoomType": desc})
			return nil
		}
		roomTypeID = ref(rt.ID)
	}

	capacity := 0
	if raw := strings.TrimSpace(n.Capacity); raw != "" {
		c, err := strconv.Atoi(raw)
		if err != nil || c < 0 {
			ic.AddWarning(untis.SectionRooms, MsgRoomCapacityInvalid, map[string]any{"Code": code, "Capacity": raw})
		} else {
			capacity = c
		}
	}

	buildingID, err := v.building(ctx, ic, code)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(n.LongName)
	if name == "" {
		name = code
	}
	externalID := strings.TrimSpace(n.ExternalName)
	if externalID == "" {
		ic.noExternalID = append(ic.noExternalID, code)
	}

	ic.Rooms[code] = &model.Room{
		OrganizationID: ic.OrganizationID,
		Code:           code,
		Name:           name,
		RoomTypeID:     roomTypeID,
		BuildingID:     buildingID,
		Capacity:       capacity,
		ExternalID:     externalID,
	}
	return v.Resolve(ctx, ic, code)
}

func (v *roomValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	r, ok := ic.Rooms[code]
	if !ok {
		return nil
	}
	return resolve(ctx, ic, v.repo.Rooms, orgKey(ic, code), r, fillRoom)
}

func fillRoom(stored, candidate *model.Room) changes {
	c := changes{}
	c.fillString("name", &stored.Name, candidate.Name)
	c.fillRef("room_type_id", &stored.RoomTypeID, candidate.RoomTypeID)
	c.fillRef("building_id", &stored.BuildingID, candidate.BuildingID)
	c.fillInt("capacity", &stored.Capacity, candidate.Capacity)
	c.fillString("external_id", &stored.ExternalID, candidate.ExternalID)
	return c
}

// Finish 缺少外部编号的教室汇总为一条警告
func (v *roomValidator) Finish(_ context.Context, ic *ImportContext) error {
	if len(ic.noExternalID) == 0 {
		return nil
	}
	codes := append([]string(nil), ic.noExternalID...)
	sort.Strings(codes)
	ic.AddWarning(untis.SectionRooms, MsgRoomsExternalIDMissing, map[string]any{"Codes": strings.Join(codes, ", ")})
	return nil
}

// building 从教室编码推断楼宇，推断不出时返回 nil
func (v *roomValidator) building(ctx context.Context, ic *ImportContext, code string) (*int64, error) {
	if v.buildingPattern == nil {
		return nil, nil
	}
	m := v.buildingPattern.FindStringSubmatch(code)
	if len(m) < 2 || m[1] == "" {
		return nil, nil
	}
	name := m[1]
	if b, ok := ic.Buildings[name]; ok {
		return ref(b.ID), nil
	}

	b := &model.Building{OrganizationID: ic.OrganizationID, Name: name}
	keys := map[string]any{"organization_id": ic.OrganizationID, "name": name}
	if err := resolve(ctx, ic, v.repo.Buildings, keys, b, nil); err != nil {
		return nil, err
	}
	ic.Buildings[name] = b
	return ref(b.ID), nil
}
