package service

import (
	"bytes"
	"context"
	"encoding/json"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
)

// ── 内存 Table ──

// memWrites 所有内存表共享的写入计数
type memWrites struct {
	saves   int
	updates int
}

func (w *memWrites) total() int { return w.saves + w.updates }

// memTable 按 JSON 字段名匹配自然键的内存表（json tag 与列名一致）
type memTable[T any] struct {
	rows   []*T
	writes *memWrites
	err    error // 非 nil 时所有操作返回该错误
}

func newMemTable[T any](w *memWrites) *memTable[T] {
	return &memTable[T]{writes: w}
}

func (m *memTable[T]) Load(_ context.Context, keys map[string]any) (*T, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	for _, row := range m.rows {
		if matches(row, keys) {
			cp := *row
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (m *memTable[T]) Save(_ context.Context, row *T) error {
	if m.err != nil {
		return m.err
	}
	any(row).(model.Identifiable).SetID(int64(len(m.rows) + 1))
	cp := *row
	m.rows = append(m.rows, &cp)
	m.writes.saves++
	return nil
}

func (m *memTable[T]) Update(_ context.Context, row *T, _ map[string]any) error {
	if m.err != nil {
		return m.err
	}
	id := any(row).(model.Identifiable).GetID()
	for i, r := range m.rows {
		if any(r).(model.Identifiable).GetID() == id {
			cp := *row
			m.rows[i] = &cp
			m.writes.updates++
			return nil
		}
	}
	return nil
}

// all 返回全部行的副本
func (m *memTable[T]) all() []T {
	out := make([]T, len(m.rows))
	for i, r := range m.rows {
		out[i] = *r
	}
	return out
}

func matches(row any, keys map[string]any) bool {
	raw, err := json.Marshal(row)
	if err != nil {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for k, want := range keys {
		got, ok := fields[k]
		if !ok {
			if want == nil {
				continue
			}
			return false
		}
		w, err := json.Marshal(want)
		if err != nil || !bytes.Equal(got, w) {
			return false
		}
	}
	return true
}

// ── 内存 Repository ──

type memRepos struct {
	writes *memWrites

	organizations   *memTable[model.Organization]
	terms           *memTable[model.Term]
	schedules       *memTable[model.Schedule]
	grids           *memTable[model.Grid]
	categories      *memTable[model.Category]
	methods         *memTable[model.Method]
	roomTypes       *memTable[model.RoomType]
	buildings       *memTable[model.Building]
	events          *memTable[model.Event]
	groups          *memTable[model.Group]
	persons         *memTable[model.Person]
	rooms           *memTable[model.Room]
	units           *memTable[model.Unit]
	blocks          *memTable[model.Block]
	instances       *memTable[model.Instance]
	instancePersons *memTable[model.InstancePerson]
	instanceGroups  *memTable[model.InstanceGroup]
	instanceRooms   *memTable[model.InstanceRoom]
}

func newMemRepos() *memRepos {
	w := &memWrites{}
	return &memRepos{
		writes:          w,
		organizations:   newMemTable[model.Organization](w),
		terms:           newMemTable[model.Term](w),
		schedules:       newMemTable[model.Schedule](w),
		grids:           newMemTable[model.Grid](w),
		categories:      newMemTable[model.Category](w),
		methods:         newMemTable[model.Method](w),
		roomTypes:       newMemTable[model.RoomType](w),
		buildings:       newMemTable[model.Building](w),
		events:          newMemTable[model.Event](w),
		groups:          newMemTable[model.Group](w),
		persons:         newMemTable[model.Person](w),
		rooms:           newMemTable[model.Room](w),
		units:           newMemTable[model.Unit](w),
		blocks:          newMemTable[model.Block](w),
		instances:       newMemTable[model.Instance](w),
		instancePersons: newMemTable[model.InstancePerson](w),
		instanceGroups:  newMemTable[model.InstanceGroup](w),
		instanceRooms:   newMemTable[model.InstanceRoom](w),
	}
}

func (m *memRepos) repository() *repository.Repository {
	return &repository.Repository{
		Organizations:   m.organizations,
		Terms:           m.terms,
		Schedules:       m.schedules,
		Grids:           m.grids,
		Categories:      m.categories,
		Methods:         m.methods,
		RoomTypes:       m.roomTypes,
		Buildings:       m.buildings,
		Events:          m.events,
		Groups:          m.groups,
		Persons:         m.persons,
		Rooms:           m.rooms,
		Units:           m.units,
		Blocks:          m.blocks,
		Instances:       m.instances,
		InstancePersons: m.instancePersons,
		InstanceGroups:  m.instanceGroups,
		InstanceRooms:   m.instanceRooms,
	}
}

// seedOrganization 写入一个组织（不计入写入次数）
func (m *memRepos) seedOrganization(name string) int64 {
	org := &model.Organization{BaseModel: model.BaseModel{ID: int64(len(m.organizations.rows) + 1)}, Name: name}
	m.organizations.rows = append(m.organizations.rows, org)
	return org.ID
}
