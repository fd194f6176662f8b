package service

import (
	"context"
	"fmt"
	"time"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// 自然键解析
// ═══════════════════════════════════════════════════════════

// resolve 按自然键查找参考数据行：不存在则创建，存在则用 fill 补齐空字段（不覆盖）。
// 完成后 candidate 被替换为库中的行，从而带上 ID。
func resolve[T any](
	ctx context.Context,
	ic *ImportContext,
	table repository.Table[T],
	keys map[string]any,
	candidate *T,
	fill func(stored, candidate *T) changes,
) error {
	name := tableName[T]()

	stored, found, err := table.Load(ctx, keys)
	if err != nil {
		return fmt.Errorf("查询 %s 失败: %w", name, err)
	}
	if !found {
		if err := table.Save(ctx, candidate); err != nil {
			return fmt.Errorf("创建 %s 失败: %w", name, err)
		}
		ic.Stats.Created[name]++
		return nil
	}

	if fill != nil {
		if changed := fill(stored, candidate); len(changed) > 0 {
			if err := table.Update(ctx, stored, changed); err != nil {
				return fmt.Errorf("更新 %s 失败: %w", name, err)
			}
			ic.Stats.Updated[name]++
		}
	}
	*candidate = *stored
	return nil
}

// track 按自然键查找或创建带增量标记的行。
// 新建行标记为 new；已存在的行用 diff 写入变化的属性，并按 model.NextDelta 迁移标记。
// 同一次导入中已处理过的行直接返回，不再迁移。
func track[T any](
	ctx context.Context,
	ic *ImportContext,
	table repository.Table[T],
	keys map[string]any,
	candidate *T,
	diff func(stored, candidate *T) changes,
) (*T, error) {
	name := tableName[T]()

	stored, found, err := table.Load(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("查询 %s 失败: %w", name, err)
	}
	if !found {
		d := any(candidate).(model.DeltaTracked).Tracking()
		d.Delta, d.Modified = model.DeltaNew, stamp(ic.Modified)
		if err := table.Save(ctx, candidate); err != nil {
			return nil, fmt.Errorf("创建 %s 失败: %w", name, err)
		}
		ic.Stats.Created[name]++
		ic.markTouched(name, rowID(candidate))
		return candidate, nil
	}

	id := rowID(stored)
	if ic.isTouched(name, id) {
		return stored, nil
	}
	ic.markTouched(name, id)

	var changed changes
	if diff != nil {
		changed = diff(stored, candidate)
	}
	if changed == nil {
		changed = changes{}
	}
	d := any(stored).(model.DeltaTracked).Tracking()
	next, dirty := model.NextDelta(d.Delta, len(changed) > 0)
	if !dirty {
		return stored, nil
	}
	d.Delta, d.Modified = next, stamp(ic.Modified)
	changed["delta"] = d.Delta
	changed["modified"] = d.Modified

	if err := table.Update(ctx, stored, changed); err != nil {
		return nil, fmt.Errorf("更新 %s 失败: %w", name, err)
	}
	ic.Stats.Updated[name]++
	return stored, nil
}

func tableName[T any]() string {
	if t, ok := any(new(T)).(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", *new(T))
}

func rowID[T any](row *T) int64 {
	if r, ok := any(row).(model.Identifiable); ok {
		return r.GetID()
	}
	return 0
}

func stamp(t time.Time) *time.Time {
	return &t
}

func orgKey(ic *ImportContext, code string) map[string]any {
	return map[string]any{"organization_id": ic.OrganizationID, "code": code}
}

// ── 字段变更 ──

// changes 列名 → 新值
type changes map[string]any

// fillString 仅当库中为空且候选非空时写入
func (c changes) fillString(column string, stored *string, candidate string) {
	if *stored == "" && candidate != "" {
		*stored = candidate
		c[column] = candidate
	}
}

func (c changes) fillInt(column string, stored *int, candidate int) {
	if *stored == 0 && candidate != 0 {
		*stored = candidate
		c[column] = candidate
	}
}

func (c changes) fillRef(column string, stored **int64, candidate *int64) {
	if *stored == nil && candidate != nil {
		v := *candidate
		*stored = &v
		c[column] = *stored
	}
}

// setString 值不同时覆盖
func (c changes) setString(column string, stored *string, candidate string) {
	if *stored != candidate {
		*stored = candidate
		c[column] = candidate
	}
}

func (c changes) setInt(column string, stored *int, candidate int) {
	if *stored != candidate {
		*stored = candidate
		c[column] = candidate
	}
}

func (c changes) setRef(column string, stored **int64, candidate *int64) {
	if sameRef(*stored, candidate) {
		return
	}
	if candidate == nil {
		*stored = nil
		c[column] = nil
		return
	}
	v := *candidate
	*stored = &v
	c[column] = *stored
}

func (c changes) setDate(column string, stored **time.Time, candidate *time.Time) {
	if sameDate(*stored, candidate) {
		return
	}
	if candidate == nil {
		*stored = nil
		c[column] = nil
		return
	}
	v := *candidate
	*stored = &v
	c[column] = *stored
}

func sameRef(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func ref(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
