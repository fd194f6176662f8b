package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/untis"
)

// gridDraft 汇总同一栅格的全部 timeperiod 行
type gridDraft struct {
	periods  model.GridPeriods
	firstDay int
	lastDay  int
	bad      []string // 不完整或前后矛盾的行
}

// ── Grids（timeperiods） ──

type gridValidator struct {
	repo        *repository.Repository
	defaultGrid string
}

func (v *gridValidator) Validate(_ context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.TimePeriod)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}

	name := strings.TrimSpace(n.TimeGrid)
	if name == "" {
		name = v.defaultGrid
	}
	draft, ok := ic.gridDrafts[name]
	if !ok {
		draft = &gridDraft{periods: model.GridPeriods{}}
		ic.gridDrafts[name] = draft
		ic.gridOrder = append(ic.gridOrder, name)
	}

	label := n.ID()
	if label == "" {
		label = fmt.Sprintf("%s/%s", n.Day, n.Period)
	}

	day, errDay := strconv.Atoi(strings.TrimSpace(n.Day))
	number, errPeriod := strconv.Atoi(strings.TrimSpace(n.Period))
	start, errStart := untis.ParseClock(n.StartTime)
	end, errEnd := untis.ParseClock(n.EndTime)
	if errDay != nil || errPeriod != nil || errStart != nil || errEnd != nil ||
		day < 1 || day > 7 || number < 1 || end <= start {
		draft.bad = append(draft.bad, label)
		return nil
	}

	p := model.Period{StartTime: start, EndTime: end, Label: strings.TrimSpace(n.Label)}
	if prev, seen := draft.periods[number]; seen && (prev.StartTime != p.StartTime || prev.EndTime != p.EndTime) {
		draft.bad = append(draft.bad, label)
		return nil
	}
	draft.periods[number] = p

	if draft.firstDay == 0 || day < draft.firstDay {
		draft.firstDay = day
	}
	if day > draft.lastDay {
		draft.lastDay = day
	}
	return nil
}

// Finish 每个栅格最多一条汇总错误；有有效节次的栅格才落库
func (v *gridValidator) Finish(ctx context.Context, ic *ImportContext) error {
	for _, name := range ic.gridOrder {
		draft := ic.gridDrafts[name]
		if len(draft.bad) > 0 {
			sort.Strings(draft.bad)
			ic.AddError(untis.SectionGrids, MsgGridPeriodsInvalid, map[string]any{
				"Grid":    name,
				"Periods": strings.Join(draft.bad, ", "),
			})
		}
		if len(draft.periods) == 0 {
			continue
		}
		ic.Grids[name] = &model.Grid{
			Code:     name,
			Periods:  datatypes.NewJSONType(draft.periods),
			FirstDay: draft.firstDay,
			LastDay:  draft.lastDay,
		}
		if err := v.Resolve(ctx, ic, name); err != nil {
			return err
		}
	}
	return nil
}

// Resolve 栅格只创建一次，已存在时保留库中定义
func (v *gridValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	g, ok := ic.Grids[code]
	if !ok {
		return nil
	}
	return resolve(ctx, ic, v.repo.Grids, map[string]any{"code": code}, g, nil)
}

// lookup 按名称查找栅格：先查本次导入，再查库（此前导入创建的栅格）
func (v *gridValidator) lookup(ctx context.Context, ic *ImportContext, name string) (*model.Grid, error) {
	if name == "" {
		name = v.defaultGrid
	}
	if g, ok := ic.Grids[name]; ok {
		return g, nil
	}
	g, found, err := v.repo.Grids.Load(ctx, map[string]any{"code": name})
	if err != nil {
		return nil, fmt.Errorf("查询 grids 失败: %w", err)
	}
	if !found {
		return nil, nil
	}
	ic.Grids[name] = g
	return g, nil
}

// byID 按 ID 查找栅格；本次未解析到的栅格回退到存储中查找
func (v *gridValidator) byID(ctx context.Context, ic *ImportContext, id int64) (*model.Grid, error) {
	for _, g := range ic.Grids {
		if g.ID == id {
			return g, nil
		}
	}
	g, found, err := v.repo.Grids.Load(ctx, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("查询 grids 失败: %w", err)
	}
	if !found {
		return nil, nil
	}
	ic.Grids[g.Code] = g
	return g, nil
}
