package service

import (
	"context"
	"fmt"
	"strings"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/untis"
)

// ── Groups（classes） ──

type groupValidator struct {
	repo  *repository.Repository
	grids *gridValidator
}

func (v *groupValidator) Validate(ctx context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Class)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code, ok := ic.requireID(untis.SectionGroups, n, untis.PrefixGroup)
	if !ok {
		return nil
	}
	fullName := strings.TrimSpace(n.LongName)
	if fullName == "" {
		ic.AddError(untis.SectionGroups, MsgGroupNameMissing, map[string]any{"Code": code})
		return nil
	}

	var categoryID *int64
	if dept := n.Department.First(untis.PrefixCategory); dept != "" {
		c, ok := ic.Categories[dept]
		if !ok {
			ic.AddError(untis.SectionGroups, MsgGroupCategoryUnknown, map[string]any{"Code": code, "Category": dept})
			return nil
		}
		categoryID = ref(c.ID)
	}

	gridName := strings.TrimSpace(n.TimeGrid)
	grid, err := v.grids.lookup(ctx, ic, gridName)
	if err != nil {
		return err
	}
	if grid == nil {
		if gridName == "" {
			gridName = v.grids.defaultGrid
		}
		ic.AddError(untis.SectionGroups, MsgGroupGridUnknown, map[string]any{"Code": code, "Grid": gridName})
		return nil
	}

	ic.Groups[code] = &model.Group{
		OrganizationID: ic.OrganizationID,
		Code:           code,
		Name:           code,
		FullName:       fullName,
		CategoryID:     categoryID,
		GridID:         ref(grid.ID),
	}
	return v.Resolve(ctx, ic, code)
}

func (v *groupValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	g, ok := ic.Groups[code]
	if !ok {
		return nil
	}
	return resolve(ctx, ic, v.repo.Groups, orgKey(ic, code), g, func(stored, candidate *model.Group) changes {
		c := changes{}
		c.fillString("name", &stored.Name, candidate.Name)
		c.fillString("full_name", &stored.FullName, candidate.FullName)
		c.fillRef("category_id", &stored.CategoryID, candidate.CategoryID)
		c.fillRef("grid_id", &stored.GridID, candidate.GridID)
		return c
	})
}
