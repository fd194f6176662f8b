package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/untis"
)

// ── Categories（departments） ──

type categoryValidator struct {
	repo *repository.Repository
}

func (v *categoryValidator) Validate(ctx context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Department)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code, ok := ic.requireID(untis.SectionCategories, n, untis.PrefixCategory)
	if !ok {
		return nil
	}
	name := strings.TrimSpace(n.LongName)
	if name == "" {
		ic.AddError(untis.SectionCategories, MsgCategoryNameMissing, map[string]any{"Code": code})
		return nil
	}

	ic.Categories[code] = &model.Category{OrganizationID: ic.OrganizationID, Code: code, Name: name}
	return v.Resolve(ctx, ic, code)
}

func (v *categoryValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	c, ok := ic.Categories[code]
	if !ok {
		return nil
	}
	return resolve(ctx, ic, v.repo.Categories, orgKey(ic, code), c, fillCategory)
}

func fillCategory(stored, candidate *model.Category) changes {
	c := changes{}
	c.fillString("name", &stored.Name, candidate.Name)
	return c
}

// ── Descriptions：M → 授课形式，R → 教室类型 ──

type descriptionValidator struct {
	repo *repository.Repository
}

func (v *descriptionValidator) Validate(ctx context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Description)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code, ok := ic.requireID(untis.SectionDescriptions, n, untis.PrefixDescription)
	if !ok {
		return nil
	}
	name := strings.TrimSpace(n.LongName)
	if name == "" {
		ic.AddError(untis.SectionDescriptions, MsgDescriptionNameMissing, map[string]any{"Code": code})
		return nil
	}

	flags := strings.ToUpper(n.Flags)
	if strings.Contains(flags, "M") {
		ic.Methods[code] = &model.Method{OrganizationID: ic.OrganizationID, Code: code, Name: name}
	}
	if strings.Contains(flags, "R") {
		ic.RoomTypes[code] = &model.RoomType{OrganizationID: ic.OrganizationID, Code: code, Name: name}
	}
	return v.Resolve(ctx, ic, code)
}

func (v *descriptionValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	if m, ok := ic.Methods[code]; ok {
		err := resolve(ctx, ic, v.repo.Methods, orgKey(ic, code), m, func(stored, candidate *model.Method) changes {
			c := changes{}
			c.fillString("name", &stored.Name, candidate.Name)
			return c
		})
		if err != nil {
			return err
		}
	}
	if rt, ok := ic.RoomTypes[code]; ok {
		return resolve(ctx, ic, v.repo.RoomTypes, orgKey(ic, code), rt, func(stored, candidate *model.RoomType) changes {
			c := changes{}
			c.fillString("name", &stored.Name, candidate.Name)
			return c
		})
	}
	return nil
}

// methodByRef 按编号或名称查找授课形式
func (ic *ImportContext) methodByRef(ref string) *model.Method {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if m, ok := ic.Methods[untis.StripPrefix(ref, untis.PrefixDescription)]; ok {
		return m
	}
	// 同名时取编号最小者
	codes := make([]string, 0, len(ic.Methods))
	for code := range ic.Methods {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if m := ic.Methods[code]; strings.EqualFold(m.Name, ref) {
			return m
		}
	}
	return nil
}

// ── Events（subjects） ──

type eventValidator struct {
	repo *repository.Repository
}

func (v *eventValidator) Validate(ctx context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Subject)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code, ok := ic.requireID(untis.SectionEvents, n, untis.PrefixEvent)
	if !ok {
		return nil
	}
	name := strings.TrimSpace(n.LongName)
	if name == "" {
		ic.AddError(untis.SectionEvents, MsgEventNameMissing, map[string]any{"Code": code})
		return nil
	}

	ic.Events[code] = &model.Event{
		OrganizationID: ic.OrganizationID,
		Code:           code,
		Name:           name,
		SubjectNo:      strings.TrimSpace(n.SubjectGroup),
	}
	return v.Resolve(ctx, ic, code)
}

func (v *eventValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	e, ok := ic.Events[code]
	if !ok {
		return nil
	}
	return resolve(ctx, ic, v.repo.Events, orgKey(ic, code), e, func(stored, candidate *model.Event) changes {
		c := changes{}
		c.fillString("name", &stored.Name, candidate.Name)
		c.fillString("subject_no", &stored.SubjectNo, candidate.SubjectNo)
		return c
	})
}

// ── Persons（teachers） ──

type personValidator struct {
	repo *repository.Repository
}

func (v *personValidator) Validate(ctx context.Context, ic *ImportContext, node untis.Node) error {
	n, ok := node.(untis.Teacher)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedNode, node)
	}
	code, ok := ic.requireID(untis.SectionPersons, n, untis.PrefixPerson)
	if !ok {
		return nil
	}
	surname := strings.TrimSpace(n.Surname)
	if surname == "" {
		ic.AddError(untis.SectionPersons, MsgPersonSurnameMissing, map[string]any{"Code": code})
		return nil
	}

	ic.Persons[code] = &model.Person{
		OrganizationID: ic.OrganizationID,
		Code:           code,
		Surname:        surname,
		Forename:       strings.TrimSpace(n.Forename),
		Title:          strings.TrimSpace(n.Title),
		Username:       strings.TrimSpace(n.ExternalName),
	}
	return v.Resolve(ctx, ic, code)
}

func (v *personValidator) Resolve(ctx context.Context, ic *ImportContext, code string) error {
	p, ok := ic.Persons[code]
	if !ok {
		return nil
	}
	return resolve(ctx, ic, v.repo.Persons, orgKey(ic, code), p, func(stored, candidate *model.Person) changes {
		c := changes{}
		c.fillString("surname", &stored.Surname, candidate.Surname)
		c.fillString("forename", &stored.Forename, candidate.Forename)
		c.fillString("title", &stored.Title, candidate.Title)
		c.fillString("username", &stored.Username, candidate.Username)
		return c
	})
}
