package service

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"organizer/backend/config"
	"organizer/backend/internal/untis"
	"organizer/backend/pkg/i18n"
)

// ── 测试辅助 ──

const testDefaultGrid = "Haupt-Zeitraster"

func setupTestImportService() (ScheduleImportService, *memRepos, int64) {
	repos := newMemRepos()
	orgID := repos.seedOrganization("Hochschule")
	cfg := &config.ImportConfig{
		DefaultGrid:     testDefaultGrid,
		BuildingPattern: `^([A-Z]\d{1,2})\.`,
	}
	svc := NewScheduleImportService(cfg, repos.repository(), i18n.Identity{}, zap.NewNop())
	return svc, repos, orgID
}

// schoolYearOccurrence 学年 2024-09-02 起每天都上课
func schoolYearOccurrence() string {
	return strings.Repeat("1", 364)
}

// baseDocument 一份干净的导出：学期 2024-10-01 ~ 2025-02-28，
// 课程 100 在 10 月每周一第 1 节上课（7、14、21、28 日）。
func baseDocument() *untis.Document {
	doc := &untis.Document{
		Date: "20240815",
		Time: "1342",
		General: untis.General{
			SchoolYearBegin: "20240902",
			SchoolYearEnd:   "20250831",
			TermBegin:       "20241001",
			TermEnd:         "20250228",
		},
		Departments: []untis.Department{{Code: "DP_INF", LongName: "Informatik"}},
		Descriptions: []untis.Description{
			{Code: "DS_V", LongName: "Vorlesung", Flags: "M"},
			{Code: "DS_U", LongName: "Übung", Flags: "M"},
			{Code: "DS_HS", LongName: "Hörsaal", Flags: "R"},
		},
		Subjects: []untis.Subject{
			{Code: "SU_MA", LongName: "Mathematik", SubjectGroup: "M1"},
			{Code: "SU_PH", LongName: "Physik"},
		},
		Classes: []untis.Class{
			{Code: "CL_INF1", LongName: "Informatik 1", Department: untis.Ref{IDs: "DP_INF"}},
			{Code: "CL_INF2", LongName: "Informatik 2", Department: untis.Ref{IDs: "DP_INF"}},
		},
		Teachers: []untis.Teacher{
			{Code: "TR_MUE", Surname: "Müller", Forename: "Anna", ExternalName: "amueller"},
			{Code: "TR_SCH", Surname: "Schmidt"},
		},
		Rooms: []untis.Room{
			{Code: "RM_A1.01", LongName: "Hörsaal A", Description: untis.Ref{IDs: "DS_HS"}, Capacity: "120", ExternalName: "A1-01"},
			{Code: "RM_B2.10", LongName: "Seminarraum", Capacity: "30", ExternalName: "B2-10"},
		},
		Lessons: []untis.Lesson{baseLesson()},
	}
	for day := 1; day <= 5; day++ {
		d := string(rune('0' + day))
		doc.TimePeriods = append(doc.TimePeriods,
			untis.TimePeriod{Code: "TP_" + d + "_1", Day: d, Period: "1", StartTime: "0800", EndTime: "0930"},
			untis.TimePeriod{Code: "TP_" + d + "_2", Day: d, Period: "2", StartTime: "0945", EndTime: "1115"},
		)
	}
	return doc
}

func baseLesson() untis.Lesson {
	return untis.Lesson{
		Code:        "LS_100_1",
		Subject:     untis.Ref{IDs: "SU_MA"},
		Teacher:     untis.TeacherRef{IDs: "TR_MUE"},
		Classes:     untis.Ref{IDs: "CL_INF1 CL_INF2"},
		BeginDate:   "20241001",
		EndDate:     "20241031",
		Description: "DS_V",
		Occurrence:  schoolYearOccurrence(),
		Text:        "Grundlagen",
		Times: []untis.Time{
			{AssignedDay: "1", AssignedPeriod: "1", AssignedRoom: untis.Ref{IDs: "RM_A1.01"}},
		},
	}
}

func entriesWith(r *Report, messageID string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.MessageID == messageID {
			out = append(out, e)
		}
	}
	return out
}

func requireOK(t *testing.T, res *ImportResult) {
	t.Helper()
	if !res.OK {
		t.Fatalf("期望导入成功，实际错误: %v", res.Errors)
	}
}
