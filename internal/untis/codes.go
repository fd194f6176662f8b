package untis

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 节点编号前缀
const (
	PrefixCategory    = "DP_"
	PrefixDescription = "DS_"
	PrefixEvent       = "SU_"
	PrefixGroup       = "CL_"
	PrefixPerson      = "TR_"
	PrefixRoom        = "RM_"
	PrefixUnit        = "LS_"
)

// StripPrefix 去掉编号的类型前缀和首尾空白
func StripPrefix(id, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(id), prefix))
}

// UnitCode 从课程编号 LS_<单元>_<序号> 中取出单元编号
func UnitCode(lessonID string) string {
	code := StripPrefix(lessonID, PrefixUnit)
	i := strings.LastIndex(code, "_")
	if i <= 0 {
		return code
	}
	if _, err := strconv.Atoi(code[i+1:]); err != nil {
		return code
	}
	return code[:i]
}

// ParseDate 解析 YYYYMMDD（UTC 零点）
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("20060102", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("无效日期 %q: %w", s, err)
	}
	return d, nil
}

// ParseClock 将 HHMM（或 HMM）转为 HH:MM:SS
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 3 {
		s = "0" + s
	}
	if len(s) != 4 {
		return "", fmt.Errorf("无效时间 %q", s)
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[2:])
	if errH != nil || errM != nil || h > 23 || m > 59 {
		return "", fmt.Errorf("无效时间 %q", s)
	}
	return fmt.Sprintf("%02d:%02d:00", h, m), nil
}

// ParseStamp 合并文档的生成日期与时间
func ParseStamp(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	hms, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse("15:04:05", hms)
	return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
