package dto

import "organizer/backend/internal/untis"

// ── 课表导入 DTO ──

// UploadScheduleQuery 上传课表的查询参数
type UploadScheduleQuery struct {
	Locale string `form:"locale" binding:"omitempty,oneof=en zh"`
}

// ── 响应 ──

// ImportResponse 导入结论
type ImportResponse struct {
	OK       bool                 `json:"ok"`
	Locale   string               `json:"locale"`
	Errors   []string             `json:"errors"`
	Warnings []string             `json:"warnings"`
	Created  map[string]int       `json:"created"`
	Updated  map[string]int       `json:"updated"`
	Sections []untis.SectionCount `json:"sections"`
}

// HealthResponse 健康检查
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}
