package handler

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"familygifthub/backend/internal/service"
	"familygifthub/backend/pkg/response"
)

// FamilyHandler 家庭视图模块 HTTP 处理器
type FamilyHandler struct {
	familySvc service.FamilyService
	exportSvc service.ExportService
}

// NewFamilyHandler 创建 FamilyHandler
func NewFamilyHandler(familySvc service.FamilyService, exportSvc service.ExportService) *FamilyHandler {
	return &FamilyHandler{
		familySvc: familySvc,
		exportSvc: exportSvc,
	}
}

// GetFamilyLists 全家清单视图
// GET /api/family/lists
func (h *FamilyHandler) GetFamilyLists(c *gin.Context) {
	family, ok := MustGetFamily(c)
	if !ok {
		return
	}

	result, err := h.familySvc.GetFamilyLists(c.Request.Context(), family.FamilyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Export 导出全家心愿单为 Excel
// GET /api/family/export
func (h *FamilyHandler) Export(c *gin.Context) {
	family, ok := MustGetFamily(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportFamilyList(c.Request.Context(), family.FamilyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	// 文件名含中文，按 RFC 5987 用 filename* 传递
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(200,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
