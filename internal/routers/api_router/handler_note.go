package api_router

import (
	"github.com/haierkeys/echovault/internal/app"
	"github.com/haierkeys/echovault/internal/dto"
	pkgapp "github.com/haierkeys/echovault/pkg/app"
	"github.com/haierkeys/echovault/pkg/code"
	"github.com/haierkeys/echovault/pkg/convert"
	apperrors "github.com/haierkeys/echovault/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// Create 创建笔记
// 向量计算和推送通知在响应返回后异步执行
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Get 获取单条笔记详情
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// List 按 ID 升序分页获取笔记列表
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	pager := &pkgapp.Pager{
		Skip: pkgapp.GetSkip(c),
		Limit: pkgapp.GetLimitWithConfig(c, pkgapp.PaginationConfig{
			DefaultLimit: h.App.Config().App.DefaultPageSize,
			MaxLimit:     h.App.Config().App.MaxPageSize,
		}),
	}

	list, totalRows, err := h.App.NoteService.List(ctx, pager)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, totalRows)
}

// Update 部分更新笔记
// 内容变更时向量异步重新计算
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	params := &dto.NoteUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Update(ctx, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := convert.StrTo(c.Param("id")).MustInt64()
	if id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid note id"))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, id); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"ok": true}))
}

// Search 语义搜索
// 提供方不可用时返回空列表
func (h *NoteHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SearchRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Search.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	results, err := h.App.SearchService.Search(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Search", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"list": results}))
}
