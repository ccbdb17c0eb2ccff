package api_router

import (
	"github.com/haierkeys/echovault/internal/app"
	"github.com/haierkeys/echovault/internal/dto"
	pkgapp "github.com/haierkeys/echovault/pkg/app"
	"github.com/haierkeys/echovault/pkg/code"
	apperrors "github.com/haierkeys/echovault/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler 推送订阅 API 路由处理器
type SubscriptionHandler struct {
	*Handler
}

// NewSubscriptionHandler 创建 SubscriptionHandler 实例
func NewSubscriptionHandler(a *app.App) *SubscriptionHandler {
	return &SubscriptionHandler{Handler: NewHandler(a)}
}

// Create 注册推送订阅
// 端点已存在时幂等返回已有记录
func (h *SubscriptionHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SubscriptionCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SubscriptionHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	sub, err := h.App.NotifyService.Subscribe(ctx, params)
	if err != nil {
		h.logError(ctx, "SubscriptionHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(sub))
}
