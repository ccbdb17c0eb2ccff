// Package routers 组装 HTTP 路由和中间件链
package routers

import (
	"time"

	"github.com/haierkeys/echovault/internal/app"
	"github.com/haierkeys/echovault/internal/middleware"
	"github.com/haierkeys/echovault/internal/routers/api_router"
	"github.com/haierkeys/echovault/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/notes/search",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      20,
	},
)

// NewRouter 创建主路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
	r.Use(middleware.RateLimiter(methodLimiters))
	r.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
	r.Use(middleware.Cors())
	r.Use(middleware.LangWithTranslator(uni))
	r.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

	// 创建 Handlers（注入 App Container）
	healthHandler := api_router.NewHealthHandler(appContainer)
	noteHandler := api_router.NewNoteHandler(appContainer)
	subscriptionHandler := api_router.NewSubscriptionHandler(appContainer)

	r.GET("/health", healthHandler.Check)

	notes := r.Group("/notes")
	{
		notes.POST("", noteHandler.Create)
		notes.GET("", noteHandler.List)
		// search 必须先于 :id 注册，避免被参数路由吞掉
		notes.GET("/search", noteHandler.Search)
		notes.GET("/:id", noteHandler.Get)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	r.POST("/subscriptions", subscriptionHandler.Create)

	return r
}
