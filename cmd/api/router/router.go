package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gb-more-from-widget/cmd/api/handlers"
	"gb-more-from-widget/cmd/api/middleware"
	"gb-more-from-widget/cmd/api/services"
	_ "gb-more-from-widget/docs"
	"gb-more-from-widget/metrics"
)

// Deps 는 라우터가 필요로 하는 서비스 묶음이다.
type Deps struct {
	Blocks        *services.BlockService
	Assets        *services.AssetService
	Ajax          *services.AjaxService
	Metrics       *metrics.Metrics
	Ping          func(ctx context.Context) error
	AdminAjaxPath string

	// Gatherer 가 nil 이면 기본 레지스트리를 노출한다.
	Gatherer prometheus.Gatherer
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.HTTPMetrics(d.Metrics))

	r.GET("/health", handlers.HealthHandler(d.Ping))

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ajaxPath := d.AdminAjaxPath
	if ajaxPath == "" {
		ajaxPath = "/admin-ajax"
	}
	r.POST(ajaxPath, handlers.AdminAjaxHandler(d.Ajax))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/block-types", handlers.ListBlockTypesHandler(d.Blocks))
		api.GET("/block-renderer/:namespace/:name", handlers.RenderBlockHandler(d.Blocks))
		api.POST("/block-renderer/:namespace/:name", handlers.RenderBlockHandler(d.Blocks))
		api.GET("/assets", handlers.GetAssetsHandler(d.Assets))
	}

	return r
}
