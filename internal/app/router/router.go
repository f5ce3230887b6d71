// Package router wires the HTTP handlers to routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	candidateshandler "stock_dashboard/internal/feature/candidates/transport/handler"
	dashboardhandler "stock_dashboard/internal/feature/dashboard/transport/handler"
	pricehistoryhandler "stock_dashboard/internal/feature/pricehistory/transport/handler"
	platformhandler "stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/http/middleware"
)

// Handlers groups the handlers served by the router.
type Handlers struct {
	Health     *platformhandler.HealthHandler
	Candidates *candidateshandler.CandidatesHandler
	Chart      *pricehistoryhandler.ChartHandler
	Dashboard  *dashboardhandler.DashboardHandler
}

// NewRouter builds the gin engine. corsOrigins enables CORS for the listed
// origins; an empty list leaves CORS off.
func NewRouter(h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins,
			AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	r.GET("/candidates", h.Candidates.List)
	r.GET("/candidates/:code/chart", h.Chart.GetChart)
	r.GET("/dashboard", h.Dashboard.Get)
	// ユーザー操作による再読み込み
	r.POST("/refresh", h.Dashboard.Refresh)

	return r
}
