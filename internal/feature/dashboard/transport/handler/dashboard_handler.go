// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	candidateshandler "stock_dashboard/internal/feature/candidates/transport/handler"
	candidatesdto "stock_dashboard/internal/feature/candidates/transport/http/dto"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/feature/dashboard/transport/http/dto"
)

// DashboardUsecase はダッシュボード組み立てのユースケースインターフェースを定義します。
type DashboardUsecase interface {
	Build(ctx context.Context, limit int) entity.Dashboard
	Refresh(ctx context.Context) error
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler は指定されたusecaseでDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get はスナップショットと各行のチャートを返します。
//
// エンドポイント例:
// GET /dashboard?limit=20
func (h *DashboardHandler) Get(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, candidatesdto.ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	d := h.uc.Build(c.Request.Context(), limit)
	c.JSON(candidateshandler.StatusCode(d.Snapshot.Status), dto.NewDashboardResponse(d))
}

// Refresh はスナップショットとチャートのキャッシュを破棄します。
//
// エンドポイント例:
// POST /refresh
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.uc.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, candidatesdto.ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
