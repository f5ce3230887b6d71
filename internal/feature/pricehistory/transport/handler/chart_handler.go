// Package handler はpricehistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	candidatesusecase "stock_dashboard/internal/feature/candidates/usecase"
	"stock_dashboard/internal/feature/pricehistory/domain/entity"
	"stock_dashboard/internal/feature/pricehistory/transport/http/dto"
)

// PriceHistoryUsecase は銘柄チャート取得のユースケースインターフェースを定義します。
type PriceHistoryUsecase interface {
	FetchRecent(ctx context.Context, code string) entity.Chart
}

// ChartHandler は銘柄チャートのHTTPリクエストを処理します。
type ChartHandler struct {
	uc PriceHistoryUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc PriceHistoryUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChart は銘柄コードの直近30営業日の終値を返します。
// データが取得できない場合も200で available=false を返します。
// コードはシート上の表記と同じく前後の ' を取り除いてから検索します。
//
// エンドポイント例:
// GET /candidates/:code/chart
func (h *ChartHandler) GetChart(c *gin.Context) {
	code := candidatesusecase.CleanSymbolCode(c.Param("code"))
	chart := h.uc.FetchRecent(c.Request.Context(), code)
	c.JSON(http.StatusOK, dto.NewChartResponse(chart))
}
