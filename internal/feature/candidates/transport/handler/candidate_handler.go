// Package handler はcandidatesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/candidates/domain/entity"
	"stock_dashboard/internal/feature/candidates/transport/http/dto"
)

// CandidatesUsecase は候補銘柄スナップショットのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandidatesUsecase interface {
	Snapshot(ctx context.Context) entity.Snapshot
}

// CandidatesHandler は候補銘柄のHTTPリクエストを処理します。
type CandidatesHandler struct {
	uc CandidatesUsecase
}

// NewCandidatesHandler は指定されたusecaseでCandidatesHandlerの新しいインスタンスを生成します。
func NewCandidatesHandler(uc CandidatesUsecase) *CandidatesHandler {
	return &CandidatesHandler{uc: uc}
}

// List はキャッシュ済みのスナップショットをJSONで返します。
//
// エンドポイント例:
// GET /candidates
func (h *CandidatesHandler) List(c *gin.Context) {
	snap := h.uc.Snapshot(c.Request.Context())
	c.JSON(StatusCode(snap.Status), dto.NewSnapshotResponse(snap))
}

// StatusCode はスナップショットのステータスをHTTPステータスへ対応付けます。
// 未設定と空のシートは正常系として200を返します。
func StatusCode(s entity.SnapshotStatus) int {
	switch s {
	case entity.StatusIntegrationError:
		return http.StatusBadGateway
	case entity.StatusConfigurationError, entity.StatusSchemaError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
