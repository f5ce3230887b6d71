// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CredentialChecker はスプレッドシート認証情報が設定済みかを報告します。
type CredentialChecker interface {
	Configured() bool
}

// HealthHandler は /healthz エンドポイントを処理します。
type HealthHandler struct {
	cacheBackend string
	credential   CredentialChecker
}

// NewHealthHandler はキャッシュバックエンド名と認証情報チェッカーでHealthHandlerを生成します。
func NewHealthHandler(cacheBackend string, credential CredentialChecker) *HealthHandler {
	return &HealthHandler{cacheBackend: cacheBackend, credential: credential}
}

// HealthResponse はヘルスチェックのレスポンスDTOです。
type HealthResponse struct {
	Status               string `json:"status"`
	Cache                string `json:"cache"`
	CredentialConfigured bool   `json:"credentialConfigured"`
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// 認証情報が未設定でもサービス自体は稼働しているため常に200を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, HealthResponse{
			Status:               "ok",
			Cache:                h.cacheBackend,
			CredentialConfigured: h.credential != nil && h.credential.Configured(),
		})
	}
}
