package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	candidates "stock_dashboard/internal/feature/candidates/domain/entity"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/feature/dashboard/transport/handler"
	pricehistory "stock_dashboard/internal/feature/pricehistory/domain/entity"
)

// mockDashboardUsecase はDashboardUsecaseインターフェースのモック実装です。
type mockDashboardUsecase struct {
	BuildFunc   func(ctx context.Context, limit int) entity.Dashboard
	RefreshFunc func(ctx context.Context) error
}

func (m *mockDashboardUsecase) Build(ctx context.Context, limit int) entity.Dashboard {
	return m.BuildFunc(ctx, limit)
}

func (m *mockDashboardUsecase) Refresh(ctx context.Context) error {
	return m.RefreshFunc(ctx)
}

func newRouter(uc handler.DashboardUsecase) *gin.Engine {
	h := handler.NewDashboardHandler(uc)
	router := gin.New()
	router.GET("/dashboard", h.Get)
	router.POST("/refresh", h.Refresh)
	return router
}

// TestDashboardHandler_Get はGetハンドラーのレスポンスとlimitの扱いを検証します。
func TestDashboardHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	fetchedAt := time.Date(2024, 5, 31, 7, 0, 0, 0, time.UTC)
	dashboard := entity.Dashboard{
		Snapshot: candidates.Snapshot{Status: candidates.StatusOK, Columns: []string{"코드"}, FetchedAt: fetchedAt},
		Count:    2,
		Rows: []entity.Row{{
			Candidate: candidates.CandidateRecord{DiscoveryDate: "2024-05-31", SymbolName: "삼성전자", SymbolCode: "005930", ProfitPercent: 1.5, LivePrice: "73,500"},
			Chart: pricehistory.Chart{Symbol: "005930", Available: true, Points: []pricehistory.PricePoint{
				{Date: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), Close: 73500},
			}},
		}},
	}

	tests := []struct {
		name           string
		url            string
		expectedLimit  int
		build          entity.Dashboard
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: limit forwarded",
			url:            "/dashboard?limit=1",
			expectedLimit:  1,
			build:          dashboard,
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"ok","count":2,"columns":["코드"],"fetchedAt":"2024-05-31T07:00:00Z","rows":[
				{"candidate":{"discoveryDate":"2024-05-31","symbolName":"삼성전자","symbolCode":"005930","profitPercent":1.5,"livePrice":"73,500"},
				 "chart":{"symbol":"005930","available":true,"points":[{"date":"2024-05-31","close":73500}]}}]}`,
		},
		{
			name:           "integration error maps to bad gateway",
			url:            "/dashboard",
			expectedLimit:  0,
			build:          entity.Dashboard{Snapshot: candidates.Snapshot{Status: candidates.StatusIntegrationError, Error: "quota", ErrorKind: "quota", FetchedAt: fetchedAt}},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"integration_error","count":0,"columns":[],"rows":[],"error":"quota","errorKind":"quota","fetchedAt":"2024-05-31T07:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockDashboardUsecase{
				BuildFunc: func(_ context.Context, limit int) entity.Dashboard {
					assert.Equal(t, tt.expectedLimit, limit)
					return tt.build
				},
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestDashboardHandler_Get_InvalidLimit は不正なlimitで400を返すことを検証します。
func TestDashboardHandler_Get_InvalidLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, url := range []string{"/dashboard?limit=abc", "/dashboard?limit=-1"} {
		router := newRouter(&mockDashboardUsecase{
			BuildFunc: func(context.Context, int) entity.Dashboard {
				t.Fatal("Build must not be called")
				return entity.Dashboard{}
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, url)
		assert.JSONEq(t, `{"error":"limit must be a non-negative integer"}`, w.Body.String())
	}
}

// TestDashboardHandler_Refresh はRefreshハンドラーのステータスを検証します。
func TestDashboardHandler_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"success: no content", nil, http.StatusNoContent},
		{"failure: cache clear error", errors.New("redis down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockDashboardUsecase{
				RefreshFunc: func(context.Context) error { return tt.err },
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/refresh", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.err != nil {
				assert.JSONEq(t, `{"error":"redis down"}`, w.Body.String())
			}
		})
	}
}
