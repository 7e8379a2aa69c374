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

	"stock_buddy/internal/feature/prices/domain/entity"
	"stock_buddy/internal/feature/prices/transport/handler"
	"stock_buddy/internal/feature/prices/usecase"
)

// mockPricesUsecase はPricesUsecaseインターフェースのモック実装です。
type mockPricesUsecase struct {
	GetPricesFunc func(ctx context.Context, symbol, period string) ([]entity.Price, error)
}

func (m *mockPricesUsecase) GetPrices(ctx context.Context, symbol, period string) ([]entity.Price, error) {
	return m.GetPricesFunc(ctx, symbol, period)
}

// TestPriceHandler_GetPricesHandler はGetPricesHandlerのHTTPリクエスト/レスポンス処理をテストします。
func TestPriceHandler_GetPricesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDate := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockGetPrices  func(ctx context.Context, symbol, period string) ([]entity.Price, error)
		expectedStatus int
		expectedBody   string // JSON文字列として比較
	}{
		{
			name: "success: period specified",
			url:  "/prices/7203.T?period=3mo",
			mockGetPrices: func(ctx context.Context, symbol, period string) ([]entity.Price, error) {
				assert.Equal(t, "7203.T", symbol)
				assert.Equal(t, "3mo", period)
				return []entity.Price{
					{Symbol: "7203.T", Date: testDate, Close: 2890.5, Volume: 1200000},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"date":"2025-01-06","close":2890.5,"volume":1200000}]`,
		},
		{
			name: "success: default period",
			url:  "/prices/7203.T",
			mockGetPrices: func(ctx context.Context, symbol, period string) ([]entity.Price, error) {
				assert.Equal(t, "1y", period) // デフォルト値
				return []entity.Price{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: invalid period returns 400",
			url:  "/prices/7203.T?period=forever",
			mockGetPrices: func(ctx context.Context, symbol, period string) ([]entity.Price, error) {
				return nil, usecase.ErrInvalidPeriod
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid period"}`,
		},
		{
			name: "error: usecase failure returns 502",
			url:  "/prices/7203.T",
			mockGetPrices: func(ctx context.Context, symbol, period string) ([]entity.Price, error) {
				return nil, errors.New("database error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"database error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockPricesUsecase{GetPricesFunc: tt.mockGetPrices}
			h := handler.NewPriceHandler(mockUC)

			router := gin.New()
			router.GET("/prices/:code", h.GetPricesHandler)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
