// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_buddy/internal/api"
	"stock_buddy/internal/feature/prices/domain/entity"
	"stock_buddy/internal/feature/prices/usecase"
)

// PricesUsecase は株価参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	GetPrices(ctx context.Context, symbol, period string) ([]entity.Price, error)
}

// PriceHandler は株価データのHTTPリクエストを処理します。
type PriceHandler struct {
	uc PricesUsecase
}

// NewPriceHandler は指定されたusecaseでPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(uc PricesUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPricesHandler は銘柄コードとルックバック期間を受け取り、日次終値をJSONで返します。
//
// エンドポイント例:
// GET /prices/:code?period=1y
func (h *PriceHandler) GetPricesHandler(c *gin.Context) {
	code := c.Param("code")
	// 未指定の場合はデフォルト値を使用
	period := c.DefaultQuery("period", usecase.DefaultPeriod)

	prices, err := h.uc.GetPrices(c.Request.Context(), code, period)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid period"})
			return
		}
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	// データをフォーマット
	out := make([]api.PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, api.PriceResponse{
			Date:   p.DateString(),
			Close:  p.Close,
			Volume: p.Volume,
		})
	}

	c.JSON(http.StatusOK, out)
}
