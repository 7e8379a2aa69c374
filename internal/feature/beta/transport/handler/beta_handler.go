// Package handler はbetaフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_buddy/internal/api"
	"stock_buddy/internal/feature/beta/usecase"
	pricesusecase "stock_buddy/internal/feature/prices/usecase"
)

// msgInsufficientData はデータ不足時に初心者ユーザーへ表示するメッセージです。
const msgInsufficientData = "株価データが不足しています（20日分以上の取引データが必要です）"

// BetaUsecase はベータ値計算のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type BetaUsecase interface {
	GetBeta(ctx context.Context, code, period string) (*usecase.BetaReport, error)
}

// BetaHandler はベータ値計算のHTTPリクエストを処理します。
type BetaHandler struct {
	uc BetaUsecase
}

// NewBetaHandler は指定されたusecaseでBetaHandlerの新しいインスタンスを生成します。
func NewBetaHandler(uc BetaUsecase) *BetaHandler {
	return &BetaHandler{uc: uc}
}

// GetBetaHandler は銘柄のベータ値・相関係数・ラベルをJSONで返します。
// データが20日分に満たない場合は422を返します。
//
// エンドポイント例:
// GET /stocks/:code/beta?period=1y
func (h *BetaHandler) GetBetaHandler(c *gin.Context) {
	code := c.Param("code")
	period := c.DefaultQuery("period", pricesusecase.DefaultPeriod)

	report, err := h.uc.GetBeta(c.Request.Context(), code, period)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: msgInsufficientData})
		case errors.Is(err, pricesusecase.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid period"})
		default:
			slog.Error("beta calculation failed", "code", code, "period", period, "error", err)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to load price data"})
		}
		return
	}

	c.JSON(http.StatusOK, api.BetaResponse{
		Beta:        report.Beta,
		Correlation: report.Correlation,
		DataPoints:  report.DataPoints,
		Label:       report.Label,
	})
}
