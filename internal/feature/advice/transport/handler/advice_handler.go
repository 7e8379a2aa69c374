// Package handler はadviceフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_buddy/internal/api"
	"stock_buddy/internal/feature/advice/usecase"
	jwtmw "stock_buddy/internal/platform/jwt"
)

// AdviceUsecase はAIコメント生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AdviceUsecase interface {
	GetAdvice(ctx context.Context, userID uint) (string, error)
}

// AdviceHandler はAIコメント生成のHTTPリクエストを処理します。
type AdviceHandler struct {
	uc AdviceUsecase
}

// NewAdviceHandler は指定されたusecaseでAdviceHandlerの新しいインスタンスを生成します。
func NewAdviceHandler(uc AdviceUsecase) *AdviceHandler {
	return &AdviceHandler{uc: uc}
}

// GetAdviceHandler は認証済みユーザーのポートフォリオに対するAIコメントを返します。
// 保有銘柄がない場合は422を返します。
//
// GET /advice
func (h *AdviceHandler) GetAdviceHandler(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	comment, err := h.uc.GetAdvice(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyPortfolio) {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "保有銘柄が登録されていません"})
			return
		}
		slog.Error("advice generation failed", "user_id", userID, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to generate advice"})
		return
	}

	c.JSON(http.StatusOK, api.AdviceResponse{Comment: comment})
}
