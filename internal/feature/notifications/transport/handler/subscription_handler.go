// Package handler はnotificationsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_buddy/internal/api"
	jwtmw "stock_buddy/internal/platform/jwt"
)

// NotifyUsecase は通知購読のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NotifyUsecase interface {
	Subscribe(ctx context.Context, userID uint, endpoint, p256dh, auth string) error
}

// SubscriptionHandler はWeb Push購読のHTTPリクエストを処理します。
type SubscriptionHandler struct {
	uc NotifyUsecase
}

// NewSubscriptionHandler は指定されたusecaseでSubscriptionHandlerの新しいインスタンスを生成します。
func NewSubscriptionHandler(uc NotifyUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// Subscribe はブラウザのPushManager.subscribe()の結果を登録します。
// 同じendpointの再登録は上書きになります。
//
// POST /notifications/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req api.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.uc.Subscribe(c.Request.Context(), userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth); err != nil {
		slog.Error("failed to save subscription", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save subscription"})
		return
	}
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}
