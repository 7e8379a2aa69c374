package handler_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_buddy/internal/feature/notifications/transport/handler"
	jwtmw "stock_buddy/internal/platform/jwt"
)

const testUserID uint = 42

// mockNotifyUsecase はNotifyUsecaseインターフェースのモック実装です。
type mockNotifyUsecase struct {
	SubscribeFunc func(ctx context.Context, userID uint, endpoint, p256dh, auth string) error
}

func (m *mockNotifyUsecase) Subscribe(ctx context.Context, userID uint, endpoint, p256dh, auth string) error {
	return m.SubscribeFunc(ctx, userID, endpoint, p256dh, auth)
}

func setupRouter(uc *mockNotifyUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewSubscriptionHandler(uc)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, testUserID)
	})
	router.POST("/notifications/subscribe", h.Subscribe)
	return router
}

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSubscribe  func(ctx context.Context, userID uint, endpoint, p256dh, auth string) error
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"endpoint":"https://push.example.com/ep1","keys":{"p256dh":"key","auth":"secret"}}`,
			mockSubscribe: func(ctx context.Context, userID uint, endpoint, p256dh, auth string) error {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, "https://push.example.com/ep1", endpoint)
				assert.Equal(t, "key", p256dh)
				assert.Equal(t, "secret", auth)
				return nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error: endpoint is not a URL",
			body:           `{"endpoint":"not-a-url","keys":{"p256dh":"key","auth":"secret"}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: missing keys",
			body:           `{"endpoint":"https://push.example.com/ep1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error: storage failure returns 500",
			body: `{"endpoint":"https://push.example.com/ep1","keys":{"p256dh":"key","auth":"secret"}}`,
			mockSubscribe: func(ctx context.Context, userID uint, endpoint, p256dh, auth string) error {
				return errors.New("database error")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockNotifyUsecase{SubscribeFunc: tt.mockSubscribe})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/notifications/subscribe", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
