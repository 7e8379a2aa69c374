// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_buddy/internal/api"
	"stock_buddy/internal/feature/portfolio/domain/entity"
	"stock_buddy/internal/feature/portfolio/usecase"
	jwtmw "stock_buddy/internal/platform/jwt"
)

// PortfolioUsecase は保有銘柄操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PortfolioUsecase interface {
	ListHoldings(ctx context.Context, userID uint) ([]entity.Holding, error)
	AddHolding(ctx context.Context, userID uint, symbol string, quantity, avgCost float64) error
	UpdateHolding(ctx context.Context, userID uint, symbol string, quantity, avgCost float64) error
	RemoveHolding(ctx context.Context, userID uint, symbol string) error
	ImportCSV(ctx context.Context, userID uint, r io.Reader) (*usecase.ImportResult, error)
}

// SafetyUsecase は安全ルールチェックのユースケースインターフェースを定義します。
type SafetyUsecase interface {
	Check(ctx context.Context, userID uint) ([]usecase.Finding, error)
}

// PortfolioHandler は保有銘柄のHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc     PortfolioUsecase
	safety SafetyUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase, safety SafetyUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, safety: safety}
}

// List は認証済みユーザーの保有銘柄一覧を返します。
//
// GET /portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	holdings, err := h.uc.ListHoldings(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list holdings", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load portfolio"})
		return
	}

	out := make([]api.HoldingResponse, 0, len(holdings))
	for _, hd := range holdings {
		out = append(out, api.HoldingResponse{
			Symbol:   hd.Symbol,
			Quantity: hd.Quantity,
			AvgCost:  hd.AvgCost,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Add は保有銘柄を登録します。既存の銘柄は上書きされます。
//
// POST /portfolio
func (h *PortfolioHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req api.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.uc.AddHolding(c.Request.Context(), userID, req.Symbol, req.Quantity, req.AvgCost); err != nil {
		slog.Error("failed to add holding", "user_id", userID, "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save holding"})
		return
	}
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Update はURLパスで指定された銘柄の保有情報を更新します。
//
// PUT /portfolio/:symbol
func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	symbol := c.Param("symbol")

	// 銘柄はパスパラメータを正とするため、ボディは数量と取得単価のみ
	var req struct {
		Quantity float64 `json:"quantity" binding:"required,gt=0"`
		AvgCost  float64 `json:"avg_cost" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.uc.UpdateHolding(c.Request.Context(), userID, symbol, req.Quantity, req.AvgCost); err != nil {
		if errors.Is(err, usecase.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "holding not found"})
			return
		}
		slog.Error("failed to update holding", "user_id", userID, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update holding"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Remove はURLパスで指定された銘柄を保有一覧から削除します。
//
// DELETE /portfolio/:symbol
func (h *PortfolioHandler) Remove(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	symbol := c.Param("symbol")

	if err := h.uc.RemoveHolding(c.Request.Context(), userID, symbol); err != nil {
		if errors.Is(err, usecase.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "holding not found"})
			return
		}
		slog.Error("failed to remove holding", "user_id", userID, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to remove holding"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Import はmultipartフォームのfileフィールドからCSVを取り込みます。
// 一部の行が不正でも取り込める行は取り込み、スキップした行と理由を返します。
//
// POST /portfolio/import
func (h *PortfolioHandler) Import(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to open file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close upload", "error", err)
		}
	}()

	result, err := h.uc.ImportCSV(c.Request.Context(), userID, f)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCSV) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("csv import failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "import failed"})
		return
	}

	skipped := make([]api.SkippedRow, 0, len(result.Skipped))
	for _, s := range result.Skipped {
		skipped = append(skipped, api.SkippedRow{Line: s.Line, Reason: s.Reason})
	}
	c.JSON(http.StatusOK, api.ImportResponse{Imported: result.Imported, Skipped: skipped})
}

// Safety は認証済みユーザーのポートフォリオに安全ルールを適用し、
// 検出された注意事項を返します。
//
// GET /portfolio/safety
func (h *PortfolioHandler) Safety(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	findings, err := h.safety.Check(c.Request.Context(), userID)
	if err != nil {
		slog.Error("safety check failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "safety check failed"})
		return
	}

	out := make([]api.SafetyFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, api.SafetyFinding{Rule: f.Rule, Message: f.Message})
	}
	c.JSON(http.StatusOK, api.SafetyResponse{Findings: out})
}
