package usecase

import (
	"context"

	"stock_buddy/internal/feature/portfolio/domain/entity"
)

// HoldingRepository は保有銘柄の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HoldingRepository interface {
	// Upsert は(user_id, symbol)をキーに保有銘柄を挿入または更新します。
	Upsert(ctx context.Context, holding *entity.Holding) error

	// FindByUserID は指定ユーザーの全保有銘柄をシンボル昇順で返します。
	FindByUserID(ctx context.Context, userID uint) ([]entity.Holding, error)

	// Update は既存の保有銘柄を更新します。
	// 存在しない場合、ErrHoldingNotFoundを返します。
	Update(ctx context.Context, holding *entity.Holding) error

	// Delete は保有銘柄を削除します。
	// 存在しない場合、ErrHoldingNotFoundを返します。
	Delete(ctx context.Context, userID uint, symbol string) error
}

// portfolioUsecase は保有銘柄CRUDのユースケースを定義します。
type portfolioUsecase struct {
	holdings HoldingRepository
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(holdings HoldingRepository) *portfolioUsecase {
	return &portfolioUsecase{holdings: holdings}
}

// ListHoldings は指定ユーザーの全保有銘柄を返します。
func (pu *portfolioUsecase) ListHoldings(ctx context.Context, userID uint) ([]entity.Holding, error) {
	return pu.holdings.FindByUserID(ctx, userID)
}

// AddHolding は保有銘柄を登録します。同じ銘柄が既に存在する場合は上書きします。
func (pu *portfolioUsecase) AddHolding(ctx context.Context, userID uint, symbol string, quantity, avgCost float64) error {
	return pu.holdings.Upsert(ctx, &entity.Holding{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		AvgCost:  avgCost,
	})
}

// UpdateHolding は既存の保有銘柄を更新します。
func (pu *portfolioUsecase) UpdateHolding(ctx context.Context, userID uint, symbol string, quantity, avgCost float64) error {
	return pu.holdings.Update(ctx, &entity.Holding{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		AvgCost:  avgCost,
	})
}

// RemoveHolding は保有銘柄を削除します。
func (pu *portfolioUsecase) RemoveHolding(ctx context.Context, userID uint, symbol string) error {
	return pu.holdings.Delete(ctx, userID, symbol)
}
