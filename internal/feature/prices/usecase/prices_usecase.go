package usecase

import (
	"context"
	"time"

	"stock_buddy/internal/feature/prices/domain/entity"
)

const (
	// DefaultPeriod は期間未指定時のデフォルトのルックバック期間です。
	DefaultPeriod = "1y"
)

// periodLookback は期間指定子と遡る月数の対応表です。
var periodLookback = map[string]int{
	"1mo": 1,
	"3mo": 3,
	"6mo": 6,
	"1y":  12,
}

// LookbackStart は期間指定子から取得開始日を計算します。
// 空文字列はDefaultPeriodとして扱い、未対応の指定子にはErrInvalidPeriodを返します。
func LookbackStart(period string, now time.Time) (time.Time, error) {
	if period == "" {
		period = DefaultPeriod
	}
	months, ok := periodLookback[period]
	if !ok {
		return time.Time{}, ErrInvalidPeriod
	}
	return now.AddDate(0, -months, 0), nil
}

// PriceRepository は日次株価データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// UpsertBatch は日次終値を一括で挿入または更新します。
	UpsertBatch(ctx context.Context, prices []entity.Price) error
	// FindRange は指定銘柄のfrom以降の終値を日付昇順で返します。
	FindRange(ctx context.Context, symbol string, from time.Time) ([]entity.Price, error)
}

// pricesUsecase は株価参照のユースケースを定義します。
type pricesUsecase struct {
	prices PriceRepository
}

// NewPricesUsecase はpricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(prices PriceRepository) *pricesUsecase {
	return &pricesUsecase{prices: prices}
}

// GetPrices は指定された銘柄とルックバック期間の日次終値を日付昇順で取得します。
func (pu *pricesUsecase) GetPrices(ctx context.Context, symbol, period string) ([]entity.Price, error) {
	from, err := LookbackStart(period, time.Now())
	if err != nil {
		return nil, err
	}
	return pu.prices.FindRange(ctx, symbol, from)
}
