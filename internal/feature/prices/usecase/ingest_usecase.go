package usecase

import (
	"context"
	"log/slog"

	"stock_buddy/internal/feature/prices/domain/entity"
	"stock_buddy/internal/shared/ratelimiter"
)

const (
	ingestOutputSize = 250 // 1回のリクエストで取得する日数（約1年分の営業日）
)

// MarketRepository は外部APIから株価データを取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailySeries(ctx context.Context, symbol string, outputsize int) ([]entity.Price, error)
}

// IngestUsecase は外部APIから日次終値を取得し、データベースに永続化するユースケースです。
type IngestUsecase struct {
	market      MarketRepository
	prices      PriceRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, prices PriceRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, prices: prices, rateLimiter: rateLimiter}
}

// ingestOne は指定された銘柄の日次終値を外部リポジトリから取得し、
// データベースに一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string) error {
	ps, err := iu.market.GetDailySeries(ctx, symbol, ingestOutputSize)
	if err != nil {
		return err
	}

	// 取得したデータに銘柄コードを設定
	for i := range ps {
		ps[i].Symbol = symbol
	}
	return iu.prices.UpsertBatch(ctx, ps)
}

// IngestAll は指定された全銘柄の日次終値を取得しデータベースに永続化します。
// APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
// 1つの銘柄でエラーが発生しても処理を止めず、ログに出力して次の銘柄へ進みます。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		iu.rateLimiter.WaitIfNeeded()
		if err := iu.ingestOne(ctx, s); err != nil {
			slog.Error("failed to ingest prices", "symbol", s, "error", err)
			continue
		}
	}
	return nil
}
