package usecase

import (
	"context"
	"time"

	pricesentity "stock_buddy/internal/feature/prices/domain/entity"
	pricesusecase "stock_buddy/internal/feature/prices/usecase"
	"stock_buddy/internal/shared/stats"
)

const (
	// MinDataPoints はベータ値を表示するために必要な最低標本数です。
	// 生の系列と整列後の系列の両方に適用されます。
	MinDataPoints = 20

	// DefaultIndexSymbol はデフォルトの市場指数（日経平均）のシンボルです。
	DefaultIndexSymbol = "^N225"
)

// 初心者向けの定性ラベル。ベータ値の解釈をUIに渡すための値です。
const (
	LabelAggressive     = "aggressive"      // beta > 1: 市場より大きく動く
	LabelDefensive      = "defensive"       // 0 <= beta < 1: 市場より小さく動く
	LabelInverse        = "inverse"         // beta < 0: 市場と逆方向に動く
	LabelMarketTracking = "market_tracking" // beta == 1: 市場と同じ動き
)

// PriceReader は日次終値の読み取り層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceReader interface {
	FindRange(ctx context.Context, symbol string, from time.Time) ([]pricesentity.Price, error)
}

// BetaReport はベータ値計算の結果です。
type BetaReport struct {
	Beta        float64
	Correlation float64
	DataPoints  int
	Label       string
}

// betaUsecase は銘柄のベータ値・相関係数を計算するユースケースです。
type betaUsecase struct {
	prices      PriceReader
	indexSymbol string
}

// NewBetaUsecase はbetaUsecaseの新しいインスタンスを生成します。
// indexSymbolが空の場合はDefaultIndexSymbolを使用します。
func NewBetaUsecase(prices PriceReader, indexSymbol string) *betaUsecase {
	if indexSymbol == "" {
		indexSymbol = DefaultIndexSymbol
	}
	return &betaUsecase{prices: prices, indexSymbol: indexSymbol}
}

// GetBeta は指定銘柄の市場指数に対するベータ値と相関係数を計算します。
// 銘柄・指数いずれかの生系列が20点未満、または日付整列後の標本が20点未満の
// 場合はErrInsufficientDataを返します。価格取得の失敗はそのまま返します。
func (bu *betaUsecase) GetBeta(ctx context.Context, code, period string) (*BetaReport, error) {
	from, err := pricesusecase.LookbackStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	stock, err := bu.prices.FindRange(ctx, code, from)
	if err != nil {
		return nil, err
	}
	index, err := bu.prices.FindRange(ctx, bu.indexSymbol, from)
	if err != nil {
		return nil, err
	}

	// 整列前のファストフェイル。整列やリターン変換を行う前に弾く。
	if len(stock) < MinDataPoints || len(index) < MinDataPoints {
		return nil, ErrInsufficientData
	}

	res := stats.ComputeBeta(toSamples(stock), toSamples(index))
	if res.Samples < MinDataPoints || !res.Defined() {
		return nil, ErrInsufficientData
	}

	return &BetaReport{
		Beta:        res.Beta,
		Correlation: res.Correlation,
		DataPoints:  res.Samples,
		Label:       Label(res.Beta),
	}, nil
}

// Label はベータ値から初心者向けの定性ラベルを導きます。
func Label(beta float64) string {
	switch {
	case beta < 0:
		return LabelInverse
	case beta > 1:
		return LabelAggressive
	case beta < 1:
		return LabelDefensive
	default:
		return LabelMarketTracking
	}
}

// toSamples はPriceエンティティを統計計算用のPriceSampleに変換します。
func toSamples(prices []pricesentity.Price) []stats.PriceSample {
	out := make([]stats.PriceSample, 0, len(prices))
	for _, p := range prices {
		out = append(out, stats.PriceSample{Date: p.DateString(), Close: p.Close})
	}
	return out
}
