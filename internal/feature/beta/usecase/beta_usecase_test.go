package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_buddy/internal/feature/beta/usecase"
	pricesentity "stock_buddy/internal/feature/prices/domain/entity"
	pricesusecase "stock_buddy/internal/feature/prices/usecase"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockPriceReader はPriceReaderインターフェースのモック実装です。
// シンボルごとに返す系列を切り替えます。
type mockPriceReader struct {
	BySymbol  map[string][]pricesentity.Price
	Err       error
	FindCalls int
}

func (m *mockPriceReader) FindRange(ctx context.Context, symbol string, from time.Time) ([]pricesentity.Price, error) {
	m.FindCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.BySymbol[symbol], nil
}

// series は基準日からの連続した日次終値系列を生成します。
func series(n int, close func(i int) float64) []pricesentity.Price {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]pricesentity.Price, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pricesentity.Price{
			Symbol: "TEST",
			Date:   base.AddDate(0, 0, i),
			Close:  close(i),
		})
	}
	return out
}

// varying は日ごとに変動する終値（リターンの分散が非ゼロ）を返します。
func varying(i int) float64 { return 100 + float64(i%7) }

func TestBetaUsecase_GetBeta(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		stock       []pricesentity.Price
		index       []pricesentity.Price
		period      string
		expectedErr error
	}{
		{
			name:        "error: stock history shorter than minimum",
			stock:       series(19, varying),
			index:       series(30, varying),
			expectedErr: usecase.ErrInsufficientData,
		},
		{
			name:        "error: index history shorter than minimum",
			stock:       series(30, varying),
			index:       series(19, varying),
			expectedErr: usecase.ErrInsufficientData,
		},
		{
			name:  "error: too few overlapping dates after alignment",
			stock: series(25, varying),
			// 指数側は銘柄側と10日しか重ならない
			index: func() []pricesentity.Price {
				s := series(35, varying)
				return s[15:]
			}(),
			expectedErr: usecase.ErrInsufficientData,
		},
		{
			name:        "error: index with zero variance",
			stock:       series(25, varying),
			index:       series(25, func(int) float64 { return 1000 }),
			expectedErr: usecase.ErrInsufficientData,
		},
		{
			name:        "error: unsupported period",
			stock:       series(25, varying),
			index:       series(25, varying),
			period:      "5y",
			expectedErr: pricesusecase.ErrInvalidPeriod,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &mockPriceReader{BySymbol: map[string][]pricesentity.Price{
				"7203.T":                   tc.stock,
				usecase.DefaultIndexSymbol: tc.index,
			}}
			uc := usecase.NewBetaUsecase(mockRepo, "")

			report, err := uc.GetBeta(ctx, "7203.T", tc.period)

			require.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, report)
		})
	}
}

// TestBetaUsecase_GetBeta_MarketTracking は銘柄と指数が同一系列のとき
// ベータ1・相関1になることを検証します。
func TestBetaUsecase_GetBeta_MarketTracking(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mockPriceReader{BySymbol: map[string][]pricesentity.Price{
		"7203.T":                   series(25, varying),
		usecase.DefaultIndexSymbol: series(25, varying),
	}}
	uc := usecase.NewBetaUsecase(mockRepo, "")

	report, err := uc.GetBeta(ctx, "7203.T", "1y")

	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Beta)
	assert.Equal(t, 1.0, report.Correlation)
	assert.Equal(t, 24, report.DataPoints) // 25終値 -> 24リターン
	assert.Equal(t, usecase.LabelMarketTracking, report.Label)
	assert.Equal(t, 2, mockRepo.FindCalls) // 銘柄と指数で1回ずつ
}

// TestBetaUsecase_GetBeta_Aggressive は市場の2倍の値動きをする銘柄が
// ベータ2・aggressiveラベルになることを検証します。
func TestBetaUsecase_GetBeta_Aggressive(t *testing.T) {
	ctx := context.Background()

	index := series(25, varying)
	// 指数の日次リターンを2倍した銘柄系列を合成する
	stock := make([]pricesentity.Price, len(index))
	stock[0] = pricesentity.Price{Symbol: "TEST", Date: index[0].Date, Close: 500}
	for i := 1; i < len(index); i++ {
		r := index[i].Close/index[i-1].Close - 1
		stock[i] = pricesentity.Price{
			Symbol: "TEST",
			Date:   index[i].Date,
			Close:  stock[i-1].Close * (1 + 2*r),
		}
	}

	mockRepo := &mockPriceReader{BySymbol: map[string][]pricesentity.Price{
		"7203.T":                   stock,
		usecase.DefaultIndexSymbol: index,
	}}
	uc := usecase.NewBetaUsecase(mockRepo, "")

	report, err := uc.GetBeta(ctx, "7203.T", "1y")

	require.NoError(t, err)
	assert.Equal(t, 2.0, report.Beta)
	assert.Equal(t, 1.0, report.Correlation)
	assert.Equal(t, usecase.LabelAggressive, report.Label)
}

// TestBetaUsecase_GetBeta_RepositoryError はリポジトリのエラーが
// そのまま呼び出し元へ伝播することを検証します。
func TestBetaUsecase_GetBeta_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mockPriceReader{Err: ErrDB}
	uc := usecase.NewBetaUsecase(mockRepo, "^TPX")

	report, err := uc.GetBeta(ctx, "7203.T", "1mo")

	require.ErrorIs(t, err, ErrDB)
	assert.Nil(t, report)
}

func TestLabel(t *testing.T) {
	testCases := []struct {
		beta     float64
		expected string
	}{
		{beta: 1.5, expected: usecase.LabelAggressive},
		{beta: 1.01, expected: usecase.LabelAggressive},
		{beta: 1.0, expected: usecase.LabelMarketTracking},
		{beta: 0.99, expected: usecase.LabelDefensive},
		{beta: 0.5, expected: usecase.LabelDefensive},
		{beta: 0.0, expected: usecase.LabelDefensive},
		{beta: -0.3, expected: usecase.LabelInverse},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, usecase.Label(tc.beta), "beta=%v", tc.beta)
	}
}
